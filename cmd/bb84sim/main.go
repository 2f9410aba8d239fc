// bb84sim runs a BB84 simulation for each entry in the cartesian
// product of a collection of tuning parameters, e.g. round count and
// eavesdropper interception probability, and outputs a CSV of relevant
// statistics for each combination, e.g. verdict, observed QBER, and
// final key length.
package main

import (
	"fmt"
	"log"
	"os"
	"text/template"

	flag "github.com/spf13/pflag"

	"github.com/MuhammadYoushay/BB84/bb84"
)

var (
	rounds = flag.IntSlice("rounds", []int{1000},
		"The number of qubits to exchange per run.")
	intercepts = flag.Float64Slice("intercept", []float64{0, 1},
		"The per-round probabilities that the eavesdropper intercepts a qubit.")
	noises = flag.Float64Slice("noise", []float64{0},
		"The channel noise rates.")
	samples = flag.Float64Slice("sample", []float64{bb84.DefaultSampleFraction},
		"The fractions of the sifted key spent on error estimation.")
	thresholds = flag.Float64Slice("threshold", []float64{bb84.DefaultAcceptanceThreshold},
		"The QBER acceptance thresholds.")
	seeds = flag.Int64Slice("seed", []int64{42},
		"The master seeds.")
	amplify = flag.Bool("amplify", false,
		"Privacy-amplify accepted keys through a Toeplitz hash.")
)

const (
	header = "Rounds, InterceptProb, NoiseRate, SampleFraction, Threshold, Seed, " +
		"Verdict, QBER, Confidence, SiftedBits, SampledBits, KeyBits"
	lineTmpl = "{{.Rounds}}, {{.InterceptProb}}, {{.NoiseRate}}, {{.SampleFraction}}, " +
		"{{.Threshold}}, {{.Seed}}, {{.Verdict}}, {{printf \"%.4f\" .QBER}}, " +
		"{{printf \"%.4g\" .Confidence}}, {{.SiftedBits}}, {{.SampledBits}}, {{.KeyBits}}\n"
)

// An Experiment packages together the result of simulating a single
// parameterization for easy formatting.
type Experiment struct {
	Rounds         int
	InterceptProb  float64
	NoiseRate      float64
	SampleFraction float64
	Threshold      float64
	Seed           int64

	Verdict     bb84.Verdict
	QBER        float64
	Confidence  float64
	SiftedBits  int
	SampledBits int
	KeyBits     int
}

func main() {
	flag.Parse()
	fmt.Println(header)
	tmpl := template.Must(template.New("line").Parse(lineTmpl))
	for _, n := range *rounds {
		for _, p := range *intercepts {
			for _, noise := range *noises {
				for _, f := range *samples {
					for _, thresh := range *thresholds {
						for _, seed := range *seeds {
							exp, err := run(n, p, noise, f, thresh, seed)
							if err != nil {
								log.Fatalf("Simulating (rounds: %d, intercept: %v, noise: %v, sample: %v, threshold: %v, seed: %d): %v",
									n, p, noise, f, thresh, seed, err)
							}
							tmpl.Execute(os.Stdout, exp)
						}
					}
				}
			}
		}
	}
}

func run(n int, p, noise, f, thresh float64, seed int64) (Experiment, error) {
	opts := bb84.Options{
		Rounds:         n,
		InterceptProb:  p,
		NoiseRate:      noise,
		SampleFraction: f,
		Threshold:      thresh,
		Seed:           seed,
	}
	if *amplify {
		opts.Amplify = &bb84.AmplifyOpts{}
	}
	sim, err := bb84.NewSimulation(opts)
	if err != nil {
		return Experiment{}, err
	}
	res, err := sim.Run()
	if err != nil {
		return Experiment{}, err
	}
	return Experiment{
		Rounds:         n,
		InterceptProb:  p,
		NoiseRate:      noise,
		SampleFraction: f,
		Threshold:      thresh,
		Seed:           seed,
		Verdict:        res.Verdict,
		QBER:           res.QBER,
		Confidence:     res.Confidence,
		SiftedBits:     res.Sifted,
		SampledBits:    res.Sampled,
		KeyBits:        res.FinalKey.Size(),
	}, nil
}
