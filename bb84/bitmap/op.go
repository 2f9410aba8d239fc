package bitmap

import "fmt"

// binaryOp applies f bytewise to a and b. The result's length is the
// longer of the two; the shorter operand is implicitly padded with
// trailing zeros.
func binaryOp(a, b Dense, f func(x, y byte) byte) Dense {
	n := a.len
	if b.len > n {
		n = b.len
	}
	r := Dense{bits: make([]byte, BytesFor(n)), len: n}
	for i := range r.bits {
		r.bits[i] = f(a.byteAt(i), b.byteAt(i))
	}
	r.clip()
	return r
}

// And returns the bitwise AND of two bitmaps.
func And(a, b Dense) Dense {
	return binaryOp(a, b, func(x, y byte) byte { return x & y })
}

// Or returns the bitwise OR of two bitmaps.
func Or(a, b Dense) Dense {
	return binaryOp(a, b, func(x, y byte) byte { return x | y })
}

// XOr returns the bitwise XOR of two bitmaps.
func XOr(a, b Dense) Dense {
	return binaryOp(a, b, func(x, y byte) byte { return x ^ y })
}

// XNor returns the bitwise XNOR of two bitmaps.
func XNor(a, b Dense) Dense {
	return binaryOp(a, b, func(x, y byte) byte { return ^(x ^ y) })
}

// Not returns the bitwise negation of a bitmap.
func Not(d Dense) Dense {
	return XNor(d, Dense{bits: make([]byte, d.SizeBytes()), len: d.len})
}

// Select selects a subset of bits from data, according to which bits
// are set in mask.
func Select(data, mask Dense) Dense {
	var d Dense
	for i := 0; i < data.Size(); i++ {
		if !mask.Get(i) {
			continue
		}
		d.AppendBit(data.Get(i))
	}
	return d
}

// Slice copies bits [start, end) of d into a fresh bitmap.
func Slice(d Dense, start, end int) (Dense, error) {
	if start < 0 {
		return Dense{}, fmt.Errorf("slicing bitmap with negative start: %d", start)
	}
	if end < start {
		return Dense{}, fmt.Errorf("slicing bitmap to negative length: %d", end-start)
	}
	if end > d.len {
		return Dense{}, fmt.Errorf("slicing bitmap of len %d up to %d", d.len, end)
	}
	r := Dense{bits: make([]byte, 0, BytesFor(end-start))}
	for i := start; i < end; i++ {
		r.AppendBit(d.Get(i))
	}
	return r, nil
}
