package bitmap

import "math/rand"

// A Dense is a bitmap where every bit is explicitly represented, packed
// little-endian into bytes. Bits past len are kept zero, which lets the
// bytewise operations in op.go treat the final partial byte uniformly.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new dense bitmap whose contents are a copy of
// data, and whose length is bitLen. If bitLen is longer than data, then
// trailing zeros are added. If bitLen is negative, then it is inferred
// from data.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	bits := make([]byte, BytesFor(bitLen))
	copy(bits, data)
	d := Dense{bits: bits, len: bitLen}
	d.clip()
	return d
}

// Empty returns an empty, dense bitmap.
func Empty() Dense {
	return Dense{}
}

// Size returns the number of bits in this bitmap.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes necessary to represent this
// bitmap.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a copy of the bytes underlying this bitmap.
func (d Dense) Data() []byte {
	data := make([]byte, len(d.bits))
	copy(data, d.bits)
	return data
}

// Get returns the i-th bit in this bitmap. Indices past the end read as
// zero.
func (d Dense) Get(i int) bool {
	if i >= d.len {
		return false
	}
	return 0 < d.bits[i/byteSize]&(1<<(i%byteSize))
}

// Set assigns the i-th bit in this bitmap. Setting a bit at or past the
// end is a no-op.
func (d *Dense) Set(i int, v bool) {
	if i >= d.len {
		return
	}
	if v {
		d.bits[i/byteSize] |= 1 << (i % byteSize)
	} else {
		d.bits[i/byteSize] &= ^byte(1 << (i % byteSize))
	}
}

// Flip inverts the i-th bit in this bitmap.
func (d *Dense) Flip(i int) {
	d.bits[i/byteSize] ^= 1 << (i % byteSize)
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len++
	if pos == 0 {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	}
}

// Shuffle randomly permutes the contents of d, using r as a source of
// randomness. Two bitmaps of equal length shuffled with identically
// seeded sources undergo the same permutation.
func (d *Dense) Shuffle(r *rand.Rand) {
	r.Shuffle(d.len, d.swap)
}

func (d *Dense) swap(i, j int) {
	a, b := d.Get(i), d.Get(j)
	if a == b {
		return
	}
	d.Flip(i)
	d.Flip(j)
}

// String renders d as a string of '0's and '1's, bit 0 leftmost.
func (d Dense) String() string {
	buf := make([]byte, d.len)
	for i := 0; i < d.len; i++ {
		if d.Get(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// byteAt reads the i-th byte, treating bytes past the end as zero.
func (d Dense) byteAt(i int) byte {
	if i < len(d.bits) {
		return d.bits[i]
	}
	return 0
}

// clip zeroes the unused high bits of the final byte, maintaining the
// bits-past-len-are-zero invariant.
func (d *Dense) clip() {
	if off := d.len % byteSize; off != 0 && len(d.bits) > 0 {
		d.bits[len(d.bits)-1] &= 0xFF >> (byteSize - off)
	}
}
