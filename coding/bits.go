// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "io"

// Bits is a growable bit buffer.  Bits are stored most significant
// first; unused bits in the last byte are always zero.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version and level.
func NewBits(v Version, l Level) *Bits {
	n := vtab[v].bytes
	if 1 < vtab[v].level[l].nblock {
		n <<= 1
	}
	return &Bits{b: make([]byte, 0, n)}
}

// NewBitsFrom returns Bits holding the first nbit bits of b.
func NewBitsFrom(b []byte, nbit int) *Bits {
	if nbit < 0 || nbit > len(b)*8 {
		panic("qr: invalid bit length")
	}
	bb := &Bits{b: append([]byte(nil), b[:(nbit+7)>>3]...), nbit: nbit}
	if r := nbit & 7; r != 0 {
		bb.b[len(bb.b)-1] &^= 0xff >> r
	}
	return bb
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the length of b in bits.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the contents of b.  The last byte may be partial.
func (b *Bits) Bytes() []byte {
	return b.b
}

// Clone returns a copy of b.
func (b *Bits) Clone() *Bits {
	return &Bits{b: append([]byte(nil), b.b...), nbit: b.nbit}
}

func (b *Bits) growTo(n int) {
	for cap(b.b) < n {
		b.b = append(b.b[:cap(b.b)], 0)[:len(b.b)]
	}
}

func (b *Bits) Grow(n int) { b.growTo(len(b.b) + n) }

// Add adds n bytes to b and returns the added slice.
func (b *Bits) Add(n int) []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	b.Grow(n)
	start := len(b.b)
	b.b = b.b[:start+n]
	clear(b.b[start:])
	b.nbit = 8 * len(b.b)
	return b.b[start:]
}

// Write appends the low nbit bits of v to b.  nbit must be between
// 0 and 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// WriteBytes appends whole bytes to b.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, c := range p {
		b.Write(uint32(c), 8)
	}
}

// Bit returns bit i of b.
func (b *Bits) Bit(i int) byte {
	return b.b[i>>3] >> (7 &^ i) & 1
}

// Uint returns nbit bits of b starting at bit off, as an unsigned
// integer.  nbit must be between 0 and 32 and the bits must lie
// within b.
func (b *Bits) Uint(off, nbit int) uint32 {
	if off < 0 || nbit < 0 || nbit > 32 || off+nbit > b.nbit {
		panic("qr: bit range out of bounds")
	}
	var v uint64
	first, last := off>>3, (off+nbit+7)>>3
	for _, c := range b.b[first:last] {
		v = v<<8 | uint64(c)
	}
	v >>= (last*8 - off - nbit)
	return uint32(v & (1<<nbit - 1))
}

// SetUint overwrites nbit bits of b starting at bit off with the low
// nbit bits of v.
func (b *Bits) SetUint(off, nbit int, v uint32) {
	if off < 0 || nbit < 0 || nbit > 32 || off+nbit > b.nbit {
		panic("qr: bit range out of bounds")
	}
	for i := nbit - 1; i >= 0; i, off = i-1, off+1 {
		m := byte(0x80) >> (off & 7)
		if v>>i&1 != 0 {
			b.b[off>>3] |= m
		} else {
			b.b[off>>3] &^= m
		}
	}
}

// TerminatorLength returns the length of the terminator in size
// class class.
func TerminatorLength(class int) int {
	if class >= Class0 {
		return 4
	}
	return class*2 + 3
}

// PadTo adds up to t terminator bits to b and pads it to n bits:
// zeros to a byte boundary, then alternating 0xec and 0x11 bytes.
// A partial last byte is left zero.
func (b *Bits) PadTo(t, n int) {
	if b.nbit > n {
		panic("qr: too much data")
	}
	b.growTo((n + 7) >> 3)
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	if len(b.b) < (n+7)>>3 {
		buf := b.b[len(b.b) : n>>3]
		b.b = b.b[:(n+7)>>3]
		b.b[len(b.b)-1] = 0
		for len(buf) >= 2 {
			buf[0], buf[1] = 0xec, 0x11
			buf = buf[2:]
		}
		if len(buf) > 0 {
			buf[0] = 0xec
		}
	}
	b.nbit = n
}

// Pad adds terminator and padding to b to fill the data capacity of
// version v at level l.
func (b *Bits) Pad(v Version, l Level) {
	b.PadTo(TerminatorLength(v.SizeClass()), v.DataBits(l))
}

// A BitReader reads bits from a buffer, most significant first.
type BitReader struct {
	b    []byte
	nbit int
	pos  int
}

// NewBitReader returns a BitReader reading the first nbit bits of b.
func NewBitReader(b []byte, nbit int) *BitReader {
	return &BitReader{b: b, nbit: min(nbit, len(b)*8)}
}

// Reader returns a BitReader reading b.
func (b *Bits) Reader() *BitReader {
	return NewBitReader(b.b, b.nbit)
}

// Remaining returns the number of unread bits.
func (r *BitReader) Remaining() int {
	return r.nbit - r.pos
}

// Peek returns the next nbit bits without advancing.  It returns
// io.ErrUnexpectedEOF if fewer bits remain.
func (r *BitReader) Peek(nbit int) (uint32, error) {
	if nbit > r.Remaining() {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint32
	for i := r.pos; i < r.pos+nbit; i++ {
		v = v<<1 | uint32(r.b[i>>3]>>(7&^i)&1)
	}
	return v, nil
}

// Read reads nbit bits, between 0 and 32.  It returns
// io.ErrUnexpectedEOF if fewer bits remain.
func (r *BitReader) Read(nbit int) (uint32, error) {
	v, err := r.Peek(nbit)
	if err == nil {
		r.pos += nbit
	}
	return v, err
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b    []byte
	nbit int
	pos  int
}

// NewBitStream returns a BitStream reading the first nbit bits of b.
func NewBitStream(b []byte, nbit int) BitStream {
	return BitStream{b: b, nbit: nbit}
}

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Bits returns the number of bits in s.
func (s *BitStream) Bits() int { return s.nbit }

// Next returns the next bit from s as 0 or 1.
// Past end of stream Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if s.pos < s.nbit {
		b = s.b[s.pos>>3] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
