// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Symbol is an encoded or decoded QR or Micro QR symbol.
type Symbol struct {
	Version Version
	Level   Level
	Mask    int
	Matrix  *Matrix

	// Data holds the data bits: before terminator and padding when
	// encoding, the full corrected capacity when decoding.
	Data *Bits

	// Corrected is the number of codewords corrected when decoding.
	Corrected int
}

// An Encoder encodes a QR code.
type Encoder struct {
	v Version
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if !version.IsValid() {
		return nil, ErrVersion
	}
	if !version.HasLevel(level) {
		return nil, ErrLevel
	}
	return &Encoder{v: version, l: level, b: NewBits(version, level)}, nil
}

// Write adds text to e.
func (e *Encoder) Write(text ...Segment) error {
	class := e.v.SizeClass()
	for _, t := range text {
		if err := t.Encode(e.b, class); err != nil {
			return err
		}
	}
	return nil
}

// WriteBits adds raw data bits to e.
func (e *Encoder) WriteBits(b *Bits) {
	r := b.Reader()
	for r.Remaining() > 0 {
		n := min(r.Remaining(), 24)
		v, _ := r.Read(n)
		e.b.Write(v, n)
	}
}

func (e *Encoder) Reset() { e.b.Reset() }

// Code returns a symbol containing data written to e, masked with
// mask, or with the best mask if mask is negative.
func (e *Encoder) Code(mask int) (*Symbol, error) {
	if nb := e.v.DataBits(e.l); e.b.Bits() > nb {
		return nil, fmt.Errorf("qr: cannot encode %d bits into %d-bit code",
			e.b.Bits(), nb)
	}
	if mask >= e.v.Masks() {
		return nil, ErrMask
	}
	p, err := PlanFor(e.v)
	if err != nil {
		return nil, err
	}
	sym := &Symbol{Version: e.v, Level: e.l, Data: e.b.Clone()}
	b := NewBits(e.v, e.l)
	b.b = append(b.b, e.b.b...)
	b.nbit = e.b.nbit
	b.AddCheckBytes(e.v, e.l)
	sym.Matrix = p.NewMatrix()
	p.Serialise(sym.Matrix, b.Permute(e.v, e.l))
	if mask < 0 {
		sym.Mask, err = AutoMask(sym.Matrix, e.v, e.l)
	} else {
		sym.Mask, err = mask, ApplyMaskAndMetadata(sym.Matrix, e.v, e.l, mask)
	}
	if err != nil {
		return nil, err
	}
	return sym, nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(mask int, text ...Segment) (*Symbol, error) {
	if err := e.Write(text...); err != nil {
		return nil, err
	}
	return e.Code(mask)
}

// Encode encodes data bits into a symbol with the given version,
// level and mask.  A negative mask selects the best one.
func Encode(b *Bits, version Version, level Level, mask int) (*Symbol, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	e.WriteBits(b)
	return e.Code(mask)
}

// Decode reads the metadata of a matrix holding module values,
// removes the mask and corrects errors.  The returned symbol holds the
// corrected data bits.
func Decode(m *Matrix) (*Symbol, error) {
	v, l, mask, err := ReadMetadata(m)
	if err != nil {
		return nil, err
	}
	p, err := PlanFor(v)
	if err != nil {
		return nil, err
	}
	raw, err := p.Collect(m, mask)
	if err != nil {
		return nil, err
	}
	data, n, err := CorrectData(raw, v, l)
	if err != nil {
		return nil, err
	}
	return &Symbol{
		Version:   v,
		Level:     l,
		Mask:      mask,
		Matrix:    m,
		Data:      data,
		Corrected: n,
	}, nil
}

// Segments parses the data bits of a decoded symbol.
func (s *Symbol) Segments() ([]Segment, error) {
	return ReadSegments(s.Data.Reader(), s.Version.SizeClass())
}
