// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"iter"
	"math/bits"
	"sync"
)

// A Plan describes the module layout of a version: function
// patterns, reserved metadata areas and the placement order of data
// and check bits.
type Plan struct {
	Version Version
	Size    int // number of modules on a side

	template *Matrix // function patterns and reserved metadata
	order    []int   // data module offsets in placement order
}

// Pre-allocated Plans.  A Plan is created the first time a version
// is used.
var plans [M4 + 1]struct {
	once sync.Once
	p    *Plan
}

// PlanFor returns the Plan for version v.
func PlanFor(v Version) (*Plan, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	p := &plans[v]
	p.once.Do(func() { p.p = vplan(v) })
	return p.p, nil
}

// NewMatrix returns a matrix holding the function patterns of p,
// with metadata modules reserved and data modules light.
func (p *Plan) NewMatrix() *Matrix {
	return p.template.Clone()
}

// DataModules returns the number of modules available for data and
// check bits, including remainder bits.
func (p *Plan) DataModules() int { return len(p.order) }

// Positions returns the coordinates of data modules in placement
// order.
func (p *Plan) Positions() iter.Seq2[int, int] {
	return func(yield func(x, y int) bool) {
		for _, off := range p.order {
			if !yield(off%p.Size, off/p.Size) {
				return
			}
		}
	}
}

// Serialise writes bits from s to the data modules of m in placement
// order.  Modules past the end of s are light.
func (p *Plan) Serialise(m *Matrix, s BitStream) {
	for _, off := range p.order {
		m.Cells[off] = s.Next()
	}
}

// Collect reads the data modules of m in placement order, removing
// the mask, and returns the codeword bits.  Remainder bits of QR
// symbols are dropped.
func (p *Plan) Collect(m *Matrix, mask int) (*Bits, error) {
	if m.Size != p.Size {
		return nil, ErrSize
	}
	fn, err := maskFunc(p.Version, mask)
	if err != nil {
		return nil, err
	}
	nbit := p.Version.Spec().Bits
	b := &Bits{b: make([]byte, (nbit+7)>>3), nbit: nbit}
	for i, off := range p.order[:nbit] {
		x, y := off%p.Size, off/p.Size
		v := m.Cells[off] & Dark
		if fn(y, x) {
			v ^= 1
		}
		b.b[i>>3] |= v << (7 &^ i)
	}
	return b, nil
}

// vplan creates the Plan for version v.
func vplan(v Version) *Plan {
	siz := v.Width()
	p := &Plan{Version: v, Size: siz, template: NewMatrix(siz)}
	m := p.template
	µ := v.IsMicro()

	// Position boxes with separators.
	finder(m, 3, 3)
	if !µ {
		finder(m, siz-4, 3)
		finder(m, 3, siz-4)
	}

	// Timing markers.
	tpos, tstart, tend := 6, 8, siz-8
	if µ {
		tpos, tend = 0, siz
	}
	for i := tstart; i < tend; i++ {
		dot := Function | byte(i&1^1)
		m.SetExt(i, tpos, dot)
		m.SetExt(tpos, i, dot)
	}

	// Alignment boxes.
	if pos := v.Spec().Align; len(pos) != 0 {
		last := pos[len(pos)-1]
		for _, y := range pos {
			for _, x := range pos {
				if x == 6 && (y == 6 || y == last) || y == 6 && x == last {
					continue
				}
				alignBox(m, x, y)
			}
		}
	}

	// Format and version information.
	if µ {
		for i := 1; i <= 8; i++ {
			m.SetExt(i, 8, Metadata)
			m.SetExt(8, i, Metadata)
		}
	} else {
		for i := 0; i <= 8; i++ {
			if i != 6 {
				m.SetExt(i, 8, Metadata)
				m.SetExt(8, i, Metadata)
			}
		}
		for i := siz - 8; i < siz; i++ {
			m.SetExt(i, 8, Metadata)
			m.SetExt(8, i, Metadata)
		}
		if v >= 7 {
			for i := 0; i < 18; i++ {
				m.SetExt(siz-11+i%3, i/3, Metadata)
				m.SetExt(i/3, siz-11+i%3, Metadata)
			}
		}
	}

	// Data modules in zigzag order: two-module columns from the
	// right, alternately upwards and downwards, skipping the
	// vertical timing strip.
	ncol := (siz - 1) / 2
	skip := 3
	if µ {
		skip = 0
	}
	p.order = make([]int, 0, v.Spec().RawBits)
	for col := ncol - 1; col >= 0; col-- {
		x := col * 2
		if col >= skip {
			x++
		}
		up := (ncol-1-col)&1 == 0
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for _, off := range [2]int{y*siz + x + 1, y*siz + x} {
				if m.Cells[off]&NonData == 0 {
					p.order = append(p.order, off)
				}
			}
		}
	}
	if len(p.order) != v.Spec().RawBits {
		panic("qr: internal error: version " + v.String() +
			" module count mismatch")
	}
	return p
}

// finder draws a finder pattern centred at x, y with its separator,
// clipped to the matrix.
func finder(m *Matrix, cx, cy int) {
	for y := max(cy-4, 0); y <= min(cy+4, m.Size-1); y++ {
		for x := max(cx-4, 0); x <= min(cx+4, m.Size-1); x++ {
			d := max(abs(x-cx), abs(y-cy))
			dot := Function
			if d != 2 && d != 4 {
				dot |= Dark
			}
			m.SetExt(x, y, dot)
		}
	}
}

// alignBox draws an alignment (small) box centred at x, y.
func alignBox(m *Matrix, cx, cy int) {
	for y := cy - 2; y <= cy+2; y++ {
		for x := cx - 2; x <= cx+2; x++ {
			dot := Function
			if max(abs(x-cx), abs(y-cy)) != 1 {
				dot |= Dark
			}
			m.SetExt(x, y, dot)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Format information positions.  qrFormat1 holds the copy around the
// top left finder, qrFormat2 the one split between the other two.
// Negative coordinates count from the far edge.
var (
	qrFormat1 = [15][2]int{
		{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
		{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
	}
	qrFormat2 = [15][2]int{
		{-1, 8}, {-2, 8}, {-3, 8}, {-4, 8}, {-5, 8}, {-6, 8}, {-7, 8}, {-8, 8},
		{8, -7}, {8, -6}, {8, -5}, {8, -4}, {8, -3}, {8, -2}, {8, -1},
	}
	microFormat = [15][2]int{
		{8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 6}, {8, 7}, {8, 8},
		{7, 8}, {6, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8},
	}
)

func at(pos [2]int, siz int) (x, y int) {
	x, y = pos[0], pos[1]
	if x < 0 {
		x += siz
	}
	if y < 0 {
		y += siz
	}
	return x, y
}

// microSymbols maps Micro QR symbol numbers to version and level.
var microSymbols = [8]struct {
	v Version
	l Level
}{{M1, None}, {M2, L}, {M2, M}, {M3, L}, {M3, M}, {M4, L}, {M4, M}, {M4, Q}}

// qrLevelBits maps levels to their format information bits.
var qrLevelBits = [H + 1]uint32{L: 1, M: 0, Q: 3, H: 2}

// FormatBits returns the masked 15 bit format information for the
// given version, level and mask.
func FormatBits(v Version, l Level, mask int) (uint32, error) {
	if !v.HasLevel(l) {
		return 0, ErrLevel
	}
	if mask < 0 || mask >= v.Masks() {
		return 0, ErrMask
	}
	if v.IsMicro() {
		sym := 0
		if v != M1 {
			sym = int(v-M1)*2 - 1 + int(l-L)
		}
		return EncodeFormat(uint32(sym<<2|mask)) ^ microFormatMask, nil
	}
	return EncodeFormat(qrLevelBits[l]<<3|uint32(mask)) ^ qrFormatMask, nil
}

// WriteMetadata writes format information, and version information
// where present, to a matrix of version v.
func WriteMetadata(m *Matrix, v Version, l Level, mask int) error {
	if m.Size != v.Width() {
		return ErrSize
	}
	f, err := FormatBits(v, l, mask)
	if err != nil {
		return err
	}
	put := func(x, y int, b uint32) {
		m.SetExt(x, y, Metadata|byte(b&1))
	}
	if v.IsMicro() {
		for i, pos := range microFormat {
			put(pos[0], pos[1], f>>i)
		}
		return nil
	}
	for i := range qrFormat1 {
		x, y := at(qrFormat1[i], m.Size)
		put(x, y, f>>i)
		x, y = at(qrFormat2[i], m.Size)
		put(x, y, f>>i)
	}
	put(8, m.Size-8, 1)
	if vi := EncodeVersion(v); vi != 0 {
		for i := 0; i < 18; i++ {
			put(m.Size-11+i%3, i/3, vi>>i)
			put(i/3, m.Size-11+i%3, vi>>i)
		}
	}
	return nil
}

// readCode reads a code from the modules at the given positions.
func readCode(m *Matrix, pos [][2]int) uint32 {
	var c uint32
	for i, p := range pos {
		x, y := at(p, m.Size)
		c |= uint32(m.At(x, y)) << i
	}
	return c
}

// decodeFormat decodes the format information copy with the fewest
// bit errors.
func decodeFormat(copies ...uint32) (uint32, error) {
	var (
		best uint32
		dist = -1
		err  error
	)
	for _, c := range copies {
		d, e := DecodeFormat(c, 0)
		if e != nil {
			if err == nil {
				err = e
			}
			continue
		}
		if n := bits.OnesCount32(EncodeFormat(d) ^ c); dist < 0 || n < dist {
			best, dist = d, n
		}
	}
	if dist < 0 {
		return 0, err
	}
	return best, nil
}

// ReadMetadata reads and corrects the format and version information
// of a matrix.
func ReadMetadata(m *Matrix) (v Version, l Level, mask int, err error) {
	if v, err = VersionForWidth(m.Size); err != nil {
		return 0, 0, 0, err
	}
	if v.IsMicro() {
		f, err := DecodeFormat(readCode(m, microFormat[:])^microFormatMask, 0)
		if err != nil {
			return 0, 0, 0, err
		}
		sym := microSymbols[f>>2]
		if sym.v != v {
			return 0, 0, 0, FormatError("symbol size does not match format information")
		}
		return v, sym.l, int(f & 3), nil
	}

	f, err := decodeFormat(readCode(m, qrFormat1[:])^qrFormatMask,
		readCode(m, qrFormat2[:])^qrFormatMask)
	if err != nil {
		return 0, 0, 0, err
	}
	for l = L; l <= H; l++ {
		if qrLevelBits[l] == f>>3 {
			break
		}
	}
	mask = int(f & 7)

	if v >= 7 {
		var c1, c2 uint32
		for i := 0; i < 18; i++ {
			c1 |= uint32(m.At(m.Size-11+i%3, i/3)) << i
			c2 |= uint32(m.At(i/3, m.Size-11+i%3)) << i
		}
		v1, err1 := DecodeVersion(c1, 0)
		v2, err2 := DecodeVersion(c2, 0)
		switch {
		case err1 == nil && v1 == v, err2 == nil && v2 == v:
		case err1 != nil && err2 != nil:
			return 0, 0, 0, err1
		default:
			return 0, 0, 0, FormatError("symbol size does not match version information")
		}
	}
	return v, l, mask, nil
}
