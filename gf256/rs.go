// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"errors"
	"strconv"
)

// MaxDegree is the largest degree of a generator polynomial returned
// by Field.Generator.
const MaxDegree = 68

// Errors returned by Correct.
var (
	ErrTooManyErrors = errors.New("gf256: too many errors")
	ErrRank          = errors.New("gf256: insufficient rank")
	ErrNoSolution    = errors.New("gf256: no solution in the equation")
)

// A Poly is a Reed-Solomon generator polynomial
// (x-α^0)(x-α^1)...(x-α^(d-1)) of degree d.
type Poly struct {
	f    *Field
	lgen []Log // non-leading coefficients, highest degree first
}

// Generator returns the generator polynomial of the given degree,
// which must be between 0 and MaxDegree.  The polynomials are
// computed the first time Generator is called.
func (f *Field) Generator(degree int) *Poly {
	if degree < 0 || degree > MaxDegree {
		panic("gf256: invalid generator degree " + strconv.Itoa(degree))
	}
	f.once.Do(f.makeGenerators)
	return &f.gen[degree]
}

func (f *Field) makeGenerators() {
	// coefficients, highest degree first
	c := make([]byte, 1, MaxDegree+1)
	c[0] = 1
	for d := 0; d <= MaxDegree; d++ {
		lgen := make([]Log, d)
		for i, v := range c[1:] {
			lgen[i] = f.log[v]
		}
		f.gen[d] = Poly{f: f, lgen: lgen}
		// multiply by (x - α^d)
		a := f.exp[d]
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] ^= f.Mul(c[i-1], a)
		}
	}
}

// Degree returns the degree of p, the number of check bytes it
// generates.
func (p *Poly) Degree() int {
	return len(p.lgen)
}

// Coefficients returns the logarithms of the non-leading coefficients
// of p, highest degree first.
func (p *Poly) Coefficients() []Log {
	return append([]Log(nil), p.lgen...)
}

// ECC writes to check the error correcting code bytes for data.
// len(check) must equal the degree of p.
func (p *Poly) ECC(data, check []byte) {
	if len(check) != len(p.lgen) {
		panic("gf256: invalid check byte length")
	}
	clear(check)
	f := p.f
	for _, b := range data {
		top := f.log[b^check[0]]
		copy(check, check[1:])
		check[len(check)-1] = 0
		if top == LogZero {
			continue
		}
		for i, g := range p.lgen {
			check[i] ^= f.Exp(AddLog(top, g))
		}
	}
}

// Generate computes in place the check bytes for block, whose last
// p.Degree() bytes are overwritten.
func (p *Poly) Generate(block []byte) {
	n := len(block) - len(p.lgen)
	p.ECC(block[:n], block[n:])
}

// eval evaluates the polynomial with coefficients c, highest degree
// first, at α^e.
func (f *Field) eval(c []byte, e Log) byte {
	var s byte
	for _, v := range c {
		s = f.Exp(AddLog(f.log[s], e)) ^ v
	}
	return s
}

// Correct corrects errors in block, a codeword with degree check bytes
// generated by the polynomial of that degree.  The last p of the
// check bytes are reserved for error detection: at most (degree-p)/2
// errors are corrected.  Correct returns the number of corrected
// bytes, or an error if block cannot be corrected.
func (f *Field) Correct(block []byte, degree, p int) (int, error) {
	if degree < 0 || p < 0 || p > degree || len(block) < degree ||
		len(block) > 255 {
		panic("gf256: invalid block parameters")
	}
	synd := make([]byte, degree)
	bad := false
	for i := range synd {
		synd[i] = f.eval(block, Log(i))
		bad = bad || synd[i] != 0
	}
	if !bad {
		return 0, nil
	}

	n := degree - p
	lfsr := f.lfsr(synd[:n])
	if nerr := len(lfsr) - 1; nerr*2 > n {
		return 0, ErrTooManyErrors
	}

	// The locator's coefficients read lowest degree first form a
	// polynomial with roots at α^k for errors at x^k.
	var loc []int
	for i := range len(block) {
		if f.eval(lfsr, Log(i)) == 0 {
			loc = append(loc, i)
		}
	}
	if len(loc)*2 > n || len(loc) != len(lfsr)-1 {
		return 0, ErrTooManyErrors
	}

	// Solve S_y = Σ e_k·α^(y·loc_k) for the error magnitudes e_k.
	w := len(loc)
	m := make([][]byte, degree)
	for y := range m {
		row := make([]byte, w+1)
		for k, l := range loc {
			row[k] = f.Exp(MulLog(Log(l%255), y))
		}
		row[w] = synd[y]
		m[y] = row
	}
	for c := range w {
		r := c
		for r < degree && m[r][c] == 0 {
			r++
		}
		if r == degree {
			return 0, ErrRank
		}
		m[c], m[r] = m[r], m[c]
		if v := m[c][c]; v != 1 {
			inv := f.Inv(v)
			for j := c; j <= w; j++ {
				m[c][j] = f.Mul(m[c][j], inv)
			}
		}
		for y := range m {
			if v := m[y][c]; y != c && v != 0 {
				for j := c; j <= w; j++ {
					m[y][j] ^= f.Mul(m[c][j], v)
				}
			}
		}
	}
	for _, row := range m[w:] {
		if row[w] != 0 {
			return 0, ErrNoSolution
		}
	}

	for k, l := range loc {
		block[len(block)-1-l] ^= m[k][w]
	}
	return w, nil
}

// lfsr returns the connection polynomial, lowest degree first, of the
// shortest linear feedback shift register generating synd, found with
// the Berlekamp-Massey algorithm.
func (f *Field) lfsr(synd []byte) []byte {
	size := len(synd) + 1
	c := make([]byte, 1, size)
	c[0] = 1
	prev := []byte{1} // previous c, divided by its discrepancy
	shift := 1        // x^shift multiplies prev
	deg := 0
	for i := range synd {
		d := synd[i]
		for j := 1; j <= deg && j < len(c); j++ {
			d ^= f.Mul(c[j], synd[i-j])
		}
		if d == 0 {
			shift++
			continue
		}
		next := c
		if n := len(prev) + shift; n > len(c) {
			next = make([]byte, n, max(n, size))
			copy(next, c)
		} else {
			next = append([]byte(nil), c...)
		}
		for j, v := range prev {
			next[j+shift] ^= f.Mul(d, v)
		}
		if 2*deg <= i {
			inv := f.Inv(d)
			prev = make([]byte, len(c))
			for j, v := range c {
				prev[j] = f.Mul(v, inv)
			}
			deg = i + 1 - deg
			shift = 1
		} else {
			shift++
		}
		c = next
	}
	// trim to the register length
	if len(c) > deg+1 {
		c = c[:deg+1]
	}
	for len(c) < deg+1 {
		c = append(c, 0)
	}
	return c
}
