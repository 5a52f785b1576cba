// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon coding over it.
package gf256 // import "github.com/unixdj/qrcodec/gf256"

import (
	"strconv"
	"sync"
)

// A Log is a discrete logarithm of a field element: the exponent e
// such that α^e equals the element.  Valid exponents run from 0 to
// 254; LogZero stands for the logarithm of 0.
type Log uint8

// LogZero is the logarithm of 0.  Arithmetic on logarithms propagates
// it, and Exp(LogZero) is 0.
const LogZero Log = 255

// A Field represents an instance of GF(256) defined by a specific
// polynomial.  A Field is safe for concurrent use.
type Field struct {
	log [256]Log  // log[0] is LogZero
	exp [510]byte // exp[i] = α^i, twice over to skip the modulo

	once sync.Once
	gen  [MaxDegree + 1]Poly
}

// mul multiplies x and y modulo poly, carry-less.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// NewField panics unless α generates all 255 nonzero elements, that
// is, unless poly is primitive and α is a primitive root.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || α < 2 || α > 0xff {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly) +
				": cycle length " + strconv.Itoa(i))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = Log(i)
		x = mul(x, α, poly)
	}
	if x != 1 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	f.log[0] = LogZero
	return &f
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// Exp(LogZero) is 0.
func (f *Field) Exp(e Log) byte {
	if e == LogZero {
		return 0
	}
	return f.exp[e]
}

// Log returns the base-α logarithm of x in the field.
// Log(0) is LogZero.
func (f *Field) Log(x byte) Log {
	return f.log[x]
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-int(f.log[x])]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Div returns x divided by y in the field.  y must not be 0.
func (f *Field) Div(x, y byte) byte {
	if y == 0 {
		panic("gf256: division by zero")
	}
	if x == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+255-int(f.log[y])]
}

// AddLog returns the logarithm of the product of the elements with
// logarithms a and b.
func AddLog(a, b Log) Log {
	if a == LogZero || b == LogZero {
		return LogZero
	}
	s := int(a) + int(b)
	if s >= 255 {
		s -= 255
	}
	return Log(s)
}

// NegLog returns the logarithm of the inverse of the element with
// logarithm a.
func NegLog(a Log) Log {
	if a == LogZero || a == 0 {
		return a
	}
	return 255 - a
}

// MulLog returns the logarithm of the n-th power of the element with
// logarithm a.  n must not be negative.
func MulLog(a Log, n int) Log {
	if a == LogZero {
		return LogZero
	}
	return Log(int(a) * n % 255)
}
