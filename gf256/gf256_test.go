// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var qr = NewField(0x11d, 2)

func TestFieldAxioms(t *testing.T) {
	for x := range 256 {
		x := byte(x)
		if qr.Mul(x, 1) != x {
			t.Fatalf("%#x*1 = %#x", x, qr.Mul(x, 1))
		}
		if qr.Mul(x, 0) != 0 {
			t.Fatalf("%#x*0 = %#x", x, qr.Mul(x, 0))
		}
		if x != 0 && qr.Mul(x, qr.Inv(x)) != 1 {
			t.Fatalf("%#x*inv(%#x) != 1", x, x)
		}
		for y := range 256 {
			y := byte(y)
			xy := qr.Mul(x, y)
			if xy != qr.Mul(y, x) {
				t.Fatalf("%#x*%#x not commutative", x, y)
			}
			if y != 0 && qr.Div(xy, y) != x {
				t.Fatalf("%#x*%#x/%#x != %#x", x, y, y, x)
			}
		}
	}
	// associativity and distributivity on a sample
	r := rand.New(rand.NewPCG(1, 2))
	for range 20000 {
		x, y, z := byte(r.UintN(256)), byte(r.UintN(256)),
			byte(r.UintN(256))
		if qr.Mul(qr.Mul(x, y), z) != qr.Mul(x, qr.Mul(y, z)) {
			t.Fatalf("(%#x*%#x)*%#x not associative", x, y, z)
		}
		if qr.Mul(x, qr.Add(y, z)) != qr.Add(qr.Mul(x, y), qr.Mul(x, z)) {
			t.Fatalf("%#x*(%#x+%#x) not distributive", x, y, z)
		}
	}
}

func TestFieldStructure(t *testing.T) {
	for _, p := range [][2]byte{{0x02, 0x80}, {0x04, 0x40}, {0x08, 0x20}, {0x10, 0x10}} {
		if v := qr.Mul(p[0], p[1]); v != 0x1d {
			t.Errorf("%#x*%#x = %#x, want 0x1d", p[0], p[1], v)
		}
	}
	if qr.Log(0) != LogZero || qr.Exp(LogZero) != 0 {
		t.Errorf("log(0) = %d, exp(LogZero) = %d", qr.Log(0), qr.Exp(LogZero))
	}
	for i := range 255 {
		if l := qr.Log(qr.Exp(Log(i))); int(l) != i {
			t.Errorf("log(exp(%d)) = %d", i, l)
		}
	}
}

func TestLogArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Log
		want Log
	}{
		{"AddLog(200, 100)", AddLog(200, 100), 45},
		{"AddLog(254, 1)", AddLog(254, 1), 0},
		{"AddLog(LogZero, 3)", AddLog(LogZero, 3), LogZero},
		{"AddLog(3, LogZero)", AddLog(3, LogZero), LogZero},
		{"NegLog(0)", NegLog(0), 0},
		{"NegLog(1)", NegLog(1), 254},
		{"NegLog(LogZero)", NegLog(LogZero), LogZero},
		{"MulLog(100, 3)", MulLog(100, 3), 45},
		{"MulLog(LogZero, 0)", MulLog(LogZero, 0), LogZero},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestBadField(t *testing.T) {
	for _, tt := range []struct{ poly, α int }{
		{0x11d, 1},   // not a generator
		{0x11b, 2},   // AES polynomial, 2 is not primitive
		{0x100, 2},   // reducible
		{0x1d, 2},    // not degree 8
		{0x11d, 256}, // not an element
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewField(%#x, %d) did not panic", tt.poly, tt.α)
				}
			}()
			NewField(tt.poly, tt.α)
		}()
	}
}

func TestGenerator(t *testing.T) {
	// ISO/IEC 18004 Annex A, 10 and 7 error correction codewords.
	tests := []struct {
		degree int
		want   []Log
	}{
		{0, []Log{}},
		{1, []Log{0}},
		{7, []Log{87, 229, 146, 149, 238, 102, 21}},
		{10, []Log{251, 67, 46, 61, 118, 70, 64, 94, 32, 45}},
	}
	for _, tt := range tests {
		got := qr.Generator(tt.degree).Coefficients()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Generator(%d) mismatch (-want +got):\n%s", tt.degree, diff)
		}
	}
	if d := qr.Generator(MaxDegree).Degree(); d != MaxDegree {
		t.Errorf("Generator(%d).Degree() = %d", MaxDegree, d)
	}
}

func TestECC(t *testing.T) {
	// Version 1-M, ISO/IEC 18004 Annex I.
	data := []byte{
		0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
	}
	want := []byte{0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87, 0x2c, 0x55}
	check := make([]byte, 10)
	qr.Generator(10).ECC(data, check)
	if !bytes.Equal(check, want) {
		t.Errorf("ECC = % x, want % x", check, want)
	}
	block := append(append([]byte(nil), data...), make([]byte, 10)...)
	block[len(block)-1] = 0xff // scratch
	qr.Generator(10).Generate(block)
	if !bytes.Equal(block[16:], want) {
		t.Errorf("Generate = % x, want % x", block[16:], want)
	}
}

func TestCorrect(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, tt := range []struct{ n, degree, p int }{
		{26, 10, 0},
		{26, 7, 0},
		{26, 10, 2},
		{5, 2, 2}, // M1: detection only
		{46, 28, 0},
		{255, 68, 0},
		{20, 8, 3},
	} {
		poly := qr.Generator(tt.degree)
		for range 200 {
			block := make([]byte, tt.n)
			for i := range block[:tt.n-tt.degree] {
				block[i] = byte(r.UintN(256))
			}
			poly.Generate(block)
			orig := append([]byte(nil), block...)
			nerr := r.IntN((tt.degree-tt.p)/2 + 1)
			for _, pos := range r.Perm(tt.n)[:nerr] {
				block[pos] ^= byte(r.UintN(255) + 1)
			}
			n, err := qr.Correct(block, tt.degree, tt.p)
			if err != nil {
				t.Fatalf("n=%d d=%d p=%d: %d errors: %v",
					tt.n, tt.degree, tt.p, nerr, err)
			}
			if n != nerr || !bytes.Equal(block, orig) {
				t.Fatalf("n=%d d=%d p=%d: corrected %d of %d errors:\n% x\nwant\n% x",
					tt.n, tt.degree, tt.p, n, nerr, block, orig)
			}
		}
	}
}

func TestCorrectDetects(t *testing.T) {
	// Five errors are beyond the four correctable with two reserved
	// check bytes and within the code distance: always detected.
	r := rand.New(rand.NewPCG(5, 6))
	poly := qr.Generator(10)
	for range 500 {
		block := make([]byte, 26)
		for i := range block[:16] {
			block[i] = byte(r.UintN(256))
		}
		poly.Generate(block)
		orig := append([]byte(nil), block...)
		for _, pos := range r.Perm(26)[:5] {
			block[pos] ^= byte(r.UintN(255) + 1)
		}
		if _, err := qr.Correct(block, 10, 2); err == nil {
			t.Fatalf("5 errors with p=2 corrected to\n% x\nfrom\n% x", block, orig)
		} else if !errors.Is(err, ErrTooManyErrors) &&
			!errors.Is(err, ErrRank) && !errors.Is(err, ErrNoSolution) {
			t.Fatalf("unexpected error %v", err)
		}
	}
}
