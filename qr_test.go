// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"github.com/skip2/go-qrcode"

	"github.com/unixdj/qrcodec/coding"
	"github.com/unixdj/qrcodec/split"
)

func TestEncodeAnnex(t *testing.T) {
	for _, tt := range []struct {
		opt  Options
		v    coding.Version
		l    Level
		mask int
		body int
	}{
		{Options{MinLevel: M, Mask: DefaultMask}, 1, M, 2, 41},
		{Options{Micro: true, MinLevel: L, Mask: DefaultMask}, coding.M2, L, 1, 32},
		{Options{MinLevel: M, Mask: 5}, 1, M, 5, 41},
	} {
		c, err := Encode("01234567", &tt.opt)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", tt.opt, err)
		}
		if c.Version != tt.v || c.Level != tt.l || c.Mask != tt.mask || c.BodyBits != tt.body {
			t.Errorf("Encode(%+v) = %v-%v mask %d, %d bits, want %v-%v mask %d, %d bits",
				tt.opt, c.Version, c.Level, c.Mask, c.BodyBits,
				tt.v, tt.l, tt.mask, tt.body)
		}
		if c.Size() != tt.v.Width() {
			t.Errorf("Encode(%+v): size %d, want %d", tt.opt, c.Size(), tt.v.Width())
		}
	}
}

var roundTripTests = []struct {
	text string
	cs   Charset
}{
	{"", Auto},
	{"1", Auto},
	{"HELLO WORLD", Auto},
	{"https://example.com/?q=0123456789", Auto},
	{"Hello, 世界! 123456789012345", Auto},
	{"こんにちは", UTF8},
	{"plain ascii", UTF8},
	{"café crème", Latin1},
	{"点茗 テスト QR123", ShiftJIS},
	{strings.Repeat("The quick brown fox 0123456789 ", 40), Auto},
}

func TestRoundTrip(t *testing.T) {
	for _, tt := range roundTripTests {
		for _, micro := range []bool{false, true} {
			for l := None; l <= H; l++ {
				opt := &Options{Micro: micro, MinLevel: l, ECI: tt.cs, Mask: DefaultMask}
				c, err := Encode(tt.text, opt)
				if err != nil {
					t.Errorf("Encode(%q, %+v): %v", tt.text, opt, err)
					continue
				}
				if c.Level < l {
					t.Errorf("Encode(%q, %+v): level %v", tt.text, opt, c.Level)
				}
				if !micro && c.Version.IsMicro() {
					t.Errorf("Encode(%q, %+v): version %v", tt.text, opt, c.Version)
				}
				got, err := Decode(c.Matrix)
				if err != nil {
					t.Errorf("Decode(Encode(%q, %+v)): %v", tt.text, opt, err)
					continue
				}
				if got != tt.text {
					t.Errorf("Decode(Encode(%q, %+v)) = %q", tt.text, opt, got)
				}
			}
		}
	}
}

func TestMasks(t *testing.T) {
	for _, micro := range []bool{false, true} {
		for mask := 0; mask < 8; mask++ {
			opt := &Options{Micro: micro, Mask: mask}
			c, err := Encode("MASK 42", opt)
			if micro && mask >= 4 {
				if err != coding.ErrMask {
					t.Errorf("Encode(%+v) = %v, want %v", opt, err, coding.ErrMask)
				}
				continue
			}
			if err != nil {
				t.Fatalf("Encode(%+v): %v", opt, err)
			}
			got, dc, err := decodeText(c.Matrix)
			if err != nil {
				t.Errorf("Decode(Encode(%+v)): %v", opt, err)
			} else if got != "MASK 42" || dc.Mask != mask {
				t.Errorf("Decode(Encode(%+v)) = %q mask %d", opt, got, dc.Mask)
			}
		}
	}
}

func decodeText(m *coding.Matrix) (string, *Code, error) {
	c, parts, err := DecodeParts(m)
	if err != nil {
		return "", c, err
	}
	s, err := PartsText(parts)
	return s, c, err
}

func TestDecodeParts(t *testing.T) {
	utf16be := func(s string) []byte {
		var b []byte
		for _, r := range utf16.Encode([]rune(s)) {
			b = append(b, byte(r>>8), byte(r))
		}
		return b
	}
	parts := []split.Part{
		{ECI: split.NoECI, Data: []byte("caf\xe9 ")},
		{ECI: UTF16BEECI, Data: utf16be("Grüße ")},
		{ECI: UTF8ECI, Data: []byte("and 漢字")},
	}
	c, err := EncodeParts(parts, nil)
	if err != nil {
		t.Fatal(err)
	}
	dc, got, err := DecodeParts(c.Matrix)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(parts, got); diff != "" {
		t.Errorf("DecodeParts mismatch (-want +got):\n%s", diff)
	}
	if dc.Version != c.Version || dc.Level != c.Level || dc.Mask != c.Mask || dc.BodyBits != c.BodyBits {
		t.Errorf("DecodeParts = %v-%v mask %d %d bits, want %v-%v mask %d %d bits",
			dc.Version, dc.Level, dc.Mask, dc.BodyBits,
			c.Version, c.Level, c.Mask, c.BodyBits)
	}
	s, err := Decode(c.Matrix)
	if want := "café Grüße and 漢字"; err != nil || s != want {
		t.Errorf("Decode = %q, %v, want %q", s, err, want)
	}
}

func TestDecodeUnsupportedECI(t *testing.T) {
	c, err := EncodeParts([]split.Part{{ECI: 7, Data: []byte("x")}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decode(c.Matrix)
	var ue *UnsupportedECIError
	if !errors.As(err, &ue) || ue.ECI != 7 {
		t.Errorf("Decode(ECI 7) = %v, want UnsupportedECIError{7}", err)
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 3000), &Options{MinLevel: H})
	var oe *split.BitOverflowError
	if !errors.As(err, &oe) {
		t.Errorf("Encode(too long) = %v, want BitOverflowError", err)
	}
	if _, err = Encode("1", &Options{MaxWidth: 30, MinHeight: 35}); err != coding.ErrSize {
		t.Errorf("Encode(no size) = %v, want %v", err, coding.ErrSize)
	}
	if _, err = Encode("日本", &Options{ECI: Latin1}); err == nil {
		t.Error("Encode(日本, Latin1) succeeded")
	}
	if _, err = Encode("\xff", &Options{ECI: UTF8}); err == nil {
		t.Error("Encode(invalid UTF-8) succeeded")
	}
	if _, err = Encode("x", &Options{ECI: 99}); err == nil {
		t.Error("Encode(charset 99) succeeded")
	}
	if _, err = Encode("x", &Options{Mask: 8}); err != coding.ErrMask {
		t.Errorf("Encode(mask 8) = %v, want %v", err, coding.ErrMask)
	}
}

func TestSizeBounds(t *testing.T) {
	for _, tt := range []struct {
		opt Options
		v   coding.Version
	}{
		{Options{Mask: DefaultMask}, 1},
		{Options{MinWidth: 22, Mask: DefaultMask}, 2},
		{Options{MinHeight: 30, Mask: DefaultMask}, 4},
		{Options{Micro: true, Mask: DefaultMask}, coding.M1},
		{Options{Micro: true, MinWidth: 14, Mask: DefaultMask}, coding.M3},
		{Options{Micro: true, MinWidth: 18, MaxHeight: 21, Mask: DefaultMask}, 1},
	} {
		c, err := Encode("1", &tt.opt)
		if err != nil {
			t.Errorf("Encode(%+v): %v", tt.opt, err)
			continue
		}
		if c.Version != tt.v {
			t.Errorf("Encode(%+v) = version %v, want %v", tt.opt, c.Version, tt.v)
		}
	}
}

func TestCapacity(t *testing.T) {
	c, err := Encode("01234567", &Options{MinLevel: M, Mask: DefaultMask})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Capacity(), 41.0/128; got != want {
		t.Errorf("Capacity = %g, want %g", got, want)
	}
}

// Symbols from an independent encoder.
func TestDecodeForeign(t *testing.T) {
	levels := map[qrcode.RecoveryLevel]Level{
		qrcode.Low: L, qrcode.Medium: M, qrcode.High: Q, qrcode.Highest: H,
	}
	for _, s := range []string{
		"1",
		"HELLO WORLD",
		"https://github.com/unixdj/qrcodec",
		"Mixed 0123456789 and TEXT with lower case",
		strings.Repeat("0123456789", 30),
		strings.Repeat("Lorem ipsum dolor sit amet. ", 20),
	} {
		for ql, l := range levels {
			q, err := qrcode.New(s, ql)
			if err != nil {
				t.Fatalf("qrcode.New(%q): %v", s, err)
			}
			got, c, err := decodeText(cropBitmap(q.Bitmap()))
			if err != nil {
				t.Errorf("Decode(qrcode.New(%q, %v)): %v", s, l, err)
				continue
			}
			if got != s || c.Level != l {
				t.Errorf("Decode(qrcode.New(%q, %v)) = %q at %v", s, l, got, c.Level)
			}
		}
	}
}

// cropBitmap returns a matrix of the modules of a bitmap, less the
// quiet zone.
func cropBitmap(bm [][]bool) *coding.Matrix {
	b := 0
	for b < len(bm)/2 && !bytes.Contains(boolBytes(bm[b]), []byte{1}) {
		b++
	}
	m := coding.NewMatrix(len(bm) - 2*b)
	for y := range m.Size {
		for x := range m.Size {
			m.Set(x, y, bm[b+y][b+x])
		}
	}
	return m
}

func boolBytes(row []bool) []byte {
	b := make([]byte, len(row))
	for i, v := range row {
		if v {
			b[i] = 1
		}
	}
	return b
}

func TestPBM(t *testing.T) {
	for _, tt := range []struct {
		text  string
		micro bool
		scale int
		bord  int
	}{
		{"PBM", false, 1, 0},
		{"PBM", true, 1, 2},
		{"portable bit map", false, 3, 4},
		{"12345", true, 5, 1},
		{"scale eight", false, 8, 4},
	} {
		c, err := Encode(tt.text, &Options{Micro: tt.micro, Mask: DefaultMask})
		if err != nil {
			t.Fatal(err)
		}
		c.Scale, c.Border = tt.scale, tt.bord
		var b bytes.Buffer
		if err := c.EncodePBM(&b); err != nil {
			t.Fatal(err)
		}
		m, err := DecodePBM(&b)
		if err != nil {
			t.Errorf("DecodePBM(%q, scale %d): %v", tt.text, tt.scale, err)
			continue
		}
		if diff := cmp.Diff(bitmap(c.Matrix), bitmap(m)); diff != "" {
			t.Errorf("DecodePBM(%q, scale %d) mismatch (-want +got):\n%s",
				tt.text, tt.scale, diff)
		}
		if got, err := Decode(m); err != nil || got != tt.text {
			t.Errorf("Decode(DecodePBM(%q)) = %q, %v", tt.text, got, err)
		}
	}
}

func bitmap(m *coding.Matrix) []byte {
	b, _ := m.Bitmap()
	return b
}

func TestPBMPlain(t *testing.T) {
	c, err := Encode("1", &Options{Micro: true, Mask: DefaultMask})
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	n := c.Size() + 2
	fmt.Fprintf(&b, "P1\n# plain\n  %d %d\n", n, n)
	for y := -1; y < n-1; y++ {
		for x := -1; x < n-1; x++ {
			if c.Black(x, y) {
				b.WriteByte('1')
			} else {
				b.WriteString("0 ")
			}
		}
		b.WriteByte('\n')
	}
	m, err := DecodePBM(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got, err := Decode(m); err != nil || got != "1" {
		t.Errorf("Decode(P1) = %q, %v", got, err)
	}
}

func TestPBMErrors(t *testing.T) {
	for _, tt := range []struct {
		in  string
		err error
	}{
		{"P2\n1 1\n1\n", ErrPBM},
		{"P1\n0 1\n", ErrPBM},
		{"P1\n2 2\n0 0 0 2\n", ErrPBM},
		{"P1\n2 2\n0 0 0\n", io.ErrUnexpectedEOF},
		{"P1\n2 2\n0 0 0 0\n", ErrNoSymbol},
		{"P1\n3 1\n1 1 1\n", ErrNoSymbol},
	} {
		_, err := DecodePBM(strings.NewReader(tt.in))
		if err != tt.err {
			t.Errorf("DecodePBM(%q) = %v, want %v", tt.in, err, tt.err)
		}
	}
	c := &Code{Scale: 0}
	if err := c.EncodePBM(new(bytes.Buffer)); err != ErrArgs {
		t.Errorf("EncodePBM(scale 0) = %v, want %v", err, ErrArgs)
	}
}

func TestImage(t *testing.T) {
	c, err := Encode("image", nil)
	if err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	if got, want := img.Bounds().Dx(), (21+8)*8; got != want {
		t.Errorf("image width %d, want %d", got, want)
	}
	for _, tt := range []struct {
		x, y  int
		black bool
	}{
		{0, 0, false},
		{4 * 8, 4 * 8, true},
		{4*8 + 7, 4*8 + 7, true},
		{5 * 8, 5 * 8, false},
		{6 * 8, 6 * 8, true},
	} {
		r, _, _, _ := img.At(tt.x, tt.y).RGBA()
		if black := r == 0; black != tt.black {
			t.Errorf("At(%d, %d) black = %v, want %v", tt.x, tt.y, black, tt.black)
		}
	}
}

func TestString(t *testing.T) {
	c, err := Encode("1", &Options{Micro: true, Mask: DefaultMask})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("String: %d lines, want 8", len(lines))
	}
	if want := strings.Repeat(" ", 15); lines[0] != want {
		t.Errorf("String line 0 = %q, want %q", lines[0], want)
	}
	// finder pattern rows 0 and 1 after the quiet zone
	if want := "  █" + strings.Repeat("▀", 5) + "█ "; !strings.HasPrefix(lines[1], want) {
		t.Errorf("String line 1 = %q, want prefix %q", lines[1], want)
	}
}
