// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unixdj/qrcodec/coding"
)

var fitTests = []struct {
	parts []Part
	opt   FitOptions
	v     coding.Version
	l     coding.Level
	body  int
	out   []byte
}{
	{
		text("01234567"), FitOptions{Level: coding.H}, 1, coding.H, 41,
		[]byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11, 0xec},
	},
	{
		text("01234567"), FitOptions{Micro: true, Level: coding.H},
		1, coding.H, 41, nil,
	},
	{text("123"), FitOptions{Micro: true}, coding.M1, coding.None, 13, []byte{0x63, 0xd8, 0x00}},
	{text("01234567"), FitOptions{Micro: true}, coding.M2, coding.L, 32, nil},
	{text("hello"), FitOptions{Micro: true}, coding.M3, coding.L, 46, nil},
	{text("1"), FitOptions{MinWidth: 25}, 2, coding.L, 18, nil},
	{text("1"), FitOptions{}, 1, coding.L, 18, nil},
	{
		[]Part{{26, []byte("\xc3\xa9")}}, FitOptions{Micro: true},
		1, coding.L, 40, nil,
	},
	{text(strings.Repeat("A", 77)), FitOptions{}, 3, coding.L, 437, nil},
}

func TestFit(t *testing.T) {
	for _, tt := range fitTests {
		r, err := Fit(tt.parts, &tt.opt)
		if err != nil {
			t.Errorf("Fit(%q, %+v): %v", tt.parts, tt.opt, err)
			continue
		}
		if r.Version != tt.v || r.Level != tt.l || r.BodyBits != tt.body {
			t.Errorf("Fit(%q, %+v) = %v-%v %d bits, want %v-%v %d bits",
				tt.parts, tt.opt, r.Version, r.Level, r.BodyBits,
				tt.v, tt.l, tt.body)
		}
		if n := tt.v.DataBits(tt.l); r.Bits.Bits() != n {
			t.Errorf("Fit(%q, %+v): %d bits, want %d",
				tt.parts, tt.opt, r.Bits.Bits(), n)
		}
		if tt.out != nil {
			if diff := cmp.Diff(tt.out, r.Bits.Bytes()); diff != "" {
				t.Errorf("Fit(%q, %+v) mismatch (-want +got):\n%s",
					tt.parts, tt.opt, diff)
			}
		}
	}
}

// A smaller version never holds the data.
func TestFitSmallest(t *testing.T) {
	for _, n := range []int{1, 17, 18, 100, 500, 1000, 2000} {
		parts := text(strings.Repeat("a", n))
		r, err := Fit(parts, &FitOptions{Level: coding.M})
		if err != nil {
			t.Fatalf("Fit(%d bytes): %v", n, err)
		}
		if r.Bits.Bits() != r.Version.DataBits(coding.M) {
			t.Errorf("Fit(%d bytes): %d bits in %v-M", n, r.Bits.Bits(), r.Version)
		}
		if v := r.Version - 1; v >= coding.MinVersion {
			_, bits, _ := Segments(parts, v.SizeClass())
			if bits <= v.DataBits(coding.M) {
				t.Errorf("Fit(%d bytes) = %v, %d bits fit %v",
					n, r.Version, bits, v)
			}
		}
	}
}

func TestFitErrors(t *testing.T) {
	long := text(strings.Repeat("a", 3000))
	_, err := Fit(long, &FitOptions{Level: coding.H})
	var oe *BitOverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("Fit(3000 bytes) = %v, want BitOverflowError", err)
	}
	if want := (BitOverflowError{24020, 10208}); *oe != want {
		t.Errorf("Fit(3000 bytes) = %+v, want %+v", *oe, want)
	}

	// M3 is the last version tried.
	_, err = Fit(text(strings.Repeat("a", 100)),
		&FitOptions{Micro: true, MaxWidth: 15})
	if !errors.As(err, &oe) {
		t.Fatalf("Fit(100 bytes, M3) = %v, want BitOverflowError", err)
	}
	if want := (BitOverflowError{842, 84}); *oe != want {
		t.Errorf("Fit(100 bytes, M3) = %+v, want %+v", *oe, want)
	}

	_, err = Fit(text("ab"), &FitOptions{Micro: true, MaxWidth: 13})
	var ue *UnsupportedContentError
	if !errors.As(err, &ue) {
		t.Fatalf("Fit(ab, M2) = %v, want UnsupportedContentError", err)
	}
	if want := (UnsupportedContentError{"byte", 40}); *ue != want {
		t.Errorf("Fit(ab, M2) = %+v, want %+v", *ue, want)
	}

	if _, err = Fit(text("1"), &FitOptions{MaxWidth: 20}); err != coding.ErrSize {
		t.Errorf("Fit(MaxWidth 20) = %v, want %v", err, coding.ErrSize)
	}
	if _, err = Fit(text("1"), &FitOptions{Level: coding.H + 1}); err != coding.ErrLevel {
		t.Errorf("Fit(level 5) = %v, want %v", err, coding.ErrLevel)
	}
}
