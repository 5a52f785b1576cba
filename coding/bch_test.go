// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"testing"
)

func TestEncodeFormat(t *testing.T) {
	for _, tt := range []struct {
		data, want uint32
	}{
		{0, 0x5412},
		{1, 0x5125},
		{0b01000, 0x77c4}, // L, mask 0
		{0b00101, 0x40ce}, // M, mask 5
		{0b10111, 0x083b}, // H, mask 7
	} {
		if got := EncodeFormat(tt.data) ^ qrFormatMask; got != tt.want {
			t.Errorf("EncodeFormat(%05b) = %#04x, want %#04x", tt.data, got, tt.want)
		}
	}
	// Annex I: 1-M mask 2 and M2-L mask 1.
	if f, _ := FormatBits(1, M, 2); f != 0x5e7c {
		t.Errorf("1-M mask 2: %#04x", f)
	}
	if f, _ := FormatBits(M2, L, 1); f != 0x5099 {
		t.Errorf("M2-L mask 1: %#04x", f)
	}
}

func TestEncodeVersion(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want uint32
	}{
		{6, 0},
		{7, 0x07c94},
		{8, 0x085bc},
		{21, 0x15683},
		{40, 0x28c69},
		{M4, 0},
	} {
		if got := EncodeVersion(tt.v); got != tt.want {
			t.Errorf("EncodeVersion(%v) = %#05x, want %#05x", tt.v, got, tt.want)
		}
	}
}

func TestDecodeFormat(t *testing.T) {
	for data := uint32(0); data < 32; data++ {
		code := EncodeFormat(data)
		for _, e := range []uint32{0, 1, 0x4001, 0x0111, 0x7000} {
			got, err := DecodeFormat(code^e, 0)
			if err != nil || got != data {
				t.Errorf("DecodeFormat(%05b ^ %#x) = %05b, %v", data, e, got, err)
			}
		}
		// 6 erasures leave no room for errors.
		if got, err := DecodeFormat(code^0x3f, 0x3f); err != nil || got != data {
			t.Errorf("DecodeFormat(%05b) with erasures = %05b, %v", data, got, err)
		}
	}
	_, err := DecodeFormat(0, 0x7f)
	if !errors.Is(err, ErrTooManyErasures) {
		t.Errorf("7 erasures: err = %v", err)
	}
	var ue *UncorrectableBlockError
	if !errors.As(err, &ue) || ue.Block != -1 {
		t.Errorf("7 erasures: err = %#v", err)
	}
}

func TestDecodeVersion(t *testing.T) {
	for v := Version(7); v <= MaxVersion; v++ {
		code := EncodeVersion(v)
		for _, e := range []uint32{0, 0x20000, 0x10101, 0x00007} {
			got, err := DecodeVersion(code^e, 0)
			if err != nil || got != v {
				t.Errorf("DecodeVersion(%v ^ %#x) = %v, %v", v, e, got, err)
			}
		}
	}
	if _, err := DecodeVersion(0, 0); !errors.Is(err, ErrTooManyErrors) {
		t.Errorf("DecodeVersion(0) err = %v", err)
	}
}
