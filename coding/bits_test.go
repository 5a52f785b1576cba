// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// bitString returns the bits of b as a string of '0' and '1'.
func bitString(b *Bits) string {
	var sb strings.Builder
	for i := 0; i < b.Bits(); i++ {
		sb.WriteByte('0' + b.Bit(i))
	}
	return sb.String()
}

// unspace removes the spaces used for grouping bits in test cases.
func unspace(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func TestBitsWrite(t *testing.T) {
	var b Bits
	b.Write(0b101, 3)
	b.Write(0, 0)
	b.Write(0x1ff, 9)
	b.Write(0xdeadbeef, 32)
	b.WriteBytes([]byte{0x0f})
	want := "101" + "111111111" + unspace("1101 1110 1010 1101 1011 1110 1110 1111") + "00001111"
	if got := bitString(&b); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if got := b.Uint(12, 32); got != 0xdeadbeef {
		t.Errorf("Uint(12, 32) = %#x, want 0xdeadbeef", got)
	}
	if got := b.Uint(0, 5); got != 0b10111 {
		t.Errorf("Uint(0, 5) = %#b, want 0b10111", got)
	}
	b.SetUint(1, 4, 0b0110)
	if got := b.Uint(0, 6); got != 0b101101 {
		t.Errorf("after SetUint: Uint(0, 6) = %#b, want 0b101101", got)
	}
}

func TestNewBitsFrom(t *testing.T) {
	b := NewBitsFrom([]byte{0xff, 0xff}, 12)
	if got, want := b.Bytes(), []byte{0xff, 0xf0}; string(got) != string(want) {
		t.Errorf("Bytes = %x, want %x", got, want)
	}
	b.Write(1, 1)
	if got := bitString(b); got != "1111111111111" {
		t.Errorf("got %s", got)
	}
}

func TestPad(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		l    Level
		text string
		want string
	}{
		{1, H, "01234567",
			"0001 0000001000 0000001100 0101011001 1000011" +
				"0000000 11101100 00010001 11101100"},
		{M3, M, "0123456789012345",
			"00 10000 0000001100 0101011001 1010100110 1110000101 0011101010 0101" +
				"0000000"},
		{M1, None, "123", "011 0001111011" + "000" + "0000"},
	} {
		b := NewBits(tt.v, tt.l)
		if err := (Segment{tt.text, Numeric}).Encode(b, tt.v.SizeClass()); err != nil {
			t.Fatalf("%v-%v: %v", tt.v, tt.l, err)
		}
		b.Pad(tt.v, tt.l)
		if got, want := bitString(b), unspace(tt.want); got != want {
			t.Errorf("%v-%v:\ngot  %s\nwant %s", tt.v, tt.l, got, want)
		}
		if b.Bits() != tt.v.DataBits(tt.l) {
			t.Errorf("%v-%v: %d bits, want %d", tt.v, tt.l, b.Bits(), tt.v.DataBits(tt.l))
		}
	}
}

func TestBitReader(t *testing.T) {
	r := NewBitReader([]byte{0b1011_0011, 0b1100_0000}, 10)
	if v, err := r.Read(3); v != 0b101 || err != nil {
		t.Errorf("Read(3) = %#b, %v", v, err)
	}
	if v, err := r.Peek(7); v != 0b1001111 || err != nil {
		t.Errorf("Peek(7) = %#b, %v", v, err)
	}
	if _, err := r.Read(8); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read(8) past end: err = %v", err)
	}
	if r.Remaining() != 7 {
		t.Errorf("Remaining = %d, want 7", r.Remaining())
	}
}

func TestBitStream(t *testing.T) {
	s := NewBitStream([]byte{0b1010_0000}, 3)
	var got []byte
	for range 5 {
		got = append(got, s.Next())
	}
	if string(got) != "\x01\x00\x01\x00\x00" {
		t.Errorf("Next sequence = %v", got)
	}
}
