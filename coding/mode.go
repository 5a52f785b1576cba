// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
)

// A Mode is a QR segment encoding mode.
type Mode int8

// Encoding modes.  Numeric to Kanji carry data; the rest are headers.
const (
	Numeric      Mode = iota // digits 0-9, 3 per 10 bits
	Alphanumeric             // digits, A-Z and " $%*+-./:", 2 per 11 bits
	Byte                     // any byte, 8 bits
	Kanji                    // Shift JIS double byte characters, 13 bits
	ECI                      // extended channel interpretation designator
	StructAppend             // structured append header
	FNC1First                // FNC1 in 1st position
	FNC1Second               // FNC1 in 2nd position
	numModes
)

// mode implements a QR segment encoding.
//
// encode3, encode2 and encode1 return the encoding of the bytes and
// its length in bits.  The encoder calls a non-nil encode{N}
// repeatedly as long as N source bytes are available, in descending
// order of N.  If all are nil, each byte is encoded as 8 bits.
type mode struct {
	name      string
	indicator byte // 4 bit mode indicator for QR codes

	// countLength lists lengths of the character count field in four
	// Micro QR and three QR version size classes.
	countLength [NumClasses]byte

	encode3 func([3]byte) (uint32, int)
	encode2 func([2]byte) (uint32, int)
	encode1 func(byte) (uint32, int)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// alphaChars maps alphanumeric codes back to characters.
const alphaChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var modes = [numModes]mode{
	Numeric: {
		name:        "numeric",
		indicator:   1,
		countLength: [NumClasses]byte{3, 4, 5, 6, 10, 12, 14},
		encode1: func(b byte) (uint32, int) {
			return uint32(b - '0'), 4
		},
		encode2: func(b [2]byte) (uint32, int) {
			return uint32(b[0])*10 + uint32(b[1]) - '0'*11&0x7f, 7
		},
		encode3: func(b [3]byte) (uint32, int) {
			return uint32(b[0])*100 + uint32(b[1])*10 +
				uint32(b[2]) + -'0'*111&0x3ff, 10
		},
	},
	Alphanumeric: {
		name:        "alphanumeric",
		indicator:   2,
		countLength: [NumClasses]byte{0, 3, 4, 5, 9, 11, 13},
		encode1: func(b byte) (uint32, int) {
			return uint32(alpha[b&0x3f]), 6
		},
		encode2: func(b [2]byte) (uint32, int) {
			return uint32(alpha[b[0]&0x3f])*45 +
				uint32(alpha[b[1]&0x3f]), 11
		},
	},
	Byte: {
		name:        "byte",
		indicator:   4,
		countLength: [NumClasses]byte{0, 0, 4, 5, 8, 16, 16},
	},
	Kanji: {
		name:        "kanji",
		indicator:   8,
		countLength: [NumClasses]byte{0, 0, 3, 4, 8, 10, 12},
		encode2: func(b [2]byte) (uint32, int) {
			return uint32(b[0]&^0xc0)*0xc0 + uint32(b[1]) - 0x100,
				13
		},
	},
	ECI:          {name: "eci", indicator: 7},
	StructAppend: {name: "structured-append", indicator: 3},
	FNC1First:    {name: "fnc1-in-1st-position", indicator: 5},
	FNC1Second:   {name: "fnc1-in-2nd-position", indicator: 9},
}

func (m Mode) String() string {
	if 0 <= m && m < numModes {
		return modes[m].name
	}
	return strconv.Itoa(int(m))
}

// IsDigit reports whether b is encodable in Numeric mode.
func IsDigit(b byte) bool { return b-'0' < 10 }

// IsAlphanumeric reports whether b is encodable in Alphanumeric mode.
func IsAlphanumeric(b byte) bool {
	return b >= ' ' && alphamask>>(b-' ')&1 != 0
}

// IsKanjiLead reports whether b may start a double byte character
// encodable in Kanji mode.
func IsKanjiLead(b byte) bool {
	return 0x81 <= b && b <= 0x9f || 0xe0 <= b && b <= 0xeb
}

// IsKanji reports whether the bytes form a Shift JIS double byte
// character encodable in Kanji mode, that is, 0x8140 to 0x9ffc or
// 0xe040 to 0xebbf with a second byte between 0x40 and 0xfc.
func IsKanji(b1, b2 byte) bool {
	return IsKanjiLead(b1) && 0x40 <= b2 && b2 <= 0xfc &&
		(b1 != 0xeb || b2 <= 0xbf)
}

// Indicator returns the mode indicator for size class class and its
// length in bits.  ok is false if the mode is not available.
func (m Mode) Indicator(class int) (ind uint32, nbit int, ok bool) {
	if m < 0 || m >= numModes {
		return 0, 0, false
	}
	ind = uint32(modes[m].indicator)
	if class >= Class0 {
		return ind, 4, true
	}
	// Micro QR: 0 to 3 for Numeric to Kanji, class bits wide.
	ii := ind>>1 - ind>>3
	if ind&(ind-1) != 0 || ii >= 1<<class {
		return 0, 0, false
	}
	return ii, class, true
}

// CountLength returns the length of the character count field in
// size class class.
func (m Mode) CountLength(class int) int {
	if m < 0 || m >= numModes {
		return 0
	}
	return int(modes[m].countLength[class])
}

// HeaderLength returns the length of the mode indicator and character
// count field in size class class, or 0 if the mode is not available.
func (m Mode) HeaderLength(class int) int {
	_, n, ok := m.Indicator(class)
	if !ok {
		return 0
	}
	return n + m.CountLength(class)
}

// DataLength returns the length in bits of n bytes encoded in mode m,
// excluding the header.
func (m Mode) DataLength(n int) int {
	switch m {
	case Numeric:
		return (10*n + 2) / 3
	case Alphanumeric:
		return (11*n + 1) / 2
	case Kanji:
		return n / 2 * 13
	}
	return n * 8
}

// Capacity returns the number of characters encodable in mode m in a
// single segment within nbit bits in size class class.
func (m Mode) Capacity(nbit, class int) int {
	h := m.HeaderLength(class)
	if h == 0 || m > Kanji || nbit < h {
		return 0
	}
	n := nbit - h
	var c int
	switch m {
	case Numeric:
		c = n / 10 * 3
		if r := n % 10; r >= 7 {
			c += 2
		} else if r >= 4 {
			c++
		}
	case Alphanumeric:
		c = n / 11 * 2
		if n%11 >= 6 {
			c++
		}
	case Byte:
		c = n / 8
	case Kanji:
		c = n / 13
	}
	return min(c, 1<<m.CountLength(class)-1)
}

// A Segment describes a QR code segment.  Text holds the data for
// Numeric to Kanji, the designator bytes for ECI, the header bytes
// for StructAppend and the application indicator for FNC1Second.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	if 0 <= e.Mode && e.Mode < numModes {
		return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// CompatError represents an incompatibility between Mode and Version.
type CompatError struct {
	Mode
	Version
}

func (e CompatError) Error() string {
	return fmt.Sprintf("qr: mode %s not encodable in version %s",
		e.Mode, e.Version)
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	s := seg.Text
	switch seg.Mode {
	case Numeric:
		for i := 0; i < len(s); i++ {
			if !IsDigit(s[i]) {
				return false
			}
		}
	case Alphanumeric:
		for i := 0; i < len(s); i++ {
			if !IsAlphanumeric(s[i]) {
				return false
			}
		}
	case Byte:
	case Kanji:
		if len(s)&1 != 0 {
			return false
		}
		for i := 0; i < len(s); i += 2 {
			if !IsKanji(s[i], s[i+1]) {
				return false
			}
		}
	case ECI:
		_, err := ParseDesignator(s)
		return err == nil
	case StructAppend:
		return len(s) == 2 && s[0]>>4 <= s[0]&0x0f
	case FNC1First:
		return s == ""
	case FNC1Second:
		return len(s) == 1
	default:
		return false
	}
	return true
}

// Count returns the character count of seg.
func (seg Segment) Count() int {
	if seg.Mode == Kanji {
		return len(seg.Text) >> 1
	}
	return len(seg.Text)
}

// EncodedLength returns the encoded length in bits of seg in the
// given size class, or 0 if the mode is not available.  The segment
// is not validated.
func (seg Segment) EncodedLength(class int) int {
	h := seg.Mode.HeaderLength(class)
	if h == 0 {
		return 0
	}
	return h + seg.Mode.DataLength(len(seg.Text))
}

// Designator returns the ECI designator bytes for assignment number n,
// which must be below 1000000.
func Designator(n int) string {
	switch {
	case n < 0 || n >= 1e6:
		panic("qr: invalid ECI " + strconv.Itoa(n))
	case n < 1<<7:
		return string([]byte{byte(n)})
	case n < 1<<14:
		return string([]byte{0x80 | byte(n>>8), byte(n)})
	}
	return string([]byte{0xc0 | byte(n>>16), byte(n >> 8), byte(n)})
}

// ParseDesignator returns the ECI assignment number encoded in s.
func ParseDesignator(s string) (int, error) {
	if s == "" || len(s) != max(1, int(s[0]>>6)) {
		return 0, FormatError(fmt.Sprintf("invalid ECI designator %q", s))
	}
	n := int(s[0])
	switch len(s) {
	case 2:
		n = n&0x3f<<8 | int(s[1])
	case 3:
		n = n&0x1f<<16 | int(s[1])<<8 | int(s[2])
		if s[0]&0x20 != 0 || n >= 1e6 {
			return 0, FormatError(fmt.Sprintf("invalid ECI designator %q", s))
		}
	}
	return n, nil
}

// ECISegment returns a segment for ECI assignment number n.
func ECISegment(n int) Segment {
	return Segment{Designator(n), ECI}
}

// Encode writes seg encoded for the given QR version size class to b.
func (seg Segment) Encode(b *Bits, class int) error {
	if !seg.IsValid() {
		return SegmentError(seg)
	}
	// write header
	ind, ilen, ok := seg.Mode.Indicator(class)
	if !ok {
		return CompatError{seg.Mode, Version(min(class, ClassM4)) + M1}
	}
	m := &modes[seg.Mode]
	s := seg.Text
	b.Write(ind, ilen)
	b.Write(uint32(seg.Count()), int(m.countLength[class]))
	// encode the string
	enc3, enc2, enc1 := m.encode3, m.encode2, m.encode1
	if enc3 != nil || enc2 != nil || enc1 != nil {
		if enc3 != nil {
			for len(s) >= 3 {
				b.Write(enc3([3]byte{s[0], s[1], s[2]}))
				s = s[3:]
			}
		}
		if enc2 != nil {
			for len(s) >= 2 {
				b.Write(enc2([2]byte{s[0], s[1]}))
				s = s[2:]
			}
		}
		if enc1 != nil {
			for len(s) >= 1 {
				b.Write(enc1(s[0]))
				s = s[1:]
			}
		} else if s != "" {
			panic("qr: " + m.name + " mode internal error")
		}
	} else if b.nbit&7 != 0 {
		for ; len(s) >= 4; s = s[4:] {
			v := uint32(s[0])<<24 | uint32(s[1])<<16 |
				uint32(s[2])<<8 | uint32(s[3])
			b.Write(v, 32)
		}
		if s != "" {
			var v uint32
			for i := 0; i < len(s); i++ {
				v = v<<8 | uint32(s[i])
			}
			b.Write(v, 8*len(s))
		}
	} else {
		b.b = append(b.b, s...)
		b.nbit += len(s) * 8
	}
	return nil
}
