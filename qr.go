// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes and decodes QR and Micro QR codes.

Encode turns text into a Code holding the module matrix of the
smallest symbol that fits it; Decode reads the text back from a
matrix.  EncodeParts and DecodeParts work on byte runs tagged with ECI
designators instead of text.
*/
package qr // import "github.com/unixdj/qrcodec"

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/unixdj/qrcodec/coding"
	"github.com/unixdj/qrcodec/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	None = coding.None // error detection only, M1
	L    = coding.L    // 20% redundant
	M    = coding.M    // 38% redundant
	Q    = coding.Q    // 55% redundant
	H    = coding.H    // 65% redundant
)

// ECI assignment numbers of supported character encodings.
const (
	Latin1ECI   = 3  // ISO 8859-1
	ShiftJISECI = 20 // Shift JIS
	UTF16BEECI  = 25 // UTF-16, big endian
	UTF8ECI     = 26 // UTF-8
)

// A Charset selects the character encoding of text passed to Encode.
type Charset int

const (
	// Auto encodes ASCII text without an ECI designator and
	// anything else as UTF-8.
	Auto Charset = iota
	UTF8         // UTF-8, ECI 26
	Latin1       // ISO 8859-1, ECI 3
	ShiftJIS     // Shift JIS, ECI 20
)

func (cs Charset) String() string {
	switch cs {
	case Auto:
		return "auto"
	case UTF8:
		return "utf-8"
	case Latin1:
		return "iso-8859-1"
	case ShiftJIS:
		return "shift-jis"
	}
	return fmt.Sprintf("charset(%d)", int(cs))
}

// DefaultMask selects the data mask with the lowest penalty.
const DefaultMask = -1

// Options control encoding.  A nil *Options is equivalent to
// &Options{Mask: DefaultMask}; note that the zero Mask selects mask 0.
//
// Size bounds are in modules; zero means no bound.  As symbols are
// square, width and height bounds combine.
type Options struct {
	Micro     bool    // allow Micro QR symbols
	MinLevel  Level   // minimum error correction level
	MinWidth  int     // minimum width
	MaxWidth  int     // maximum width
	MinHeight int     // minimum height
	MaxHeight int     // maximum height
	ECI       Charset // character encoding
	Mask      int     // data mask, or DefaultMask
}

var defaultOptions = Options{Mask: DefaultMask}

func (o *Options) fit() *split.FitOptions {
	bound := func(a, b int) int {
		if a == 0 || b != 0 && b < a {
			return b
		}
		return a
	}
	return &split.FitOptions{
		Micro:    o.Micro,
		Level:    o.MinLevel,
		MinWidth: max(o.MinWidth, o.MinHeight),
		MaxWidth: bound(o.MaxWidth, o.MaxHeight),
	}
}

// A Code is an encoded or decoded symbol.
type Code struct {
	Version  coding.Version
	Level    Level
	Mask     int
	BodyBits int // data length before terminator and padding
	Matrix   *coding.Matrix

	Scale   int  // image pixels per module
	Border  int  // quiet zone width in modules
	Reverse bool // swap dark and light in images
}

func newCode(sym *coding.Symbol, body int) *Code {
	return &Code{
		Version:  sym.Version,
		Level:    sym.Level,
		Mask:     sym.Mask,
		BodyBits: body,
		Matrix:   sym.Matrix,
		Scale:    8,
		Border:   sym.Version.Spec().Margin,
	}
}

// Size returns the number of modules on a side.
func (c *Code) Size() int { return c.Matrix.Size }

// Black reports whether the module at x, y is dark.
func (c *Code) Black(x, y int) bool { return c.Matrix.Black(x, y) }

// Capacity returns the fraction of the data capacity used by the
// encoded data.
func (c *Code) Capacity() float64 {
	return float64(c.BodyBits) / float64(c.Version.DataBits(c.Level))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Parts returns text converted to cs as a list of one Part.
func (cs Charset) Parts(text string) ([]split.Part, error) {
	var (
		enc *encoding.Encoder
		eci int
	)
	switch cs {
	case Auto:
		if isASCII(text) {
			return []split.Part{{ECI: split.NoECI, Data: []byte(text)}}, nil
		}
		fallthrough
	case UTF8:
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("qr: %v: invalid UTF-8 text", cs)
		}
		return []split.Part{{ECI: UTF8ECI, Data: []byte(text)}}, nil
	case Latin1:
		enc, eci = charmap.ISO8859_1.NewEncoder(), Latin1ECI
	case ShiftJIS:
		enc, eci = japanese.ShiftJIS.NewEncoder(), ShiftJISECI
	default:
		return nil, fmt.Errorf("qr: unknown charset %d", int(cs))
	}
	b, err := enc.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("qr: %v: %w", cs, err)
	}
	return []split.Part{{ECI: eci, Data: b}}, nil
}

// Encode returns a Code encoding text.
func Encode(text string, opt *Options) (*Code, error) {
	if opt == nil {
		opt = &defaultOptions
	}
	parts, err := opt.ECI.Parts(text)
	if err != nil {
		return nil, err
	}
	return EncodeParts(parts, opt)
}

// EncodeParts returns a Code encoding parts in the smallest symbol
// allowed by opt.  The errors returned when nothing fits are
// documented under split.Fit.
func EncodeParts(parts []split.Part, opt *Options) (*Code, error) {
	if opt == nil {
		opt = &defaultOptions
	}
	r, err := split.Fit(parts, opt.fit())
	if err != nil {
		return nil, err
	}
	sym, err := coding.Encode(r.Bits, r.Version, r.Level, opt.Mask)
	if err != nil {
		return nil, err
	}
	return newCode(sym, r.BodyBits), nil
}

// UnsupportedECIError reports a decoded ECI designator naming a
// character encoding Decode cannot convert.
type UnsupportedECIError struct {
	ECI int
}

func (e *UnsupportedECIError) Error() string {
	return fmt.Sprintf("qr: unsupported ECI %d", e.ECI)
}

// decoder returns the decoder for the character encoding assigned to
// ECI number eci.
func decoder(eci int) (*encoding.Decoder, error) {
	switch eci {
	case split.NoECI, Latin1ECI:
		return charmap.ISO8859_1.NewDecoder(), nil
	case ShiftJISECI:
		return japanese.ShiftJIS.NewDecoder(), nil
	case UTF16BEECI:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case UTF8ECI:
		return unicode.UTF8.NewDecoder(), nil
	}
	return nil, &UnsupportedECIError{eci}
}
