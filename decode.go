// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"strings"

	"golang.org/x/text/transform"

	"github.com/unixdj/qrcodec/coding"
	"github.com/unixdj/qrcodec/split"
)

/*
DecodeParts decodes the symbol in m and returns it with the data
split into Parts at ECI segments.  The data of kanji mode segments is
returned as Shift JIS bytes.  Structured append and FNC1 headers are
skipped.

The matrix is only read.  Errors are those of coding.Decode and
coding.ReadSegments: a coding.FormatError for unreadable metadata or
data, or a *coding.UncorrectableBlockError.
*/
func DecodeParts(m *coding.Matrix) (*Code, []split.Part, error) {
	sym, err := coding.Decode(m)
	if err != nil {
		return nil, nil, err
	}
	segs, err := sym.Segments()
	if err != nil {
		return nil, nil, err
	}
	var (
		parts []split.Part
		cur   = split.Part{ECI: split.NoECI}
		body  int
		class = sym.Version.SizeClass()
	)
	for _, seg := range segs {
		body += seg.EncodedLength(class)
		switch seg.Mode {
		case coding.ECI:
			n, err := coding.ParseDesignator(seg.Text)
			if err != nil {
				return nil, nil, err
			}
			if cur.ECI != split.NoECI || len(cur.Data) != 0 {
				parts = append(parts, cur)
			}
			cur = split.Part{ECI: n}
		case coding.Numeric, coding.Alphanumeric, coding.Byte, coding.Kanji:
			cur.Data = append(cur.Data, seg.Text...)
		}
	}
	if cur.ECI != split.NoECI || len(cur.Data) != 0 {
		parts = append(parts, cur)
	}
	return newCode(sym, body), parts, nil
}

// Decode decodes the symbol in m and returns its text.  Data without
// an ECI designator is read as ISO 8859-1.  ECI designators other than
// those of ISO 8859-1, Shift JIS, UTF-16BE and UTF-8 are reported as
// an *UnsupportedECIError.
func Decode(m *coding.Matrix) (string, error) {
	_, parts, err := DecodeParts(m)
	if err != nil {
		return "", err
	}
	return PartsText(parts)
}

// PartsText converts parts to text according to their ECI
// designators.  A Part without one continues in the encoding of the
// Part before it.
func PartsText(parts []split.Part) (string, error) {
	var (
		b   strings.Builder
		eci = split.NoECI
	)
	for _, p := range parts {
		if p.ECI != split.NoECI {
			eci = p.ECI
		}
		dec, err := decoder(eci)
		if err != nil {
			return "", err
		}
		s, _, err := transform.Bytes(dec, p.Data)
		if err != nil {
			return "", err
		}
		b.Write(s)
	}
	return b.String(), nil
}
