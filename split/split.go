// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits binary data into QR code segments.

Data is given as a list of Parts, runs of bytes each optionally tagged
with an ECI assignment number.  Segments splits every Part into the
sequence of numeric, alphanumeric, byte and kanji mode segments with
the shortest encoding for a size class, preceded by an ECI segment
where the interpretation changes.  Compress encodes the segments and
Fit chooses the smallest version and error correction level able to
hold them.
*/
package split // import "github.com/unixdj/qrcodec/split"

import (
	"errors"
	"fmt"

	"github.com/unixdj/qrcodec/coding"
)

// NoECI marks a Part without an ECI designator.  A first Part without
// one is read in the default interpretation, ISO 8859-1; a later one
// continues in the interpretation of the Part before it.
const NoECI = -1

// A Part is a run of bytes in one character encoding.
type Part struct {
	ECI  int    // ECI assignment number, or NoECI
	Data []byte // data
}

// ErrECI is returned for an ECI assignment number outside 0 to 999999.
var ErrECI = errors.New("qr: invalid eci number")

// BitOverflowError reports data too long for the available capacity.
type BitOverflowError struct {
	BodyBits int // encoded length of the data
	MaxBits  int // capacity
}

func (e *BitOverflowError) Error() string {
	return fmt.Sprintf("qr: bit overflow: got %d bits for %d capacity",
		e.BodyBits, e.MaxBits)
}

// UnsupportedContentError reports data that none of the modes
// available in a symbol can encode.  ContentType is the name of the
// missing mode: "alphanumeric", "byte" or "eci".
type UnsupportedContentError struct {
	ContentType string
	MaxBits     int // capacity of the symbol tried
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("qr: unsupported content: %s data in %d bit symbol",
		e.ContentType, e.MaxBits)
}

/*
Costs are kept in sixths of a bit, so that the 10/3 bits of a digit
and the 11/2 bits of an alphanumeric character are integers.  A kanji
character costs 13 bits for two bytes and is counted once, on the
second byte.
*/
const (
	bitCost = 6
	inf     = 1 << 50
)

var charCost = [coding.Kanji + 1]int{
	coding.Numeric:      bitCost * 10 / 3,
	coding.Alphanumeric: bitCost * 11 / 2,
	coding.Byte:         bitCost * 8,
	coding.Kanji:        bitCost * 13,
}

// ceilCost rounds c up to a whole number of bits.
func ceilCost(c int) int {
	return (c + bitCost - 1) / bitCost * bitCost
}

/*
A boundary is the cheapest encoding of a prefix of the data ending
with a complete segment.  Its last segment, in mode mode, starts at
boundary start.

An open segment is the cheapest encoding of a prefix ending in the
middle of a segment in a given mode; its cost is not rounded up.
Kanji segments keep two open segments, one per parity of the
position, since they only end on pair boundaries.
*/
type boundary struct {
	cost  int
	mode  coding.Mode
	start int
}

type open struct {
	cost  int
	start int
}

// A chunk is a run of data encoded in one mode.
type chunk struct {
	mode       coding.Mode
	start, end int
}

// accepts reports whether b can be encoded in mode m.
func accepts(m coding.Mode, b byte) bool {
	switch m {
	case coding.Numeric:
		return coding.IsDigit(b)
	case coding.Alphanumeric:
		return coding.IsAlphanumeric(b)
	}
	return true
}

// split returns the mode runs of the shortest encoding of data in
// size class class as segments.
func split(data []byte, class int) ([]coding.Segment, error) {
	var header [coding.Kanji + 1]int
	for m := coding.Numeric; m <= coding.Kanji; m++ {
		if h := m.HeaderLength(class); h != 0 {
			header[m] = h * bitCost
		} else {
			header[m] = -1
		}
	}

	b := make([]boundary, len(data)+1)
	b[0].mode = -1
	var (
		runs  [coding.Byte + 1]open
		kanji [2]open
	)
	for i := range runs {
		runs[i].cost = inf
	}
	kanji[0].cost, kanji[1].cost = inf, inf
	for i, c := range data {
		cur := &b[i]
		for m := coding.Numeric; m <= coding.Byte; m++ {
			o := &runs[m]
			if header[m] < 0 || !accepts(m, c) {
				o.cost = inf
				continue
			}
			if o.cost > cur.cost+header[m] {
				o.cost, o.start = cur.cost+header[m], i
			}
			o.cost += charCost[m]
		}
		k := &kanji[(i+1)&1]
		if header[coding.Kanji] >= 0 && i > 0 && coding.IsKanji(data[i-1], c) {
			prev := &b[i-1]
			if k.cost > prev.cost+header[coding.Kanji] {
				k.cost, k.start = prev.cost+header[coding.Kanji], i-1
			}
			k.cost += charCost[coding.Kanji]
		} else {
			k.cost = inf
		}

		// Ties go to the mode listed first.
		next := boundary{cost: inf}
		for m := coding.Numeric; m <= coding.Byte; m++ {
			if cc := ceilCost(runs[m].cost); cc < next.cost {
				next = boundary{cc, m, runs[m].start}
			}
		}
		if k.cost < next.cost {
			next = boundary{k.cost, coding.Kanji, k.start}
		}
		if next.cost >= inf {
			ct := "byte"
			if header[coding.Alphanumeric] < 0 && coding.IsAlphanumeric(c) {
				ct = "alphanumeric"
			}
			return nil, &UnsupportedContentError{ContentType: ct}
		}
		b[i+1] = next
	}

	// Walk back from the end, then split segments too long for
	// the character count field.
	var n int
	for j := len(data); j > 0; j = b[j].start {
		n++
	}
	chunks := make([]chunk, n)
	for j := len(data); j > 0; j = b[j].start {
		n--
		chunks[n] = chunk{b[j].mode, b[j].start, j}
	}
	segs := make([]coding.Segment, 0, len(chunks))
	for _, r := range chunks {
		lim := 1<<r.mode.CountLength(class) - 1
		if r.mode == coding.Kanji {
			lim *= 2
		}
		for s := data[r.start:r.end]; len(s) > 0; {
			k := min(len(s), lim)
			segs = append(segs, coding.Segment{Text: string(s[:k]), Mode: r.mode})
			s = s[k:]
		}
	}
	return segs, nil
}

// Segments returns the shortest sequence of segments encoding parts in
// size class class and its encoded length in bits.  An ECI segment
// precedes every Part whose ECI differs from the one in effect.
func Segments(parts []Part, class int) ([]coding.Segment, int, error) {
	var (
		segs []coding.Segment
		eci  = NoECI
		bits int
	)
	for _, p := range parts {
		if p.ECI != NoECI && p.ECI != eci {
			if p.ECI < 0 || p.ECI >= 1e6 {
				return nil, 0, ErrECI
			}
			if class < coding.Class0 {
				return nil, 0, &UnsupportedContentError{ContentType: "eci"}
			}
			eci = p.ECI
			segs = append(segs, coding.ECISegment(eci))
		}
		s, err := split(p.Data, class)
		if err != nil {
			return nil, 0, err
		}
		segs = append(segs, s...)
	}
	for _, seg := range segs {
		bits += seg.EncodedLength(class)
	}
	return segs, bits, nil
}

// Compress encodes parts in size class class into at most maxBits
// bits.  It returns a *BitOverflowError if they do not fit and an
// *UnsupportedContentError if the size class lacks a mode the data
// requires.
func Compress(parts []Part, class, maxBits int) (*coding.Bits, error) {
	segs, n, err := Segments(parts, class)
	if err != nil {
		if e, ok := err.(*UnsupportedContentError); ok {
			e.MaxBits = maxBits
		}
		return nil, err
	}
	if n > maxBits {
		return nil, &BitOverflowError{BodyBits: n, MaxBits: maxBits}
	}
	b := new(coding.Bits)
	b.Grow((maxBits + 7) >> 3)
	for _, seg := range segs {
		if err := seg.Encode(b, class); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// AddFiller terminates the data in b, encoded for size class class,
// and pads it to n bits.  The terminator is cut short if fewer bits
// remain.
func AddFiller(b *coding.Bits, class, n int) {
	b.PadTo(coding.TerminatorLength(class), n)
}
