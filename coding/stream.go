// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"io"
)

// ReadSegments parses the data bits of a symbol in size class class
// into segments.  Parsing stops at the terminator or at the end of
// the data.
func ReadSegments(r *BitReader, class int) ([]Segment, error) {
	segs, err := readSegments(r, class)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = errEarlyEnd
	}
	return segs, err
}

func readSegments(r *BitReader, class int) ([]Segment, error) {
	var segs []Segment
	nt := TerminatorLength(class)
	for r.Remaining() > 0 {
		// A terminator, possibly truncated, ends the data.
		if v, _ := r.Peek(min(nt, r.Remaining())); v == 0 {
			break
		}
		m, err := readMode(r, class)
		if err != nil {
			return segs, err
		}
		seg, err := readSegment(r, m, class)
		if err != nil {
			return segs, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// readMode reads a mode indicator.
func readMode(r *BitReader, class int) (Mode, error) {
	if class < Class0 {
		ind, err := r.Read(class)
		if err != nil {
			return 0, err
		}
		if ind > uint32(Kanji) {
			return 0, FormatError(fmt.Sprintf("unknown mode indicator %03b", ind))
		}
		return Numeric + Mode(ind), nil
	}
	ind, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	for m := Numeric; m < numModes; m++ {
		if uint32(modes[m].indicator) == ind {
			return m, nil
		}
	}
	return 0, FormatError(fmt.Sprintf("unknown mode indicator %04b", ind))
}

// readSegment reads the count and data of a segment in mode m.
func readSegment(r *BitReader, m Mode, class int) (Segment, error) {
	seg := Segment{Mode: m}
	n, err := r.Read(m.CountLength(class))
	if err != nil {
		return seg, err
	}
	var buf []byte
	switch m {
	case Numeric:
		buf, err = readNumeric(r, int(n))
	case Alphanumeric:
		buf, err = readAlphanumeric(r, int(n))
	case Byte:
		buf, err = readBytes(r, int(n))
	case Kanji:
		buf, err = readKanji(r, int(n))
	case ECI:
		buf, err = readDesignator(r)
	case StructAppend:
		buf, err = readBytes(r, 2)
	case FNC1First:
	case FNC1Second:
		buf, err = readBytes(r, 1)
	}
	seg.Text = string(buf)
	return seg, err
}

func readNumeric(r *BitReader, n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for n > 0 {
		k := min(n, 3)
		nbit, lim := [4]int{0, 4, 7, 10}[k], [4]uint32{1, 10, 100, 1000}[k]
		v, err := r.Read(nbit)
		if err != nil {
			return buf, err
		}
		if v >= lim {
			return buf, FormatError(fmt.Sprintf("invalid %d digit group %d", k, v))
		}
		var d [3]byte
		for i := k - 1; i >= 0; i-- {
			d[i] = byte(v%10) + '0'
			v /= 10
		}
		buf = append(buf, d[:k]...)
		n -= k
	}
	return buf, nil
}

func readAlphanumeric(r *BitReader, n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for ; n >= 2; n -= 2 {
		v, err := r.Read(11)
		if err != nil {
			return buf, err
		}
		if v >= 45*45 {
			return buf, FormatError(fmt.Sprintf("invalid alphanumeric pair %d", v))
		}
		buf = append(buf, alphaChars[v/45], alphaChars[v%45])
	}
	if n == 1 {
		v, err := r.Read(6)
		if err != nil {
			return buf, err
		}
		if v >= 45 {
			return buf, FormatError(fmt.Sprintf("invalid alphanumeric character %d", v))
		}
		buf = append(buf, alphaChars[v])
	}
	return buf, nil
}

func readBytes(r *BitReader, n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for range n {
		v, err := r.Read(8)
		if err != nil {
			return buf, err
		}
		buf = append(buf, byte(v))
	}
	return buf, nil
}

func readKanji(r *BitReader, n int) ([]byte, error) {
	buf := make([]byte, 0, n*2)
	for range n {
		v, err := r.Read(13)
		if err != nil {
			return buf, err
		}
		hi, lo := v/0xc0, v%0xc0
		if lo > 0xfc-0x40 {
			return buf, FormatError(fmt.Sprintf("invalid kanji %#04x", v))
		}
		if hi < 0x1f {
			hi += 0x81
		} else {
			hi += 0xc1
		}
		buf = append(buf, byte(hi), byte(lo+0x40))
	}
	return buf, nil
}

func readDesignator(r *BitReader) ([]byte, error) {
	v, err := r.Read(8)
	if err != nil {
		return nil, err
	}
	buf := []byte{byte(v)}
	n := max(1, int(v>>6))
	if n == 3 && v&0x20 != 0 {
		return buf, FormatError(fmt.Sprintf("invalid ECI designator %#02x", v))
	}
	more, err := readBytes(r, n-1)
	return append(buf, more...), err
}
