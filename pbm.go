// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/unixdj/qrcodec/coding"
)

var (
	ErrArgs     = errors.New("qr: invalid arguments")
	ErrPBM      = errors.New("qr: invalid PBM image")
	ErrNoSymbol = errors.New("qr: no symbol found")
)

// maxPBM limits the side of images read by DecodePBM.
const maxPBM = 1 << 15

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	if c.Scale < 1 || c.Border < 0 || c.Matrix == nil {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	siz := c.Size()
	length := c.Scale * (siz + c.Border*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for y := -c.Border; y < siz+c.Border; y++ {
		clear(row)
		for x := range length {
			if c.Black(x/c.Scale-c.Border, y) != c.Reverse {
				row[x>>3] |= 0x80 >> (x & 7)
			}
		}
		for range c.Scale {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmReader reads the header and raster of a PBM image.
type pbmReader struct {
	*bufio.Reader
}

// skip skips whitespace and comments.
func (r pbmReader) skip() error {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		case '#':
			for {
				_, err := r.ReadSlice('\n')
				if err == nil {
					break
				} else if err != bufio.ErrBufferFull {
					return err
				}
			}
		default:
			return r.UnreadByte()
		}
	}
}

// token returns the next header field, consuming the whitespace
// character after it.
func (r pbmReader) token() (string, error) {
	if err := r.skip(); err != nil {
		return "", err
	}
	var tok []byte
	for {
		c, err := r.ReadByte()
		if err == io.EOF && len(tok) > 0 {
			return string(tok), nil
		} else if err != nil {
			return "", err
		}
		if c <= ' ' {
			return string(tok), nil
		}
		tok = append(tok, c)
	}
}

func (r pbmReader) dim() (int, error) {
	tok, err := r.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 || n > maxPBM {
		return 0, ErrPBM
	}
	return n, nil
}

// raster reads a w by h image into a slice of rows, true for black.
func (r pbmReader) raster(magic string, w, h int) ([][]bool, error) {
	pix := make([][]bool, h)
	buf := make([]byte, (w+7)/8)
	for y := range pix {
		pix[y] = make([]bool, w)
		if magic == "P4" {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			for x := range pix[y] {
				pix[y][x] = buf[x>>3]&(0x80>>(x&7)) != 0
			}
			continue
		}
		for x := range pix[y] {
			if err := r.skip(); err != nil {
				return nil, err
			}
			c, _ := r.ReadByte()
			if c != '0' && c != '1' {
				return nil, ErrPBM
			}
			pix[y][x] = c == '1'
		}
	}
	return pix, nil
}

/*
DecodePBM reads a plain (P1) or raw (P4) Portable Bit Map image of an
upright symbol, such as one written by EncodePBM at any scale and
border width, and returns its module matrix.

The module size is taken from the top row of the finder pattern in
the top left corner, the symbol width from the last dark pixel in
that row.  Each module is sampled at its centre.
*/
func DecodePBM(rd io.Reader) (*coding.Matrix, error) {
	r := pbmReader{bufio.NewReader(rd)}
	magic, err := r.token()
	if err != nil {
		return nil, err
	}
	if magic != "P1" && magic != "P4" {
		return nil, ErrPBM
	}
	w, err := r.dim()
	if err != nil {
		return nil, err
	}
	h, err := r.dim()
	if err != nil {
		return nil, err
	}
	pix, err := r.raster(magic, w, h)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	// Find the top left corner.
	x0, y0 := -1, 0
	for ; y0 < h && x0 < 0; y0++ {
		for x, b := range pix[y0] {
			if b {
				x0 = x
				break
			}
		}
	}
	if x0 < 0 {
		return nil, ErrNoSymbol
	}
	y0--
	top := pix[y0]
	run := 0
	for x0+run < w && top[x0+run] {
		run++
	}
	x1 := w - 1
	for !top[x1] {
		x1--
	}
	scale := run / 7
	if scale == 0 || run%7 != 0 || (x1-x0+1)%scale != 0 {
		return nil, ErrNoSymbol
	}
	size := (x1 - x0 + 1) / scale
	if _, err := coding.VersionForWidth(size); err != nil {
		return nil, ErrNoSymbol
	}
	if y0+size*scale > h {
		return nil, ErrNoSymbol
	}
	m := coding.NewMatrix(size)
	for y := range size {
		row := pix[y0+y*scale+scale/2]
		for x := range size {
			m.Set(x, y, row[x0+x*scale+scale/2])
		}
	}
	return m, nil
}
