// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Module flags.  A module holding data or check bits has neither
// Function nor Metadata set.
const (
	Dark     byte = 1 << iota // module value, 1 is dark
	Function                  // finder, separator, timing or alignment
	Metadata                  // format or version information

	NonData = Function | Metadata
)

// A Matrix is a square grid of modules stored row by row, each with
// its value in the low bit and layout flags above it.
type Matrix struct {
	Size  int    // modules on a side
	Cells []byte // Size*Size modules
}

// NewMatrix returns an empty matrix with the given number of modules
// on a side.
func NewMatrix(size int) *Matrix {
	return &Matrix{Size: size, Cells: make([]byte, size*size)}
}

// Ext returns the value and flags of the module at x, y.
func (m *Matrix) Ext(x, y int) byte { return m.Cells[y*m.Size+x] }

// SetExt sets the value and flags of the module at x, y.
func (m *Matrix) SetExt(x, y int, v byte) { m.Cells[y*m.Size+x] = v }

// At returns the value of the module at x, y as 0 or 1.
func (m *Matrix) At(x, y int) byte { return m.Cells[y*m.Size+x] & Dark }

// Set sets the value of the module at x, y, keeping its flags.
func (m *Matrix) Set(x, y int, dark bool) {
	c := &m.Cells[y*m.Size+x]
	*c &^= Dark
	if dark {
		*c |= Dark
	}
}

// Black reports whether the module at x, y is dark.  Modules outside
// the matrix are light.
func (m *Matrix) Black(x, y int) bool {
	return 0 <= x && x < m.Size && 0 <= y && y < m.Size &&
		m.Cells[y*m.Size+x]&Dark != 0
}

// Clone returns a copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{Size: m.Size, Cells: append([]byte(nil), m.Cells...)}
}

// Bitmap returns the module values packed eight to a byte, most
// significant bit first, with rows starting on byte boundaries.
func (m *Matrix) Bitmap() (bitmap []byte, stride int) {
	stride = (m.Size + 7) >> 3
	bitmap = make([]byte, stride*m.Size)
	for y := 0; y < m.Size; y++ {
		row := bitmap[y*stride:]
		for x, c := range m.Cells[y*m.Size : (y+1)*m.Size] {
			row[x>>3] |= (c & Dark) << (7 &^ x)
		}
	}
	return bitmap, stride
}

// MatrixFromBitmap returns a matrix of the given size with module
// values read from a bitmap packed as by Bitmap.
func MatrixFromBitmap(bitmap []byte, size, stride int) *Matrix {
	m := NewMatrix(size)
	for y := 0; y < size; y++ {
		row := bitmap[y*stride:]
		for x := 0; x < size; x++ {
			m.Cells[y*size+x] = row[x>>3] >> (7 &^ x) & 1
		}
	}
	return m
}
