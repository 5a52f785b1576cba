// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "golang.org/x/sync/errgroup"

// Mask patterns, for row i and column j:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//
// Micro QR masks 0 to 3 are QR masks 1, 4, 6 and 7.
var maskFuncs = [8]func(i, j int) bool{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return i*j%2+i*j%3 == 0 },
	func(i, j int) bool { return (i*j%2+i*j%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+i*j%3)%2 == 0 },
}

var microMasks = [4]int{1, 4, 6, 7}

// maskFunc returns the mask function for mask of version v.  The
// function reports whether the module at row i, column j is inverted.
func maskFunc(v Version, mask int) (func(i, j int) bool, error) {
	if mask < 0 || mask >= v.Masks() {
		return nil, ErrMask
	}
	if v.IsMicro() {
		mask = microMasks[mask]
	}
	return maskFuncs[mask], nil
}

// ApplyMask inverts the data modules of m selected by mask.
func ApplyMask(m *Matrix, v Version, mask int) error {
	if m.Size != v.Width() {
		return ErrSize
	}
	fn, err := maskFunc(v, mask)
	if err != nil {
		return err
	}
	for y := 0; y < m.Size; y++ {
		row := m.Cells[y*m.Size : (y+1)*m.Size]
		for x, c := range row {
			if c&NonData == 0 && fn(y, x) {
				row[x] = c ^ Dark
			}
		}
	}
	return nil
}

// ApplyMaskAndMetadata applies mask to m and writes the format and
// version information.
func ApplyMaskAndMetadata(m *Matrix, v Version, l Level, mask int) error {
	if err := ApplyMask(m, v, mask); err != nil {
		return err
	}
	return WriteMetadata(m, v, l, mask)
}

// AutoMask evaluates every mask on copies of m, which holds unmasked
// data, then applies the best one with metadata and returns it.
// Ties go to the lowest numbered mask.
func AutoMask(m *Matrix, v Version, l Level) (int, error) {
	if !v.HasLevel(l) {
		return 0, ErrLevel
	}
	scores := make([]int, v.Masks())
	var g errgroup.Group
	for mask := range scores {
		g.Go(func() error {
			c := m.Clone()
			if err := ApplyMaskAndMetadata(c, v, l, mask); err != nil {
				return err
			}
			scores[mask] = Evaluate(c, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	best := 0
	for mask, s := range scores {
		if s > scores[best] {
			best = mask
		}
	}
	return best, ApplyMaskAndMetadata(m, v, l, best)
}

// Evaluate returns the score of a masked matrix.  Higher is better.
// QR symbols score the negated sum of the penalties; Micro QR symbols
// score the dark modules on the right and bottom edges.
func Evaluate(m *Matrix, v Version) int {
	if v.IsMicro() {
		return microScore(m)
	}
	return -(runPenalty(m) + boxPenalty(m) + finderPenalty(m) +
		balancePenalty(m))
}

// EvaluateDetail returns the score of a masked matrix followed, for QR
// symbols, by the negated run, box, finder and balance penalties.
func EvaluateDetail(m *Matrix, v Version) []int {
	if v.IsMicro() {
		return []int{microScore(m)}
	}
	a, b, c, d := runPenalty(m), boxPenalty(m), finderPenalty(m),
		balancePenalty(m)
	return []int{-(a + b + c + d), -a, -b, -c, -d}
}

// Penalty points.
const (
	runPP    = 3  // run of 5, plus 1 per module beyond
	boxPP    = 3  // 2x2 box
	finderPP = 40 // finder-like pattern
	balPP    = 10 // every 5% from half dark
)

// Penalties incurred by the finder patterns and separators of every
// QR symbol, discounted from the totals.  Each finder with separator
// has four dark runs of 7, four light runs of 5 and two light runs of
// 8, four 2x2 dark boxes in the centre and six finder-like patterns.
const (
	finderRuns    = 3 * (4*5 + 4*3 + 2*6)
	finderBoxes   = 3 * 4
	finderFinders = 3 * 6
)

// line returns the values of a row (col false) or column of m.
func line(m *Matrix, n int, col bool, buf []byte) []byte {
	buf = buf[:m.Size]
	for i := range buf {
		if col {
			buf[i] = m.Cells[i*m.Size+n] & Dark
		} else {
			buf[i] = m.Cells[n*m.Size+i] & Dark
		}
	}
	return buf
}

// runPenalty scores runs of 5 or more same-coloured modules in rows
// and columns.
func runPenalty(m *Matrix) int {
	p := 0
	buf := make([]byte, m.Size)
	for _, col := range [2]bool{false, true} {
		for n := 0; n < m.Size; n++ {
			l := line(m, n, col, buf)
			r := 1
			for i := 1; i <= len(l); i++ {
				if i < len(l) && l[i] == l[i-1] {
					r++
					continue
				}
				if r >= 5 {
					p += runPP + r - 5
				}
				r = 1
			}
		}
	}
	return p - finderRuns
}

// boxPenalty scores possibly overlapping 2x2 boxes of one colour.
func boxPenalty(m *Matrix) int {
	n := 0
	for y := 0; y < m.Size-1; y++ {
		for x := 0; x < m.Size-1; x++ {
			v := m.At(x, y)
			if v == m.At(x+1, y) && v == m.At(x, y+1) && v == m.At(x+1, y+1) {
				n++
			}
		}
	}
	return (n - finderBoxes) * boxPP
}

// finderPenalty scores dark-light-dark patterns in 1:1:3:1:1 ratio
// with a light run at least four times as long on either side.
// Beyond the edges the matrix is light.
func finderPenalty(m *Matrix) int {
	const far = 10000 // run length outside the matrix
	n := -finderFinders
	buf := make([]byte, m.Size)
	for _, col := range [2]bool{false, true} {
		for k := 0; k < m.Size; k++ {
			l := line(m, k, col, buf)
			// rl[0] is the current run, rl[1:] the preceding ones.
			var rl [7]int
			for i := range rl {
				rl[i] = far
			}
			var last byte
			for i := 0; i <= len(l)+1; i++ {
				cur := last ^ 1
				if i < len(l) {
					cur = l[i]
				}
				if cur != last {
					u := rl[1]
					if last == 0 && rl[5] == u && rl[4] == u &&
						rl[3] == 3*u && rl[2] == u &&
						(rl[6] >= 4*u || rl[0] >= 4*u) {
						n++
					}
					last = cur
					copy(rl[1:], rl[:6])
					rl[0] = 0
				}
				if i < len(l) {
					rl[0]++
				} else {
					rl[0] += far
				}
			}
		}
	}
	return n * finderPP
}

// balancePenalty scores the deviation of the proportion of dark
// modules from one half, in whole 5% steps.
func balancePenalty(m *Matrix) int {
	dark := 0
	for _, c := range m.Cells {
		dark += int(c & Dark)
	}
	n := len(m.Cells)
	return balPP * (abs(2*dark-n) * 10 / n)
}

// microScore returns the Micro QR evaluation score, the larger of
// the dark module counts on the right and bottom edges plus 16 times
// the smaller.  The timing pattern is excluded.
func microScore(m *Matrix) int {
	v, h := 0, 0
	for i := 1; i < m.Size; i++ {
		v += int(m.At(m.Size-1, i))
		h += int(m.At(i, m.Size-1))
	}
	return max(v, h) + 16*min(v, h)
}
