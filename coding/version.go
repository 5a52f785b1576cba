// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"
	"strings"
	"sync"
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side,
// a Micro QR code with version Mv 2v+9 pixels.
// Versions run in two sequences, from M1 to M4 and from 1 to 40:
// the larger the version, the more information the code can store.
type Version int

// Code versions.
const (
	// Micro QR versions
	M1 Version = MaxVersion + 1 + iota
	M2
	M3
	M4

	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	if v >= M1 && v <= M4 {
		return []string{"M1", "M2", "M3", "M4"}[v-M1]
	}
	return strconv.Itoa(int(v))
}

// IsValid reports whether v is a QR or Micro QR version.
func (v Version) IsValid() bool {
	return MinVersion <= v && v <= M4
}

// IsMicro reports whether v is a Micro QR version.
func (v Version) IsMicro() bool {
	return v >= M1
}

// Masks returns the number of data mask patterns available for v.
func (v Version) Masks() int {
	if v.IsMicro() {
		return 4
	}
	return 8
}

// ParseVersion parses a version number, 1 to 40 or M1 to M4.
func ParseVersion(s string) (Version, error) {
	if len(s) == 2 && (s[0] == 'M' || s[0] == 'm') &&
		'1' <= s[1] && s[1] <= '4' {
		return M1 + Version(s[1]-'1'), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(MinVersion) || n > int(MaxVersion) {
		return 0, ErrVersion
	}
	return Version(n), nil
}

// Micro QR and QR version size classes.
const (
	ClassM1 = iota // Micro QR version M1
	ClassM2        // Micro QR version M2
	ClassM3        // Micro QR version M3
	ClassM4        // Micro QR version M4
	Class0         // QR versions 1 to 9
	Class1         // QR versions 10 to 26
	Class2         // QR versions 27 to 40
	NumClasses
)

// SizeClass returns the size class of v, as documented under ClassM1.
// Versions in a size class share the lengths of mode indicators and
// character count fields.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	if v <= 40 {
		return Class2
	}
	return int(v - M1)
}

// classVersions lists the versions of each size class, smallest first.
var classVersions = [NumClasses][2]Version{
	{M1, M1}, {M2, M2}, {M3, M3}, {M4, M4}, {1, 9}, {10, 26}, {27, 40},
}

// ClassVersions returns the smallest and the largest version in the
// size class.
func ClassVersions(class int) (lo, hi Version) {
	r := classVersions[class]
	return r[0], r[1]
}

// Width returns the number of modules on a side of a symbol.
func (v Version) Width() int {
	if v >= M1 {
		return int(v-M1)*2 + 11
	}
	return int(v)*4 + 17
}

// VersionForWidth returns the version of a symbol with w modules on
// a side.
func VersionForWidth(w int) (Version, error) {
	switch {
	case 11 <= w && w <= 17 && w&1 != 0:
		return M1 + Version(w-11)/2, nil
	case 21 <= w && w <= 177 && w&3 == 1:
		return Version(w-17) / 4, nil
	}
	return 0, ErrSize
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
// None is the detection-only level of version M1.
type Level int

const (
	None Level = iota
	L
	M
	Q
	H
)

func (l Level) String() string {
	if None <= l && l <= H {
		return []string{"none", "L", "M", "Q", "H"}[l]
	}
	return strconv.Itoa(int(l))
}

// ParseLevel parses an error correction level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "", "NONE":
		return None, nil
	case "L":
		return L, nil
	case "M":
		return M, nil
	case "Q":
		return Q, nil
	case "H":
		return H, nil
	}
	return 0, ErrLevel
}

// A version describes metadata associated with a version.
type version struct {
	apos    int // first alignment pattern centre after 6
	astride int // distance between further centres
	bytes   int // codewords
	level   [H + 1]level
}

type level struct {
	nblock int // blocks
	check  int // check bytes per block
	prot   int // check bytes reserved for error detection
}

// An ECCSpec describes the error correction of a version and level.
type ECCSpec struct {
	Level      Level
	Blocks     int    // number of Reed-Solomon blocks
	Check      int    // check bytes per block
	Protection int    // check bytes per block reserved for detection
	DataBits   int    // data capacity in bits
	DataBytes  int    // data codewords, counting a half codeword as one
	ShortBlock int    // data bytes in the shorter blocks
	LongBlocks int    // blocks with ShortBlock+1 data bytes, placed last
	Chars      [4]int // capacity in characters for Numeric to Kanji
}

// A Spec describes the geometry and capacity of a version.
type Spec struct {
	Version Version
	Width   int // modules on a side
	Margin  int // recommended quiet zone

	Finder      int   // finder and separator modules
	Timing      int   // timing pattern modules, less finder overlap
	Alignment   int   // alignment pattern modules, less timing overlap
	Align       []int // alignment pattern centres
	Format      int   // format information modules, with the dark module
	VersionInfo int   // version information modules

	RawBits int // data and check modules
	Bits    int // modules filled with codewords
	Bytes   int // codewords

	ECC [H + 1]*ECCSpec // indexed by Level, nil if not available
}

var specs [M4 + 1]struct {
	once sync.Once
	s    *Spec
}

// Spec returns the specification of v, or nil if v is invalid.
// The result is computed once and must not be modified.
func (v Version) Spec() *Spec {
	if !v.IsValid() {
		return nil
	}
	p := &specs[v]
	p.once.Do(func() { p.s = makeSpec(v) })
	return p.s
}

func makeSpec(v Version) *Spec {
	w := v.Width()
	s := &Spec{Version: v, Width: w}
	vt := &vtab[v]
	if v.IsMicro() {
		s.Margin = 2
		s.Finder = 64
		s.Timing = 2 * (w - 8)
		s.Format = 15
	} else {
		s.Margin = 4
		s.Finder = 3 * 64
		s.Timing = 2 * (w - 16)
		s.Format = 31
		if v >= 7 {
			s.VersionInfo = 36
		}
		s.Align = alignPositions(v)
		if g := len(s.Align); g > 0 {
			// g² patterns less three under finders; those on
			// row or column 6 overlap the timing pattern by 5.
			s.Alignment = (g-1)*(g-1)*25 + (g-2)*2*20
		}
	}
	s.RawBits = w*w - s.Finder - s.Timing - s.Alignment - s.Format -
		s.VersionInfo
	s.Bits = s.RawBits
	if !v.IsMicro() {
		s.Bits &^= 7
	}
	s.Bytes = (s.Bits + 7) >> 3
	if s.Bytes != vt.bytes {
		panic("qr: internal error: version " + v.String() +
			" capacity mismatch")
	}
	for l := None; l <= H; l++ {
		lev := vt.level[l]
		if lev.nblock == 0 {
			continue
		}
		e := &ECCSpec{
			Level:      l,
			Blocks:     lev.nblock,
			Check:      lev.check,
			Protection: lev.prot,
			DataBits:   v.DataBits(l),
		}
		e.DataBytes = (e.DataBits + 7) >> 3
		e.ShortBlock = e.DataBytes / e.Blocks
		e.LongBlocks = e.DataBytes % e.Blocks
		class := v.SizeClass()
		for m := Numeric; m <= Kanji; m++ {
			e.Chars[m] = m.Capacity(e.DataBits, class)
		}
		s.ECC[l] = e
	}
	return s
}

// alignPositions returns the alignment pattern centres of QR version v.
func alignPositions(v Version) []int {
	vt := &vtab[v]
	if vt.apos == 0 {
		return nil
	}
	pos := []int{6, vt.apos}
	if vt.astride != 0 {
		last := v.Width() - 7
		for p := vt.apos + vt.astride; p <= last; p += vt.astride {
			pos = append(pos, p)
		}
	}
	return pos
}

// HasLevel reports whether level l is available in version v.
func (v Version) HasLevel(l Level) bool {
	return v.IsValid() && None <= l && l <= H && vtab[v].level[l].nblock != 0
}

// dataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) dataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level,
// or 0 if the level is not available.
func (v Version) DataBits(l Level) int {
	if !v.HasLevel(l) {
		return 0
	}
	n := v.dataBytes(l) * 8
	if v == M1 || v == M3 {
		n -= 4
	}
	return n
}
