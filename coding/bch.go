// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// BCH codes protecting format and version information.
const (
	formatPoly  = 0x537  // x^10+x^8+x^5+x^4+x^2+x+1, BCH(15,5)
	versionPoly = 0x1f25 // x^12+x^11+x^10+x^9+x^8+x^5+x^2+1, BCH(18,6)

	formatDist  = 7 // minimum distance of BCH(15,5)
	versionDist = 8 // minimum distance of BCH(18,6)

	qrFormatMask    = 0x5412 // 101010000010010
	microFormatMask = 0x4445 // 100010001000101
)

// bchEncode returns data followed by the remainder of its division
// by poly, which has degree n.
func bchEncode(data, poly uint32, n int) uint32 {
	rem := data << n
	for i := bits.Len32(data) - 1; i >= 0; i-- {
		if rem&(1<<(i+n)) != 0 {
			rem ^= poly << i
		}
	}
	return data<<n | rem
}

func bchTable(first, n int, poly uint32, deg int) []uint32 {
	t := make([]uint32, n)
	for i := range t {
		t[i] = bchEncode(uint32(first+i), poly, deg)
	}
	return t
}

var (
	formatCodes  = bchTable(0, 32, formatPoly, 10)  // 5 bit data
	versionCodes = bchTable(7, 34, versionPoly, 12) // versions 7 to 40
)

// EncodeFormat returns the 15 bit BCH(15,5) code for the 5 bit
// format data.  The result is not masked.
func EncodeFormat(data uint32) uint32 {
	return formatCodes[data&0x1f]
}

// EncodeVersion returns the 18 bit BCH(18,6) version information for
// QR version v, or 0 for versions without version information.
func EncodeVersion(v Version) uint32 {
	if v < 7 || v > MaxVersion {
		return 0
	}
	return versionCodes[v-7]
}

// bchDecode returns the index of the first codeword in table within
// correction distance of code.  Bits set in erasures are known to be
// unreliable and are not compared.
func bchDecode(table []uint32, code, erasures uint32, dist int) (int, error) {
	ne := bits.OnesCount32(erasures)
	if ne >= dist {
		return 0, &UncorrectableBlockError{-1, ErrTooManyErasures}
	}
	maxErr := (dist - ne - 1) / 2
	for i, c := range table {
		if bits.OnesCount32((c^code)&^erasures) <= maxErr {
			return i, nil
		}
	}
	return 0, &UncorrectableBlockError{-1, ErrTooManyErrors}
}

// DecodeFormat returns the 5 bit data of an unmasked BCH(15,5) code.
func DecodeFormat(code, erasures uint32) (uint32, error) {
	i, err := bchDecode(formatCodes, code, erasures, formatDist)
	return uint32(i), err
}

// DecodeVersion returns the version encoded in 18 bit version
// information.
func DecodeVersion(code, erasures uint32) (Version, error) {
	i, err := bchDecode(versionCodes, code, erasures, versionDist)
	if err != nil {
		return 0, err
	}
	return Version(i + 7), nil
}
