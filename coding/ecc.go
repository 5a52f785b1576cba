// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// AddCheckBytes adds terminator, padding and check bytes to b for the
// given version and level.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nb := v.DataBits(l)
	if nb == 0 {
		panic("qr: invalid version and level")
	}
	if b.nbit > nb {
		panic("qr: too much data")
	}
	vt := &vtab[v]
	b.growTo(vt.bytes)
	b.PadTo(TerminatorLength(v.SizeClass()), nb)
	// A half codeword is zero-filled to a byte for the checksum.
	b.nbit = len(b.b) * 8
	nd := len(b.b)

	dat := b.b
	lev := vt.level[l]
	db := nd / lev.nblock
	normal := (db+1)*lev.nblock - nd
	rs := Field.Generator(lev.check)
	for i := 0; i < lev.nblock; i++ {
		if i == normal {
			db++
		}
		rs.ECC(dat[:db], b.Add(lev.check))
		dat = dat[db:]
	}

	if len(b.b) != vt.bytes {
		panic("qr: internal error")
	}
	if nb&4 != 0 {
		chk := b.b[nb>>3:]
		for i := range chk[:len(chk)-1] {
			chk[i] |= chk[i+1] >> 4
			chk[i+1] <<= 4
		}
		b.nbit -= 4
	}
}

// interleave interleaves nblock blocks from src to dst, which must be
// of equal length.  The last len(src)%nblock blocks are one byte
// longer.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	dst = dst[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= normal {
			extra[i-normal] = src[0]
			src = src[1:]
		}
	}
}

// deinterleave reverses interleave.
func deinterleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := src[db*nblock:]
	src = src[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j := range dst[:db] {
			dst[j] = src[j*nblock+i]
		}
		dst = dst[db:]
		if i >= normal {
			dst[0] = extra[i-normal]
			dst = dst[1:]
		}
	}
}

// Permute returns a BitStream reading data and checksum bits in b
// with blocks interleaved for the given QR code version and level.
// The BitStream may use the same underlying buffer.
func (b *Bits) Permute(v Version, l Level) BitStream {
	vt := &vtab[v]
	src := b.b
	if len(src) != vt.bytes {
		panic("qr: wrong data length")
	}
	dst := src
	if nblock := vt.level[l].nblock; nblock != 1 {
		if cap(src) < len(src)*2 {
			dst = make([]byte, vt.bytes)
		} else {
			dst = src[len(src) : len(src)*2]
		}
		nd := v.dataBytes(l)
		interleave(dst[:nd], src[:nd], nblock)
		interleave(dst[nd:], src[nd:], nblock)
	}
	return NewBitStream(dst, b.nbit)
}

// CorrectData separates the codewords read from a symbol of the given
// version and level into blocks, corrects errors in each block and
// returns the data bits and the number of corrected codewords.
func CorrectData(raw *Bits, v Version, l Level) (*Bits, int, error) {
	nb := v.DataBits(l)
	if nb == 0 {
		return nil, 0, ErrLevel
	}
	vt := &vtab[v]
	lev := vt.level[l]
	if raw.nbit < vt.bytes*8-(nb&4) {
		return nil, 0, errEarlyEnd
	}
	nd := (nb + 7) >> 3
	data := make([]byte, nd)
	check := make([]byte, lev.nblock*lev.check)
	if nb&4 != 0 {
		copy(data, raw.b[:nd])
		data[nd-1] &= 0xf0
		for i := range check {
			check[i] = byte(raw.Uint(nb+8*i, 8))
		}
	} else {
		deinterleave(data, raw.b[:nd], lev.nblock)
		deinterleave(check, raw.b[nd:vt.bytes], lev.nblock)
	}

	fixed := 0
	block := make([]byte, 0, nd/lev.nblock+1+lev.check)
	dat, chk := data, check
	db := nd / lev.nblock
	normal := (db+1)*lev.nblock - nd
	for i := 0; i < lev.nblock; i++ {
		if i == normal {
			db++
		}
		block = append(append(block[:0], dat[:db]...), chk[:lev.check]...)
		n, err := Field.Correct(block, lev.check, lev.prot)
		if err != nil {
			return nil, fixed, &UncorrectableBlockError{i, err}
		}
		fixed += n
		copy(dat, block[:db])
		dat, chk = dat[db:], chk[lev.check:]
	}
	return NewBitsFrom(data, nb), fixed, nil
}
