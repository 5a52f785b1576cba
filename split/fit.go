// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import "github.com/unixdj/qrcodec/coding"

// FitOptions constrains the symbol chosen by Fit.
type FitOptions struct {
	Micro    bool         // try Micro QR versions before QR
	Level    coding.Level // minimum error correction level
	MinWidth int          // minimum modules on a side, if non-zero
	MaxWidth int          // maximum modules on a side, if non-zero
}

func (o *FitOptions) allows(v coding.Version) bool {
	w := v.Width()
	return (o.MinWidth == 0 || w >= o.MinWidth) &&
		(o.MaxWidth == 0 || w <= o.MaxWidth)
}

// level returns the lowest error correction level available in v at
// or above the requested one.
func (o *FitOptions) level(v coding.Version) (coding.Level, bool) {
	for l := max(o.Level, coding.None); l <= coding.H; l++ {
		if v.HasLevel(l) {
			return l, true
		}
	}
	return 0, false
}

// A Result is data fitted into a symbol.
type Result struct {
	Bits     *coding.Bits // data, terminated and padded
	Version  coding.Version
	Level    coding.Level
	BodyBits int // length of the data before the terminator
}

/*
Fit encodes parts into the smallest symbol allowed by opt.

Versions are tried in size classes, Micro QR ones first if opt.Micro
is set.  The data is split for the largest allowed version of a
class; if that fits, the smallest version in the class that holds it
is chosen.  The error correction level is the lowest available one
not below opt.Level.

If no symbol fits, Fit returns the error from the last size class
tried, a *BitOverflowError or an *UnsupportedContentError, or
coding.ErrSize if opt excludes every version.
*/
func Fit(parts []Part, opt *FitOptions) (*Result, error) {
	if opt == nil {
		opt = new(FitOptions)
	}
	if opt.Level < coding.None || opt.Level > coding.H {
		return nil, coding.ErrLevel
	}
	first := coding.Class0
	if opt.Micro {
		first = coding.ClassM1
	}
	var lastErr error
	for class := first; class < coding.NumClasses; class++ {
		lo, hi := coding.ClassVersions(class)
		for hi >= lo && !opt.allows(hi) {
			hi--
		}
		for lo <= hi && !opt.allows(lo) {
			lo++
		}
		if lo > hi {
			continue
		}
		l, ok := opt.level(hi)
		if !ok {
			continue
		}
		b, err := Compress(parts, class, hi.DataBits(l))
		if err != nil {
			lastErr = err
			continue
		}
		for v := lo; v <= hi; v++ {
			if l, ok = opt.level(v); !ok || b.Bits() > v.DataBits(l) {
				continue
			}
			r := &Result{Bits: b, Version: v, Level: l, BodyBits: b.Bits()}
			AddFiller(b, class, v.DataBits(l))
			return r, nil
		}
	}
	if lastErr == nil {
		lastErr = coding.ErrSize
	}
	return nil, lastErr
}
