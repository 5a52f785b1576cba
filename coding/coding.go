// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR and Micro QR coding details:
// version geometry, segment encoding, error correction, module layout
// and masking, and the reverse path from a module matrix back to
// segments.
package coding // import "github.com/unixdj/qrcodec/coding"

import (
	"errors"
	"fmt"

	"github.com/unixdj/qrcodec/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMask    = errors.New("qr: invalid mask")
	ErrSize    = errors.New("qr: invalid symbol size")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// UncorrectableBlockError reports a block of a decoded symbol that
// could not be corrected.  Block is the index of the Reed-Solomon
// block, or -1 for format and version information.
type UncorrectableBlockError struct {
	Block int
	Err   error
}

func (e *UncorrectableBlockError) Error() string {
	if e.Block < 0 {
		return "qr: uncorrectable metadata: " + e.Err.Error()
	}
	return fmt.Sprintf("qr: uncorrectable block %d: %v", e.Block, e.Err)
}

func (e *UncorrectableBlockError) Unwrap() error { return e.Err }

// Errors wrapped by UncorrectableBlockError for BCH-coded metadata.
var (
	ErrTooManyErasures = errors.New("too many erasures")
	ErrTooManyErrors   = errors.New("too many errors")
)

// A FormatError reports malformed data in a decoded symbol.
type FormatError string

func (e FormatError) Error() string {
	return "qr: malformed data: " + string(e)
}

// errEarlyEnd is returned when the data bits end inside a segment.
const errEarlyEnd = FormatError("early end of input")
