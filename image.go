// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image"
	"image/color"
	"strings"
)

// Image returns an Image displaying the code with c.Scale pixels per
// module and a quiet zone of c.Border modules.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size() + 2*c.Border) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) != c.Reverse {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}

// Half block characters indexed by the upper module and the lower one.
var blocks = [2][2]string{{" ", "▄"}, {"▀", "█"}}

// String returns the code drawn with Unicode half blocks, two rows
// of modules per line, with a quiet zone of c.Border modules.
// Dark modules are drawn as blocks, unless c.Reverse is set.
func (c *Code) String() string {
	lo, hi := -c.Border, c.Size()+c.Border
	var b strings.Builder
	b.Grow((hi - lo) * (hi - lo + 1) * 3 / 2)
	for y := lo; y < hi; y += 2 {
		for x := lo; x < hi; x++ {
			var top, bot int
			if c.Black(x, y) != c.Reverse {
				top = 1
			}
			if y+1 < hi && c.Black(x, y+1) != c.Reverse {
				bot = 1
			}
			b.WriteString(blocks[top][bot])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
