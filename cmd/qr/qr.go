// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qr encodes text as a QR or Micro QR code, or decodes PBM
// images of codes back to text.
package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/term"

	qr "github.com/unixdj/qrcodec"
)

var g = struct {
	opt     qr.Options // encoding options
	scale   int        // image pixels per module
	border  int        // quiet zone, -1 for default
	rev     bool       // reverse colours
	fn      string     // output filename
	format  int        // output file format
	decode  bool       // decode PBM input
	verbose bool       // report symbol parameters
}{
	opt: qr.Options{Mask: qr.DefaultMask},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code encoder and decoder\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  With -d, the arguments name PBM files to decode,
standard input by default.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	bb := b.Bytes()
	if n := bytes.Index(bb, []byte(" [-1]")); n >= 0 {
		w.Write(bb[:n])
		bb = bb[n+len(" [-1]"):]
	}
	w.Write(bb)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "eps", "epsi",
	"utf8", "utf8i", "ascii", "asciii",
}

const utf8Format = 3

var encoders = [...]func(*qr.Code, io.Writer) error{
	func(c *qr.Code, w io.Writer) error { return png.Encode(w, c.Image()) },
	(*qr.Code).EncodePBM,
	eps,
	func(c *qr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

var charsets = []string{"auto", "utf8", "latin1", "sjis"}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.opt.Micro, 'M', "allow Micro QR codes")
	getopt.Flag(&g.decode, 'd', "decode PBM images instead of encoding")
	getopt.Flag(&g.verbose, 'v', "report version, level, mask and "+
		"capacity used on standard error")
	getopt.Flag(&g.border, 'm', `quiet zone modules [4 (2 for Micro)]`,
		"margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	minw := getopt.Unsigned('w', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 177},
		"minimum width in modules", "width")
	maxw := getopt.Unsigned('W', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 177},
		"maximum width in modules, 0 for none", "width")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: -1, Max: 7},
		"data mask, 0-7 (0-3 for Micro QR); -1 picks the best", "mask")
	lev := getopt.Enum('l',
		[]string{"n", "l", "m", "q", "h", "N", "L", "M", "Q", "H"}, "n",
		"minimum error correction level, lowest to highest; "+
			`"n" (detection only) allows M1 and means L otherwise`,
		"n|l|m|q|h")
	cs := getopt.Enum('e', charsets, "auto", `character encoding `+
		`with its ECI designator, one of: `+strings.Join(charsets, ", ")+
		`; "auto" adds none to ASCII text and uses utf8 otherwise`,
		"charset")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps[i]: points) per QR module ("pixel"); `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise pbm`, "type")

	getopt.Parse()
	if *maxw != 0 && *minw > *maxw {
		fmt.Fprintln(os.Stderr, "-w exceeds -W")
		usage()
	}
	g.scale = int(*scale)
	g.opt.MinWidth, g.opt.MaxWidth = int(*minw), int(*maxw)
	g.opt.Mask = int(*mask)
	g.opt.MinLevel = qr.Level(strings.Index("nlmqhNLMQH", *lev) % 5)
	for i, v := range charsets {
		if *cs == v {
			g.opt.ECI = qr.Charset(i)
		}
	}
	if !getopt.IsSet('m') {
		g.border = -1
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "pbm"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("qr: ")
	parseFlags()

	if g.decode {
		decode(getopt.Args())
		return
	}
	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	c, err := qr.Encode(s, &g.opt)
	if err != nil {
		log.Fatalln(err)
	}
	report(c)
	write(c)
}

func report(c *qr.Code) {
	if g.verbose {
		log.Printf("version %v, level %v, mask %d, %d data bits, %.1f%% capacity",
			c.Version, c.Level, c.Mask, c.BodyBits, c.Capacity()*100)
	}
}

// output returns the output file and a function closing it.
func output() (io.Writer, func() error) {
	if g.fn == "" {
		return os.Stdout, func() error { return nil }
	}
	f, err := os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatalln(err)
	}
	return f, f.Close
}

func write(c *qr.Code) {
	c.Scale = g.scale
	c.Reverse = g.rev
	if g.border >= 0 {
		c.Border = g.border
	}
	if g.format == utf8Format && g.fn == "" {
		if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if w := c.Size() + 2*c.Border; w > cols {
				log.Fatalf("code too wide for terminal: %d > %d columns", w, cols)
			}
		}
	}
	w, closer := output()
	err := encoders[g.format](c, w)
	if cerr := closer(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func decode(files []string) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	w, closer := output()
	for _, fn := range files {
		text, err := decodeFile(fn)
		if err != nil {
			log.Fatalf("%s: %v", fn, err)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			log.Fatalln(err)
		}
	}
	if err := closer(); err != nil {
		log.Fatalln(err)
	}
}

func decodeFile(fn string) (string, error) {
	r := os.Stdin
	if fn != "-" {
		f, err := os.Open(fn)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	m, err := qr.DecodePBM(r)
	if err != nil {
		return "", err
	}
	c, parts, err := qr.DecodeParts(m)
	if err != nil {
		return "", err
	}
	report(c)
	return qr.PartsText(parts)
}

func eps(c *qr.Code, w io.Writer) error {
	const midx, midy = 306, 396
	siz := c.Size()
	scale := c.Scale
	bord := c.Border
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	µ := ""
	if c.Version.IsMicro() {
		µ = "Micro "
	}
	b := &bytes.Buffer{}
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: QR https://github.com/unixdj/qrcodec
%%%%Title: %sQR Code
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		µ, xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	if c.Reverse {
		// dark background, light modules
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
1 0 rlineto stroke
grestore
1 setgray
`,
			-bord, siz/2, siz+2*bord)
	}
	fmt.Fprintln(b, "newpath 0 0 moveto")
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			s := x
			for x < siz && !c.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			b0 := x
			for x < siz && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-b0, b0-s)
		}
		fmt.Fprintln(b, "r")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	_, err := b.WriteTo(w)
	return err
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size()
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
