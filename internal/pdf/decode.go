// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"fmt"
	"math"
	"unicode/utf8"

	lpdf "github.com/ledongthuc/pdf"
)

// defaultPageTop is the top edge of US Letter, used when no MediaBox can
// be found.
const defaultPageTop = 792.0

// Open decodes every page of the PDF at path into glyph pages. The PDF
// library panics on some malformed streams; those panics are returned as
// errors and no pages are returned.
func Open(path string) (pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("decoding %s: %v", path, r)
		}
	}()

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, NewPage(nil))
			continue
		}
		pages = append(pages, NewPage(pageChars(p)))
	}
	return pages, nil
}

// pageChars converts the page's glyphs from PDF user space (origin at
// bottom-left, y up) to top-left coordinates measured from the MediaBox
// top edge. The glyph box spans one font size above the baseline.
func pageChars(p lpdf.Page) []Char {
	top := pageTop(p)
	text := p.Content().Text
	colors := strokeColors(p)
	if len(colors) != len(text) {
		colors = nil
	}

	chars := make([]Char, 0, len(text))
	for i, t := range text {
		c := Char{
			Text:     t.S,
			FontName: t.Font,
			FontSize: t.FontSize,
			X0:       t.X,
			X1:       t.X + t.W,
			Top:      top - t.Y - t.FontSize,
			Bottom:   top - t.Y,
		}
		if colors != nil {
			c.StrokeColor = colors[i]
		}
		chars = append(chars, c)
	}
	return chars
}

// pageTop returns the upper y of the MediaBox, which may be inherited from
// an ancestor page tree node.
func pageTop(p lpdf.Page) float64 {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return math.Max(box.Index(1).Float64(), box.Index(3).Float64())
		}
	}
	return defaultPageTop
}

// strokeColors replays the page content and returns the stroking colour
// in effect for each glyph, in the order the library reports glyphs. The
// glyph count per text operator follows the current font's encoding, the
// same way the library's own text extraction counts them.
func strokeColors(p lpdf.Page) [][]float64 {
	var (
		colors [][]float64
		stroke = []float64{0}
		saved  [][]float64
		enc    lpdf.TextEncoding
	)

	show := func(raw string) {
		if enc != nil {
			raw = enc.Decode(raw)
		}
		for range utf8.RuneCountInString(raw) {
			colors = append(colors, stroke)
		}
	}

	interpret := func(strm lpdf.Value) {
		lpdf.Interpret(strm, func(stk *lpdf.Stack, op string) {
			n := stk.Len()
			args := make([]lpdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}

			switch op {
			case "q":
				saved = append(saved, stroke)
			case "Q":
				if len(saved) > 0 {
					stroke = saved[len(saved)-1]
					saved = saved[:len(saved)-1]
				}
			case "G", "RG", "K", "SC", "SCN":
				stroke = numbers(args)
			case "CS":
				stroke = []float64{0}
			case "Tf":
				if len(args) == 2 {
					enc = p.Font(args[0].Name()).Encoder()
				}
			case "Tj", "'":
				if len(args) > 0 {
					show(args[0].RawString())
				}
			case "\"":
				if len(args) > 2 {
					show(args[2].RawString())
				}
			case "TJ":
				if len(args) > 0 {
					arr := args[0]
					for i := 0; i < arr.Len(); i++ {
						if x := arr.Index(i); x.Kind() == lpdf.String {
							show(x.RawString())
						}
					}
				}
			}
		})
	}

	contents := p.V.Key("Contents")
	if contents.Kind() == lpdf.Array {
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i))
		}
	} else {
		interpret(contents)
	}
	return colors
}

// numbers returns the numeric operands; a pattern name operand of SCN is
// skipped.
func numbers(args []lpdf.Value) []float64 {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		if k := a.Kind(); k == lpdf.Integer || k == lpdf.Real {
			out = append(out, a.Float64())
		}
	}
	return out
}
