// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf reconstructs Markdown from the positioned glyphs of a PDF.
// PDF carries no logical document model, so headings are inferred from a
// document-wide font-size survey and lines from word geometry.
package pdf

// Char is one glyph with its font and bounding box. Coordinates are in
// points with the origin at the top-left of the page, y growing down.
type Char struct {
	Text     string
	FontName string
	FontSize float64
	X0, X1   float64
	Top      float64
	Bottom   float64

	// StrokeColor is the stroking colour in effect when the glyph was
	// shown, or nil when it is unknown.
	StrokeColor []float64
}

// Word is a run of adjacent glyphs on one row sharing a font. Font
// attributes and stroke colour are those of the first glyph; the box is the union of all
// glyph boxes.
type Word struct {
	Text     string
	FontSize float64
	FontName string

	Top    float64
	Left   float64
	Width  float64
	Height float64

	// StrokeColor is the stroking colour components, or nil when the
	// decoder could not attribute a colour to the glyphs.
	StrokeColor []float64

	Bold   bool
	Italic bool
	Header bool
}

// WordOptions controls how glyphs are grouped into words.
type WordOptions struct {
	XTolerance     float64
	YTolerance     float64
	KeepBlankChars bool
}

// Page is a decoded PDF page.
type Page interface {
	// Chars returns every glyph on the page.
	Chars() []Char

	// Words returns the page's words in reading order: top to bottom,
	// then left to right.
	Words(opts WordOptions) []Word
}

// glyphPage is a Page backed by an already decoded glyph list.
type glyphPage struct {
	chars []Char
}

// NewPage returns a Page over chars; words are derived with ExtractWords.
func NewPage(chars []Char) Page {
	return &glyphPage{chars: chars}
}

func (p *glyphPage) Chars() []Char { return p.chars }

func (p *glyphPage) Words(opts WordOptions) []Word {
	return ExtractWords(p.chars, opts)
}
