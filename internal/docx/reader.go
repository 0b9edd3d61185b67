// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders Word documents as Markdown. Headings and list items
// are recovered from paragraph style names; bold, italic and underline are
// recovered from run properties.
package docx

import (
	"strings"

	"github.com/pdiddy/doc2md/internal/format"
)

// Run is a span of paragraph text sharing one formatting state.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Paragraph is a body paragraph with its resolved style name.
type Paragraph struct {
	Style string
	Runs  []Run
}

// Text returns the unformatted paragraph text.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Document is the ordered list of body paragraphs.
type Document struct {
	Paragraphs []Paragraph
}

// Reader converts .docx files to Markdown.
type Reader struct{}

// NewReader returns a Reader as a format.Reader, suitable as a registry
// factory.
func NewReader() format.Reader {
	return &Reader{}
}

// Read loads the document at path and renders it. Any failure is returned
// as a *format.ReadError and no partial text is produced.
func (r *Reader) Read(path string) (string, error) {
	doc, err := Load(path)
	if err != nil {
		return "", &format.ReadError{Format: "docx", Path: path, Err: err}
	}
	return Render(doc), nil
}

// Render concatenates the paragraph renderings and trims the result.
func Render(doc Document) string {
	var b strings.Builder
	for _, p := range doc.Paragraphs {
		b.WriteString(RenderParagraph(p))
	}
	return strings.TrimSpace(b.String())
}

// RenderParagraph renders one paragraph. Blank paragraphs become a single
// newline; "heading N" styles become ATX headings of level N; "list"
// styles become bullet items.
func RenderParagraph(p Paragraph) string {
	if strings.TrimSpace(p.Text()) == "" {
		return "\n"
	}

	var content strings.Builder
	for _, r := range p.Runs {
		content.WriteString(RenderRun(r))
	}

	style := strings.ToLower(p.Style)
	if strings.HasPrefix(style, "heading") {
		if level, ok := trailingDigit(style); ok {
			return strings.Repeat("#", level) + " " + content.String() + "\n\n"
		}
	}
	if strings.HasPrefix(style, "list") {
		return "* " + content.String() + "\n"
	}
	return content.String() + "\n\n"
}

// RenderRun applies bold, then italic, then underline, each wrapping the
// result of the previous step. The order is part of the output format:
// all three flags on "X" give "__***X***__".
func RenderRun(r Run) string {
	text := r.Text
	if r.Bold {
		text = "**" + text + "**"
	}
	if r.Italic {
		text = "*" + text + "*"
	}
	if r.Underline {
		text = "__" + text + "__"
	}
	return text
}

func trailingDigit(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	c := s[len(s)-1]
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}
