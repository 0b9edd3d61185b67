// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"github.com/pdiddy/doc2md/internal/format"
	"github.com/pdiddy/doc2md/pkg/types"
)

// Reader converts .pdf files to Markdown.
type Reader struct {
	opts WordOptions
	open func(path string) ([]Page, error)
}

// NewReader returns a Reader using cfg for word extraction.
func NewReader(cfg types.PDFConfig) *Reader {
	return &Reader{
		opts: WordOptions{
			XTolerance:     cfg.XTolerance,
			YTolerance:     cfg.YTolerance,
			KeepBlankChars: cfg.KeepBlankChars,
		},
		open: Open,
	}
}

// Read decodes the PDF at path and renders it. Decode failures are
// returned as a *format.ReadError with no partial document.
func (r *Reader) Read(path string) (string, error) {
	pages, err := r.open(path)
	if err != nil {
		return "", &format.ReadError{Format: "pdf", Path: path, Err: err}
	}
	return Render(pages, r.opts), nil
}

// Render runs the two passes over decoded pages: a font survey of the
// whole document, then per-page line reconstruction and Markdown emission.
func Render(pages []Page, opts WordOptions) string {
	survey := Survey(pages)

	classified := make([][]Word, len(pages))
	for i, p := range pages {
		words := p.Words(opts)
		Classify(words, survey)
		classified[i] = words
	}
	return emit(layout(classified), survey)
}
