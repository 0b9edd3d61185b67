// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert owns the extension registry and orchestrates a single
// read-then-write conversion.
package convert

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pdiddy/doc2md/internal/docx"
	"github.com/pdiddy/doc2md/internal/format"
	"github.com/pdiddy/doc2md/internal/markdown"
	"github.com/pdiddy/doc2md/internal/pdf"
	"github.com/pdiddy/doc2md/pkg/types"
)

var (
	// ErrUnsupportedInputFormat is returned when no reader is registered
	// for the input extension.
	ErrUnsupportedInputFormat = errors.New("unsupported input format")

	// ErrUnsupportedOutputFormat is returned when no writer is registered
	// for the output extension.
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)

// Converter maps extensions to reader and writer factories. Registration
// and lookup are not synchronized: register at startup, then convert from
// as many goroutines as needed.
type Converter struct {
	readers map[string]format.ReaderFactory
	writers map[string]format.WriterFactory
	log     zerolog.Logger
}

// NewConverter returns a converter with the default registry: .docx and
// .pdf readers and the .md writer. The PDF reader uses cfg.
func NewConverter(cfg types.PDFConfig, log zerolog.Logger) *Converter {
	c := &Converter{
		readers: make(map[string]format.ReaderFactory),
		writers: make(map[string]format.WriterFactory),
		log:     log,
	}
	c.RegisterReader(".docx", docx.NewReader)
	c.RegisterReader(".pdf", func() format.Reader { return pdf.NewReader(cfg) })
	c.RegisterWriter(".md", markdown.NewWriter)
	return c
}

// RegisterReader maps ext to factory, replacing any existing mapping.
func (c *Converter) RegisterReader(ext string, factory format.ReaderFactory) {
	c.readers[format.NormalizeExt(ext)] = factory
}

// RegisterWriter maps ext to factory, replacing any existing mapping.
func (c *Converter) RegisterWriter(ext string, factory format.WriterFactory) {
	c.writers[format.NormalizeExt(ext)] = factory
}

// SupportedInputFormats returns the registered input extensions, sorted.
func (c *Converter) SupportedInputFormats() []string {
	return sortedKeys(c.readers)
}

// SupportedOutputFormats returns the registered output extensions, sorted.
func (c *Converter) SupportedOutputFormats() []string {
	return sortedKeys(c.writers)
}

// Convert reads inputPath with the reader registered for its extension
// and writes the Markdown to outputPath with the writer registered for
// its extension. Both extensions are checked before any file is touched.
// A read failure is returned as *format.ReadError and a write failure as
// *format.WriteError; a failed write does not undo the read.
func (c *Converter) Convert(inputPath, outputPath string) error {
	inExt := format.ExtOf(inputPath)
	outExt := format.ExtOf(outputPath)

	newReader, ok := c.readers[inExt]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, inExt)
	}
	newWriter, ok := c.writers[outExt]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, outExt)
	}

	reader, writer := newReader(), newWriter()

	content, err := reader.Read(inputPath)
	if err != nil {
		var re *format.ReadError
		if !errors.As(err, &re) {
			err = &format.ReadError{Format: inExt, Path: inputPath, Err: err}
		}
		return err
	}

	if err := writer.Write(content, outputPath); err != nil {
		var we *format.WriteError
		if !errors.As(err, &we) {
			err = &format.WriteError{Format: outExt, Path: outputPath, Err: err}
		}
		return err
	}

	c.log.Debug().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("bytes", len(content)).
		Msg("converted")
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
