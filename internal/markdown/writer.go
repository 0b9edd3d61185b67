// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown writes the intermediate Markdown text to disk.
package markdown

import (
	"os"

	"github.com/pdiddy/doc2md/internal/format"
)

// Writer stores Markdown content verbatim as UTF-8. It adds no trailing
// newline and does not write atomically; a crash mid-write can leave a
// partial file.
type Writer struct{}

// NewWriter returns a Writer as a format.Writer, suitable as a registry
// factory.
func NewWriter() format.Writer {
	return &Writer{}
}

// Write creates or truncates path and writes content to it.
func (w *Writer) Write(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &format.WriteError{Format: "markdown", Path: path, Err: err}
	}
	return nil
}
