// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format defines the reader and writer capabilities that the
// conversion registry dispatches to, and the error types they report.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader turns a source document into Markdown text.
type Reader interface {
	// Read parses the document at path and returns its Markdown rendering.
	Read(path string) (string, error)
}

// Writer serializes Markdown text to an output file.
type Writer interface {
	// Write stores content at path, creating or truncating the file.
	Write(content, path string) error
}

// ReaderFactory constructs a fresh Reader for one conversion.
type ReaderFactory func() Reader

// WriterFactory constructs a fresh Writer for one conversion.
type WriterFactory func() Writer

// NormalizeExt lower-cases ext and ensures a leading dot, so "DOCX",
// "docx" and ".Docx" all become ".docx". An empty ext stays empty.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// ExtOf returns the normalized extension of path, including the dot.
func ExtOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ReadError reports a failure to open or decode a source document.
type ReadError struct {
	Format string // e.g. "docx", "pdf"
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s file %s: %v", e.Format, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure while storing output.
type WriteError struct {
	Format string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s file %s: %v", e.Format, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
