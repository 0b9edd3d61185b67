// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/doc2md/internal/container"
	"github.com/pdiddy/doc2md/internal/format"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownReader converts documents by piping them through the
// markitdown container image. It covers formats the built-in readers do
// not, such as slides and spreadsheets.
type MarkitdownReader struct {
	runtime container.Runtime
}

// NewMarkitdownReader creates a reader that uses rt to run the markitdown
// image. It verifies that the image exists locally before returning.
func NewMarkitdownReader(rt container.Runtime) (*MarkitdownReader, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownReader{runtime: rt}, nil
}

// Read pipes the file at path through the container and returns its
// Markdown output. Empty output is treated as a failure.
func (m *MarkitdownReader) Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &format.ReadError{Format: "markitdown", Path: path, Err: err}
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(imageMarkitdown, f, &out); err != nil {
		return "", &format.ReadError{Format: "markitdown", Path: path, Err: err}
	}
	if out.Len() == 0 {
		return "", &format.ReadError{Format: "markitdown", Path: path, Err: fmt.Errorf("empty output")}
	}
	return out.String(), nil
}

// RegisterMarkitdown routes each of exts to the markitdown reader. The
// image is checked once, here; each conversion gets its own reader.
func RegisterMarkitdown(c *Converter, rt container.Runtime, exts []string) error {
	if _, err := NewMarkitdownReader(rt); err != nil {
		return err
	}
	for _, ext := range exts {
		c.RegisterReader(ext, func() format.Reader { return &MarkitdownReader{runtime: rt} })
	}
	return nil
}
