// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc2md/internal/format"
	"github.com/pdiddy/doc2md/pkg/types"
)

// fakeReader returns canned Markdown or an error and records its inputs.
type fakeReader struct {
	output string
	err    error
	paths  *[]string
}

func (f *fakeReader) Read(path string) (string, error) {
	if f.paths != nil {
		*f.paths = append(*f.paths, path)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// fakeWriter records what it was asked to write.
type fakeWriter struct {
	err     error
	written map[string]string
}

func (f *fakeWriter) Write(content, path string) error {
	if f.err != nil {
		return f.err
	}
	f.written[path] = content
	return nil
}

func newTestConverter() *Converter {
	return NewConverter(types.DefaultPDFConfig(), zerolog.Nop())
}

func TestSupportedFormats_Defaults(t *testing.T) {
	c := newTestConverter()

	assert.Equal(t, []string{".docx", ".pdf"}, c.SupportedInputFormats())
	assert.Equal(t, []string{".md"}, c.SupportedOutputFormats())
}

func TestRegister_NormalizesAndOverwrites(t *testing.T) {
	c := newTestConverter()
	var first, second int
	c.RegisterReader("TXT", func() format.Reader { first++; return &fakeReader{output: "one"} })
	c.RegisterReader(".txt", func() format.Reader { second++; return &fakeReader{output: "two"} })
	c.RegisterWriter("Markdown", func() format.Writer { return &fakeWriter{written: map[string]string{}} })

	assert.Equal(t, []string{".docx", ".pdf", ".txt"}, c.SupportedInputFormats())
	assert.Equal(t, []string{".markdown", ".md"}, c.SupportedOutputFormats())

	require.NoError(t, c.Convert("a.txt", "a.markdown"))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestConvert_UnsupportedFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr error
	}{
		{"txt input", "notes.txt", "notes.md", ErrUnsupportedInputFormat},
		{"no extension", "README", "README.md", ErrUnsupportedInputFormat},
		{"pdf output", "report.docx", "report.pdf", ErrUnsupportedOutputFormat},
		{"input checked first", "notes.txt", "notes.pdf", ErrUnsupportedInputFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var built int
			c := newTestConverter()
			c.RegisterReader(".docx", func() format.Reader { built++; return &fakeReader{} })

			out := filepath.Join(dir, tt.output)
			err := c.Convert(filepath.Join(dir, tt.input), out)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, built, "no reader is constructed")
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no output is written")
		})
	}
}

func TestConvert_ExtensionIsCaseInsensitive(t *testing.T) {
	c := newTestConverter()
	w := &fakeWriter{written: map[string]string{}}
	c.RegisterReader(".docx", func() format.Reader { return &fakeReader{output: "# Hi"} })
	c.RegisterWriter(".md", func() format.Writer { return w })

	require.NoError(t, c.Convert("REPORT.DOCX", "Out.MD"))
	assert.Equal(t, "# Hi", w.written["Out.MD"])
}

func TestConvert_FreshInstancesPerCall(t *testing.T) {
	c := newTestConverter()
	var readers, writers int
	var paths []string
	c.RegisterReader(".docx", func() format.Reader {
		readers++
		return &fakeReader{output: "body", paths: &paths}
	})
	c.RegisterWriter(".md", func() format.Writer {
		writers++
		return &fakeWriter{written: map[string]string{}}
	})

	require.NoError(t, c.Convert("a.docx", "a.md"))
	require.NoError(t, c.Convert("b.docx", "b.md"))

	assert.Equal(t, 2, readers)
	assert.Equal(t, 2, writers)
	assert.Equal(t, []string{"a.docx", "b.docx"}, paths)
}

func TestConvert_ReadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bare error is wrapped", errors.New("corrupt zip")},
		{"typed error passes through", &format.ReadError{Format: "docx", Path: "a.docx", Err: errors.New("corrupt zip")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter()
			w := &fakeWriter{written: map[string]string{}}
			c.RegisterReader(".docx", func() format.Reader { return &fakeReader{err: tt.err} })
			c.RegisterWriter(".md", func() format.Writer { return w })

			err := c.Convert("a.docx", "a.md")

			var re *format.ReadError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "a.docx", re.Path)
			assert.Contains(t, err.Error(), "corrupt zip")
			assert.Empty(t, w.written, "writer is not called")
		})
	}
}

func TestConvert_WriteFailure(t *testing.T) {
	c := newTestConverter()
	var paths []string
	c.RegisterReader(".docx", func() format.Reader { return &fakeReader{output: "body", paths: &paths} })
	c.RegisterWriter(".md", func() format.Writer {
		return &fakeWriter{err: errors.New("disk full")}
	})

	err := c.Convert("a.docx", "a.md")

	var we *format.WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, ".md", we.Format)
	assert.Equal(t, []string{"a.docx"}, paths, "the read still happened")
}

func TestConvert_MarkdownWriterEndToEnd(t *testing.T) {
	dir := t.TempDir()
	c := newTestConverter()
	c.RegisterReader(".docx", func() format.Reader { return &fakeReader{output: "## Title\n\nbody"} })

	out := filepath.Join(dir, "out.md")
	require.NoError(t, c.Convert(filepath.Join(dir, "in.docx"), out))
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	require.NoError(t, c.Convert(filepath.Join(dir, "in.docx"), out))
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, "## Title\n\nbody", string(first))
	assert.Equal(t, first, second)
}

func TestConvert_MissingOutputDirectory(t *testing.T) {
	c := newTestConverter()
	c.RegisterReader(".docx", func() format.Reader { return &fakeReader{output: "x"} })

	err := c.Convert("in.docx", filepath.Join(t.TempDir(), "missing", "out.md"))

	var we *format.WriteError
	assert.True(t, errors.As(err, &we))
}

func TestConvert_DefaultReadersReportReadError(t *testing.T) {
	dir := t.TempDir()
	c := newTestConverter()

	for _, name := range []string{"missing.docx", "missing.pdf"} {
		err := c.Convert(filepath.Join(dir, name), filepath.Join(dir, "out.md"))
		var re *format.ReadError
		assert.True(t, errors.As(err, &re), "%s: got %v", name, err)
	}
}
