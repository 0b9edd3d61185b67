// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Engine performs one conversion. *Converter implements it.
type Engine interface {
	Convert(inputPath, outputPath string) error
}

// FileStatus is the outcome of converting one file in a batch.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileSkipped   FileStatus = "skipped"
	FileFailed    FileStatus = "failed"
)

// FileResult records what happened to one input file.
type FileResult struct {
	Input  string     `yaml:"input"`
	Output string     `yaml:"output"`
	Status FileStatus `yaml:"status"`
	Error  string     `yaml:"error,omitempty"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int          `yaml:"converted"`
	Skipped   int          `yaml:"skipped"`
	Failed    int          `yaml:"failed"`
	Files     []FileResult `yaml:"files"`
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BatchOptions configures where and how a batch writes its output.
type BatchOptions struct {
	// OutDir receives one output file per input, named after the input.
	OutDir string

	// OutExt is the output extension (default ".md").
	OutExt string

	// Force overwrites outputs that already exist instead of skipping.
	Force bool
}

// OutputPath returns the output file for input under opts.
func OutputPath(input string, opts BatchOptions) string {
	ext := opts.OutExt
	if ext == "" {
		ext = ".md"
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(opts.OutDir, base+ext)
}

// ConvertFile converts a single input into opts.OutDir and prints a status
// line to w. An existing output is skipped unless opts.Force is set.
func ConvertFile(e Engine, input string, opts BatchOptions, w io.Writer) FileResult {
	out := OutputPath(input, opts)
	res := FileResult{Input: input, Output: out}
	base := filepath.Base(input)

	if _, err := os.Stat(out); err == nil && !opts.Force {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		res.Status = FileSkipped
		return res
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			res.Status, res.Error = FileFailed, err.Error()
			return res
		}
	}

	if err := e.Convert(input, out); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		res.Status, res.Error = FileFailed, err.Error()
		return res
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	res.Status = FileConverted
	return res
}

// ConvertBatch converts inputs one after another, printing per-file
// status and a summary to w. Two inputs with the same base name map to the
// same output; every input after the first that claims an output fails
// instead of skipping or overwriting it.
func ConvertBatch(e Engine, inputs []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	claimed := make(map[string]string, len(inputs))
	for _, in := range inputs {
		var res FileResult
		out := OutputPath(in, opts)
		if first, ok := claimed[out]; ok {
			err := fmt.Errorf("output %s already produced from %s", out, first)
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(in), err)
			res = FileResult{Input: in, Output: out, Status: FileFailed, Error: err.Error()}
		} else {
			claimed[out] = in
			res = ConvertFile(e, in, opts, w)
		}

		switch res.Status {
		case FileConverted:
			result.Converted++
		case FileSkipped:
			result.Skipped++
		case FileFailed:
			result.Failed++
		}
		result.Files = append(result.Files, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// WriteReport stores the batch result as YAML at path.
func WriteReport(result BatchResult, path string) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
