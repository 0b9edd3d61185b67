// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PDFConfig holds the word-extraction settings for the PDF reader.
type PDFConfig struct {
	// XTolerance is the largest horizontal gap, in points, between two
	// glyphs that still belong to the same word (default 3).
	XTolerance float64 `json:"x_tolerance" yaml:"x_tolerance" mapstructure:"x_tolerance"`

	// YTolerance is the largest vertical offset, in points, between two
	// glyphs that still belong to the same text row (default 3).
	YTolerance float64 `json:"y_tolerance" yaml:"y_tolerance" mapstructure:"y_tolerance"`

	// KeepBlankChars keeps whitespace glyphs inside words instead of
	// treating them as word boundaries.
	KeepBlankChars bool `json:"keep_blank_chars" yaml:"keep_blank_chars" mapstructure:"keep_blank_chars"`
}

// LogConfig selects the diagnostic logger's level and encoding.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServeConfig holds settings for the HTTP conversion service.
type ServeConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// UploadDir receives uploaded source documents.
	UploadDir string `json:"upload_dir" yaml:"upload_dir" mapstructure:"upload_dir"`

	// ConvertedDir receives converted output files.
	ConvertedDir string `json:"converted_dir" yaml:"converted_dir" mapstructure:"converted_dir"`

	// DBPath is the SQLite database holding conversion status records.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// Retention is how long files and status records are kept (default 1h).
	Retention time.Duration `json:"retention" yaml:"retention" mapstructure:"retention"`

	// SweepInterval is the delay between retention sweeps (default 1h).
	SweepInterval time.Duration `json:"sweep_interval" yaml:"sweep_interval" mapstructure:"sweep_interval"`

	// SecretsDir holds an optional api-token file enabling bearer auth.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// MarkitdownConfig controls the optional container-backed reader.
type MarkitdownConfig struct {
	// Enabled registers the markitdown reader at startup.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Extensions lists the input extensions routed to markitdown.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// Config groups every section of doc2md.yaml.
type Config struct {
	PDF        PDFConfig        `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Serve      ServeConfig      `json:"serve" yaml:"serve" mapstructure:"serve"`
	Markitdown MarkitdownConfig `json:"markitdown" yaml:"markitdown" mapstructure:"markitdown"`
}

// DefaultPDFConfig returns the word-extraction defaults.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{XTolerance: 3, YTolerance: 3}
}

// DefaultConfig returns the configuration used when no file or
// environment override is present.
func DefaultConfig() Config {
	return Config{
		PDF: DefaultPDFConfig(),
		Log: LogConfig{Level: "info", Format: "console"},
		Serve: ServeConfig{
			Addr:          ":8000",
			UploadDir:     "uploads",
			ConvertedDir:  "converted",
			DBPath:        "doc2md.db",
			Retention:     time.Hour,
			SweepInterval: time.Hour,
			SecretsDir:    ".secrets/",
		},
		Markitdown: MarkitdownConfig{
			Extensions: []string{".pptx", ".xlsx", ".html"},
		},
	}
}
