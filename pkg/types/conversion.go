// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of a service-side conversion request.
type ConversionStatus string

const (
	ConversionProcessing ConversionStatus = "processing"
	ConversionCompleted  ConversionStatus = "completed"
	ConversionFailed     ConversionStatus = "failed"
)

// ConversionRecord tracks one upload handled by the conversion service.
type ConversionRecord struct {
	// ID is the uuid assigned when the upload was accepted.
	ID string `json:"conversion_id" yaml:"conversion_id"`

	// Status is processing, completed, or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// InputFile is the filename the client uploaded.
	InputFile string `json:"input_file" yaml:"input_file"`

	// OutputFile is the stored name of the converted file, set on completion.
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty"`

	// CreatedAt is when the upload was accepted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
