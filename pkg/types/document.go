// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one XML document.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Document identifies one XML input and the file it converts to.
type Document struct {
	// ID is the input file name without its extension (e.g. "sites").
	ID string `json:"id" yaml:"id"`

	// SourcePath is the filesystem path of the XML input.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the filesystem path of the converted output.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// ConversionRecord is the manifest entry kept for a document after each
// conversion attempt.
type ConversionRecord struct {
	Document `yaml:",inline"`

	// SourceModTime is the input modification time seen when converting.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// Status is the outcome of the last attempt.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is when the last attempt finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
