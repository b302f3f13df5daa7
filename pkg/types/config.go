// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ListDetection selects the pluralization heuristic that decides whether a
// sole child element is represented as a one-element array.
type ListDetection string

const (
	// ListDetectionNone disables list detection: a single child is never
	// wrapped in an array.
	ListDetectionNone ListDetection = "none"
	// ListDetectionStem compares English stems of parent and child names.
	ListDetectionStem ListDetection = "stem"
	// ListDetectionSuffix strips a trailing "s" from the parent name and
	// compares the remainder with the child name.
	ListDetectionSuffix ListDetection = "suffix"
	// ListDetectionInflection singularizes the parent name with English
	// inflection rules and compares the result with the child name.
	ListDetectionInflection ListDetection = "inflection"
)

// ListDetections lists every supported strategy in display order.
var ListDetections = []ListDetection{
	ListDetectionNone,
	ListDetectionStem,
	ListDetectionSuffix,
	ListDetectionInflection,
}

// EngineConfig holds the settings consumed by the XML-to-value engine.
type EngineConfig struct {
	// IgnoreAttributes names attributes that never become output keys
	// (e.g. "schemaLocation").
	IgnoreAttributes []string `json:"ignore_attributes" yaml:"ignore_attributes"`

	// ListDetection selects the pluralization heuristic (default "stem").
	ListDetection ListDetection `json:"list_detection" yaml:"list_detection"`
}

// DefaultEngineConfig drops XML Schema location hints and detects lists by
// stemming.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		IgnoreAttributes: []string{"schemaLocation"},
		ListDetection:    ListDetectionStem,
	}
}

// OutputFormat selects the serialization written for each document.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Extension returns the file extension, including the dot, for the format.
func (f OutputFormat) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// OutputConfig controls how converted values are serialized.
type OutputConfig struct {
	// Format selects json or yaml output (default json).
	Format OutputFormat `json:"format" yaml:"format"`

	// Indent is the indentation unit for JSON output. Empty writes compact
	// JSON; the CLI defaults to two spaces.
	Indent string `json:"indent" yaml:"indent"`

	// SortKeys emits object keys in lexical order instead of document order.
	SortKeys bool `json:"sort_keys" yaml:"sort_keys"`

	// Root, when set, writes only the value under this top-level key. A
	// document whose root element has another name fails conversion.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

// ConversionConfig groups all settings for a batch conversion run.
type ConversionConfig struct {
	EngineConfig `yaml:",inline"`
	OutputConfig `yaml:",inline"`

	// InputDir is the directory scanned for *.xml files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory receiving one output file per document.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Force overwrites existing outputs instead of skipping them.
	Force bool `json:"force" yaml:"force"`

	// FailFast aborts the batch on the first failed document.
	FailFast bool `json:"fail_fast" yaml:"fail_fast"`

	// Jobs is the number of documents converted concurrently (default 1).
	Jobs int `json:"jobs" yaml:"jobs"`

	// Manifest is the path of the SQLite conversion manifest. Empty
	// disables incremental tracking.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}
