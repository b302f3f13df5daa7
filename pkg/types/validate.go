// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks that a resolved configuration can drive a conversion run.
// Empty strategy and format fall back to their defaults and are accepted.
func (c ConversionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InputDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.ListDetection, validation.In(
			ListDetectionNone, ListDetectionStem, ListDetectionSuffix, ListDetectionInflection,
		).Error("must be one of none, stem, suffix, inflection")),
		validation.Field(&c.Format, validation.In(FormatJSON, FormatYAML).Error("must be json or yaml")),
		validation.Field(&c.Indent, validation.By(func(value any) error {
			if strings.Trim(value.(string), " \t") != "" {
				return validation.NewError("validation_indent_whitespace", "must contain only spaces and tabs")
			}
			return nil
		})),
		validation.Field(&c.Jobs, validation.Min(0)),
	)
}
