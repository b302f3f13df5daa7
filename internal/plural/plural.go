// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plural decides whether a child element name looks like the
// singular form of its parent's name, e.g. <groups><group/></groups>.
package plural

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/kljensen/snowball/english"

	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// Heuristic judges parent/child name pairs.
type Heuristic interface {
	// LooksSingularOf reports whether child appears to be the singular of parent.
	LooksSingularOf(parent, child string) bool
}

// New returns the heuristic for a list detection strategy. ListDetectionNone
// yields a nil Heuristic; callers treat nil as "never a list".
func New(s types.ListDetection) (Heuristic, error) {
	switch s {
	case types.ListDetectionNone:
		return nil, nil
	case types.ListDetectionStem:
		return StemEquality{}, nil
	case types.ListDetectionSuffix:
		return SuffixStrip{}, nil
	case types.ListDetectionInflection:
		return Inflection{}, nil
	default:
		return nil, fmt.Errorf("unknown list detection strategy %q (want one of %s)", s, strategyNames())
	}
}

// Parse converts a strategy name to a ListDetection. The empty string selects
// the stemming strategy.
func Parse(name string) (types.ListDetection, error) {
	if name == "" {
		return types.ListDetectionStem, nil
	}
	s := types.ListDetection(strings.ToLower(strings.TrimSpace(name)))
	if _, err := New(s); err != nil {
		return "", err
	}
	return s, nil
}

func strategyNames() string {
	names := make([]string, len(types.ListDetections))
	for i, s := range types.ListDetections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// StemEquality compares Snowball English stems of both names. It handles
// plurals such as "categories"/"category" that suffix stripping misses.
type StemEquality struct{}

func (StemEquality) LooksSingularOf(parent, child string) bool {
	return english.Stem(parent, true) == english.Stem(child, true)
}

// SuffixStrip matches when parent is child followed by a single "s".
type SuffixStrip struct{}

func (SuffixStrip) LooksSingularOf(parent, child string) bool {
	stem, ok := strings.CutSuffix(parent, "s")
	return ok && stem != "" && stem == child
}

// Inflection singularizes parent with English inflection rules, covering
// irregular forms like "people"/"person" and "addresses"/"address".
type Inflection struct{}

func (Inflection) LooksSingularOf(parent, child string) bool {
	return parent != child && inflection.Singular(parent) == child
}
