// Package license maps free-form license declarations to a canonical
// taxonomy of license identifiers.
//
// Package metadata declares licenses in wildly inconsistent forms: SPDX
// short names ("Apache-2.0"), full names ("Apache License, Version 2.0"),
// abbreviations ("ASL 2.0"), trove classifiers, and plain typos. The
// normalizer folds known surface forms onto a single identifier per
// license family so that downstream aggregation can compare claims from
// different discovery paths.
//
// Normalization is a pure function of its input: it never fails, never
// touches the filesystem or network, and unmatched text degrades to the
// Unrecognized sentinel with the original text preserved for human review.
//
// True SPDX expression semantics (OR-choice vs AND-conjunction) are
// deliberately not modeled. Multi-valued declarations split into their
// component identifiers, which is sufficient for conflict flagging.
package license

// Unrecognized is the sentinel canonical id for license text that could
// not be mapped to the taxonomy, including empty declarations.
const Unrecognized = "UNRECOGNIZED"

// Normalized is a canonical license identifier derived from raw text.
type Normalized struct {
	// ID is the canonical identifier (e.g. "MIT", "Apache-2.0") or
	// Unrecognized.
	ID string
	// Original is the trimmed source text the id was derived from.
	Original string
}

// Recognized reports whether the license mapped to a known identifier.
func (n Normalized) Recognized() bool {
	return n.ID != Unrecognized
}
