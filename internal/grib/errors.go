package grib

import "fmt"

// NoMatchError reports that no record satisfied a matcher set. It is always
// fatal to the operation that raised it; retries belong to the acquisition
// layer, not here.
type NoMatchError struct {
	Matchers Matchers
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no record matches %s", e.Matchers)
}

// AmbiguousMatchError reports that more than one record satisfied a matcher
// set. It indicates either a malformed source file or a mapping entry missing
// a level-type/level override, so the exact matcher set and hit count are
// carried for diagnosis.
type AmbiguousMatchError struct {
	Matchers Matchers
	Hits     int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match: %d records match %s", e.Hits, e.Matchers)
}

// MissingTemplateError reports that the expected per-model template file does
// not exist. There is no identity-only fallback: downstream consumers require
// the full fixed field set the template defines.
type MissingTemplateError struct {
	Model string
	Path  string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("template for model %q not found at %s", e.Model, e.Path)
}

// StructuralMismatchError reports that an assembled output sequence does not
// have exactly one record per retained template slot.
type StructuralMismatchError struct {
	Want int
	Got  int
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("output has %d records, template defines %d slots", e.Got, e.Want)
}
