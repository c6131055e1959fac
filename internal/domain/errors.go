package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyBundle rejects a feature bundle that carries no source analyses at
// all. The historical baseline alone cannot support a meaningful assessment,
// so callers should treat this as a request-level failure.
var ErrEmptyBundle = errors.New("feature bundle contains no source analyses")

// ErrInvalidBundle wraps structural validation failures such as coordinates
// outside their legal ranges.
var ErrInvalidBundle = errors.New("invalid feature bundle")

// ErrSourceAbsent signals that a model's source was not supplied in the
// bundle. The aggregator skips the source without recording a factor.
var ErrSourceAbsent = errors.New("source not present in bundle")

// MissingFeatureError reports a source analysis that is present but lacks a
// required field. The affected source is treated as unavailable and the rest
// of the assessment proceeds with reduced confidence.
type MissingFeatureError struct {
	Source Source
	Field  string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("%s analysis missing required field %q", e.Source, e.Field)
}

// InvalidSensitivityError rejects a sensitivity value outside the enumerated
// set. The request fails before any scoring occurs.
type InvalidSensitivityError struct {
	Value string
}

func (e *InvalidSensitivityError) Error() string {
	return fmt.Sprintf("invalid sensitivity %q: must be one of low, medium, high", e.Value)
}
