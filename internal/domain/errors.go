package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData reports that too few locations were supplied for the
// requested computation (a distance matrix needs two, a tour needs at least
// one non-depot stop). Surfaced to the caller with no partial result.
var ErrInsufficientData = errors.New("insufficient location data")

// ValidationError reports malformed input: an out-of-range coordinate, an
// invalid zone count or hour, a duplicate id. Never retried internally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidRouteError reports a structurally broken route handed to the
// metrics aggregator: wrong endpoints, a missing or duplicated stop, or an
// id the distance matrix does not cover. On an engine-produced route this
// indicates an engine bug, not bad caller input.
type InvalidRouteError struct {
	Reason string
}

func (e *InvalidRouteError) Error() string {
	return "invalid route: " + e.Reason
}
