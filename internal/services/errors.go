package services

import (
	"errors"
	"fmt"
)

// ErrResourceNotFound is returned when a product is declared as a
// subscription but no group contains a subscription with its product
// identifier.
var ErrResourceNotFound = errors.New("no subscription matches the product identifier")

// ErrNoPricePoints is returned when a price match is attempted against
// an empty candidate set. Callers treat it as "no price points found
// for this territory".
var ErrNoPricePoints = errors.New("no price points to match against")

// ValidationError reports a missing required input at the update
// boundary.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
