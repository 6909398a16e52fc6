package service

import (
	"errors"
	"fmt"
	"strings"
)

// Terminal pipeline errors. Handlers map each to a distinct HTTP status.
var (
	// ErrInvalidInput covers malformed or out-of-range generation requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotPermitted means the account's llm_allowed flag is absent or off.
	ErrNotPermitted = errors.New("LLM access not permitted")
	// ErrRateLimited means the trailing-hour request quota is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrGenerationFailed wraps any failure of the AI service call.
	ErrGenerationFailed = errors.New("generation failed")
)

// AllergyConflictError is returned when fewer than the minimum number of
// ingredients survive allergy filtering.
type AllergyConflictError struct {
	Flagged   []string
	Allergies []string
}

func (e *AllergyConflictError) Error() string {
	return fmt.Sprintf("too many ingredients conflict with your allergies: %s", strings.Join(e.Flagged, ", "))
}
