package intake

import "errors"

// Repository errors.
var (
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrDuplicateIncident = errors.New("duplicate incident")
)

// Handler errors.
var (
	ErrResetDisabled = errors.New("reset is disabled")
)
