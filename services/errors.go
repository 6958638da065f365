package services

import (
	"errors"
	"fmt"
)

// Expected, caller-recoverable conditions. Controllers map these to HTTP
// statuses; anything else is treated as an infrastructure failure.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("time slot conflict")
	ErrEmployeeUnavailable = errors.New("employee unavailable")
	ErrState               = errors.New("invalid state transition")
	ErrInsufficientPoints  = errors.New("insufficient loyalty points")
)

// CapacityError reports same-service concurrency exhaustion with the numbers
// needed for a user-facing message.
type CapacityError struct {
	Service string
	Count   int
	Limit   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("service %q fully booked: %d/%d concurrent appointments", e.Service, e.Count, e.Limit)
}
