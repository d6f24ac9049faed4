// Package services defines the business logic for wheels, visits, and
// dashboard statistics. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; the
// handler layer maps them to redirects or rendered pages.
package services

import "errors"

var (
	// ErrWheelNotFound indicates that no wheel exists for the requested
	// unique ID. Handlers map it to a soft-fail redirect to the home page.
	ErrWheelNotFound = errors.New("wheel not found")
)
