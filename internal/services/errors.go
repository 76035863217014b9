// Package services defines the business logic for vehicle records. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrVehicleNotFound indicates that the requested vehicle does not exist
	// in the store. It is returned by FindByID, by Save when updating a
	// nonexistent id, and by Delete.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrInvalidCondition is returned when a vehicle carries a condition
	// value outside the allowed set (USED, NEW).
	ErrInvalidCondition = errors.New("condition must be USED or NEW")
)
