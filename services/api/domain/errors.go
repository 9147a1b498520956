package domain

import (
	"errors"
	"fmt"
)

// ErrNoData signals that a query's filtered result set is empty.
var ErrNoData = errors.New("no data for the specified period")

// ErrSensorNotFound signals that a referenced sensor id is absent from the
// registry on a lookup query.
var ErrSensorNotFound = errors.New("sensor not found")

// UnauthorizedSensorError is returned when an ingest names a sensor that is
// not present in the registry.
type UnauthorizedSensorError struct {
	SensorID string
}

func (e *UnauthorizedSensorError) Error() string {
	return fmt.Sprintf("sensor '%s' is not authorized", e.SensorID)
}

// InvalidReadingError is returned when an ingest payload fails validation.
// Errors carries the per-field validation messages in check order.
type InvalidReadingError struct {
	Errors []string
}

func (e *InvalidReadingError) Error() string {
	return fmt.Sprintf("invalid reading: %v", e.Errors)
}
