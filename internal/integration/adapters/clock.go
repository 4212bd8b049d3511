// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock, in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
