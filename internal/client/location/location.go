// Package location abstracts the device position source driving the
// dashboard.
package location

import (
	"context"
	"errors"
	"time"
)

// ErrPermissionDenied is returned by Watch when the position source refuses
// access.
var ErrPermissionDenied = errors.New("permission to access location was denied")

// DefaultInterval is the cadence between position updates.
const DefaultInterval = 10 * time.Second

// Position is one observed device position.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Altitude  float64
}

// Provider streams device positions. Watch returns a channel that closes
// when ctx is done.
type Provider interface {
	Watch(ctx context.Context) (<-chan Position, error)
}
