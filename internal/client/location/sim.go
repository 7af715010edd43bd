package location

import (
	"context"
	"math"
	"time"
)

// SimProvider emits a simulated drive around a starting point on a fixed
// interval. It stands in for the platform position source on hosts without
// one.
type SimProvider struct {
	Start    Position
	Interval time.Duration
	Denied   bool
}

// NewSimProvider simulates a position stream starting in central Kathmandu.
func NewSimProvider() *SimProvider {
	return &SimProvider{
		Start:    Position{Latitude: 27.7172, Longitude: 85.3240, Accuracy: 5, Altitude: 1400},
		Interval: DefaultInterval,
	}
}

func (p *SimProvider) Watch(ctx context.Context) (<-chan Position, error) {
	if p.Denied {
		return nil, ErrPermissionDenied
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	out := make(chan Position, 1)

	// First fix immediately, then one per interval.
	out <- p.Start

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		step := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				step++
				pos := p.Start
				pos.Latitude += 0.0005 * math.Sin(float64(step)/10)
				pos.Longitude += 0.0005 * math.Cos(float64(step)/10)
				select {
				case out <- pos:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
