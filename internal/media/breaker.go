package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "media-storage"

// BreakerStorage guards a [Storage] with a circuit breaker. While the circuit
// is open every call fails immediately with [ErrUnavailable].
type BreakerStorage struct {
	next Storage
	cb   *gobreaker.CircuitBreaker[string]
}

// BreakerSettings tunes the breaker. Zero values fall back to defaults.
type BreakerSettings struct {
	// MinRequests is the number of calls in the current window before the
	// failure ratio is evaluated.
	MinRequests uint32
	// FailureRatio opens the circuit once reached.
	FailureRatio float64
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MinRequests == 0 {
		s.MinRequests = 5
	}
	if s.FailureRatio <= 0 {
		s.FailureRatio = 0.6
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	return s
}

func NewBreakerStorage(next Storage, settings BreakerSettings, log *logger.Logger) *BreakerStorage {
	settings = settings.withDefaults()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRatio
		},
		// the caller giving up is not a storage failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrEmptyKey)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerStorage{next: next, cb: cb}
}

func (b *BreakerStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	return b.execute(func() (string, error) {
		return b.next.Save(ctx, key, r, contentType)
	})
}

func (b *BreakerStorage) Delete(ctx context.Context, location string) error {
	_, err := b.execute(func() (string, error) {
		return "", b.next.Delete(ctx, location)
	})
	return err
}

// State exposes the breaker state for health reporting.
func (b *BreakerStorage) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStorage) execute(fn func() (string, error)) (string, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result, err
}
