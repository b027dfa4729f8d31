package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobreaker "github.com/sony/gobreaker/v2"
)

type stubStorage struct {
	calls int
	err   error
}

func (s *stubStorage) Save(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.test/" + key, nil
}

func (s *stubStorage) Delete(_ context.Context, _ string) error {
	s.calls++
	return s.err
}

func TestBreakerStorage_PassesThrough(t *testing.T) {
	next := &stubStorage{}
	b := NewBreakerStorage(next, BreakerSettings{}, logger.Nop())

	url, err := b.Save(context.Background(), "k", strings.NewReader("x"), "")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/k", url)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerStorage_OpensAfterFailures(t *testing.T) {
	cause := errors.New("s3 down")
	next := &stubStorage{err: cause}
	b := NewBreakerStorage(next, BreakerSettings{MinRequests: 3, FailureRatio: 1}, logger.Nop())

	for range 3 {
		_, err := b.Save(context.Background(), "k", strings.NewReader("x"), "")
		assert.ErrorIs(t, err, cause)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Save(context.Background(), "k", strings.NewReader("x"), "")

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, next.calls, "open circuit must not reach the storage")
}

func TestBreakerStorage_CanceledCallerDoesNotTrip(t *testing.T) {
	next := &stubStorage{err: context.Canceled}
	b := NewBreakerStorage(next, BreakerSettings{MinRequests: 1, FailureRatio: 0.5}, logger.Nop())

	for range 5 {
		_ = b.Delete(context.Background(), "k")
	}

	assert.Equal(t, gobreaker.StateClosed, b.State())
}
