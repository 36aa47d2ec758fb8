package session

import (
	"context"
	"errors"
	"sync"

	"github.com/runbuddy/runbuddy/internal/models"
)

// ErrAborted is delivered when the runner leaves intake without a profile.
var ErrAborted = errors.New("intake aborted")

// Result is what intake hands to the session bootstrap.
type Result struct {
	Profile models.Profile
	// Loaded is true when the profile came from an existing file rather
	// than the form, so it does not need to be saved again.
	Loaded bool
}

// Ready is a one-shot future for the intake outcome. It is resolved exactly
// once, by Resolve or Fail; later calls are ignored.
type Ready struct {
	once   sync.Once
	done   chan struct{}
	result Result
	err    error
}

// NewReady returns an unresolved future.
func NewReady() *Ready {
	return &Ready{done: make(chan struct{})}
}

// Resolve completes the future with res. It reports whether this call won.
func (r *Ready) Resolve(res Result) bool {
	won := false
	r.once.Do(func() {
		r.result = res
		won = true
		close(r.done)
	})
	return won
}

// Fail completes the future with err. It reports whether this call won.
func (r *Ready) Fail(err error) bool {
	won := false
	r.once.Do(func() {
		r.err = err
		won = true
		close(r.done)
	})
	return won
}

// Done is closed once the future is resolved.
func (r *Ready) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the future resolves or ctx is done.
func (r *Ready) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
