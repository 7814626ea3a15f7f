package entity

import "sync"

// Signal is a one-shot cancellation source. It starts non-signaled and
// transitions once, irreversibly, to the signaled state, carrying an opaque
// reason value. All methods are safe for concurrent use.
type Signal struct {
	mu        sync.Mutex
	done      chan struct{}
	reason    any
	cancelled bool
}

// NewSignal creates a signal in the non-signaled state
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Cancel transitions the signal to the signaled state carrying the given
// reason. Only the first call has any effect and returns true; later calls
// return false and leave the original reason in place.
func (s *Signal) Cancel(reason any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return false
	}
	s.cancelled = true
	s.reason = reason
	close(s.done)
	return true
}

// Done returns a channel that is closed once the signal fires
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Cancelled reports whether the signal has fired
func (s *Signal) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Reason returns the value passed to the winning Cancel call, or nil while
// the signal has not fired
func (s *Signal) Reason() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}
