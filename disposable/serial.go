package disposable

import "sync"

// Serial owns at most one live disposable at a time.
// Set disposes the previously held disposable before storing the new one.
// Once the Serial itself is disposed it enters a terminal state: anything
// assigned afterwards is disposed immediately and nothing is stored.
type Serial struct {
	mu       sync.Mutex
	inner    Disposable
	disposed bool
}

// NewSerial creates an empty Serial holder.
func NewSerial() *Serial {
	return &Serial{}
}

// Set replaces the held disposable with d, disposing the previous one.
// If the Serial is already disposed, d is disposed immediately instead.
// A nil d simply clears the slot. The displaced disposable is disposed
// outside the holder's lock, so it may safely reenter the Serial.
func (s *Serial) Set(d Disposable) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	prev := s.inner
	s.inner = d
	s.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

// Dispose disposes the held disposable (if any) and moves the Serial into
// its terminal state. Safe to call multiple times.
func (s *Serial) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()

	if inner != nil {
		inner.Dispose()
	}
}

// Disposed reports whether the Serial has been disposed.
func (s *Serial) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
