package disposable

import "sync/atomic"

// Disposable releases a resource or cancels an activity.
// Dispose is idempotent and safe to call from any goroutine, including from
// within a callback of the activity being disposed.
type Disposable interface {
	// Dispose releases the resource. Calls after the first are no-ops.
	Dispose()
	// Disposed reports whether Dispose has been called.
	Disposed() bool
}

type funcDisposable struct {
	disposed atomic.Bool
	fn       func()
}

// Func wraps fn in a Disposable that runs it at most once.
// A nil fn yields a disposable that only tracks its disposed state.
func Func(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

func (d *funcDisposable) Dispose() {
	if d.disposed.Swap(true) {
		return
	}
	if d.fn != nil {
		d.fn()
	}
}

func (d *funcDisposable) Disposed() bool {
	return d.disposed.Load()
}
