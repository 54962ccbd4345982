package signal

import "github.com/kbukum/streamkit/disposable"

// Map transforms each value using fn.
func Map[V, U, E any](s Signal[V, E], fn func(V) U) Signal[U, E] {
	return New(func(obs Observer[U, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, E]{
			OnNext:     func(v V) { obs.Next(fn(v)) },
			OnFail:     obs.Fail,
			OnComplete: obs.Complete,
		})
	})
}

// MapError transforms the terminal error using fn.
func MapError[V, E, F any](s Signal[V, E], fn func(E) F) Signal[V, F] {
	return New(func(obs Observer[V, F]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, E]{
			OnNext:     obs.Next,
			OnFail:     func(e E) { obs.Fail(fn(e)) },
			OnComplete: obs.Complete,
		})
	})
}

// Filter keeps only values that satisfy keep.
func Filter[V, E any](s Signal[V, E], keep func(V) bool) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, E]{
			OnNext: func(v V) {
				if keep(v) {
					obs.Next(v)
				}
			},
			OnFail:     obs.Fail,
			OnComplete: obs.Complete,
		})
	})
}

// Tap calls fn as a side-effect for each value, then passes it through
// unchanged.
func Tap[V, E any](s Signal[V, E], fn func(V)) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, E]{
			OnNext: func(v V) {
				fn(v)
				obs.Next(v)
			},
			OnFail:     obs.Fail,
			OnComplete: obs.Complete,
		})
	})
}

// Then subscribes first and forwards its values and error. When first
// completes — and only then — it subscribes second and forwards its values,
// error and completion. Cancelling the returned subscription tears down
// whichever stage is active.
func Then[V, E any](first, second Signal[V, E]) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		group := disposable.NewComposite()
		group.Add(first.Subscribe(Callbacks[V, E]{
			OnNext: obs.Next,
			OnFail: obs.Fail,
			OnComplete: func() {
				group.Add(second.Subscribe(obs))
			},
		}))
		return group
	})
}

// IgnoreValues forwards only the terminal event of s, retyping the value
// channel to Never to signal that no values can be produced.
func IgnoreValues[V, E any](s Signal[V, E]) Signal[Never, E] {
	return New(func(obs Observer[Never, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, E]{
			OnFail:     obs.Fail,
			OnComplete: obs.Complete,
		})
	})
}

// Promote widens the error channel of a signal that cannot fail. No runtime
// conversion takes place: the error path is unreachable, and a producer that
// delivers on it anyway has broken the contract.
func Promote[E, V any](s Signal[V, Never]) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[V, Never]{
			OnNext: obs.Next,
			OnFail: func(Never) {
				panic("signal: Fail delivered on a Never error channel")
			},
			OnComplete: obs.Complete,
		})
	})
}

// PromoteValues widens the value channel of a signal that produces no
// values, so suppressed signals compose with Then. The value path is
// unreachable.
func PromoteValues[V, E any](s Signal[Never, E]) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		return s.Subscribe(Callbacks[Never, E]{
			OnNext: func(Never) {
				panic("signal: Next delivered on a Never value channel")
			},
			OnFail:     obs.Fail,
			OnComplete: obs.Complete,
		})
	})
}

// FlatMapLatest maps each value of s to an inner signal and flattens with
// cancel-latest semantics: a newly produced inner cancels the running one.
func FlatMapLatest[V, U, E any](s Signal[V, E], fn func(V) Signal[U, E]) Signal[U, E] {
	return SwitchLatest(Map(s, fn))
}

// FlatMapQueue maps each value of s to an inner signal and flattens with
// strict FIFO serialization.
func FlatMapQueue[V, U, E any](s Signal[V, E], fn func(V) Signal[U, E]) Signal[U, E] {
	return Queue(Map(s, fn))
}

// FlatMapThrottle maps each value of s to an inner signal and flattens
// keeping only the newest pending inner while one executes.
func FlatMapThrottle[V, U, E any](s Signal[V, E], fn func(V) Signal[U, E]) Signal[U, E] {
	return Throttle(Map(s, fn))
}

// FlatMapLatestFrom is FlatMapLatest for an outer signal that cannot fail:
// the outer's error channel is promoted to the inner error type without any
// runtime conversion.
func FlatMapLatestFrom[V, U, E any](s Signal[V, Never], fn func(V) Signal[U, E]) Signal[U, E] {
	return SwitchLatest(Promote[E](Map(s, fn)))
}
