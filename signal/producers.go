package signal

import "github.com/kbukum/streamkit/disposable"

// Of emits the given values synchronously on subscription, then completes.
// Disposing the subscription from within an observer callback stops the
// remaining emissions.
func Of[V, E any](values ...V) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		d := disposable.Func(nil)
		for _, v := range values {
			if d.Disposed() {
				return d
			}
			obs.Next(v)
		}
		if !d.Disposed() {
			obs.Complete()
		}
		return d
	})
}

// Empty completes immediately without producing values.
func Empty[V, E any]() Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		obs.Complete()
		return disposable.Func(nil)
	})
}

// Fail fails immediately with e.
func Fail[V, E any](e E) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		obs.Fail(e)
		return disposable.Func(nil)
	})
}

// Defer builds the signal from factory at subscription time, once per
// subscription, so every subscriber gets an independently constructed signal.
func Defer[V, E any](factory func() Signal[V, E]) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		return factory().Subscribe(obs)
	})
}
