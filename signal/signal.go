package signal

import "github.com/kbukum/streamkit/disposable"

// Observer receives the events of one subscription.
//
// The producer contract: Next is called zero or more times, then at most one
// of Fail or Complete. No calls are valid after a terminal event; a producer
// that breaks this is violating the contract, not raising a recoverable
// condition.
type Observer[V, E any] interface {
	// Next delivers a value.
	Next(v V)
	// Fail delivers the terminal error.
	Fail(e E)
	// Complete delivers successful termination.
	Complete()
}

// Callbacks adapts plain functions to the Observer interface.
// Nil callbacks are skipped.
type Callbacks[V, E any] struct {
	OnNext     func(V)
	OnFail     func(E)
	OnComplete func()
}

func (c Callbacks[V, E]) Next(v V) {
	if c.OnNext != nil {
		c.OnNext(v)
	}
}

func (c Callbacks[V, E]) Fail(e E) {
	if c.OnFail != nil {
		c.OnFail(e)
	}
}

func (c Callbacks[V, E]) Complete() {
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

// Never is an uninhabited marker type for channels that statically carry
// nothing: the error channel of signals that cannot fail, or the value
// channel of signals consumed purely for their terminal event. No event
// carrying a Never is ever delivered at runtime.
type Never struct{}

// Signal is a cold, lazy push stream of V values terminated by at most one
// E failure or one completion. The zero Signal is not usable; construct
// signals with New or the package producers.
type Signal[V, E any] struct {
	start func(Observer[V, E]) disposable.Disposable
}

// New creates a signal from a generator. The generator runs once per
// subscription, delivers events to the observer, and returns the
// subscription's cancellation handle. It must honor the Observer contract
// and stop delivering once the returned disposable is disposed.
func New[V, E any](start func(Observer[V, E]) disposable.Disposable) Signal[V, E] {
	return Signal[V, E]{start: start}
}

// Subscribe activates production and returns the cancellation handle.
func (s Signal[V, E]) Subscribe(obs Observer[V, E]) disposable.Disposable {
	d := s.start(obs)
	if d == nil {
		return disposable.Func(nil)
	}
	return d
}

// SubscribeFunc subscribes with plain callbacks. Nil callbacks are skipped.
func (s Signal[V, E]) SubscribeFunc(next func(V), fail func(E), complete func()) disposable.Disposable {
	return s.Subscribe(Callbacks[V, E]{OnNext: next, OnFail: fail, OnComplete: complete})
}
