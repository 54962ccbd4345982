package signal

import (
	"sync"
	"sync/atomic"

	"github.com/kbukum/streamkit/disposable"
)

// SwitchLatest flattens a signal of signals with cancel-and-replace
// semantics: each inner signal produced by the outer cancels the one running
// before it. The output completes once the outer has completed and the last
// started inner has completed.
func SwitchLatest[V, E any](outer Signal[Signal[V, E], E]) Signal[V, E] {
	return flatten(outer, false, false)
}

// Queue flattens a signal of signals with strict FIFO serialization: an
// inner arriving while another is executing waits its turn, and inners run
// in arrival order. The output completes once the outer has completed and
// the queue has drained.
func Queue[V, E any](outer Signal[Signal[V, E], E]) Signal[V, E] {
	return flatten(outer, true, false)
}

// Throttle flattens like Queue but keeps only the newest pending inner:
// each arrival while one is executing discards whatever was queued before
// it. The executing inner is never interrupted.
func Throttle[V, E any](outer Signal[Signal[V, E], E]) Signal[V, E] {
	return flatten(outer, true, true)
}

func flatten[V, E any](outer Signal[Signal[V, E], E], queueMode, throttleMode bool) Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		current := disposable.NewSerial()
		teardown := disposable.NewComposite(current)
		c := &coordinator[V, E]{
			out:          obs,
			current:      current,
			teardown:     teardown,
			queueMode:    queueMode,
			throttleMode: throttleMode,
		}
		teardown.Add(outer.Subscribe(Callbacks[Signal[V, E], E]{
			OnNext:     c.enqueue,
			OnFail:     c.fail,
			OnComplete: c.outerCompleted,
		}))
		return teardown
	})
}

// coordinator serializes or overlaps inner signals on behalf of one
// flattening subscription. One mutex guards the four state fields; observer
// callbacks and inner Subscribe calls always happen outside it, because an
// inner may deliver synchronously during its own Subscribe and reenter.
type coordinator[V, E any] struct {
	mu         sync.Mutex
	executing  bool
	terminated bool
	pending    []Signal[V, E]

	queueMode    bool
	throttleMode bool

	out      Observer[V, E]
	current  *disposable.Serial
	teardown *disposable.Composite
}

// enqueue is called once per inner signal the outer produces.
func (c *coordinator[V, E]) enqueue(inner Signal[V, E]) {
	c.mu.Lock()
	if c.queueMode && c.executing {
		if c.throttleMode {
			// Pending inners were never subscribed, so dropping them
			// needs no cancellation.
			c.pending = c.pending[:0]
		}
		c.pending = append(c.pending, inner)
		c.mu.Unlock()
		return
	}
	c.executing = true
	c.mu.Unlock()

	// Storing the new handle displaces the previous one from the holder,
	// cancelling the replaced inner in cancel-latest mode. In queue mode
	// the displaced handle is already terminal and disposing it is a no-op.
	c.current.Set(inner.Subscribe(Callbacks[V, E]{
		OnNext:     c.out.Next,
		OnFail:     c.fail,
		OnComplete: c.innerCompleted,
	}))
}

// innerCompleted drives the transition after an inner signal completes.
//
// An inner may complete synchronously, inside its own Subscribe call. Naive
// recursion here would grow the stack by one frame per synchronously
// completing inner queued behind it. The loop plus a per-iteration atomic
// exchange converts those self-calls into iteration: the subscriber after
// Subscribe returns and the completion callback both swap the flag, and
// whichever side swaps second owns resumption.
func (c *coordinator[V, E]) innerCompleted() {
	for {
		c.mu.Lock()
		c.executing = false
		var next Signal[V, E]
		hasNext := false
		if c.queueMode && len(c.pending) > 0 {
			next = c.pending[0]
			c.pending = c.pending[1:]
			c.executing = true
			hasNext = true
		}
		shouldComplete := !hasNext && c.terminated
		c.mu.Unlock()

		if shouldComplete {
			c.out.Complete()
			c.teardown.Dispose()
			return
		}
		if !hasNext {
			// Outer still running; the next enqueue starts the next inner.
			return
		}

		raced := new(atomic.Bool)
		c.current.Set(next.Subscribe(Callbacks[V, E]{
			OnNext: c.out.Next,
			OnFail: c.fail,
			OnComplete: func() {
				if raced.Swap(true) {
					// Subscribe had already returned: asynchronous
					// completion, restart the transition afresh.
					c.innerCompleted()
				}
			},
		}))
		if !raced.Swap(true) {
			// Completion hasn't fired yet; its callback resumes the drain.
			return
		}
		// The inner completed during its own Subscribe call: iterate.
	}
}

// outerCompleted is invoked when the outer signal completes. If an inner is
// still executing (or queued behind it), completion is deferred to the drain
// transition; otherwise it is delivered now.
func (c *coordinator[V, E]) outerCompleted() {
	c.mu.Lock()
	executing := c.executing
	c.terminated = true
	c.mu.Unlock()

	if !executing {
		c.out.Complete()
		c.teardown.Dispose()
	}
}

// fail forwards an outer or inner error as the sole terminal event and tears
// the subscription down. Pending inners are abandoned; they were never
// subscribed.
func (c *coordinator[V, E]) fail(e E) {
	c.out.Fail(e)
	c.teardown.Dispose()
}
