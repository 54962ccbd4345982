package signal

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/kbukum/streamkit/disposable"
)

func TestSwitchLatestCancelsPreviousInner(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	SwitchLatest(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	a.send(1)
	outer.send(b.signal())

	if _, disposals := a.counts(); disposals != 1 {
		t.Fatalf("expected replaced inner disposed once, got %d", disposals)
	}

	b.send(2)
	b.complete()
	outer.complete()

	values, fails, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{1, 2}) {
		t.Errorf("expected values [1 2], got %v", values)
	}
	if len(fails) != 0 {
		t.Errorf("expected no failures, got %v", fails)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestSwitchLatestDefersCompletionToRunningInner(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	SwitchLatest(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	a.send(1)
	outer.complete()

	if _, _, completes := rec.snapshot(); completes != 0 {
		t.Fatal("completed while the last inner was still running")
	}

	a.send(2)
	a.complete()

	values, _, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{1, 2}) {
		t.Errorf("expected values [1 2], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestSwitchLatestConcatenatesSynchronousInners(t *testing.T) {
	rec := &recorder[int, string]{}

	SwitchLatest(Of[Signal[int, string], string](
		Of[int, string](1, 2),
		Of[int, string](3, 4),
	)).Subscribe(rec)

	values, _, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{1, 2, 3, 4}) {
		t.Errorf("expected values [1 2 3 4], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestQueueRunsInnersInArrivalOrder(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	Queue(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	a.send(1)
	outer.send(Of[int, string](3, 4))
	outer.send(Of[int, string](5, 6))
	a.send(2)

	if values, _, _ := rec.snapshot(); !reflect.DeepEqual(values, []int{1, 2}) {
		t.Fatalf("pending inners ran before the executing one finished: %v", values)
	}

	a.complete()
	outer.complete()

	values, _, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("expected values [1 2 3 4 5 6], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestQueueDoesNotInterruptExecutingInner(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	Queue(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	outer.send(b.signal())

	if subs, _ := b.counts(); subs != 0 {
		t.Fatal("queued inner subscribed while another was executing")
	}
	if _, disposals := a.counts(); disposals != 0 {
		t.Fatal("executing inner disposed by a queued arrival")
	}

	a.complete()

	if subs, _ := b.counts(); subs != 1 {
		t.Fatalf("expected queued inner subscribed after drain, got %d subscriptions", subs)
	}
}

func TestThrottleKeepsOnlyNewestPending(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	c := &pipe[int, string]{}
	d := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	Throttle(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	a.send(1)
	outer.send(b.signal())
	outer.send(c.signal())
	outer.send(d.signal())
	a.complete()

	if subs, _ := b.counts(); subs != 0 {
		t.Fatal("displaced pending inner was subscribed")
	}
	if subs, _ := c.counts(); subs != 0 {
		t.Fatal("displaced pending inner was subscribed")
	}
	if subs, _ := d.counts(); subs != 1 {
		t.Fatalf("expected newest pending inner subscribed, got %d subscriptions", subs)
	}

	d.send(9)
	outer.complete()
	d.complete()

	values, _, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{1, 9}) {
		t.Errorf("expected values [1 9], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestQueueDefersCompletionUntilDrained(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	Queue(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	outer.send(b.signal())
	outer.complete()

	a.complete()
	if _, _, completes := rec.snapshot(); completes != 0 {
		t.Fatal("completed with an inner still pending")
	}

	b.send(7)
	b.complete()

	values, _, completes := rec.snapshot()
	if !reflect.DeepEqual(values, []int{7}) {
		t.Errorf("expected values [7], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected one completion, got %d", completes)
	}
}

func TestQueueFailureAbandonsPendingInners(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	Queue(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	outer.send(b.signal())
	a.fail("boom")

	_, fails, completes := rec.snapshot()
	if !reflect.DeepEqual(fails, []string{"boom"}) {
		t.Errorf("expected failure [boom], got %v", fails)
	}
	if completes != 0 {
		t.Errorf("expected no completion after failure, got %d", completes)
	}
	if subs, _ := b.counts(); subs != 0 {
		t.Error("pending inner subscribed after failure")
	}
	if _, disposals := a.counts(); disposals != 1 {
		t.Error("failed inner's subscription not torn down")
	}
	if _, disposals := outer.counts(); disposals != 1 {
		t.Error("outer subscription not torn down after failure")
	}
}

func TestOuterFailureDisposesExecutingInner(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	SwitchLatest(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	outer.fail("down")

	_, fails, completes := rec.snapshot()
	if !reflect.DeepEqual(fails, []string{"down"}) {
		t.Errorf("expected failure [down], got %v", fails)
	}
	if completes != 0 {
		t.Errorf("expected no completion, got %d", completes)
	}
	if _, disposals := a.counts(); disposals != 1 {
		t.Error("executing inner not disposed on outer failure")
	}
}

func TestFlattenDisposalCancelsOuterAndInner(t *testing.T) {
	outer := &pipe[Signal[int, string], string]{}
	a := &pipe[int, string]{}
	b := &pipe[int, string]{}
	rec := &recorder[int, string]{}

	d := Queue(outer.signal()).Subscribe(rec)

	outer.send(a.signal())
	outer.send(b.signal())

	d.Dispose()
	d.Dispose()

	if _, disposals := a.counts(); disposals != 1 {
		t.Errorf("expected executing inner disposed once, got %d", disposals)
	}
	if _, disposals := outer.counts(); disposals != 1 {
		t.Errorf("expected outer disposed once, got %d", disposals)
	}
	if subs, _ := b.counts(); subs != 0 {
		t.Error("pending inner subscribed after cancellation")
	}

	_, fails, completes := rec.snapshot()
	if len(fails) != 0 || completes != 0 {
		t.Errorf("cancellation delivered a terminal event: fails=%v completes=%d", fails, completes)
	}
}

func TestQueueBoundedStackUnderSynchronousCompletions(t *testing.T) {
	const inners = 100000

	gate := &pipe[int, string]{}
	outer := New(func(obs Observer[Signal[int, string], string]) disposable.Disposable {
		obs.Next(gate.signal())
		for i := 0; i < inners; i++ {
			obs.Next(Of[int, string](i))
		}
		obs.Complete()
		return disposable.Func(nil)
	})

	var count, completes, maxDepth int
	pcs := make([]uintptr, 1<<16)
	Queue(outer).SubscribeFunc(func(int) {
		count++
		if depth := runtime.Callers(0, pcs); depth > maxDepth {
			maxDepth = depth
		}
	}, nil, func() {
		completes++
	})

	// Everything behind the gate completes synchronously, one inner inside
	// the previous one's drain.
	gate.complete()

	if count != inners {
		t.Fatalf("expected %d values, got %d", inners, count)
	}
	if completes != 1 {
		t.Fatalf("expected one completion, got %d", completes)
	}
	if maxDepth > 200 {
		t.Fatalf("stack depth grew with queue length: %d frames", maxDepth)
	}
}

// --- test helpers ---

// recorder collects the events of one subscription for assertions.
type recorder[V, E any] struct {
	mu        sync.Mutex
	values    []V
	fails     []E
	completes int
}

func (r *recorder[V, E]) Next(v V) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recorder[V, E]) Fail(e E) {
	r.mu.Lock()
	r.fails = append(r.fails, e)
	r.mu.Unlock()
}

func (r *recorder[V, E]) Complete() {
	r.mu.Lock()
	r.completes++
	r.mu.Unlock()
}

func (r *recorder[V, E]) snapshot() (values []V, fails []E, completes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]V(nil), r.values...), append([]E(nil), r.fails...), r.completes
}

// pipe is a hand-driven producer: the test pushes events to the most recent
// subscriber after Subscribe returns, and can check how often the signal was
// subscribed and disposed.
type pipe[V, E any] struct {
	mu         sync.Mutex
	obs        Observer[V, E]
	subscribes int
	disposals  int
}

func (p *pipe[V, E]) signal() Signal[V, E] {
	return New(func(obs Observer[V, E]) disposable.Disposable {
		p.mu.Lock()
		p.obs = obs
		p.subscribes++
		p.mu.Unlock()
		return disposable.Func(func() {
			p.mu.Lock()
			p.disposals++
			p.mu.Unlock()
		})
	})
}

func (p *pipe[V, E]) observer() Observer[V, E] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obs
}

func (p *pipe[V, E]) send(v V)  { p.observer().Next(v) }
func (p *pipe[V, E]) fail(e E)  { p.observer().Fail(e) }
func (p *pipe[V, E]) complete() { p.observer().Complete() }

func (p *pipe[V, E]) counts() (subscribes, disposals int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribes, p.disposals
}
