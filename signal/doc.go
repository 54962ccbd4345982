// Package signal provides cold, push-based reactive streams.
//
// A Signal[V, E] produces zero or more V values followed by at most one
// terminal event: a failure carrying E, or completion. Nothing runs until
// Subscribe, and every subscription activates an independent run of the
// producer. Subscribe returns a disposable.Disposable that cancels the
// subscription; cancellation is idempotent and safe from any goroutine,
// including from within observer callbacks.
//
// # Producers
//
//   - New: wrap a generator function
//   - Of: emit the given values, then complete
//   - Fail: fail immediately
//   - Empty: complete immediately
//   - Defer: build the signal from a factory at subscription time
//
// # Operators
//
// Value and error shaping:
//
//   - Map, MapError, Filter, Tap
//   - IgnoreValues: keep only the terminal event
//   - Promote, PromoteValues: retype channels that statically carry nothing
//
// Flattening a signal of signals into one output signal:
//
//   - SwitchLatest: a new inner cancels and replaces the running one
//   - Queue: inners run strictly one after another, FIFO
//   - Throttle: like Queue, but only the newest pending inner is kept
//   - FlatMapLatest, FlatMapQueue, FlatMapThrottle: map-then-flatten
//   - Then: run one signal, then another, sequentially
//
// Diagnostics taps (opt-in, pass-through):
//
//   - LogEvents: structured logging of every event
//   - Metered: OpenTelemetry metrics per subscription
//   - Traced: one OpenTelemetry span per subscription
//
// # Concurrency
//
// The package owns no scheduler. Producers may deliver events from any
// goroutine, including synchronously from the subscribing one. At most one
// inner signal is live under any flattening discipline, so values reaching
// the downstream observer are never interleaved across inners: each inner's
// values form a contiguous run, and runs appear in inner start order.
package signal
