// Package disposable provides cancellation primitives for subscriptions.
//
// A Disposable releases whatever resource or activity it stands for.
// All implementations are idempotent and safe for concurrent use, including
// disposal from within the callbacks of the thing being disposed.
//
// Two container types cover the common composition patterns:
//
//   - Serial: holds at most one live disposable; assigning a new one
//     disposes the previous one first (swap-and-dispose).
//   - Composite: disposes a set of disposables together.
package disposable
