package disposable

import "sync"

// Composite aggregates disposables so they can be disposed together.
// Adding to an already-disposed Composite disposes the new member
// immediately.
type Composite struct {
	mu       sync.Mutex
	members  []Disposable
	disposed bool
}

// NewComposite creates a Composite holding the given disposables.
func NewComposite(members ...Disposable) *Composite {
	c := &Composite{}
	for _, d := range members {
		c.Add(d)
	}
	return c
}

// Add registers d for disposal with the group. If the Composite was already
// disposed, d is disposed immediately. Nil members are ignored.
func (c *Composite) Add(d Disposable) {
	if d == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	c.members = append(c.members, d)
	c.mu.Unlock()
}

// Dispose disposes all members. Safe to call multiple times; members added
// afterwards are disposed on arrival. Members are disposed outside the lock.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	members := c.members
	c.members = nil
	c.mu.Unlock()

	for _, d := range members {
		d.Dispose()
	}
}

// Disposed reports whether the Composite has been disposed.
func (c *Composite) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
