package grid

import "sync"

// Snapshot is a copy of the controller state tagged with the number of
// dispatches that produced it.
type Snapshot struct {
	State
	Version uint64 `json:"version"`
}

// Controller owns the grid shown to HTTP clients. Dispatches are serialized
// so concurrent requests observe whole transitions.
type Controller struct {
	mu      sync.Mutex
	state   State
	version uint64
}

// NewController returns a controller holding an empty grid.
func NewController() *Controller {
	return &Controller{}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state.clone(), Version: c.version}
}

// Dispatch applies a and returns a copy of the resulting state. Every
// dispatch bumps the version, so clients can drop responses older than one
// they already rendered.
func (c *Controller) Dispatch(a Action) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Apply(c.state, a)
	c.version++
	return Snapshot{State: c.state.clone(), Version: c.version}
}
