package input

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Source delivers raw key events from a backend. The channel is closed when
// the backend shuts down.
type Source interface {
	Events() <-chan RawInput
}

// Context is a named set of recognized actions read from one Source.
// Codes that map to unregistered actions are dropped.
type Context struct {
	name       string
	source     Source
	registered mapset.Set[Action]
	timeout    time.Duration
}

// NewContext creates an input context reading from src. A nil src never
// produces events, so HandleInput only returns on timeout.
func NewContext(name string, src Source) *Context {
	return &Context{
		name:       name,
		source:     src,
		registered: mapset.New[Action](),
	}
}

// Name returns the context name.
func (c *Context) Name() string {
	return c.name
}

// RegisterAction adds an action to the recognized set.
func (c *Context) RegisterAction(a Action) {
	c.registered.Put(a)
}

// IsRegistered reports whether HandleInput can return a.
func (c *Context) IsRegistered(a Action) bool {
	return c.registered.Has(a)
}

// SetTimeout bounds how long HandleInput waits. Zero waits forever.
func (c *Context) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Timeout returns the configured wait bound.
func (c *Context) Timeout() time.Duration {
	return c.timeout
}

// HandleInput blocks until a registered action arrives or the timeout
// elapses, returning ActionTimeout in the latter case. A closed source is
// reported as ActionQuit.
func (c *Context) HandleInput() Action {
	var events <-chan RawInput
	if c.source != nil {
		events = c.source.Events()
	}

	var deadline <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case raw, ok := <-events:
			if !ok {
				return ActionQuit
			}
			intent := MapToIntent(NewDebouncedInput(raw))
			if intent.Action != ActionNone && c.registered.Has(intent.Action) {
				return intent.Action
			}
		case <-deadline:
			return ActionTimeout
		}
	}
}
