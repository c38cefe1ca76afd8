package renderer

import (
	"errors"
	"sync"
)

// ErrScaleLeased is returned when a renderer's draw scale is already held by
// another lease.
var ErrScaleLeased = errors.New("renderer: draw scale already leased")

// ScaleLease records a renderer's draw scale at acquisition and writes it
// back exactly once on Release. Only one lease per renderer may be
// outstanding.
type ScaleLease struct {
	r        Renderer
	saved    int
	released bool
}

var (
	leaseMutex sync.Mutex
	leases     = make(map[Renderer]*ScaleLease)
)

// AcquireScale captures r's current draw scale.
func AcquireScale(r Renderer) (*ScaleLease, error) {
	leaseMutex.Lock()
	defer leaseMutex.Unlock()

	if _, held := leases[r]; held {
		return nil, ErrScaleLeased
	}
	l := &ScaleLease{r: r, saved: r.DrawScale()}
	leases[r] = l
	return l, nil
}

// Renderer returns the leased renderer.
func (l *ScaleLease) Renderer() Renderer {
	return l.r
}

// Saved returns the captured draw scale.
func (l *ScaleLease) Saved() int {
	return l.saved
}

// Released reports whether the scale has been restored.
func (l *ScaleLease) Released() bool {
	leaseMutex.Lock()
	defer leaseMutex.Unlock()
	return l.released
}

// Release restores the captured draw scale. Further calls do nothing.
func (l *ScaleLease) Release() {
	leaseMutex.Lock()
	defer leaseMutex.Unlock()

	if l.released {
		return
	}
	l.released = true
	l.r.SetDrawScale(l.saved)
	if leases[l.r] == l {
		delete(leases, l.r)
	}
}
