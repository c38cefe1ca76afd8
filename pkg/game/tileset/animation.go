package tileset

// IdleAnimations is the clock that drives animated tiles. It only advances
// while enabled, so disabling animations freezes tiles on their current
// frame.
type IdleAnimations struct {
	enabled bool
	frame   uint64
}

// SetEnabled turns idle animation on or off.
func (a *IdleAnimations) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// Enabled reports whether the clock advances.
func (a *IdleAnimations) Enabled() bool {
	return a.enabled
}

// PrepareForRedraw advances the clock by one tick when enabled.
func (a *IdleAnimations) PrepareForRedraw() {
	if !a.enabled {
		return
	}
	a.frame++
}

// Frame returns the current tick.
func (a *IdleAnimations) Frame() uint64 {
	return a.frame
}
