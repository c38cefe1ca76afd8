package tiledisplay

import (
	"math"

	"tileview/pkg/game/renderer"
)

// Zoom bounds.
const (
	MinZoom     = 0.25
	MaxZoom     = 4.0
	DefaultZoom = 1.0
)

// ClampZoom limits v to [MinZoom, MaxZoom]. NaN resets to DefaultZoom.
func ClampZoom(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultZoom
	}
	return math.Min(math.Max(v, MinZoom), MaxZoom)
}

// DrawScale converts a zoom factor to renderer scale units.
func DrawScale(zoom float64) int {
	return int(math.Round(zoom * renderer.DefaultTileScale))
}

// zoomController owns the zoom factor and the lease on the renderer's
// pre-window draw scale.
type zoomController struct {
	level float64
	lease *renderer.ScaleLease
}

func newZoomController() zoomController {
	return zoomController{level: DefaultZoom}
}

func (z *zoomController) set(v float64) {
	z.level = ClampZoom(v)
}

// engage captures r's draw scale unless this window already holds it.
func (z *zoomController) engage(r renderer.Renderer) error {
	if z.lease != nil {
		if z.lease.Renderer() == r {
			return nil
		}
		// The active renderer changed under us; give the old one back first.
		z.restore()
	}
	lease, err := renderer.AcquireScale(r)
	if err != nil {
		return err
	}
	z.lease = lease
	return nil
}

// apply pushes the zoom to r as a draw scale.
func (z *zoomController) apply(r renderer.Renderer) {
	r.SetDrawScale(DrawScale(z.level))
}

// owed reports whether a captured scale is waiting to be restored.
func (z *zoomController) owed() bool {
	return z.lease != nil
}

// restore writes the captured scale back, if one is owed.
func (z *zoomController) restore() {
	if z.lease == nil {
		return
	}
	z.lease.Release()
	z.lease = nil
}
