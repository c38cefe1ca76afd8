package renderer

import (
	"errors"
	"testing"

	"tileview/pkg/engine/input"
)

type scaleRenderer struct {
	scale  int
	writes int
}

func (s *scaleRenderer) Init() error { return nil }
func (s *scaleRenderer) TileWidth() int { return 32 * s.scale / DefaultTileScale }
func (s *scaleRenderer) TileHeight() int { return 32 * s.scale / DefaultTileScale }
func (s *scaleRenderer) DrawScale() int { return s.scale }
func (s *scaleRenderer) SetDrawScale(v int) { s.scale = v; s.writes++ }
func (s *scaleRenderer) ProjectedSize() (int, int) { return 640, 480 }
func (s *scaleRenderer) GridSize() (int, int) { return 80, 30 }
func (s *scaleRenderer) Present() {}
func (s *scaleRenderer) InputSource() input.Source { return nil }

func TestScaleLease_RestoresOnce(t *testing.T) {
	r := &scaleRenderer{scale: 12}

	lease, err := AcquireScale(r)
	if err != nil {
		t.Fatalf("AcquireScale: %v", err)
	}
	r.SetDrawScale(40)
	r.SetDrawScale(8)

	lease.Release()
	if r.scale != 12 {
		t.Errorf("scale after Release = %d, want 12", r.scale)
	}
	writes := r.writes

	r.SetDrawScale(30)
	lease.Release()
	if r.scale != 30 {
		t.Errorf("second Release changed scale to %d, want 30 untouched", r.scale)
	}
	if r.writes != writes+1 {
		t.Errorf("writes = %d, want %d (second Release must not write)", r.writes, writes+1)
	}
	if !lease.Released() {
		t.Error("Released() = false after Release")
	}
}

func TestScaleLease_RejectsNestedAcquire(t *testing.T) {
	r := &scaleRenderer{scale: 16}

	first, err := AcquireScale(r)
	if err != nil {
		t.Fatalf("AcquireScale: %v", err)
	}
	defer first.Release()

	if _, err := AcquireScale(r); !errors.Is(err, ErrScaleLeased) {
		t.Errorf("second AcquireScale error = %v, want ErrScaleLeased", err)
	}
}

func TestScaleLease_ReacquireAfterRelease(t *testing.T) {
	r := &scaleRenderer{scale: 16}

	first, err := AcquireScale(r)
	if err != nil {
		t.Fatalf("AcquireScale: %v", err)
	}
	first.Release()

	second, err := AcquireScale(r)
	if err != nil {
		t.Fatalf("AcquireScale after release: %v", err)
	}
	defer second.Release()
	if second.Saved() != 16 {
		t.Errorf("Saved() = %d, want 16", second.Saved())
	}
}

func TestScaleLease_IndependentRenderers(t *testing.T) {
	a := &scaleRenderer{scale: 16}
	b := &scaleRenderer{scale: 8}

	la, err := AcquireScale(a)
	if err != nil {
		t.Fatalf("AcquireScale(a): %v", err)
	}
	defer la.Release()
	lb, err := AcquireScale(b)
	if err != nil {
		t.Fatalf("AcquireScale(b): %v", err)
	}
	defer lb.Release()
}

func TestActive(t *testing.T) {
	saved := Current
	t.Cleanup(func() { Current = saved })

	SetRenderer(nil)
	if _, ok := Active(); ok {
		t.Error("Active() ok = true with no renderer")
	}
	r := &scaleRenderer{}
	SetRenderer(r)
	if got, ok := Active(); !ok || got != r {
		t.Errorf("Active() = %v, %v; want renderer, true", got, ok)
	}
}
