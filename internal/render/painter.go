package render

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/fogleman/gg"

	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
)

// ScenePainter paints the content surface: every visible, valid entity
// in draw order. Entities with broken geometry are skipped and logged
// once per entity so a single bad record cannot spam the log or take
// the whole frame down.
type ScenePainter struct {
	reg        *Registry
	log        *slog.Logger
	Background color.RGBA

	warned map[string]bool
}

// NewScenePainter creates a painter using the given registry. A nil
// logger falls back to slog.Default.
func NewScenePainter(reg *Registry, log *slog.Logger) *ScenePainter {
	if log == nil {
		log = slog.Default()
	}
	return &ScenePainter{
		reg:        reg,
		log:        log,
		Background: DefaultBackground,
		warned:     make(map[string]bool),
	}
}

// Paint fills dst with the background and draws the scene bottom to
// top, so later entities cover earlier ones.
func (p *ScenePainter) Paint(dst *image.RGBA, sc *scene.Scene, vt transform.ViewTransform) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(p.Background)
	dc.Clear()
	if sc == nil {
		return
	}

	for _, e := range sc.Entities() {
		st := e.EntityStyle()
		if !st.Visible || !sc.IsLayerVisible(st.Layer) {
			continue
		}
		if err := e.Validate(); err != nil {
			if !p.warned[e.EntityID()] {
				p.warned[e.EntityID()] = true
				p.log.Warn("skipping entity with invalid geometry",
					"entity", e.EntityID(), "kind", e.EntityKind(), "error", err)
			}
			continue
		}
		if !p.reg.Draw(dc, vt, e, ResolveStroke(e, sc)) {
			if !p.warned[e.EntityID()] {
				p.warned[e.EntityID()] = true
				p.log.Warn("no renderer registered for entity kind",
					"entity", e.EntityID(), "kind", e.EntityKind())
			}
		}
	}
}
