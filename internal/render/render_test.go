package render

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

func newCanvas(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func isBackground(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) == DefaultBackground
}

func TestDefaultRegistryCoversAllKinds(t *testing.T) {
	reg := DefaultRegistry()
	for _, kind := range []entity.Kind{
		entity.KindLine, entity.KindCircle, entity.KindArc,
		entity.KindPolyline, entity.KindRectangle,
	} {
		_, ok := reg.Lookup(kind)
		assert.True(t, ok, "kind %s", kind)
	}

	_, ok := reg.Lookup(entity.Kind("gear"))
	assert.False(t, ok)
}

// stubEntity exercises registering a renderer for a kind the engine
// does not know about.
type stubEntity struct {
	entity.Line
}

func (s *stubEntity) EntityKind() entity.Kind { return entity.Kind("gear") }

type recordingRenderer struct {
	drawn *int
}

func (r recordingRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	*r.drawn++
}

func TestRegistryIsOpenForNewKinds(t *testing.T) {
	reg := DefaultRegistry()
	stub := &stubEntity{Line: *entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 1))}

	dc := gg.NewContextForRGBA(newCanvas(10, 10))
	ok := reg.Draw(dc, transform.Identity(), stub, StrokeStyle{Width: 1})
	assert.False(t, ok)

	drawn := 0
	reg.Register(entity.Kind("gear"), recordingRenderer{&drawn})
	ok = reg.Draw(dc, transform.Identity(), stub, StrokeStyle{Width: 1})
	assert.True(t, ok)
	assert.Equal(t, 1, drawn)
}

func TestScenePainterDrawsEntities(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))

	img := newCanvas(200, 100)
	vt := transform.ViewTransform{Scale: 1, OffsetX: 0, OffsetY: 50}
	p := NewScenePainter(DefaultRegistry(), nil)
	p.Paint(img, s, vt)

	// The line runs along screen y=50.
	assert.False(t, isBackground(img, 50, 50))
	// Well away from the line only background remains.
	assert.True(t, isBackground(img, 50, 10))
	assert.True(t, isBackground(img, 150, 50))
}

func TestOddWidthStrokeStaysOnOneRow(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(10, 0), geometry.NewPoint2D(90, 0)))

	img := newCanvas(100, 100)
	vt := transform.ViewTransform{Scale: 1, OffsetX: 0, OffsetY: 50}
	NewScenePainter(DefaultRegistry(), nil).Paint(img, s, vt)

	rows := 0
	for y := 0; y < 100; y++ {
		if !isBackground(img, 50, y) {
			rows++
		}
	}
	assert.Equal(t, 1, rows)
}

func TestScenePainterSkipsHiddenAndInvisible(t *testing.T) {
	s := scene.New()
	s.AddLayer(&scene.Layer{Name: "hidden", Visible: false})

	onHidden := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	st := onHidden.Style
	st.Layer = "hidden"
	onHidden.SetStyle(st)
	s.Add(onHidden)

	invisible := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	st = invisible.Style
	st.Visible = false
	invisible.SetStyle(st)
	s.Add(invisible)

	img := newCanvas(200, 100)
	vt := transform.ViewTransform{Scale: 1, OffsetX: 0, OffsetY: 50}
	NewScenePainter(DefaultRegistry(), nil).Paint(img, s, vt)

	assert.True(t, isBackground(img, 50, 50))
}

func TestScenePainterLogsInvalidEntityOnce(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewCircle(geometry.NewPoint2D(50, 50), -1))
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewScenePainter(DefaultRegistry(), log)

	img := newCanvas(200, 100)
	vt := transform.ViewTransform{Scale: 1, OffsetX: 0, OffsetY: 50}
	p.Paint(img, s, vt)
	p.Paint(img, s, vt)
	p.Paint(img, s, vt)

	require.Equal(t, 1, strings.Count(buf.String(), "invalid geometry"))
	// The valid line still rendered.
	assert.False(t, isBackground(img, 50, 50))
}

func TestResolveStrokeLayerFallbackAndSelection(t *testing.T) {
	s := scene.New()
	s.AddLayer(&scene.Layer{Name: "red", Color: "#FF0000", Visible: true, LineType: entity.LineTypeDashed})

	l := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 1))
	st := l.Style
	st.Layer = "red"
	st.Color = ""
	st.LineType = ""
	l.SetStyle(st)
	s.Add(l)

	stroke := ResolveStroke(l, s)
	assert.Equal(t, uint8(255), stroke.Color.R)
	assert.Equal(t, uint8(0), stroke.Color.G)
	assert.Equal(t, DashPattern(entity.LineTypeDashed), stroke.Dash)
	assert.Equal(t, 1.0, stroke.Width)

	st.Selected = true
	l.SetStyle(st)
	stroke = ResolveStroke(l, s)
	assert.Equal(t, SelectionColor, stroke.Color)
}
