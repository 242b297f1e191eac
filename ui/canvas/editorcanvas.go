// Package canvas provides the drawing canvas widget. Two raster
// surfaces are composited in one widget: the content surface renders
// the scene, the overlay surface renders transient feedback (marquee,
// grips, previews, snap marks). Only the overlay repaints during
// hover and drags; the content surface repaints when the scene or
// view changes. The overlay raster is a plain canvas object, so every
// pointer event lands on the widget itself.
package canvas

import (
	"image"

	"draft-editor/internal/editor"
	"draft-editor/internal/render"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// EditorCanvas is the interactive drawing area. It owns the editor's
// change callbacks and translates toolkit events into editor input.
type EditorCanvas struct {
	widget.BaseWidget

	ed *editor.Editor

	content *fynecanvas.Raster
	overlay *fynecanvas.Raster

	scenePainter   *render.ScenePainter
	overlayPainter *render.OverlayPainter

	contentBuf *image.RGBA
	overlayBuf *image.RGBA

	// Modifier state tracked from key events, for events that do not
	// carry modifiers themselves.
	shiftHeld bool
	altHeld   bool

	centered bool
	lastDPR  float64

	// Host callbacks, re-published from the editor after the canvas
	// has refreshed itself.
	onScene     func(*scene.Scene)
	onSelection func([]string)
	onView      func(transform.ViewTransform)
	onStatus    func(string)
	onCursor    func(geometry.Point2D)
}

// New creates the canvas widget over an editor. The canvas takes
// ownership of the editor's change callbacks; hosts observe through
// the On* setters instead.
func New(ed *editor.Editor) *EditorCanvas {
	ec := &EditorCanvas{
		ed:             ed,
		scenePainter:   render.NewScenePainter(render.DefaultRegistry(), nil),
		overlayPainter: render.NewOverlayPainter(render.DefaultRegistry()),
		lastDPR:        1,
	}

	ec.content = fynecanvas.NewRaster(ec.drawContent)
	ec.content.ScaleMode = fynecanvas.ImageScalePixels
	ec.overlay = fynecanvas.NewRaster(ec.drawOverlay)
	ec.overlay.ScaleMode = fynecanvas.ImageScalePixels

	ed.OnSceneChange = func(sc *scene.Scene) {
		ec.content.Refresh()
		ec.overlay.Refresh()
		if ec.onScene != nil {
			ec.onScene(sc)
		}
	}
	ed.OnOverlayChange = func() {
		ec.overlay.Refresh()
	}
	ed.OnViewChange = func(vt transform.ViewTransform) {
		ec.content.Refresh()
		ec.overlay.Refresh()
		if ec.onView != nil {
			ec.onView(vt)
		}
	}
	ed.OnSelectionChange = func(ids []string) {
		// Selected entities paint emphasized on the content surface.
		ec.content.Refresh()
		ec.overlay.Refresh()
		if ec.onSelection != nil {
			ec.onSelection(ids)
		}
	}
	ed.OnStatus = func(s string) {
		if ec.onStatus != nil {
			ec.onStatus(s)
		}
	}
	ed.OnCursor = func(world geometry.Point2D) {
		if ec.onCursor != nil {
			ec.onCursor(world)
		}
	}

	ec.ExtendBaseWidget(ec)
	return ec
}

// Editor returns the wrapped editor.
func (ec *EditorCanvas) Editor() *editor.Editor {
	return ec.ed
}

// OnScene sets a callback for committed scene changes.
func (ec *EditorCanvas) OnScene(cb func(*scene.Scene)) {
	ec.onScene = cb
}

// OnSelection sets a callback for selection changes.
func (ec *EditorCanvas) OnSelection(cb func([]string)) {
	ec.onSelection = cb
}

// OnView sets a callback for view transform changes.
func (ec *EditorCanvas) OnView(cb func(transform.ViewTransform)) {
	ec.onView = cb
}

// OnStatus sets a callback for editor status messages.
func (ec *EditorCanvas) OnStatus(cb func(string)) {
	ec.onStatus = cb
}

// OnCursor sets a callback for cursor position in world coordinates.
func (ec *EditorCanvas) OnCursor(cb func(geometry.Point2D)) {
	ec.onCursor = cb
}

// Refresh repaints both surfaces.
func (ec *EditorCanvas) Refresh() {
	ec.content.Refresh()
	ec.overlay.Refresh()
	ec.BaseWidget.Refresh()
}

// deviceTransform scales the view transform from points to raster
// pixels for high-DPI displays. Events stay in points; only painting
// happens at pixel resolution.
func (ec *EditorCanvas) deviceTransform(pixelW int) transform.ViewTransform {
	vt := ec.ed.View()
	size := ec.Size()
	if size.Width <= 0 || pixelW <= 0 {
		return vt
	}
	dpr := float64(pixelW) / float64(size.Width)
	ec.lastDPR = dpr
	if dpr == 1 {
		return vt
	}
	return transform.ViewTransform{
		Scale:   vt.Scale * dpr,
		OffsetX: vt.OffsetX * dpr,
		OffsetY: vt.OffsetY * dpr,
	}
}

func (ec *EditorCanvas) drawContent(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if ec.contentBuf == nil || ec.contentBuf.Bounds().Dx() != w || ec.contentBuf.Bounds().Dy() != h {
		ec.contentBuf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	ec.scenePainter.Paint(ec.contentBuf, ec.ed.Scene(), ec.deviceTransform(w))
	return ec.contentBuf
}

func (ec *EditorCanvas) drawOverlay(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if ec.overlayBuf == nil || ec.overlayBuf.Bounds().Dx() != w || ec.overlayBuf.Bounds().Dy() != h {
		ec.overlayBuf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	ov := ec.ed.Overlay()
	ec.overlayPainter.Paint(ec.overlayBuf, &ov, ec.deviceTransform(w))
	return ec.overlayBuf
}

// Pointer events. The editor expects positions in widget-local
// points, matching its tolerance constants.

func pointOf(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

func modsOf(m fyne.KeyModifier) editor.Modifiers {
	return editor.Modifiers{
		Shift: m&fyne.KeyModifierShift != 0,
		Alt:   m&fyne.KeyModifierAlt != 0,
	}
}

func (ec *EditorCanvas) heldMods() editor.Modifiers {
	return editor.Modifiers{Shift: ec.shiftHeld, Alt: ec.altHeld}
}

// MouseDown implements desktop.Mouseable.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(ec); c != nil {
		c.Focus(ec)
	}
	btn := editor.ButtonLeft
	if ev.Button == desktop.MouseButtonSecondary {
		btn = editor.ButtonRight
	}
	ec.ed.PointerDown(pointOf(ev.Position), btn, modsOf(ev.Modifier))
}

// MouseUp implements desktop.Mouseable.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonSecondary {
		return
	}
	ec.ed.PointerUp(pointOf(ev.Position), modsOf(ev.Modifier))
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.ed.PointerMove(pointOf(ev.Position), modsOf(ev.Modifier))
}

// MouseMoved implements desktop.Hoverable.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	ec.ed.PointerMove(pointOf(ev.Position), modsOf(ev.Modifier))
}

// MouseOut implements desktop.Hoverable.
func (ec *EditorCanvas) MouseOut() {}

// DoubleTapped finishes multi-click tools.
func (ec *EditorCanvas) DoubleTapped(ev *fyne.PointEvent) {
	ec.ed.DoubleClick(pointOf(ev.Position), ec.heldMods())
}

// Scrolled zooms about the cursor.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	ec.ed.Scroll(pointOf(ev.Position), float64(ev.Scrolled.DY))
}

// Cursor implements desktop.Cursorable. Drawing and measuring tools
// show a crosshair; selection keeps the default arrow so grips stay
// readable.
func (ec *EditorCanvas) Cursor() desktop.Cursor {
	tool := ec.ed.Tool()
	if editor.RouteFor(tool) == editor.TargetOverlay {
		return desktop.DefaultCursor
	}
	if tool == editor.ToolPan {
		return desktop.PointerCursor
	}
	return desktop.CrosshairCursor
}

// Keyboard. Non-printable editing keys arrive through TypedKey,
// printable shortcuts through TypedRune, so nothing fires twice.

// FocusGained implements fyne.Focusable.
func (ec *EditorCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (ec *EditorCanvas) FocusLost() {
	ec.shiftHeld = false
	ec.altHeld = false
}

// TypedRune implements fyne.Focusable.
func (ec *EditorCanvas) TypedRune(r rune) {
	var k editor.Key
	switch r {
	case '+', '=':
		k = editor.KeyPlus
	case '-':
		k = editor.KeyMinus
	case '0':
		k = editor.KeyZero
	case 'b', 'B':
		k = editor.KeyBreak
	default:
		return
	}
	ec.ed.KeyDown(k, ec.heldMods())
}

// TypedKey implements fyne.Focusable.
func (ec *EditorCanvas) TypedKey(ev *fyne.KeyEvent) {
	var k editor.Key
	switch ev.Name {
	case fyne.KeyEscape:
		k = editor.KeyEscape
	case fyne.KeyDelete, fyne.KeyBackspace:
		k = editor.KeyDelete
	case fyne.KeyReturn, fyne.KeyEnter:
		k = editor.KeyReturn
	case fyne.KeyUp:
		k = editor.KeyUp
	case fyne.KeyDown:
		k = editor.KeyDown
	case fyne.KeyLeft:
		k = editor.KeyLeft
	case fyne.KeyRight:
		k = editor.KeyRight
	default:
		return
	}
	ec.ed.KeyDown(k, ec.heldMods())
}

// KeyDown implements desktop.Keyable, tracking modifier state for
// events that do not report it.
func (ec *EditorCanvas) KeyDown(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		ec.shiftHeld = true
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		ec.altHeld = true
	}
}

// KeyUp implements desktop.Keyable.
func (ec *EditorCanvas) KeyUp(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		ec.shiftHeld = false
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		ec.altHeld = false
	}
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editorCanvasRenderer{canvas: ec}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	ec := r.canvas
	ec.content.Resize(size)
	ec.overlay.Resize(size)
	ec.ed.SetViewport(transform.Viewport{
		W:   float64(size.Width),
		H:   float64(size.Height),
		DPR: ec.lastDPR,
	})
	// Put the world origin at the viewport center once the widget has
	// a real size.
	if !ec.centered && size.Width > 0 && size.Height > 0 {
		ec.centered = true
		ec.ed.ZoomReset()
	}
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.content.Refresh()
	r.canvas.overlay.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content, r.canvas.overlay}
}

func (r *editorCanvasRenderer) Destroy() {}
