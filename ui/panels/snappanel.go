package panels

import (
	"fmt"

	"draft-editor/internal/editor"
	"draft-editor/internal/snap"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var snapModeLabels = map[snap.Mode]string{
	snap.ModeEndpoint:      "Endpoint",
	snap.ModeMidpoint:      "Midpoint",
	snap.ModeCenter:        "Center",
	snap.ModeIntersection:  "Intersection",
	snap.ModePerpendicular: "Perpendicular",
}

// SnapPanel configures the snap engine.
type SnapPanel struct {
	ed *editor.Editor

	container    fyne.CanvasObject
	enabledCheck *widget.Check
	modeChecks   map[snap.Mode]*widget.Check
	tolSlider    *widget.Slider
	tolLabel     *widget.Label
}

// NewSnapPanel creates the snap settings panel.
func NewSnapPanel(ed *editor.Editor) *SnapPanel {
	sp := &SnapPanel{
		ed:         ed,
		modeChecks: make(map[snap.Mode]*widget.Check),
	}

	sp.enabledCheck = widget.NewCheck("Enable snapping", func(v bool) {
		cfg := ed.Snap().Config()
		cfg.Enabled = v
		ed.Snap().SetConfig(cfg)
	})

	sp.tolLabel = widget.NewLabel("")
	sp.tolSlider = widget.NewSlider(2, 20)
	sp.tolSlider.Step = 1
	sp.tolSlider.OnChanged = func(v float64) {
		sp.tolLabel.SetText(fmt.Sprintf("%.0f px", v))
	}
	sp.tolSlider.OnChangeEnded = func(v float64) {
		cfg := ed.Snap().Config()
		cfg.TolerancePx = v
		ed.Snap().SetConfig(cfg)
	}

	modeBox := container.NewVBox()
	for _, m := range snap.DefaultPriority() {
		mode := m
		check := widget.NewCheck(snapModeLabels[mode], func(v bool) {
			cfg := ed.Snap().Config()
			cfg.Modes[mode] = v
			ed.Snap().SetConfig(cfg)
		})
		sp.modeChecks[mode] = check
		modeBox.Add(check)
	}

	sp.container = container.NewVBox(
		widget.NewCard("Snapping", "", container.NewVBox(
			sp.enabledCheck,
			widget.NewLabel("Capture radius:"),
			container.NewBorder(nil, nil, nil, sp.tolLabel, sp.tolSlider),
		)),
		widget.NewCard("Modes", "", modeBox),
	)

	sp.Refresh()
	return sp
}

// Container returns the panel container.
func (sp *SnapPanel) Container() fyne.CanvasObject {
	return sp.container
}

// Refresh reflects the engine configuration into the controls.
func (sp *SnapPanel) Refresh() {
	cfg := sp.ed.Snap().Config()

	cb := sp.enabledCheck.OnChanged
	sp.enabledCheck.OnChanged = nil
	sp.enabledCheck.SetChecked(cfg.Enabled)
	sp.enabledCheck.OnChanged = cb

	for mode, check := range sp.modeChecks {
		cb := check.OnChanged
		check.OnChanged = nil
		check.SetChecked(cfg.Modes[mode])
		check.OnChanged = cb
	}

	sp.tolSlider.SetValue(cfg.TolerancePx)
	sp.tolLabel.SetText(fmt.Sprintf("%.0f px", cfg.TolerancePx))
}
