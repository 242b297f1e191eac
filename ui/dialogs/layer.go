// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var layerLineTypes = []string{
	string(entity.LineTypeSolid),
	string(entity.LineTypeDashed),
	string(entity.LineTypeDotted),
	string(entity.LineTypeDashDot),
}

// ShowLayerDialog opens the add/edit layer dialog. A nil existing
// layer means "add"; editing keeps the name fixed because entities
// reference layers by name.
func ShowLayerDialog(win fyne.Window, existing *scene.Layer, onSave func(*scene.Layer)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("layer name")

	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#rrggbb")

	swatch := fynecanvas.NewRectangle(colorutil.White)
	swatch.SetMinSize(fyne.NewSize(32, 20))
	colorEntry.OnChanged = func(s string) {
		swatch.FillColor = colorutil.ParseHexOr(s, colorutil.White)
		swatch.Refresh()
	}

	lineTypeSelect := widget.NewSelect(layerLineTypes, nil)
	lineTypeSelect.SetSelected(string(entity.LineTypeSolid))

	title := "Add Layer"
	if existing != nil {
		title = "Edit Layer"
		nameEntry.SetText(existing.Name)
		nameEntry.Disable()
		colorEntry.SetText(existing.Color)
		if existing.LineType != "" {
			lineTypeSelect.SetSelected(string(existing.LineType))
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Color", container.NewBorder(nil, nil, nil, swatch, colorEntry)),
		widget.NewFormItem("Line type", lineTypeSelect),
	)

	dialog.ShowCustomConfirm(title, "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		name := nameEntry.Text
		if name == "" {
			dialog.ShowError(fmt.Errorf("layer name must not be empty"), win)
			return
		}
		if _, err := colorutil.ParseHex(colorEntry.Text); err != nil {
			dialog.ShowError(fmt.Errorf("parsing color: %w", err), win)
			return
		}

		l := &scene.Layer{
			Name:     name,
			Color:    colorEntry.Text,
			Visible:  true,
			LineType: entity.LineType(lineTypeSelect.Selected),
		}
		if existing != nil {
			l.Visible = existing.Visible
			l.Locked = existing.Locked
		}
		onSave(l)
	}, win)
}
