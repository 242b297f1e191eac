package panels

import (
	"fmt"
	"strconv"

	"draft-editor/internal/editor"
	"draft-editor/internal/entity"
	"draft-editor/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// inheritLabel is the select entry meaning "no override, use the
// layer's value".
const inheritLabel = "(layer)"

var lineTypeOptions = []string{
	inheritLabel,
	string(entity.LineTypeSolid),
	string(entity.LineTypeDashed),
	string(entity.LineTypeDotted),
	string(entity.LineTypeDashDot),
}

// PropertiesPanel shows and edits the style of the selected entities.
type PropertiesPanel struct {
	ed     *editor.Editor
	window fyne.Window

	container fyne.CanvasObject

	countLabel     *widget.Label
	layerSelect    *widget.Select
	colorEntry     *widget.Entry
	lineTypeSelect *widget.Select
	weightEntry    *widget.Entry

	tolEntry    *widget.Entry
	applyBtn    *widget.Button
	simplifyBtn *widget.Button
	deleteBtn   *widget.Button
}

// NewPropertiesPanel creates the properties panel.
func NewPropertiesPanel(ed *editor.Editor) *PropertiesPanel {
	pp := &PropertiesPanel{ed: ed}

	pp.countLabel = widget.NewLabel("Nothing selected")
	pp.countLabel.Wrapping = fyne.TextWrapWord

	pp.layerSelect = widget.NewSelect(nil, nil)
	pp.colorEntry = widget.NewEntry()
	pp.colorEntry.SetPlaceHolder("#rrggbb or empty for layer")
	pp.lineTypeSelect = widget.NewSelect(lineTypeOptions, nil)
	pp.weightEntry = widget.NewEntry()
	pp.weightEntry.SetPlaceHolder("line weight in px")

	pp.applyBtn = widget.NewButton("Apply", func() {
		pp.apply()
	})
	pp.deleteBtn = widget.NewButton("Delete", func() {
		ed.DeleteSelection()
	})

	pp.tolEntry = widget.NewEntry()
	pp.tolEntry.SetText("0.5")
	pp.simplifyBtn = widget.NewButton("Simplify", func() {
		tol, err := strconv.ParseFloat(pp.tolEntry.Text, 64)
		if err != nil || tol <= 0 {
			dialog.ShowError(fmt.Errorf("simplify tolerance must be a positive number"), pp.window)
			return
		}
		ed.SimplifySelection(tol)
	})

	form := widget.NewForm(
		widget.NewFormItem("Layer", pp.layerSelect),
		widget.NewFormItem("Color", pp.colorEntry),
		widget.NewFormItem("Line type", pp.lineTypeSelect),
		widget.NewFormItem("Weight", pp.weightEntry),
	)

	pp.container = container.NewVBox(
		widget.NewCard("Selection", "", pp.countLabel),
		widget.NewCard("Style", "", container.NewVBox(
			form,
			pp.applyBtn,
		)),
		widget.NewCard("Polylines", "", container.NewVBox(
			widget.NewForm(widget.NewFormItem("Tolerance", pp.tolEntry)),
			pp.simplifyBtn,
		)),
		pp.deleteBtn,
	)

	pp.RefreshLayers()
	pp.RefreshSelection(nil)
	return pp
}

// Container returns the panel container.
func (pp *PropertiesPanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetWindow sets the parent window for dialogs.
func (pp *PropertiesPanel) SetWindow(w fyne.Window) {
	pp.window = w
}

// RefreshLayers rebuilds the layer choices after the layer list
// changes.
func (pp *PropertiesPanel) RefreshLayers() {
	layers := pp.ed.Scene().Layers()
	opts := make([]string, len(layers))
	for i, l := range layers {
		opts[i] = l.Name
	}
	selected := pp.layerSelect.Selected
	pp.layerSelect.Options = opts
	if !contains(opts, selected) && len(opts) > 0 {
		pp.layerSelect.Selected = opts[0]
	}
	pp.layerSelect.Refresh()
}

// RefreshSelection reflects the new selection into the form.
func (pp *PropertiesPanel) RefreshSelection(ids []string) {
	switch len(ids) {
	case 0:
		pp.countLabel.SetText("Nothing selected")
		pp.applyBtn.Disable()
		pp.simplifyBtn.Disable()
		pp.deleteBtn.Disable()
		return
	case 1:
		if ent, ok := pp.ed.Scene().Get(ids[0]); ok {
			pp.countLabel.SetText(fmt.Sprintf("1 %s selected", ent.EntityKind()))
		} else {
			pp.countLabel.SetText("1 entity selected")
		}
	default:
		pp.countLabel.SetText(fmt.Sprintf("%d entities selected", len(ids)))
	}
	pp.applyBtn.Enable()
	pp.simplifyBtn.Enable()
	pp.deleteBtn.Enable()

	ent, ok := pp.ed.Scene().Get(ids[0])
	if !ok {
		return
	}
	st := ent.EntityStyle()
	pp.layerSelect.SetSelected(st.Layer)
	pp.colorEntry.SetText(st.Color)
	if st.LineType == "" {
		pp.lineTypeSelect.SetSelected(inheritLabel)
	} else {
		pp.lineTypeSelect.SetSelected(string(st.LineType))
	}
	if st.LineWeight > 0 {
		pp.weightEntry.SetText(strconv.FormatFloat(st.LineWeight, 'f', -1, 64))
	} else {
		pp.weightEntry.SetText("")
	}
}

func (pp *PropertiesPanel) apply() {
	colorHex := pp.colorEntry.Text
	if colorHex != "" {
		if _, err := colorutil.ParseHex(colorHex); err != nil {
			dialog.ShowError(fmt.Errorf("parsing color: %w", err), pp.window)
			return
		}
	}

	var weight float64
	if pp.weightEntry.Text != "" {
		w, err := strconv.ParseFloat(pp.weightEntry.Text, 64)
		if err != nil || w < 0 {
			dialog.ShowError(fmt.Errorf("line weight must be a non-negative number"), pp.window)
			return
		}
		weight = w
	}

	layer := pp.layerSelect.Selected
	lineType := entity.LineType("")
	if pp.lineTypeSelect.Selected != inheritLabel {
		lineType = entity.LineType(pp.lineTypeSelect.Selected)
	}

	pp.ed.RestyleSelection("edit properties", func(st entity.Style) entity.Style {
		if layer != "" {
			st.Layer = layer
		}
		st.Color = colorHex
		st.LineType = lineType
		st.LineWeight = weight
		return st
	})
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
