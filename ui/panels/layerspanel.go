package panels

import (
	"draft-editor/internal/editor"
	"draft-editor/internal/scene"
	"draft-editor/ui/dialogs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// LayersPanel lists the scene's layers and edits the selected one.
// Layer edits apply immediately and are not undoable.
type LayersPanel struct {
	ed     *editor.Editor
	window fyne.Window

	container fyne.CanvasObject
	list      *widget.List
	names     []string
	selected  string

	visibleCheck *widget.Check
	lockedCheck  *widget.Check
	activeBtn    *widget.Button
	editBtn      *widget.Button
	removeBtn    *widget.Button

	onVisible func(bool)
	onLocked  func(bool)
}

// NewLayersPanel creates the layers panel.
func NewLayersPanel(ed *editor.Editor) *LayersPanel {
	lp := &LayersPanel{ed: ed}
	lp.names = lp.layerNames()

	lp.list = widget.NewList(
		func() int {
			return len(lp.names)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("layer")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(lp.names) {
				return
			}
			l, ok := ed.Scene().Layer(lp.names[id])
			if !ok {
				return
			}
			obj.(*widget.Label).SetText(lp.layerLabel(l))
		},
	)
	lp.list.OnSelected = func(id widget.ListItemID) {
		if id < len(lp.names) {
			lp.selected = lp.names[id]
			lp.refreshDetail()
		}
	}

	lp.onVisible = func(v bool) {
		if lp.selected != "" {
			ed.SetLayerVisible(lp.selected, v)
		}
	}
	lp.onLocked = func(v bool) {
		if lp.selected != "" {
			ed.SetLayerLocked(lp.selected, v)
		}
	}

	lp.visibleCheck = widget.NewCheck("Visible", lp.onVisible)
	lp.lockedCheck = widget.NewCheck("Locked", lp.onLocked)

	lp.activeBtn = widget.NewButton("Make Active", func() {
		if lp.selected != "" {
			ed.SetActiveLayer(lp.selected)
			lp.Refresh()
		}
	})
	lp.editBtn = widget.NewButton("Edit...", func() {
		lp.editSelected()
	})
	lp.removeBtn = widget.NewButton("Remove", func() {
		lp.removeSelected()
	})

	addBtn := widget.NewButton("Add Layer...", func() {
		dialogs.ShowLayerDialog(lp.window, nil, func(l *scene.Layer) {
			if !ed.AddLayer(l) {
				dialog.ShowInformation("Layers",
					"A layer named "+l.Name+" already exists.", lp.window)
				return
			}
			ed.SetActiveLayer(l.Name)
			lp.Refresh()
		})
	})

	detail := widget.NewCard("Layer", "", container.NewVBox(
		lp.visibleCheck,
		lp.lockedCheck,
		container.NewHBox(lp.activeBtn, lp.editBtn, lp.removeBtn),
	))

	lp.container = container.NewBorder(
		addBtn,
		detail,
		nil, nil,
		lp.list,
	)

	lp.refreshDetail()
	return lp
}

// Container returns the panel container.
func (lp *LayersPanel) Container() fyne.CanvasObject {
	return lp.container
}

// SetWindow sets the parent window for dialogs.
func (lp *LayersPanel) SetWindow(w fyne.Window) {
	lp.window = w
}

// Refresh re-reads the layer list from the scene.
func (lp *LayersPanel) Refresh() {
	lp.names = lp.layerNames()
	if _, ok := lp.ed.Scene().Layer(lp.selected); !ok {
		lp.selected = ""
	}
	lp.list.Refresh()
	lp.refreshDetail()
}

func (lp *LayersPanel) layerNames() []string {
	layers := lp.ed.Scene().Layers()
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name
	}
	return names
}

func (lp *LayersPanel) layerLabel(l *scene.Layer) string {
	s := l.Name
	if l.Name == lp.ed.ActiveLayer() {
		s += " (active)"
	}
	if !l.Visible {
		s += " [hidden]"
	}
	if l.Locked {
		s += " [locked]"
	}
	return s
}

func (lp *LayersPanel) refreshDetail() {
	l, ok := lp.ed.Scene().Layer(lp.selected)
	if !ok {
		lp.visibleCheck.Disable()
		lp.lockedCheck.Disable()
		lp.activeBtn.Disable()
		lp.editBtn.Disable()
		lp.removeBtn.Disable()
		return
	}

	// Reflect state without re-firing the toggle callbacks.
	lp.visibleCheck.OnChanged = nil
	lp.visibleCheck.SetChecked(l.Visible)
	lp.visibleCheck.OnChanged = lp.onVisible
	lp.lockedCheck.OnChanged = nil
	lp.lockedCheck.SetChecked(l.Locked)
	lp.lockedCheck.OnChanged = lp.onLocked

	lp.visibleCheck.Enable()
	lp.lockedCheck.Enable()
	lp.activeBtn.Enable()
	lp.editBtn.Enable()
	if lp.selected == scene.DefaultLayerName {
		lp.removeBtn.Disable()
	} else {
		lp.removeBtn.Enable()
	}
}

func (lp *LayersPanel) editSelected() {
	l, ok := lp.ed.Scene().Layer(lp.selected)
	if !ok {
		return
	}
	dialogs.ShowLayerDialog(lp.window, l, func(edited *scene.Layer) {
		lp.ed.UpdateLayerStyle(l.Name, edited.Color, edited.LineType)
		lp.Refresh()
	})
}

func (lp *LayersPanel) removeSelected() {
	if lp.selected == "" {
		return
	}
	if !lp.ed.RemoveLayer(lp.selected) {
		dialog.ShowInformation("Layers",
			"The default layer cannot be removed.", lp.window)
		return
	}
	lp.selected = ""
	lp.Refresh()
}
