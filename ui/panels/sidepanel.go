// Package panels provides the side panel sections of the main window.
package panels

import (
	"draft-editor/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel groups the layer list, snap settings and selection
// properties into tabs.
type SidePanel struct {
	container *container.AppTabs

	layersPanel     *LayersPanel
	snapPanel       *SnapPanel
	propertiesPanel *PropertiesPanel
}

// NewSidePanel creates the side panel for an editor canvas.
func NewSidePanel(ec *canvas.EditorCanvas) *SidePanel {
	sp := &SidePanel{
		layersPanel:     NewLayersPanel(ec.Editor()),
		snapPanel:       NewSnapPanel(ec.Editor()),
		propertiesPanel: NewPropertiesPanel(ec.Editor()),
	}

	sp.container = container.NewAppTabs(
		container.NewTabItem("Layers", sp.layersPanel.Container()),
		container.NewTabItem("Snap", sp.snapPanel.Container()),
		container.NewTabItem("Properties", sp.propertiesPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.layersPanel.SetWindow(w)
	sp.propertiesPanel.SetWindow(w)
}

// RefreshScene updates sections that mirror scene state, such as the
// layer list.
func (sp *SidePanel) RefreshScene() {
	sp.layersPanel.Refresh()
	sp.propertiesPanel.RefreshLayers()
}

// RefreshSelection updates the properties section for a new
// selection.
func (sp *SidePanel) RefreshSelection(ids []string) {
	sp.propertiesPanel.RefreshSelection(ids)
}

// RefreshSnap re-reads the snap engine configuration, after the host
// applies saved settings.
func (sp *SidePanel) RefreshSnap() {
	sp.snapPanel.Refresh()
}
