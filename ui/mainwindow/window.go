// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"draft-editor/internal/app"
	"draft-editor/internal/editor"
	"draft-editor/internal/project"
	"draft-editor/internal/scene"
	"draft-editor/internal/snap"
	"draft-editor/internal/transform"
	"draft-editor/internal/version"
	"draft-editor/pkg/geometry"
	"draft-editor/ui/canvas"
	"draft-editor/ui/panels"
	"draft-editor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle = "Draft Editor"

	prefKeyLastDir      = "lastDirectory"
	prefKeyRecent       = "recentFiles"
	prefKeySnapEnabled  = "snap.enabled"
	prefKeySnapTol      = "snap.tolerance"
	prefKeySnapMode     = "snap.mode." // + mode name
	prefKeyHistoryDepth = "history.depth"

	maxRecentFiles = 8
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs
	log   *slog.Logger

	editor    *editor.Editor
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel
	proj      *project.File

	statusLabel *widget.Label
	coordLabel  *widget.Label
	zoomLabel   *widget.Label

	toolButtons map[editor.Tool]*widget.Button

	undoItem   *fyne.MenuItem
	redoItem   *fyne.MenuItem
	recentItem *fyne.MenuItem
	menu       *fyne.MainMenu
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, log *slog.Logger) *MainWindow {
	if log == nil {
		log = slog.Default()
	}
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		log:    log.With("component", "mainwindow"),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	mw.proj = state.NewProject("untitled")
	mw.updateTitle()

	win.Resize(fyne.NewSize(1280, 800))
	win.SetCloseIntercept(mw.onClose)
	return mw
}

// setupUI creates the editor, canvas, panels and status bar.
func (mw *MainWindow) setupUI() {
	depth := int(mw.prefs.Float(prefKeyHistoryDepth, 0))
	mw.editor = editor.New(mw.log, depth)
	mw.applySnapPrefs()

	mw.canvas = canvas.New(mw.editor)
	mw.sidePanel = panels.NewSidePanel(mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusLabel = widget.NewLabel("Ready")
	mw.coordLabel = widget.NewLabel("0.00, 0.00")
	mw.zoomLabel = widget.NewLabel("100%")

	mw.canvas.OnScene(func(*scene.Scene) {
		mw.state.SetModified(true)
		mw.sidePanel.RefreshScene()
		mw.updateUndoMenu()
	})
	mw.canvas.OnStatus(func(s string) {
		mw.statusLabel.SetText(s)
	})
	mw.canvas.OnCursor(func(world geometry.Point2D) {
		mw.coordLabel.SetText(fmt.Sprintf("%.2f, %.2f", world.X, world.Y))
	})
	mw.canvas.OnView(func(vt transform.ViewTransform) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", vt.Scale*100))
	})
	mw.canvas.OnSelection(func(ids []string) {
		mw.sidePanel.RefreshSelection(ids)
	})

	statusBar := container.NewHBox(
		mw.statusLabel,
		layout.NewSpacer(),
		mw.coordLabel,
		widget.NewSeparator(),
		mw.zoomLabel,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		container.NewBorder(mw.createToolbar(), nil, nil, nil, mw.canvas),
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(statusBar),
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

// createToolbar builds the tool palette and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.toolButtons = make(map[editor.Tool]*widget.Button)

	tools := []editor.Tool{
		editor.ToolSelect,
		editor.ToolPan,
		editor.ToolLine,
		editor.ToolPolyline,
		editor.ToolRectangle,
		editor.ToolCircle,
		editor.ToolArc,
		editor.ToolMeasure,
		editor.ToolZoomWindow,
	}

	bar := container.NewHBox()
	for _, t := range tools {
		tool := t
		btn := widget.NewButton(toolLabel(tool), func() {
			mw.selectTool(tool)
		})
		mw.toolButtons[tool] = btn
		bar.Add(btn)
	}
	mw.highlightTool(mw.editor.Tool())

	bar.Add(layout.NewSpacer())
	bar.Add(widget.NewButton("-", func() { mw.editor.ZoomOut() }))
	bar.Add(widget.NewButton("+", func() { mw.editor.ZoomIn() }))
	bar.Add(widget.NewButton("Fit", func() { mw.editor.ZoomFit() }))
	bar.Add(widget.NewButton("1:1", func() { mw.editor.ZoomReset() }))

	return bar
}

func toolLabel(t editor.Tool) string {
	switch t {
	case editor.ToolZoomWindow:
		return "Zoom Win"
	default:
		s := t.String()
		return string(s[0]-'a'+'A') + s[1:]
	}
}

func (mw *MainWindow) selectTool(t editor.Tool) {
	mw.editor.SetTool(t)
	mw.highlightTool(t)
}

func (mw *MainWindow) highlightTool(active editor.Tool) {
	for tool, btn := range mw.toolButtons {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	mw.undoItem = fyne.NewMenuItem("Undo", mw.onUndo)
	mw.redoItem = fyne.NewMenuItem("Redo", mw.onRedo)
	mw.recentItem = fyne.NewMenuItem("Open Recent", nil)
	mw.recentItem.ChildMenu = mw.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.onNewProject),
		fyne.NewMenuItem("Open...", mw.onOpenProject),
		mw.recentItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSaveProject),
		fyne.NewMenuItem("Save As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", mw.onClose),
	)

	editMenu := fyne.NewMenu("Edit",
		mw.undoItem,
		mw.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete", func() { mw.editor.DeleteSelection() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.editor.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.editor.ZoomOut() }),
		fyne.NewMenuItem("Zoom to Fit", func() { mw.editor.ZoomFit() }),
		fyne.NewMenuItem("Actual Size", func() { mw.editor.ZoomReset() }),
	)

	drawMenu := fyne.NewMenu("Draw",
		fyne.NewMenuItem("Line", func() { mw.selectTool(editor.ToolLine) }),
		fyne.NewMenuItem("Polyline", func() { mw.selectTool(editor.ToolPolyline) }),
		fyne.NewMenuItem("Rectangle", func() { mw.selectTool(editor.ToolRectangle) }),
		fyne.NewMenuItem("Circle", func() { mw.selectTool(editor.ToolCircle) }),
		fyne.NewMenuItem("Arc", func() { mw.selectTool(editor.ToolArc) }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Select", func() { mw.selectTool(editor.ToolSelect) }),
		fyne.NewMenuItem("Pan", func() { mw.selectTool(editor.ToolPan) }),
		fyne.NewMenuItem("Measure", func() { mw.selectTool(editor.ToolMeasure) }),
		fyne.NewMenuItem("Zoom Window", func() { mw.selectTool(editor.ToolZoomWindow) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.menu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, drawMenu, toolsMenu, helpMenu)
	mw.SetMainMenu(mw.menu)
	mw.updateUndoMenu()
}

// setupShortcuts registers the keyboard shortcuts that are not tool
// keys. Tool keys live on the canvas widget itself.
func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()
	add := func(name fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: name, Modifier: mod}, func(fyne.Shortcut) {
			fn()
		})
	}
	add(fyne.KeyZ, fyne.KeyModifierControl, mw.onUndo)
	add(fyne.KeyZ, fyne.KeyModifierControl|fyne.KeyModifierShift, mw.onRedo)
	add(fyne.KeyY, fyne.KeyModifierControl, mw.onRedo)
	add(fyne.KeyS, fyne.KeyModifierControl, mw.onSaveProject)
	add(fyne.KeyO, fyne.KeyModifierControl, mw.onOpenProject)
	add(fyne.KeyN, fyne.KeyModifierControl, mw.onNewProject)
}

// setupEventHandlers wires application lifecycle events into the
// window chrome.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventProjectSaved, func(interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventModified, func(interface{}) {
		mw.updateTitle()
	})
}

func (mw *MainWindow) updateTitle() {
	title := appTitle + " - " + mw.state.Name()
	if mw.state.IsModified() {
		title += " *"
	}
	mw.SetTitle(title)
}

func (mw *MainWindow) updateUndoMenu() {
	if mw.editor.CanUndo() {
		mw.undoItem.Label = "Undo " + mw.editor.UndoName()
		mw.undoItem.Disabled = false
	} else {
		mw.undoItem.Label = "Undo"
		mw.undoItem.Disabled = true
	}
	if mw.editor.CanRedo() {
		mw.redoItem.Label = "Redo " + mw.editor.RedoName()
		mw.redoItem.Disabled = false
	} else {
		mw.redoItem.Label = "Redo"
		mw.redoItem.Disabled = true
	}
	mw.menu.Refresh()
}

// Recent files

func (mw *MainWindow) buildRecentMenu() *fyne.Menu {
	paths := mw.prefs.Strings(prefKeyRecent)
	if len(paths) == 0 {
		empty := fyne.NewMenuItem("(empty)", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	items := make([]*fyne.MenuItem, len(paths))
	for i, p := range paths {
		path := p
		items[i] = fyne.NewMenuItem(project.NameFromPath(path), func() {
			mw.confirmDiscard(func() { mw.OpenPath(path) })
		})
	}
	return fyne.NewMenu("", items...)
}

func (mw *MainWindow) rememberRecent(path string) {
	mw.prefs.PushRecent(prefKeyRecent, path, maxRecentFiles)
	mw.recentItem.ChildMenu = mw.buildRecentMenu()
	mw.menu.Refresh()
}

// Project lifecycle

// confirmDiscard runs fn, first asking about unsaved changes.
func (mw *MainWindow) confirmDiscard(fn func()) {
	if !mw.state.IsModified() {
		fn()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"The current drawing has unsaved changes. Discard them?",
		func(ok bool) {
			if ok {
				fn()
			}
		}, mw.Window)
}

func (mw *MainWindow) onNewProject() {
	mw.confirmDiscard(func() {
		mw.proj = mw.state.NewProject("untitled")
		mw.editor.SetScene(mw.proj.Scene)
		mw.editor.ZoomReset()
		mw.sidePanel.RefreshScene()
		mw.state.SetModified(false)
		mw.updateUndoMenu()
		mw.statusLabel.SetText("New drawing")
	})
}

func (mw *MainWindow) onOpenProject() {
	mw.confirmDiscard(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			mw.saveLastDir(path)
			mw.OpenPath(path)
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{project.Ext}))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

// OpenPath loads a project file into the editor. Used by the open
// dialog, the recent menu and command line arguments.
func (mw *MainWindow) OpenPath(path string) {
	proj, err := mw.state.OpenProject(path)
	if err != nil {
		mw.log.Error("open failed", "path", path, "error", err)
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.proj = proj
	mw.editor.SetScene(proj.Scene)
	mw.editor.SetView(proj.ViewTransform())
	mw.applyProjectSettings(proj)
	mw.sidePanel.RefreshScene()
	mw.sidePanel.RefreshSnap()
	mw.state.SetModified(false)
	mw.updateUndoMenu()
	mw.rememberRecent(path)
	mw.statusLabel.SetText("Opened " + path)
}

func (mw *MainWindow) applyProjectSettings(proj *project.File) {
	cfg := mw.editor.Snap().Config()
	cfg.Enabled = proj.Settings.SnapEnabled
	if proj.Settings.SnapTolerancePx > 0 {
		cfg.TolerancePx = proj.Settings.SnapTolerancePx
	}
	mw.editor.Snap().SetConfig(cfg)
	if proj.Settings.ActiveLayer != "" {
		mw.editor.SetActiveLayer(proj.Settings.ActiveLayer)
	}
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.Path() == "" {
		mw.onSaveProjectAs()
		return
	}
	mw.saveTo(mw.state.Path())
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		mw.saveLastDir(path)
		mw.saveTo(path)
	}, mw.Window)
	fd.SetFileName(mw.state.Name() + project.Ext)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) saveTo(path string) {
	mw.proj.Scene = mw.editor.Scene()
	mw.proj.SetViewTransform(mw.editor.View())
	cfg := mw.editor.Snap().Config()
	mw.proj.Settings.SnapEnabled = cfg.Enabled
	mw.proj.Settings.SnapTolerancePx = cfg.TolerancePx
	mw.proj.Settings.ActiveLayer = mw.editor.ActiveLayer()

	if err := mw.state.SaveProject(path, mw.proj); err != nil {
		mw.log.Error("save failed", "path", path, "error", err)
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.rememberRecent(mw.state.Path())
	mw.statusLabel.SetText("Saved " + mw.state.Path())
}

// Edit actions

func (mw *MainWindow) onUndo() {
	if mw.editor.Undo() {
		mw.updateUndoMenu()
	}
}

func (mw *MainWindow) onRedo() {
	if mw.editor.Redo() {
		mw.updateUndoMenu()
	}
}

// Preferences

func (mw *MainWindow) applySnapPrefs() {
	cfg := mw.editor.Snap().Config()
	cfg.Enabled = mw.prefs.Bool(prefKeySnapEnabled, true)
	cfg.TolerancePx = mw.prefs.Float(prefKeySnapTol, snap.DefaultTolerancePx)
	for _, m := range snap.DefaultPriority() {
		cfg.Modes[m] = mw.prefs.Bool(prefKeySnapMode+string(m), true)
	}
	mw.editor.Snap().SetConfig(cfg)
}

// SavePreferences persists snap settings and window state.
func (mw *MainWindow) SavePreferences() {
	cfg := mw.editor.Snap().Config()
	mw.prefs.SetBool(prefKeySnapEnabled, cfg.Enabled)
	mw.prefs.SetFloat(prefKeySnapTol, cfg.TolerancePx)
	for _, m := range snap.DefaultPriority() {
		mw.prefs.SetBool(prefKeySnapMode+string(m), cfg.Modes[m])
	}
	if err := mw.prefs.Save(); err != nil {
		mw.log.Warn("saving preferences", "error", err)
	}
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir, "")
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) onClose() {
	mw.confirmDiscard(func() {
		mw.SavePreferences()
		mw.app.Quit()
	})
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"A 2D drafting and drawing editor.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
