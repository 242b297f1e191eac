// Package main provides the entry point for the Draft Editor
// application.
package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"draft-editor/internal/app"
	"draft-editor/internal/version"
	"draft-editor/ui/mainwindow"
	"draft-editor/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appID = "io.github.draft-editor"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Draft Editor v%s", version.String())

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.DraftTheme{})

	state := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, appPrefs, logger)

	// A drawing file on the command line opens immediately.
	if len(os.Args) > 1 {
		win.OpenPath(os.Args[1])
	}

	setupBinaryWatcher(win, logger)

	win.ShowAndRun()
}

// setupBinaryWatcher offers an in-place restart when a newer build of
// the binary appears, for quick edit-compile cycles.
func setupBinaryWatcher(win *mainwindow.MainWindow, logger *slog.Logger) {
	watcher := app.NewBinaryWatcher(logger, 2*time.Second)
	if watcher == nil {
		log.Println("Binary watcher: unable to determine executable path")
		return
	}
	log.Printf("Binary watcher: watching %s", watcher.Path())

	var offerRestart func()
	offerRestart = func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(ok bool) {
				if !ok {
					watcher.Rearm()
					watcher.Start(offerRestart)
					return
				}
				win.SavePreferences()
				if err := watcher.Restart(); err != nil {
					log.Printf("Binary watcher: restart failed: %v", err)
				}
			}, win)
	}
	watcher.Start(offerRestart)
}
