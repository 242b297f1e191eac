// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
)

// Ext is the project file extension.
const Ext = ".draft"

// FormatVersion is written into new project files. Loading rejects
// files from a newer format than this build understands.
const FormatVersion = 1

// File is a drawing project (.draft): the scene plus the view and
// editor settings needed to reopen it where the user left off.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Scene *scene.Scene `json:"scene"`

	View     ViewState `json:"view"`
	Settings Settings  `json:"settings,omitempty"`
}

// ViewState persists the camera between sessions.
type ViewState struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Settings holds per-project editor preferences.
type Settings struct {
	SnapEnabled     bool    `json:"snap_enabled"`
	SnapTolerancePx float64 `json:"snap_tolerance_px,omitempty"`
	ActiveLayer     string  `json:"active_layer,omitempty"`
}

// New creates an empty project with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  FormatVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Scene:    scene.New(),
		View:     ViewState{Scale: 1},
		Settings: Settings{
			SnapEnabled: true,
			ActiveLayer: scene.DefaultLayerName,
		},
	}
}

// Load reads a project from a .draft file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if proj.Version > FormatVersion {
		return nil, fmt.Errorf("%s uses format version %d, this build reads up to %d",
			filepath.Base(path), proj.Version, FormatVersion)
	}
	if proj.Scene == nil {
		proj.Scene = scene.New()
	}
	if proj.View.Scale == 0 {
		proj.View.Scale = 1
	}
	if proj.Name == "" {
		proj.Name = NameFromPath(path)
	}
	return &proj, nil
}

// Save writes the project to a file, stamping the modified time.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ViewTransform converts the persisted view state into a transform.
func (p *File) ViewTransform() transform.ViewTransform {
	return transform.ViewTransform{
		Scale:   p.View.Scale,
		OffsetX: p.View.OffsetX,
		OffsetY: p.View.OffsetY,
	}.Clamp()
}

// SetViewTransform stores a transform for the next session.
func (p *File) SetViewTransform(vt transform.ViewTransform) {
	p.View = ViewState{Scale: vt.Scale, OffsetX: vt.OffsetX, OffsetY: vt.OffsetY}
}

// NameFromPath derives a project name from its file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithExt ensures the path carries the project extension.
func WithExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), Ext) {
		return path
	}
	return path + Ext
}
