package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileYieldsFallbacks(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "absent", "preferences.json"))

	assert.Equal(t, 10.0, p.Float("snap.tolerance", 10.0))
	assert.Equal(t, "dark", p.String("theme", "dark"))
	assert.True(t, p.Bool("snap.enabled", true))
	assert.Nil(t, p.Strings("recent"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.json")

	p := LoadFrom(path)
	p.SetFloat("snap.tolerance", 14)
	p.SetString("active.layer", "dims")
	p.SetBool("snap.enabled", false)
	p.SetStrings("recent", []string{"a.draft", "b.draft"})
	require.NoError(t, p.Save())

	got := LoadFrom(path)
	assert.Equal(t, 14.0, got.Float("snap.tolerance", 0))
	assert.Equal(t, "dims", got.String("active.layer", ""))
	assert.False(t, got.Bool("snap.enabled", true))
	assert.Equal(t, []string{"a.draft", "b.draft"}, got.Strings("recent"))
}

func TestStringsSkipsNonStringElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recent": ["a.draft", 7, "b.draft", null]}`), 0o644))

	p := LoadFrom(path)
	assert.Equal(t, []string{"a.draft", "b.draft"}, p.Strings("recent"))
}

func TestWrongTypeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snap.enabled": "yes", "theme": 3}`), 0o644))

	p := LoadFrom(path)
	assert.True(t, p.Bool("snap.enabled", true))
	assert.Equal(t, "dark", p.String("theme", "dark"))
}

func TestPushRecentDedupesAndTruncates(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))

	p.PushRecent("recent", "a.draft", 3)
	p.PushRecent("recent", "b.draft", 3)
	p.PushRecent("recent", "c.draft", 3)
	assert.Equal(t, []string{"c.draft", "b.draft", "a.draft"}, p.Strings("recent"))

	// Reopening an entry moves it to the front instead of duplicating.
	p.PushRecent("recent", "a.draft", 3)
	assert.Equal(t, []string{"a.draft", "c.draft", "b.draft"}, p.Strings("recent"))

	p.PushRecent("recent", "d.draft", 3)
	assert.Equal(t, []string{"d.draft", "a.draft", "c.draft"}, p.Strings("recent"))
}
