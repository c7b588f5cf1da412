package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `ui:
  host: gui
  sort: natural
rename:
  strict: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gui", settings.UI.Host)
	assert.Equal(t, "natural", settings.UI.Sort)
	assert.True(t, settings.UI.ShowHidden, "absent keys keep defaults")
	assert.True(t, settings.Rename.Strict)
	assert.True(t, settings.Rename.Check)
	assert.Equal(t, "text", settings.Output.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown host", content: "ui:\n  host: web\n"},
		{name: "unknown sort", content: "ui:\n  sort: size\n"},
		{name: "unknown format", content: "output:\n  format: xml\n"},
		{name: "malformed yaml", content: "ui: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", AppDir, FileName)
	settings := DefaultSettings()
	settings.Editor.Command = "nano -w"
	settings.UI.ShowHidden = false

	require.NoError(t, Save(path, settings))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
