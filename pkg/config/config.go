package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	AppDir   = "werename"
	FileName = "config.yaml"
)

// Settings represents the application configuration
type Settings struct {
	UI     UISettings     `yaml:"ui"`
	Rename RenameSettings `yaml:"rename"`
	Editor EditorSettings `yaml:"editor"`
	Output OutputSettings `yaml:"output"`
}

// UISettings controls which host opens and what it lists
type UISettings struct {
	Host       string `yaml:"host"` // "tui" or "gui"
	ShowHidden bool   `yaml:"show_hidden"`
	Sort       string `yaml:"sort"` // "none", "name" or "natural"
}

// RenameSettings controls how a plan is executed
type RenameSettings struct {
	Strict bool `yaml:"strict"`
	Check  bool `yaml:"check"`
}

// EditorSettings controls the external editor used by `werename edit`
type EditorSettings struct {
	Command string `yaml:"command"`
}

// OutputSettings controls report output
type OutputSettings struct {
	Format string `yaml:"format"` // "text", "json" or "yaml"
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Host:       "tui",
			ShowHidden: true,
			Sort:       "name",
		},
		Rename: RenameSettings{
			Strict: false,
			Check:  true,
		},
		Editor: EditorSettings{
			Command: "",
		},
		Output: OutputSettings{
			Format: "text",
		},
	}
}

// DefaultPath is config.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Load reads settings from path. A missing file gives the defaults and
// keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path, creating its directory.
func Save(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// Validate checks the enumerated fields.
func (s *Settings) Validate() error {
	switch s.UI.Host {
	case "tui", "gui":
	default:
		return fmt.Errorf("ui.host must be tui or gui, got %q", s.UI.Host)
	}
	switch s.UI.Sort {
	case "none", "name", "natural":
	default:
		return fmt.Errorf("ui.sort must be none, name or natural, got %q", s.UI.Sort)
	}
	switch s.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", s.Output.Format)
	}
	return nil
}
