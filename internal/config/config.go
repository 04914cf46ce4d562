package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the config file kept next to the entries file.
const FileName = "config.toml"

// Config carries the export and UI settings loaded once at startup.
type Config struct {
	Export ExportConfig `mapstructure:"export"`
	UI     UIConfig     `mapstructure:"ui"`
}

// ExportConfig controls where and how the CSV export lands.
type ExportConfig struct {
	// Path may be home-relative ("~/...").
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// UIConfig holds the session toggles.
type UIConfig struct {
	ShowInstructions bool `mapstructure:"show_instructions"`
	AutoSave         bool `mapstructure:"auto_save"`
}

// Default returns the settings used when no config file exists yet.
func Default() Config {
	return Config{
		Export: ExportConfig{
			Path:   "~/Documents/gridlog_exports",
			Format: "csv",
		},
		UI: UIConfig{
			ShowInstructions: true,
			AutoSave:         true,
		},
	}
}

// Load reads config.toml from dir. A missing file is replaced with defaults on
// disk; a corrupt file falls back to defaults in memory without surfacing an
// error to the session. Only a failure to write the initial defaults is
// reported, as that points at an unusable data directory.
func Load(dir string) (Config, error) {
	cfg := Default()

	v := viper.New()
	path := filepath.Join(dir, FileName)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, writeDefaults(v, dir, path)
		}
		return cfg, nil
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("export.path", defaults.Export.Path)
	v.SetDefault("export.format", defaults.Export.Format)
	v.SetDefault("ui.show_instructions", defaults.UI.ShowInstructions)
	v.SetDefault("ui.auto_save", defaults.UI.AutoSave)
}

func writeDefaults(v *viper.Viper, dir, path string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
