package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Editor  EditorConfig  `toml:"editor"`
	Grid    GridConfig    `toml:"grid"`
	Logging LoggingConfig `toml:"logging"`
}

type PathsConfig struct {
	Save      string `toml:"save"`       // the .logicworld file to edit
	BackupDir string `toml:"backup_dir"` // empty = next to the save file
}

type EditorConfig struct {
	// LegacyWirePegs makes the encoder duplicate each wire's start peg,
	// matching saves produced by older third-party editors.
	LegacyWirePegs bool `toml:"legacy_wire_pegs"`
	// Backup keeps a timestamped copy of the save before overwriting it.
	Backup bool `toml:"backup"`
}

// GridConfig parameterizes the built-in button-grid generator.
type GridConfig struct {
	Width   int   `toml:"width"`
	Height  int   `toml:"height"`
	Offset  int32 `toml:"offset"`  // grid origin on the X/Z axes
	Spacing int32 `toml:"spacing"` // distance between buttons
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration, used when no config file
// is given.
func Defaults() *Config {
	return &Config{
		Paths: PathsConfig{
			Save: "data.logicworld",
		},
		Editor: EditorConfig{
			LegacyWirePegs: false,
			Backup:         true,
		},
		Grid: GridConfig{
			Width:   10,
			Height:  10,
			Offset:  150,
			Spacing: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
