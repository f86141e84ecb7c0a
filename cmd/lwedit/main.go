// lwedit decodes a Logic World save, applies a mutation, and writes
// the save back atomically.
//
// Usage:
//
//	lwedit [-config path] [-save path] [-script file.lua | -grid] [-dry-run]
//
// With -grid the world is cleared and replaced by a button grid sized
// by the [grid] config section. With -script the given Lua file runs
// against the decoded model (see internal/scripting for the API).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lwgo/editor/internal/config"
	"github.com/lwgo/editor/internal/persist"
	"github.com/lwgo/editor/internal/save"
	"github.com/lwgo/editor/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath    = flag.String("config", "", "config file (default: built-in defaults, or $LWEDIT_CONFIG)")
		savePath   = flag.String("save", "", "save file to edit (overrides config)")
		scriptPath = flag.String("script", "", "Lua mutation script to run")
		grid       = flag.Bool("grid", false, "replace the world with the built-in button grid")
		dryRun     = flag.Bool("dry-run", false, "decode and mutate but do not write the save")
	)
	flag.Parse()

	if *cfgPath == "" {
		*cfgPath = os.Getenv("LWEDIT_CONFIG")
	}
	cfg := config.Defaults()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if *savePath != "" {
		cfg.Paths.Save = *savePath
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	store := persist.NewStore(cfg.Paths.Save, cfg.Paths.BackupDir, log)

	data, err := store.Load()
	if err != nil {
		return err
	}
	model, err := save.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode save: %w", err)
	}
	log.Info("decoded save",
		zap.String("path", cfg.Paths.Save),
		zap.String("game_version", model.GameVersion.String()),
		zap.Int("components", len(model.Components)),
		zap.Int("wires", len(model.Wires)),
		zap.Int("mods", len(model.ModVersions)),
	)

	switch {
	case *scriptPath != "":
		engine := scripting.NewEngine(model, log)
		defer engine.Close()
		if err := engine.RunFile(*scriptPath); err != nil {
			return err
		}
	case *grid:
		generateGrid(model, cfg.Grid)
		log.Info("generated button grid",
			zap.Int("width", cfg.Grid.Width),
			zap.Int("height", cfg.Grid.Height),
		)
	default:
		log.Info("no mutation requested, re-encoding as-is")
	}

	out, err := save.Encode(model, save.EncodeOptions{
		LegacyWirePegs: cfg.Editor.LegacyWirePegs,
	})
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	if *dryRun {
		log.Info("dry run, not writing",
			zap.Int("components", len(model.Components)),
			zap.Int("bytes", len(out)),
		)
		return nil
	}
	return store.Commit(out, cfg.Editor.Backup)
}

// generateGrid clears the world and fills it with a grid of buttons,
// each with its own output state and a color gradient across the grid.
func generateGrid(model *save.SaveFile, grid config.GridConfig) {
	model.Reset()
	model.CompMap.Ensure("MHG.Button")

	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			model.Components = append(model.Components, save.Component{
				Address: model.NextAddress(),
				Parent:  0,
				Type:    "MHG.Button",
				Position: save.Vec3{
					X: grid.Offset + int32(x)*grid.Spacing,
					Y: int32(x+y) * 100,
					Z: grid.Offset + int32(y)*grid.Spacing,
				},
				Inputs:  []int32{},
				Outputs: []int32{model.NextStateID()},
				Custom: save.SwitchData{
					Color: [3]byte{byte(x * 10), byte(y * 10), 0},
				},
			})
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
