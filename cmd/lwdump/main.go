// lwdump decodes a Logic World save and prints a YAML summary.
//
// Usage:
//
//	lwdump [-save path] [-out file.yaml]
//
// The dump is read-only: it never touches the save file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lwgo/editor/internal/save"
)

// ---------------------------------------------------------------------------
// YAML output structs
// ---------------------------------------------------------------------------

type saveYAML struct {
	GameVersion string          `yaml:"game_version"`
	Mods        []modYAML       `yaml:"mods"`
	Types       []typeYAML      `yaml:"component_types"`
	Components  []componentYAML `yaml:"components"`
	Wires       []wireYAML      `yaml:"wires"`
	States      statesYAML      `yaml:"states"`
}

type modYAML struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type typeYAML struct {
	ID   uint16 `yaml:"id"`
	Name string `yaml:"name"`
}

type componentYAML struct {
	Address  uint32   `yaml:"address"`
	Parent   uint32   `yaml:"parent,omitempty"`
	Type     string   `yaml:"type"`
	Position [3]int32 `yaml:"position,flow"`
	Inputs   []int32  `yaml:"inputs,flow,omitempty"`
	Outputs  []int32  `yaml:"outputs,flow,omitempty"`
	Custom   string   `yaml:"custom,omitempty"`
}

type wireYAML struct {
	Start   pegYAML `yaml:"start"`
	End     pegYAML `yaml:"end"`
	StateID int32   `yaml:"state_id"`
}

type pegYAML struct {
	Kind      string `yaml:"kind"`
	Component uint32 `yaml:"component"`
	Index     int32  `yaml:"index"`
}

type statesYAML struct {
	Bytes     int   `yaml:"bytes"`
	HighestID int32 `yaml:"highest_id"`
	SetBits   int   `yaml:"set_bits"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		savePath = flag.String("save", "data.logicworld", "save file to dump")
		outPath  = flag.String("out", "", "output file (default: stdout)")
	)
	flag.Parse()

	data, err := os.ReadFile(*savePath)
	if err != nil {
		return fmt.Errorf("read save %s: %w", *savePath, err)
	}
	model, err := save.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode save %s: %w", *savePath, err)
	}

	out, err := yaml.Marshal(summarize(model))
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if *outPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	return nil
}

func summarize(model *save.SaveFile) saveYAML {
	doc := saveYAML{
		GameVersion: model.GameVersion.String(),
		Mods:        []modYAML{},
		Types:       []typeYAML{},
		Components:  []componentYAML{},
		Wires:       []wireYAML{},
	}

	for name, version := range model.ModVersions {
		doc.Mods = append(doc.Mods, modYAML{Name: name, Version: version.String()})
	}
	sort.Slice(doc.Mods, func(i, j int) bool { return doc.Mods[i].Name < doc.Mods[j].Name })

	for _, entry := range model.CompMap.Entries() {
		doc.Types = append(doc.Types, typeYAML{ID: entry.ID, Name: entry.Name})
	}

	for _, comp := range model.Components {
		doc.Components = append(doc.Components, componentYAML{
			Address:  comp.Address,
			Parent:   comp.Parent,
			Type:     comp.Type,
			Position: [3]int32{comp.Position.X, comp.Position.Y, comp.Position.Z},
			Inputs:   comp.Inputs,
			Outputs:  comp.Outputs,
			Custom:   describeCustom(comp.Custom),
		})
	}
	for _, wire := range model.Wires {
		doc.Wires = append(doc.Wires, wireYAML{
			Start:   pegYAML{Kind: wire.Start.Type.String(), Component: wire.Start.Component, Index: wire.Start.Index},
			End:     pegYAML{Kind: wire.End.Type.String(), Component: wire.End.Component, Index: wire.End.Index},
			StateID: wire.StateID,
		})
	}

	setBits := 0
	for _, b := range model.States {
		for ; b != 0; b &= b - 1 {
			setBits++
		}
	}
	doc.States = statesYAML{
		Bytes:     len(model.States),
		HighestID: model.HighestStateID(),
		SetBits:   setBits,
	}

	return doc
}

func describeCustom(d save.CustomData) string {
	switch d := d.(type) {
	case save.SwitchData:
		return fmt.Sprintf("color=#%02x%02x%02x on=%t", d.Color[0], d.Color[1], d.Color[2], d.On)
	case save.DisplayData:
		return fmt.Sprintf("color_mode=%d", d.ColorMode)
	case save.RawData:
		if len(d.Bytes) == 0 {
			return ""
		}
		return fmt.Sprintf("raw %d bytes: %x", len(d.Bytes), d.Bytes)
	default:
		return ""
	}
}
