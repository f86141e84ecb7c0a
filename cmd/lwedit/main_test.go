package main

import (
	"bytes"
	"testing"

	"github.com/lwgo/editor/internal/config"
	"github.com/lwgo/editor/internal/save"
)

func TestGenerateGrid(t *testing.T) {
	model := save.New()
	model.GameVersion = save.Version{0, 91, 0, 512}
	generateGrid(model, config.GridConfig{Width: 10, Height: 10, Offset: 150, Spacing: 300})

	if len(model.Components) != 100 {
		t.Fatalf("got %d components, want 100", len(model.Components))
	}

	seen := map[uint32]bool{}
	for i, comp := range model.Components {
		if comp.Type != "MHG.Button" {
			t.Fatalf("component %d type = %q", i, comp.Type)
		}
		if comp.Address == 0 || seen[comp.Address] {
			t.Fatalf("component %d address %d is zero or repeated", i, comp.Address)
		}
		seen[comp.Address] = true
		if len(comp.Outputs) != 1 {
			t.Fatalf("component %d has %d outputs", i, len(comp.Outputs))
		}
	}

	// 100 addresses from a reset model run 2..101; 100 states run
	// 1..100 and need 13 bytes of backing.
	if model.HighestAddress() != 101 {
		t.Errorf("highest address = %d, want 101", model.HighestAddress())
	}
	if model.HighestStateID() != 100 {
		t.Errorf("highest state id = %d, want 100", model.HighestStateID())
	}
	if len(model.States) != 13 {
		t.Errorf("state buffer = %d bytes, want 13", len(model.States))
	}

	first := model.Components[0]
	if first.Position != (save.Vec3{X: 150, Y: 0, Z: 150}) {
		t.Errorf("first button at %+v", first.Position)
	}

	// The generated world encodes and survives a round trip.
	data, err := save.Encode(model, save.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := save.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back.Components) != 100 || back.GameVersion != model.GameVersion {
		t.Errorf("round trip lost data: %d components, version %v", len(back.Components), back.GameVersion)
	}
}
