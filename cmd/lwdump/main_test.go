package main

import (
	"strings"
	"testing"

	"github.com/lwgo/editor/internal/save"
)

func TestSummarize(t *testing.T) {
	s := save.New()
	s.GameVersion = save.Version{0, 91, 0, 512}
	s.ModVersions["MHG"] = save.Version{1, 0, 0, 0}
	s.CompMap.Ensure("MHG.Switch")
	s.Components = append(s.Components, save.Component{
		Address: s.NextAddress(),
		Type:    "MHG.Switch",
		Outputs: []int32{s.NextStateID()},
		Custom:  save.SwitchData{Color: [3]byte{255, 0, 16}, On: true},
	})
	s.States = []byte{0b1010}

	doc := summarize(s)

	if doc.GameVersion != "0.91.0.512" {
		t.Errorf("game version = %q", doc.GameVersion)
	}
	if len(doc.Mods) != 1 || doc.Mods[0].Name != "MHG" || doc.Mods[0].Version != "1.0.0.0" {
		t.Errorf("mods = %+v", doc.Mods)
	}
	if len(doc.Types) != 1 || doc.Types[0].Name != "MHG.Switch" || doc.Types[0].ID != 1 {
		t.Errorf("types = %+v", doc.Types)
	}
	if len(doc.Components) != 1 {
		t.Fatalf("components = %+v", doc.Components)
	}
	if !strings.Contains(doc.Components[0].Custom, "on=true") {
		t.Errorf("custom description = %q", doc.Components[0].Custom)
	}
	if doc.States.Bytes != 1 || doc.States.SetBits != 2 {
		t.Errorf("states = %+v", doc.States)
	}
}

func TestDescribeCustom(t *testing.T) {
	tests := []struct {
		data save.CustomData
		want string
	}{
		{save.SwitchData{Color: [3]byte{0xff, 0x00, 0x10}, On: false}, "color=#ff0010 on=false"},
		{save.DisplayData{ColorMode: 7}, "color_mode=7"},
		{save.RawData{Bytes: []byte{0xab, 0xcd}}, "raw 2 bytes: abcd"},
		{save.RawData{}, ""},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := describeCustom(tc.data); got != tc.want {
			t.Errorf("describeCustom(%+v) = %q, want %q", tc.data, got, tc.want)
		}
	}
}
