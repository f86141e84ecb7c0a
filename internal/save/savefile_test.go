package save

import (
	"testing"
)

func TestNextStateIDGrowsBuffer(t *testing.T) {
	s := New()
	s.Reset()

	for want := int32(1); want <= 100; want++ {
		if got := s.NextStateID(); got != want {
			t.Fatalf("NextStateID = %d, want %d", got, want)
		}
	}
	// 100 state ids need ceil(100/8) bytes of backing.
	if len(s.States) != 13 {
		t.Errorf("state buffer is %d bytes after 100 ids, want 13", len(s.States))
	}
}

func TestNextAddressSequence(t *testing.T) {
	s := New()
	s.Reset()

	for want := uint32(2); want <= 101; want++ {
		if got := s.NextAddress(); got != want {
			t.Fatalf("NextAddress = %d, want %d", got, want)
		}
	}
}

func TestAllocatorsNeverCollideWithDecoded(t *testing.T) {
	s := decodeOrFatal(t, populatedSaveBytes())

	seenStates := map[int32]bool{}
	for _, c := range s.Components {
		for _, id := range append(append([]int32{}, c.Inputs...), c.Outputs...) {
			seenStates[id] = true
		}
	}
	seenAddrs := map[uint32]bool{}
	for _, c := range s.Components {
		seenAddrs[c.Address] = true
	}
	for _, w := range s.Wires {
		seenStates[w.StateID] = true
	}

	prevState, prevAddr := s.HighestStateID(), s.HighestAddress()
	for i := 0; i < 50; i++ {
		id := s.NextStateID()
		if id <= prevState || seenStates[id] {
			t.Fatalf("state id %d repeats or collides", id)
		}
		prevState = id

		addr := s.NextAddress()
		if addr <= prevAddr || seenAddrs[addr] {
			t.Fatalf("address %d repeats or collides", addr)
		}
		prevAddr = addr
	}
}

func TestReset(t *testing.T) {
	s := decodeOrFatal(t, populatedSaveBytes())
	gameVersion := s.GameVersion
	modCount := len(s.ModVersions)

	s.Reset()

	if len(s.Components) != 0 || len(s.Wires) != 0 || s.CompMap.Len() != 0 {
		t.Error("Reset left world contents behind")
	}
	if len(s.States) != 0 {
		t.Errorf("Reset left %d state bytes", len(s.States))
	}
	if s.HighestStateID() != 0 || s.HighestAddress() != 1 {
		t.Errorf("Reset marks = %d/%d, want 0/1", s.HighestStateID(), s.HighestAddress())
	}

	// Metadata survives.
	if s.GameVersion != gameVersion {
		t.Errorf("game version changed to %v", s.GameVersion)
	}
	if len(s.ModVersions) != modCount {
		t.Errorf("mod table changed, %d entries left", len(s.ModVersions))
	}

	// A reset model still encodes and round-trips.
	data, err := Encode(s, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode after Reset: %v", err)
	}
	back := decodeOrFatal(t, data)
	if back.GameVersion != gameVersion {
		t.Errorf("round trip after Reset lost the game version")
	}
	if len(back.States) != 0 {
		t.Errorf("round trip after Reset has %d state bytes", len(back.States))
	}
}
