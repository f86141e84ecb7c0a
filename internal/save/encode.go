package save

import (
	"fmt"
	"sort"
)

// EncodeOptions controls wire-compatibility quirks of the encoder.
type EncodeOptions struct {
	// LegacyWirePegs writes each wire's start peg twice instead of
	// start then end. Some third-party save editors emit this layout;
	// enable it only to produce byte-identical output for files that
	// came from such a tool. The end peg is lost on every wire.
	LegacyWirePegs bool
}

// Encode serializes the model into a complete save byte stream. The
// whole stream is built in memory; on error nothing is returned, so a
// caller can commit the result atomically. Dictionary and mod-table
// sections are written in sorted order, making output deterministic
// for a given model.
func Encode(s *SaveFile, opts EncodeOptions) ([]byte, error) {
	w := newWriter()

	w.Magic(headerMagic)
	w.Byte(formatVersion)
	writeVersion(w, s.GameVersion)
	w.Byte(saveTypeWorld)

	w.Int32(int32(len(s.Components)))
	w.Int32(int32(len(s.Wires)))

	writeModVersions(w, s.ModVersions)
	writeCompMap(w, s.CompMap)

	for i, comp := range s.Components {
		if err := writeComponent(w, s.CompMap, comp); err != nil {
			return nil, fmt.Errorf("writing component %d: %w", i, err)
		}
	}
	for _, wire := range s.Wires {
		writeWire(w, wire, opts)
	}

	w.Int32(int32(len(s.States)))
	w.Bytes(s.States)

	w.Magic(footerMagic)

	return w.buf, nil
}

func writeVersion(w *writer, v Version) {
	for _, n := range v {
		w.Int32(n)
	}
}

func writeModVersions(w *writer, mods map[string]Version) {
	names := make([]string, 0, len(mods))
	for name := range mods {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Int32(int32(len(names)))
	for _, name := range names {
		w.String(name)
		writeVersion(w, mods[name])
	}
}

func writeCompMap(w *writer, m *CompMap) {
	ids := m.ids()
	w.Int32(int32(len(ids)))
	for _, id := range ids {
		w.Uint16(id)
		w.String(m.byID[id])
	}
}

func writeComponent(w *writer, m *CompMap, comp Component) error {
	typeID, err := m.ID(comp.Type)
	if err != nil {
		return err
	}

	w.Uint32(comp.Address)
	w.Uint32(comp.Parent)
	w.Uint16(typeID)

	w.Int32(comp.Position.X)
	w.Int32(comp.Position.Y)
	w.Int32(comp.Position.Z)

	w.Float32(comp.Rotation.X)
	w.Float32(comp.Rotation.Y)
	w.Float32(comp.Rotation.Z)
	w.Float32(comp.Rotation.W)

	w.Int32(int32(len(comp.Inputs)))
	for _, id := range comp.Inputs {
		w.Int32(id)
	}
	w.Int32(int32(len(comp.Outputs)))
	for _, id := range comp.Outputs {
		w.Int32(id)
	}

	data := encodeCustomData(comp.Custom)
	w.Int32(int32(len(data)))
	w.Bytes(data)

	return nil
}

func writeWire(w *writer, wire Wire, opts EncodeOptions) {
	writePegAddress(w, wire.Start)
	if opts.LegacyWirePegs {
		writePegAddress(w, wire.Start)
	} else {
		writePegAddress(w, wire.End)
	}
	w.Int32(wire.StateID)
	w.Float32(wire.Rotation)
}

func writePegAddress(w *writer, peg PegAddress) {
	w.Byte(byte(peg.Type))
	w.Uint32(peg.Component)
	w.Int32(peg.Index)
}
