// Package save decodes and re-encodes Logic World world saves
// (format version 7). Decode reads a complete byte stream into a
// SaveFile; the model is mutated through the dictionary and allocator
// APIs and serialized back with Encode. Payloads of component types the
// codec does not know are carried through opaquely, so saves written by
// newer game versions survive a decode/encode cycle byte for byte.
package save

import "fmt"

// Version is a 4-part version number as stored in the save stream.
// The codec stores it verbatim and attaches no meaning to the parts.
type Version [4]int32

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// Vec3 is a world-grid position. Raw grid units, no conversion.
type Vec3 struct {
	X, Y, Z int32
}

// Quat is a component rotation. Round-tripped verbatim; the codec does
// not normalize.
type Quat struct {
	X, Y, Z, W float32
}

// PegType tags a PegAddress as pointing at an input or an output peg.
type PegType byte

const (
	PegInput  PegType = 1
	PegOutput PegType = 2
)

func (t PegType) String() string {
	switch t {
	case PegInput:
		return "input"
	case PegOutput:
		return "output"
	default:
		return fmt.Sprintf("PegType(%d)", byte(t))
	}
}

// PegAddress names one peg on one component. The component address is a
// foreign key into SaveFile.Components; the codec does not verify it
// resolves.
type PegAddress struct {
	Type      PegType
	Component uint32
	Index     int32
}

// Wire connects two pegs and carries one global state id.
type Wire struct {
	Start    PegAddress
	End      PegAddress
	StateID  int32
	Rotation float32
}

// Component is one placed world object. Type is the dictionary name
// ("MHG.Button", ...); the compact numeric id only exists on the wire.
// Inputs and Outputs are state ids in peg order; order is significant.
type Component struct {
	Address  uint32
	Parent   uint32 // 0 = no parent
	Type     string
	Position Vec3
	Rotation Quat
	Inputs   []int32
	Outputs  []int32
	Custom   CustomData
}
