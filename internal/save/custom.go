package save

import (
	"encoding/binary"
	"fmt"
)

// Component type names with a known custom-data layout. Everything else
// goes through RawData untouched.
const (
	typeSwitch  = "MHG.Switch"
	typeButton  = "MHG.Button"
	typeDisplay = "MHG.StandingDisplay"
)

// CustomData is the type-specific payload of a component. It is a
// closed set: the known variants below, plus RawData for every type
// name the codec has no layout for.
type CustomData interface {
	customData()
}

// SwitchData is the payload of MHG.Switch and MHG.Button: an RGB color
// and the on/off state.
type SwitchData struct {
	Color [3]byte
	On    bool
}

// DisplayData is the payload of MHG.StandingDisplay.
type DisplayData struct {
	ColorMode uint32
}

// RawData preserves the payload bytes of an unknown component type
// unchanged, so it re-encodes byte for byte.
type RawData struct {
	Bytes []byte
}

func (SwitchData) customData()  {}
func (DisplayData) customData() {}
func (RawData) customData()     {}

// decodeCustomData interprets a component's raw payload bytes by its
// dictionary type name.
func decodeCustomData(typeName string, data []byte) (CustomData, error) {
	switch typeName {
	case typeSwitch, typeButton:
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: %s payload is %d bytes, need 4", ErrUnexpectedEOF, typeName, len(data))
		}
		return SwitchData{
			Color: [3]byte{data[0], data[1], data[2]},
			On:    data[3] != 0,
		}, nil
	case typeDisplay:
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: %s payload is %d bytes, need 4", ErrUnexpectedEOF, typeName, len(data))
		}
		return DisplayData{
			ColorMode: binary.LittleEndian.Uint32(data),
		}, nil
	default:
		return RawData{Bytes: data}, nil
	}
}

// encodeCustomData serializes a payload variant back to its raw bytes.
func encodeCustomData(d CustomData) []byte {
	switch d := d.(type) {
	case SwitchData:
		on := byte(0)
		if d.On {
			on = 1
		}
		return []byte{d.Color[0], d.Color[1], d.Color[2], on}
	case DisplayData:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], d.ColorMode)
		return b[:]
	case RawData:
		return d.Bytes
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("save: unhandled custom data variant %T", d))
	}
}
