package save

import (
	"errors"
	"fmt"
	"io"
)

const (
	headerMagic = "Logic World save"
	footerMagic = "redstone sux lol"

	formatVersion = 7
	saveTypeWorld = 1
)

// decoder carries the per-decode state: the stream, the dictionary
// (components resolve type ids through it as they are read), and the
// running state-id high-water mark.
type decoder struct {
	r              *reader
	compMap        *CompMap
	highestStateID int32
}

// Decode reads one complete save stream into a SaveFile. Any failure
// aborts the whole decode; no partial model is ever returned. The
// stream is consumed exactly through the footer.
func Decode(src io.Reader) (*SaveFile, error) {
	d := &decoder{r: newReader(src), compMap: NewCompMap()}
	return d.decode()
}

func (d *decoder) decode() (*SaveFile, error) {
	if err := d.r.Magic(headerMagic); err != nil {
		return nil, fmt.Errorf("validating header: %w", wrapMagic(err, ErrHeaderMismatch))
	}

	ver, err := d.r.Byte()
	if err != nil {
		return nil, fmt.Errorf("reading format version: %w", err)
	}
	if ver != formatVersion {
		return nil, fmt.Errorf("%w: got %d, support %d", ErrUnsupportedVersion, ver, formatVersion)
	}

	gameVersion, err := d.readVersion()
	if err != nil {
		return nil, fmt.Errorf("reading game version: %w", err)
	}

	saveType, err := d.r.Byte()
	if err != nil {
		return nil, fmt.Errorf("reading save type: %w", err)
	}
	if saveType != saveTypeWorld {
		return nil, fmt.Errorf("%w: got %d, support %d", ErrUnsupportedType, saveType, saveTypeWorld)
	}

	numComponents, err := d.readCount()
	if err != nil {
		return nil, fmt.Errorf("reading component count: %w", err)
	}
	numWires, err := d.readCount()
	if err != nil {
		return nil, fmt.Errorf("reading wire count: %w", err)
	}

	modVersions, err := d.readModVersions()
	if err != nil {
		return nil, fmt.Errorf("reading mod versions: %w", err)
	}

	if err := d.readCompMap(); err != nil {
		return nil, fmt.Errorf("reading type dictionary: %w", err)
	}

	components := make([]Component, 0, numComponents)
	for i := int32(0); i < numComponents; i++ {
		comp, err := d.readComponent()
		if err != nil {
			return nil, fmt.Errorf("reading component %d: %w", i, err)
		}
		components = append(components, comp)
	}

	wires := make([]Wire, 0, numWires)
	for i := int32(0); i < numWires; i++ {
		wire, err := d.readWire()
		if err != nil {
			return nil, fmt.Errorf("reading wire %d: %w", i, err)
		}
		wires = append(wires, wire)
	}

	numStates, err := d.r.Int32()
	if err != nil {
		return nil, fmt.Errorf("reading state count: %w", err)
	}
	if numStates < 0 {
		numStates = 0
	}
	states, err := d.r.Bytes(int(numStates))
	if err != nil {
		return nil, fmt.Errorf("reading state buffer: %w", err)
	}

	if err := d.r.Magic(footerMagic); err != nil {
		return nil, fmt.Errorf("validating footer: %w", wrapMagic(err, ErrFooterMismatch))
	}

	// Seed the address allocator above every address in the file.
	highestAddress := uint32(1)
	for _, comp := range components {
		if comp.Address > highestAddress {
			highestAddress = comp.Address
		}
	}

	return &SaveFile{
		GameVersion:    gameVersion,
		ModVersions:    modVersions,
		CompMap:        d.compMap,
		Components:     components,
		Wires:          wires,
		States:         states,
		highestStateID: d.highestStateID,
		highestAddress: highestAddress,
	}, nil
}

// wrapMagic tags a magic-comparison failure with the right sentinel.
// Truncation stays ErrUnexpectedEOF.
func wrapMagic(err, sentinel error) error {
	if errors.Is(err, ErrUnexpectedEOF) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// readCount reads an int32 record count. The format never carries a
// negative count, so one is a structural error rather than a zero.
func (d *decoder) readCount() (int32, error) {
	n, err := d.r.Int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return n, nil
}

func (d *decoder) readVersion() (Version, error) {
	var v Version
	for i := range v {
		n, err := d.r.Int32()
		if err != nil {
			return Version{}, err
		}
		v[i] = n
	}
	return v, nil
}

// readModVersions reads the mod table into a name-keyed map. A
// duplicated mod name keeps its last occurrence.
func (d *decoder) readModVersions() (map[string]Version, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, fmt.Errorf("reading count: %w", err)
	}
	mods := make(map[string]Version, count)
	for i := int32(0); i < count; i++ {
		name, err := d.r.String()
		if err != nil {
			return nil, fmt.Errorf("reading mod %d name: %w", i, err)
		}
		version, err := d.readVersion()
		if err != nil {
			return nil, fmt.Errorf("reading mod %q version: %w", name, err)
		}
		mods[name] = version
	}
	return mods, nil
}

func (d *decoder) readCompMap() error {
	count, err := d.readCount()
	if err != nil {
		return fmt.Errorf("reading count: %w", err)
	}
	for i := int32(0); i < count; i++ {
		id, err := d.r.Uint16()
		if err != nil {
			return fmt.Errorf("reading entry %d id: %w", i, err)
		}
		name, err := d.r.String()
		if err != nil {
			return fmt.Errorf("reading entry %d name: %w", i, err)
		}
		d.compMap.Insert(id, name)
	}
	return nil
}

func (d *decoder) readComponent() (Component, error) {
	var comp Component
	var err error

	if comp.Address, err = d.r.Uint32(); err != nil {
		return Component{}, fmt.Errorf("reading address: %w", err)
	}
	if comp.Parent, err = d.r.Uint32(); err != nil {
		return Component{}, fmt.Errorf("reading parent: %w", err)
	}

	typeID, err := d.r.Uint16()
	if err != nil {
		return Component{}, fmt.Errorf("reading type id: %w", err)
	}
	if comp.Type, err = d.compMap.Name(typeID); err != nil {
		return Component{}, err
	}

	if comp.Position, err = d.readVec3(); err != nil {
		return Component{}, fmt.Errorf("reading position: %w", err)
	}
	if comp.Rotation, err = d.readQuat(); err != nil {
		return Component{}, fmt.Errorf("reading rotation: %w", err)
	}

	if comp.Inputs, err = d.readStateIDs(); err != nil {
		return Component{}, fmt.Errorf("reading inputs: %w", err)
	}
	if comp.Outputs, err = d.readStateIDs(); err != nil {
		return Component{}, fmt.Errorf("reading outputs: %w", err)
	}

	size, err := d.r.Int32()
	if err != nil {
		return Component{}, fmt.Errorf("reading custom data size: %w", err)
	}
	if size < 0 {
		size = 0
	}
	data, err := d.r.Bytes(int(size))
	if err != nil {
		return Component{}, fmt.Errorf("reading custom data: %w", err)
	}
	if comp.Custom, err = decodeCustomData(comp.Type, data); err != nil {
		return Component{}, fmt.Errorf("reading custom data: %w", err)
	}

	return comp, nil
}

func (d *decoder) readVec3() (Vec3, error) {
	var v Vec3
	var err error
	if v.X, err = d.r.Int32(); err != nil {
		return Vec3{}, err
	}
	if v.Y, err = d.r.Int32(); err != nil {
		return Vec3{}, err
	}
	v.Z, err = d.r.Int32()
	return v, err
}

func (d *decoder) readQuat() (Quat, error) {
	var q Quat
	var err error
	if q.X, err = d.r.Float32(); err != nil {
		return Quat{}, err
	}
	if q.Y, err = d.r.Float32(); err != nil {
		return Quat{}, err
	}
	if q.Z, err = d.r.Float32(); err != nil {
		return Quat{}, err
	}
	q.W, err = d.r.Float32()
	return q, err
}

// readStateIDs reads an int32 count followed by that many state ids.
// Every observed id pushes the state high-water mark.
func (d *decoder) readStateIDs() ([]int32, error) {
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}
	ids := make([]int32, 0, count)
	for i := int32(0); i < count; i++ {
		id, err := d.readStateID()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *decoder) readStateID() (int32, error) {
	id, err := d.r.Int32()
	if err != nil {
		return 0, err
	}
	if id > d.highestStateID {
		d.highestStateID = id
	}
	return id, nil
}

func (d *decoder) readWire() (Wire, error) {
	var wire Wire
	var err error

	if wire.Start, err = d.readPegAddress(); err != nil {
		return Wire{}, fmt.Errorf("reading start peg: %w", err)
	}
	if wire.End, err = d.readPegAddress(); err != nil {
		return Wire{}, fmt.Errorf("reading end peg: %w", err)
	}
	if wire.StateID, err = d.readStateID(); err != nil {
		return Wire{}, fmt.Errorf("reading state id: %w", err)
	}
	if wire.Rotation, err = d.r.Float32(); err != nil {
		return Wire{}, fmt.Errorf("reading rotation: %w", err)
	}
	return wire, nil
}

func (d *decoder) readPegAddress() (PegAddress, error) {
	var peg PegAddress

	tag, err := d.r.Byte()
	if err != nil {
		return PegAddress{}, fmt.Errorf("reading peg type: %w", err)
	}
	switch PegType(tag) {
	case PegInput, PegOutput:
		peg.Type = PegType(tag)
	default:
		return PegAddress{}, fmt.Errorf("%w: %d", ErrUnknownPegType, tag)
	}

	if peg.Component, err = d.r.Uint32(); err != nil {
		return PegAddress{}, fmt.Errorf("reading component address: %w", err)
	}
	if peg.Index, err = d.r.Int32(); err != nil {
		return PegAddress{}, fmt.Errorf("reading peg index: %w", err)
	}
	return peg, nil
}
