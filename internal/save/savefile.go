package save

// SaveFile is the in-memory model of one decoded world save. It is
// built in full by Decode, mutated through the dictionary, allocator,
// and append APIs, and serialized back with Encode. One SaveFile
// belongs to one decode→mutate→encode cycle; nothing is shared between
// cycles.
type SaveFile struct {
	GameVersion Version
	ModVersions map[string]Version
	CompMap     *CompMap
	Components  []Component
	Wires       []Wire

	// States is the global boolean state buffer, one bit per state id,
	// least-significant bit first within a byte. The bytes round-trip
	// verbatim.
	States []byte

	// highestStateID and highestAddress are high-water marks seeded
	// during decode. The allocators below hand out values strictly
	// above them, so fresh ids never collide with ones already in the
	// file.
	highestStateID int32
	highestAddress uint32
}

// New returns an empty SaveFile ready for mutation: no components,
// wires, or dictionary entries, address mark 1, state mark 0.
func New() *SaveFile {
	return &SaveFile{
		ModVersions:    make(map[string]Version),
		CompMap:        NewCompMap(),
		highestAddress: 1,
	}
}

// HighestStateID reports the largest state id observed or allocated.
func (s *SaveFile) HighestStateID() int32 {
	return s.highestStateID
}

// HighestAddress reports the largest component address observed or
// allocated.
func (s *SaveFile) HighestAddress() uint32 {
	return s.highestAddress
}

// NextStateID allocates a fresh state id, growing the state buffer so
// the id's bit has a backing byte. Ids are strictly increasing and
// gap-free above whatever the decode observed.
func (s *SaveFile) NextStateID() int32 {
	s.highestStateID++
	if int(s.highestStateID/8) >= len(s.States) {
		s.States = append(s.States, 0)
	}
	return s.highestStateID
}

// NextAddress allocates a fresh component address, never colliding
// with any address present when the file was decoded.
func (s *SaveFile) NextAddress() uint32 {
	s.highestAddress++
	return s.highestAddress
}

// Reset discards the world contents (components, wires, type
// dictionary, state buffer) and rewinds both allocators (address mark
// 1, state mark 0). Game and mod version metadata is preserved. Used
// to rebuild a world wholesale while keeping the file-level metadata.
func (s *SaveFile) Reset() {
	s.CompMap = NewCompMap()
	s.Components = nil
	s.Wires = nil
	s.States = nil
	s.highestStateID = 0
	s.highestAddress = 1
}
