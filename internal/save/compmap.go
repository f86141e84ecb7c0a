package save

import (
	"fmt"
	"sort"
)

// CompMap is the save's type dictionary: a bijection between the
// compact numeric type id used on the wire and the component type name.
// Both directions are kept in lockstep; every id present in one map is
// present with the same pairing in the other.
type CompMap struct {
	byID   map[uint16]string
	byName map[string]uint16
}

func NewCompMap() *CompMap {
	return &CompMap{
		byID:   make(map[uint16]string),
		byName: make(map[string]uint16),
	}
}

// Insert records an id↔name pairing in both directions.
func (m *CompMap) Insert(id uint16, name string) {
	m.byID[id] = name
	m.byName[name] = id
}

// Name resolves a numeric wire id to the type name.
func (m *CompMap) Name(id uint16) (string, error) {
	name, ok := m.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: id %d", ErrMissingTypeMapping, id)
	}
	return name, nil
}

// ID resolves a type name to its numeric wire id.
func (m *CompMap) ID(name string) (uint16, error) {
	id, ok := m.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingTypeMapping, name)
	}
	return id, nil
}

// Ensure makes sure name has an entry, assigning max(existing ids)+1 if
// it is new, and returns the id. Existing pairings are never changed
// and ids are never reused, even after the dictionary shrinks via
// SaveFile.Reset.
func (m *CompMap) Ensure(name string) uint16 {
	if id, ok := m.byName[name]; ok {
		return id
	}
	var max uint16
	for id := range m.byID {
		if id > max {
			max = id
		}
	}
	id := max + 1
	m.Insert(id, name)
	return id
}

// Len returns the number of dictionary entries.
func (m *CompMap) Len() int {
	return len(m.byID)
}

// ids returns all numeric ids in ascending order, for deterministic
// encoding.
func (m *CompMap) ids() []uint16 {
	ids := make([]uint16, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entry is one id↔name pairing of the dictionary.
type Entry struct {
	ID   uint16
	Name string
}

// Entries returns all pairings in ascending id order.
func (m *CompMap) Entries() []Entry {
	entries := make([]Entry, 0, len(m.byID))
	for _, id := range m.ids() {
		entries = append(entries, Entry{ID: id, Name: m.byID[id]})
	}
	return entries
}
