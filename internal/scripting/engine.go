// Package scripting runs user Lua scripts against a decoded save.
// Scripts see a `save` module that wraps exactly the model's public
// mutation surface: the dictionary, the two allocators, and component
// and wire appends. A script cannot touch bytes the codec does not
// expose.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lwgo/editor/internal/save"
)

// Engine wraps a single gopher-lua VM bound to one SaveFile.
// Single-goroutine access only.
type Engine struct {
	vm   *lua.LState
	log  *zap.Logger
	save *save.SaveFile
}

// NewEngine creates a Lua engine bound to s. Close it when done.
func NewEngine(s *save.SaveFile, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, save: s}
	e.registerSaveModule()
	return e
}

func (e *Engine) Close() {
	e.vm.Close()
}

// RunFile executes one script file against the bound save.
func (e *Engine) RunFile(path string) error {
	e.log.Debug("running lua script", zap.String("file", path))
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

// RunString executes inline script source against the bound save.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// registerSaveModule installs the `save` global table.
func (e *Engine) registerSaveModule() {
	mod := e.vm.NewTable()
	e.vm.SetFuncs(mod, map[string]lua.LGFunction{
		"reset":            e.luaReset,
		"ensure":           e.luaEnsure,
		"new_state":        e.luaNewState,
		"new_address":      e.luaNewAddress,
		"add_component":    e.luaAddComponent,
		"add_wire":         e.luaAddWire,
		"component_count":  e.luaComponentCount,
		"wire_count":       e.luaWireCount,
		"highest_state_id": e.luaHighestStateID,
	})
	e.vm.SetGlobal("save", mod)
}

func (e *Engine) luaReset(L *lua.LState) int {
	e.save.Reset()
	return 0
}

func (e *Engine) luaEnsure(L *lua.LState) int {
	name := L.CheckString(1)
	L.Push(lua.LNumber(e.save.CompMap.Ensure(name)))
	return 1
}

func (e *Engine) luaNewState(L *lua.LState) int {
	L.Push(lua.LNumber(e.save.NextStateID()))
	return 1
}

func (e *Engine) luaNewAddress(L *lua.LState) int {
	L.Push(lua.LNumber(e.save.NextAddress()))
	return 1
}

func (e *Engine) luaComponentCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(e.save.Components)))
	return 1
}

func (e *Engine) luaWireCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(e.save.Wires)))
	return 1
}

func (e *Engine) luaHighestStateID(L *lua.LState) int {
	L.Push(lua.LNumber(e.save.HighestStateID()))
	return 1
}

// luaAddComponent appends a component built from a table:
//
//	save.add_component{
//	    type = "MHG.Button",          -- required; auto-registered
//	    parent = 0,
//	    pos = {x=150, y=0, z=150},
//	    rot = {x=0, y=0, z=0, w=0},
//	    inputs = {},                  -- state ids
//	    outputs = {save.new_state()},
//	    custom = {color={255,0,0}, on=false},  -- or {color_mode=n} or a raw string
//	}
//
// The address is allocated automatically and returned.
func (e *Engine) luaAddComponent(L *lua.LState) int {
	t := L.CheckTable(1)

	typeName := lua.LVAsString(t.RawGetString("type"))
	if typeName == "" {
		L.ArgError(1, "component table needs a type name")
		return 0
	}
	e.save.CompMap.Ensure(typeName)

	custom, err := customFromLua(typeName, t.RawGetString("custom"))
	if err != nil {
		L.RaiseError("add_component: %v", err)
		return 0
	}

	comp := save.Component{
		Address:  e.save.NextAddress(),
		Parent:   uint32(lua.LVAsNumber(t.RawGetString("parent"))),
		Type:     typeName,
		Position: vec3FromLua(t.RawGetString("pos")),
		Rotation: quatFromLua(t.RawGetString("rot")),
		Inputs:   stateIDsFromLua(t.RawGetString("inputs")),
		Outputs:  stateIDsFromLua(t.RawGetString("outputs")),
		Custom:   custom,
	}
	e.save.Components = append(e.save.Components, comp)

	L.Push(lua.LNumber(comp.Address))
	return 1
}

// luaAddWire appends a wire built from a table:
//
//	save.add_wire{
//	    from = {type="output", component=addr, index=0},
//	    to   = {type="input",  component=other, index=1},
//	    state = id,        -- optional; a fresh id is allocated if absent
//	    rotation = 0.0,
//	}
func (e *Engine) luaAddWire(L *lua.LState) int {
	t := L.CheckTable(1)

	start, err := pegFromLua(t.RawGetString("from"))
	if err != nil {
		L.RaiseError("add_wire from: %v", err)
		return 0
	}
	end, err := pegFromLua(t.RawGetString("to"))
	if err != nil {
		L.RaiseError("add_wire to: %v", err)
		return 0
	}

	stateID := int32(0)
	if v := t.RawGetString("state"); v != lua.LNil {
		stateID = int32(lua.LVAsNumber(v))
	} else {
		stateID = e.save.NextStateID()
	}

	e.save.Wires = append(e.save.Wires, save.Wire{
		Start:    start,
		End:      end,
		StateID:  stateID,
		Rotation: float32(lua.LVAsNumber(t.RawGetString("rotation"))),
	})

	L.Push(lua.LNumber(stateID))
	return 1
}

func vec3FromLua(v lua.LValue) save.Vec3 {
	t, ok := v.(*lua.LTable)
	if !ok {
		return save.Vec3{}
	}
	return save.Vec3{
		X: int32(lua.LVAsNumber(t.RawGetString("x"))),
		Y: int32(lua.LVAsNumber(t.RawGetString("y"))),
		Z: int32(lua.LVAsNumber(t.RawGetString("z"))),
	}
}

func quatFromLua(v lua.LValue) save.Quat {
	t, ok := v.(*lua.LTable)
	if !ok {
		return save.Quat{}
	}
	return save.Quat{
		X: float32(lua.LVAsNumber(t.RawGetString("x"))),
		Y: float32(lua.LVAsNumber(t.RawGetString("y"))),
		Z: float32(lua.LVAsNumber(t.RawGetString("z"))),
		W: float32(lua.LVAsNumber(t.RawGetString("w"))),
	}
}

func stateIDsFromLua(v lua.LValue) []int32 {
	ids := []int32{}
	t, ok := v.(*lua.LTable)
	if !ok {
		return ids
	}
	for i := 1; i <= t.Len(); i++ {
		ids = append(ids, int32(lua.LVAsNumber(t.RawGetInt(i))))
	}
	return ids
}

func pegFromLua(v lua.LValue) (save.PegAddress, error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return save.PegAddress{}, fmt.Errorf("peg must be a table")
	}

	var pegType save.PegType
	switch kind := lua.LVAsString(t.RawGetString("type")); kind {
	case "input":
		pegType = save.PegInput
	case "output":
		pegType = save.PegOutput
	default:
		return save.PegAddress{}, fmt.Errorf("peg type must be \"input\" or \"output\", got %q", kind)
	}

	return save.PegAddress{
		Type:      pegType,
		Component: uint32(lua.LVAsNumber(t.RawGetString("component"))),
		Index:     int32(lua.LVAsNumber(t.RawGetString("index"))),
	}, nil
}

// customFromLua builds a payload variant from the script value: a table
// with color/on for switches and buttons, a table with color_mode for
// displays, a raw byte string for anything else, or nil for no payload.
func customFromLua(typeName string, v lua.LValue) (save.CustomData, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return save.RawData{Bytes: []byte(v)}, nil
	case *lua.LTable:
		if mode := v.RawGetString("color_mode"); mode != lua.LNil {
			return save.DisplayData{ColorMode: uint32(lua.LVAsNumber(mode))}, nil
		}
		var color [3]byte
		if ct, ok := v.RawGetString("color").(*lua.LTable); ok {
			for i := 0; i < 3; i++ {
				color[i] = byte(lua.LVAsNumber(ct.RawGetInt(i + 1)))
			}
		}
		return save.SwitchData{
			Color: color,
			On:    lua.LVAsBool(v.RawGetString("on")),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported custom data for %s: %s", typeName, v.Type())
	}
}
