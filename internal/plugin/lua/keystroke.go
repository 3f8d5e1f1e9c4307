package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keystroke/internal/input/keymap"
	"github.com/dshills/keystroke/internal/input/keystroke"
)

// PrepareFunc adjusts a press before it is matched.
type PrepareFunc func(keystroke.Keystroke) keystroke.Keystroke

// KeystrokeModule implements the keystroke Lua module.
type KeystrokeModule struct {
	registry *keymap.Registry
	prepare  PrepareFunc
	context  string
}

// NewKeystrokeModule creates the module. registry may be nil, in which case
// keystroke.match always returns nil.
func NewKeystrokeModule(registry *keymap.Registry) *KeystrokeModule {
	return &KeystrokeModule{registry: registry}
}

// WithPrepare sets the function applied to presses before matching.
func (m *KeystrokeModule) WithPrepare(fn PrepareFunc) *KeystrokeModule {
	m.prepare = fn
	return m
}

// WithDefaultContext sets the context used when match gets none.
func (m *KeystrokeModule) WithDefaultContext(name string) *KeystrokeModule {
	m.context = name
	return m
}

// Name returns the module name.
func (m *KeystrokeModule) Name() string {
	return "keystroke"
}

// Register installs the module as a global table.
func (m *KeystrokeModule) Register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "parse", L.NewFunction(m.parse))
	L.SetField(mod, "candidates", L.NewFunction(m.candidates))
	L.SetField(mod, "simulate_ime", L.NewFunction(m.simulateIME))
	L.SetField(mod, "display", L.NewFunction(m.display))
	L.SetField(mod, "spec", L.NewFunction(m.spec))
	L.SetField(mod, "match", L.NewFunction(m.match))

	L.SetGlobal(m.Name(), mod)
}

// parse(source) -> table | nil, err
func (m *KeystrokeModule) parse(L *lua.LState) int {
	source := L.CheckString(1)
	ks, err := keystroke.Parse(source)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(toTable(L, ks))
	return 1
}

// candidates(ks) -> {spec, ...}
func (m *KeystrokeModule) candidates(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	result := L.NewTable()
	for _, c := range ks.MatchCandidates() {
		result.Append(lua.LString(c.Spec()))
	}
	L.Push(result)
	return 1
}

// simulate_ime(ks) -> table
func (m *KeystrokeModule) simulateIME(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	L.Push(toTable(L, ks.WithSimulatedIME()))
	return 1
}

// display(ks) -> string
func (m *KeystrokeModule) display(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	L.Push(lua.LString(ks.String()))
	return 1
}

// spec(ks) -> string
func (m *KeystrokeModule) spec(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	L.Push(lua.LString(ks.Spec()))
	return 1
}

// match(ks, context?) -> action | nil
//
// Without a context argument the module's default context is used.
func (m *KeystrokeModule) match(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	context := L.OptString(2, m.context)

	if m.prepare != nil {
		ks = m.prepare(ks)
	}
	if m.registry == nil {
		L.Push(lua.LNil)
		return 1
	}
	pb, ok := m.registry.Match(ks, context)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(pb.Action))
	return 1
}

// checkKeystroke reads argument n as a chord string or keystroke table.
func checkKeystroke(L *lua.LState, n int) keystroke.Keystroke {
	switch v := L.Get(n).(type) {
	case lua.LString:
		ks, err := keystroke.Parse(string(v))
		if err != nil {
			L.ArgError(n, err.Error())
		}
		return ks
	case *lua.LTable:
		ks, ok := fromTable(v)
		if !ok {
			L.ArgError(n, "keystroke table needs a non-empty key")
		}
		return ks
	default:
		L.TypeError(n, lua.LTString)
		return keystroke.Keystroke{}
	}
}

// toTable converts a keystroke to a Lua table.
func toTable(L *lua.LState, ks keystroke.Keystroke) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("ctrl", lua.LBool(ks.Modifiers.Control))
	t.RawSetString("alt", lua.LBool(ks.Modifiers.Alt))
	t.RawSetString("shift", lua.LBool(ks.Modifiers.Shift))
	t.RawSetString("cmd", lua.LBool(ks.Modifiers.Command))
	t.RawSetString("fn", lua.LBool(ks.Modifiers.Function))
	t.RawSetString("key", lua.LString(ks.Key))
	if ime, ok := ks.IME(); ok {
		t.RawSetString("ime_key", lua.LString(ime))
	}
	return t
}

// fromTable converts a Lua table to a keystroke.
func fromTable(t *lua.LTable) (keystroke.Keystroke, bool) {
	key, ok := t.RawGetString("key").(lua.LString)
	if !ok || key == "" {
		return keystroke.Keystroke{}, false
	}

	ks := keystroke.New(keystroke.Modifiers{
		Control:  lua.LVAsBool(t.RawGetString("ctrl")),
		Alt:      lua.LVAsBool(t.RawGetString("alt")),
		Shift:    lua.LVAsBool(t.RawGetString("shift")),
		Command:  lua.LVAsBool(t.RawGetString("cmd")),
		Function: lua.LVAsBool(t.RawGetString("fn")),
	}, string(key))

	if ime, ok := t.RawGetString("ime_key").(lua.LString); ok {
		ks = ks.WithIMEKey(string(ime))
	}
	return ks, true
}
