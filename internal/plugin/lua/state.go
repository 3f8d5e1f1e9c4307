package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keystroke/internal/input/keymap"
)

// DefaultExecutionTimeout bounds a single script run.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a gopher-lua state with the keystroke module installed.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes calls
// made through State.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	output           io.Writer
	registry         *keymap.Registry
	prepare          PrepareFunc
	defaultContext   string

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for a single script run.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithOutput redirects print to w.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// WithRegistry attaches a keymap registry for keystroke.match.
func WithRegistry(r *keymap.Registry) StateOption {
	return func(s *State) {
		s.registry = r
	}
}

// WithPrepare sets the function applied to a press before keystroke.match
// looks it up, such as IME simulation.
func WithPrepare(fn PrepareFunc) StateOption {
	return func(s *State) {
		s.prepare = fn
	}
}

// WithDefaultContext sets the context keystroke.match uses when the script
// passes none.
func WithDefaultContext(name string) StateOption {
	return func(s *State) {
		s.defaultContext = name
	}
}

// NewState creates a Lua state with safe libraries and the keystroke module.
func NewState(opts ...StateOption) *State {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		output:           os.Stdout,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	state.L = L

	L.SetGlobal("print", L.NewFunction(state.print))
	NewKeystrokeModule(state.registry).
		WithPrepare(state.prepare).
		WithDefaultContext(state.defaultContext).
		Register(L)

	return state
}

// openSafeLibraries opens only the Lua libraries without I/O.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// dofile and loadfile reach the file system.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
}

// print writes its arguments tab-separated to the state's output.
func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(s.output, strings.Join(parts, "\t"))
	return 0
}

// DoString executes Lua source.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error { return s.L.DoString(code) })
}

// DoFile executes a Lua file. The file is read by Go; scripts themselves
// cannot open files.
func (s *State) DoFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	fn, err := s.compile(string(data), path)
	if err != nil {
		return err
	}
	return s.run(ctx, func() error {
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

func (s *State) compile(code, name string) (*lua.LFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}
	return s.L.Load(strings.NewReader(code), name)
}

// run executes fn with the execution timeout and panic recovery.
func (s *State) run(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state. It is safe to call more than once.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
