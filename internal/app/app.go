// Package app wires configuration, logging and the keymap registry into a
// session that the command line tools share.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/dshills/keystroke/internal/config"
	"github.com/dshills/keystroke/internal/config/watcher"
	"github.com/dshills/keystroke/internal/input/keymap"
	"github.com/dshills/keystroke/internal/input/keystroke"
	"github.com/dshills/keystroke/internal/plugin/lua"
)

// Options configures a session. Non-empty fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	// KeymapPath is the user keymap file.
	KeymapPath string

	// Context is the binding context used for matching.
	Context string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// SimulateIME forces IME simulation on.
	SimulateIME bool

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// SkipDefaults leaves the built-in keymap out of the registry.
	SkipDefaults bool

	// Quiet disables logging.
	Quiet bool
}

// Session holds the state shared by one invocation of the tool.
type Session struct {
	Config   config.Config
	Registry *keymap.Registry
	Logger   *Logger

	// UserKeymap is the loaded user keymap, nil when none is configured.
	UserKeymap *keymap.Keymap
}

// New loads configuration and keymaps and returns a ready session.
func New(opts Options) (*Session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if opts.KeymapPath != "" {
		cfg.Keymap.Path = opts.KeymapPath
	}
	if opts.Context != "" {
		cfg.Keymap.Context = opts.Context
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.SimulateIME {
		cfg.Input.SimulateIME = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.Logging.Level)
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	logger := NewLogger(logCfg)
	if opts.Quiet {
		logger.Disable()
	}

	s := &Session{
		Config:   cfg,
		Registry: keymap.NewRegistry(),
		Logger:   logger,
	}

	if !opts.SkipDefaults {
		if err := keymap.LoadDefaults(s.Registry); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
	}

	if cfg.Keymap.Path != "" {
		km, err := keymap.LoadAndRegister(s.Registry, cfg.Keymap.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		s.UserKeymap = km
		logger.Debug("loaded keymap %s with %d bindings", km.Name, len(km.Bindings))
	}

	return s, nil
}

// Prepare applies the session's input settings to a raw press.
func (s *Session) Prepare(press keystroke.Keystroke) keystroke.Keystroke {
	if s.Config.Input.SimulateIME {
		return press.WithSimulatedIME()
	}
	return press
}

// Resolve prepares a press and matches it in the session's context.
// It returns the prepared press alongside the binding.
func (s *Session) Resolve(press keystroke.Keystroke) (keystroke.Keystroke, keymap.ParsedBinding, bool) {
	press = s.Prepare(press)
	pb, ok := s.Registry.Match(press, s.Config.Keymap.Context)
	return press, pb, ok
}

// Bindings lists the bindings in effect for the session's context.
func (s *Session) Bindings() []keymap.ParsedBinding {
	return s.Registry.Bindings(s.Config.Keymap.Context)
}

// Watch reloads the user keymap on change until ctx is done. Successful
// reloads replace the user keymap in the registry; extra handlers see
// every reload attempt.
func (s *Session) Watch(ctx context.Context, handlers ...watcher.Handler) error {
	if s.Config.Keymap.Path == "" {
		return ErrNoUserKeymap
	}

	logger := s.Logger.WithComponent("watcher")
	w, err := watcher.New(s.Config.Keymap.Path, watcher.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("watching %s: %w", s.Config.Keymap.Path, err)
	}
	defer w.Close()

	w.OnReload(watcher.RegistryHandler(s.Registry, logger))
	for _, h := range handlers {
		w.OnReload(h)
	}

	logger.Info("watching %s", w.Path())
	return w.Run(ctx)
}

// NewScript creates a Lua state whose keystroke.match resolves presses
// the way Resolve does.
func (s *Session) NewScript(out io.Writer) *lua.State {
	return lua.NewState(
		lua.WithOutput(out),
		lua.WithRegistry(s.Registry),
		lua.WithPrepare(s.Prepare),
		lua.WithDefaultContext(s.Config.Keymap.Context),
	)
}
