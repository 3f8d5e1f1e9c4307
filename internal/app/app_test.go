package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keystroke/internal/config"
	"github.com/dshills/keystroke/internal/config/watcher"
	"github.com/dshills/keystroke/internal/input/keystroke"
)

const userKeymap = `name = "user"

[[bindings]]
keys = "ß"
action = "insert.eszett"

[[bindings]]
keys = "A"
action = "insert.capitalA"

[[bindings]]
keys = "ctrl-k"
action = "editor.kill"
context = "editor"
`

// isolateEnv unsets the configuration environment so a developer's
// settings do not leak into tests. The variables are restored on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.EnvKeymap, config.EnvContext, config.EnvSimulateIME, config.EnvLogLevel} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")
	}
	if opts.LogOutput == nil {
		opts.LogOutput = &bytes.Buffer{}
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	return s
}

func TestNewDefaultsOnly(t *testing.T) {
	isolateEnv(t)
	s := newSession(t, Options{})

	if s.UserKeymap != nil {
		t.Error("UserKeymap should be nil without a keymap path")
	}
	_, pb, ok := s.Resolve(keystroke.MustParse("cmd-s"))
	if !ok || pb.Action != "file.save" {
		t.Errorf("Resolve(cmd-s) = %q, %v", pb.Action, ok)
	}
}

func TestNewSkipDefaults(t *testing.T) {
	isolateEnv(t)
	s := newSession(t, Options{SkipDefaults: true})

	if _, _, ok := s.Resolve(keystroke.MustParse("cmd-s")); ok {
		t.Error("cmd-s should not match without defaults")
	}
	if len(s.Bindings()) != 0 {
		t.Errorf("Bindings() = %d entries, want 0", len(s.Bindings()))
	}
}

func TestNewFromConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	kmPath := writeFile(t, dir, "user.toml", userKeymap)
	cfgPath := writeFile(t, dir, "config.toml", `
[keymap]
path = "`+filepath.ToSlash(kmPath)+`"
context = "editor"

[logging]
level = "debug"
`)

	var logs bytes.Buffer
	s := newSession(t, Options{ConfigPath: cfgPath, LogOutput: &logs})

	if s.UserKeymap == nil || s.UserKeymap.Name != "user" {
		t.Fatalf("UserKeymap = %+v", s.UserKeymap)
	}
	if s.Config.Keymap.Context != "editor" {
		t.Errorf("Context = %q", s.Config.Keymap.Context)
	}
	if !bytes.Contains(logs.Bytes(), []byte("loaded keymap user")) {
		t.Errorf("debug log missing, got %q", logs.String())
	}

	tests := []struct {
		press  string
		action string
	}{
		{"alt-s->ß", "insert.eszett"},
		{"ctrl-k", "editor.kill"},
		{"enter", "editor.newline"},
		{"cmd-s", "file.save"},
	}
	for _, tt := range tests {
		t.Run(tt.press, func(t *testing.T) {
			_, pb, ok := s.Resolve(keystroke.MustParse(tt.press))
			if !ok || pb.Action != tt.action {
				t.Errorf("Resolve(%s) = %q, %v; want %q", tt.press, pb.Action, ok, tt.action)
			}
		})
	}
}

func TestNewQuiet(t *testing.T) {
	isolateEnv(t)
	kmPath := writeFile(t, t.TempDir(), "user.toml", userKeymap)

	var logs bytes.Buffer
	s := newSession(t, Options{KeymapPath: kmPath, LogLevel: "debug", LogOutput: &logs, Quiet: true})
	s.Logger.Error("dropped")

	if logs.Len() != 0 {
		t.Errorf("quiet session logged %q", logs.String())
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	kmPath := writeFile(t, dir, "user.toml", userKeymap)

	s := newSession(t, Options{KeymapPath: kmPath, Context: "editor", LogLevel: "warn"})

	if s.Config.Keymap.Path != kmPath {
		t.Errorf("Keymap.Path = %q", s.Config.Keymap.Path)
	}
	if s.Logger.level != LogLevelWarn {
		t.Errorf("logger level = %v, want warn", s.Logger.level)
	}
	if _, pb, ok := s.Resolve(keystroke.MustParse("ctrl-k")); !ok || pb.Action != "editor.kill" {
		t.Errorf("Resolve(ctrl-k) = %q, %v", pb.Action, ok)
	}
}

func TestResolveSimulatesIME(t *testing.T) {
	isolateEnv(t)
	kmPath := writeFile(t, t.TempDir(), "user.toml", userKeymap)

	plain := newSession(t, Options{KeymapPath: kmPath})
	if _, _, ok := plain.Resolve(keystroke.MustParse("shift-a")); ok {
		t.Error("shift-a should not match without IME simulation")
	}

	s := newSession(t, Options{KeymapPath: kmPath, SimulateIME: true})
	press, pb, ok := s.Resolve(keystroke.MustParse("shift-a"))
	if !ok || pb.Action != "insert.capitalA" {
		t.Errorf("Resolve(shift-a) = %q, %v", pb.Action, ok)
	}
	if ime, _ := press.IME(); ime != "A" {
		t.Errorf("prepared IME = %q, want A", ime)
	}
}

func TestNewErrors(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	badKeymap := writeFile(t, dir, "bad.toml", `
[[bindings]]
keys = "ctrl"
action = "x"
`)
	_, err := New(Options{ConfigPath: filepath.Join(dir, "none.toml"), KeymapPath: badKeymap})
	if !errors.Is(err, ErrInitialization) {
		t.Errorf("error = %v, want ErrInitialization", err)
	}
	if !errors.Is(err, keystroke.ErrInvalidKeystroke) {
		t.Errorf("error = %v, want ErrInvalidKeystroke", err)
	}

	_, err = New(Options{ConfigPath: filepath.Join(dir, "none.toml"), LogLevel: "loud"})
	if !errors.Is(err, config.ErrInvalidLogLevel) {
		t.Errorf("error = %v, want ErrInvalidLogLevel", err)
	}

	badConfig := writeFile(t, dir, "config.toml", "[keymap\n")
	_, err = New(Options{ConfigPath: badConfig})
	var pe *config.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want *config.ParseError", err)
	}
}

func TestWatchWithoutKeymap(t *testing.T) {
	isolateEnv(t)
	s := newSession(t, Options{})
	if err := s.Watch(context.Background()); !errors.Is(err, ErrNoUserKeymap) {
		t.Errorf("Watch error = %v, want ErrNoUserKeymap", err)
	}
}

func TestWatchReloadsUserKeymap(t *testing.T) {
	isolateEnv(t)
	kmPath := writeFile(t, t.TempDir(), "user.toml", userKeymap)
	s := newSession(t, Options{KeymapPath: kmPath})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan watcher.Reload, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(r watcher.Reload) {
			select {
			case reloads <- r:
			default:
			}
		})
	}()

	updated := `name = "user"

[[bindings]]
keys = "ß"
action = "insert.sharpS"
`
	// The watcher starts asynchronously, so keep writing until a reload
	// with the new content is observed.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	matched := func() bool {
		_, pb, ok := s.Resolve(keystroke.MustParse("ß"))
		return ok && pb.Action == "insert.sharpS"
	}

	writeFile(t, filepath.Dir(kmPath), "user.toml", updated)
	for !matched() {
		select {
		case <-reloads:
		case <-ticker.C:
			writeFile(t, filepath.Dir(kmPath), "user.toml", updated)
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Watch error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestNewScriptUsesRegistry(t *testing.T) {
	isolateEnv(t)
	s := newSession(t, Options{})

	var out bytes.Buffer
	state := s.NewScript(&out)
	defer state.Close()

	if err := state.DoString(context.Background(), `print(keystroke.match("cmd-shift-p"))`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if got := out.String(); got != "palette.show\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNewScriptFollowsSessionSettings(t *testing.T) {
	isolateEnv(t)
	kmPath := writeFile(t, t.TempDir(), "user.toml", userKeymap)
	s := newSession(t, Options{KeymapPath: kmPath, Context: "editor", SimulateIME: true})

	var out bytes.Buffer
	state := s.NewScript(&out)
	defer state.Close()

	code := `
		print(keystroke.match("shift-a"))
		print(keystroke.match("ctrl-k"))
	`
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if got := out.String(); got != "insert.capitalA\neditor.kill\n" {
		t.Errorf("output = %q", got)
	}
}
