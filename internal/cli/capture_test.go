package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keystroke/internal/app"
	"github.com/dshills/keystroke/internal/input/keystroke"
)

func newTestSession(t *testing.T, opts app.Options) *app.Session {
	t.Helper()
	isolateEnv(t)

	opts.ConfigPath = filepath.Join(t.TempDir(), "none.toml")
	opts.LogOutput = &bytes.Buffer{}
	s, err := app.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 10)
	t.Cleanup(screen.Fini)
	return screen
}

// screenLine reads row y of the screen as text.
func screenLine(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, w := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read-back API
		b.WriteRune(r)
		if w > 1 {
			x += w - 1
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDescribePress(t *testing.T) {
	path := writeKeymap(t, "user.toml", testKeymap)
	s := newTestSession(t, app.Options{KeymapPath: path})

	lines := describePress(s, keystroke.MustParse("alt-s->ß"))
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
	want := []string{"alt-s->ß", "⌥S", "ß, alt-s", "insert.eszett (Sharp s)"}
	for i, line := range lines {
		if line.value != want[i] {
			t.Errorf("line %d (%s) = %q, want %q", i, line.label, line.value, want[i])
		}
	}

	lines = describePress(s, keystroke.MustParse("f9"))
	if got := lines[len(lines)-1].value; got != "none" {
		t.Errorf("unmatched action = %q, want none", got)
	}
}

func TestRunCaptureQuitsOnEscape(t *testing.T) {
	s := newTestSession(t, app.Options{})
	screen := newTestScreen(t)

	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModMeta))
	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if err := runCapture(screen, s); err != nil {
		t.Fatalf("runCapture error = %v", err)
	}

	if got := screenLine(screen, 0); !strings.Contains(got, "press ctrl-c or escape to quit") {
		t.Errorf("title = %q", got)
	}
	if got := screenLine(screen, 2); !strings.Contains(got, "cmd-s") {
		t.Errorf("press line = %q", got)
	}
	if got := screenLine(screen, 5); !strings.Contains(got, "file.save") {
		t.Errorf("action line = %q", got)
	}
}

func TestRunCaptureQuitsOnCtrlC(t *testing.T) {
	s := newTestSession(t, app.Options{Context: "editor"})
	screen := newTestScreen(t)

	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if err := runCapture(screen, s); err != nil {
		t.Fatalf("runCapture error = %v", err)
	}
	if got := screenLine(screen, 0); !strings.Contains(got, "(context editor)") {
		t.Errorf("title = %q", got)
	}
}
