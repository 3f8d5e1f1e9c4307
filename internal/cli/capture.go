package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dshills/keystroke/internal/app"
	"github.com/dshills/keystroke/internal/input/keystroke"
	"github.com/dshills/keystroke/internal/input/platform"
)

func newCaptureCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "capture [keymap]",
		Short: "Show live key presses with their candidates and matched action",
		Long: `Show live key presses with their candidates and matched action.

Press ctrl-c or escape to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keymapArg string
			if len(args) > 0 {
				keymapArg = args[0]
			}
			s, err := opts.session(cmd, keymapArg)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			return runCapture(screen, s)
		},
	}
}

var (
	captureTitleStyle  = tcell.StyleDefault.Bold(true)
	captureLabelStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	captureActionStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// captureLine is one row of the capture screen.
type captureLine struct {
	label string
	value string
	style tcell.Style
}

// runCapture draws every key press on an initialized screen until ctrl-c
// or escape is pressed or the screen is finalized.
func runCapture(screen tcell.Screen, s *app.Session) error {
	title := "keystroke capture: press ctrl-c or escape to quit"
	if ctx := s.Config.Keymap.Context; ctx != "" {
		title += " (context " + ctx + ")"
	}

	var lines []captureLine
	draw := func() {
		screen.Clear()
		drawText(screen, 0, 0, captureTitleStyle, title)
		for i, line := range lines {
			x := drawText(screen, 0, i+2, captureLabelStyle, fmt.Sprintf("%-12s", line.label+":"))
			drawText(screen, x, i+2, line.style, line.value)
		}
		screen.Show()
	}
	draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				return nil
			}
			press, ok := platform.FromEventKey(ev)
			if !ok {
				continue
			}
			lines = describePress(s, press)
			draw()
		}
	}
}

// describePress resolves a press and lays out what was found.
func describePress(s *app.Session, press keystroke.Keystroke) []captureLine {
	prepared, pb, ok := s.Resolve(press)

	lines := []captureLine{
		{label: "press", value: prepared.Spec(), style: tcell.StyleDefault},
		{label: "display", value: prepared.String(), style: captureTitleStyle},
		{label: "candidates", value: candidateSpecs(prepared), style: tcell.StyleDefault},
	}
	if !ok {
		return append(lines, captureLine{label: "action", value: "none", style: captureLabelStyle})
	}
	action := pb.Action
	if pb.Description != "" {
		action += " (" + pb.Description + ")"
	}
	return append(lines, captureLine{label: "action", value: action, style: captureActionStyle})
}

// drawText writes text at (x, y) and returns the column after it.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}
