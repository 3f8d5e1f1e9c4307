package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/keystroke/internal/config/watcher"
	"github.com/dshills/keystroke/internal/input/keymap"
	"github.com/dshills/keystroke/internal/input/keystroke"
)

// ErrNoBinding is returned by match when no binding accepts the press.
var ErrNoBinding = errors.New("no binding")

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <chord>",
		Short: "Parse a chord and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystroke.Parse(args[0])
			if err != nil {
				return err
			}
			printKeystroke(cmd.OutOrStdout(), ks)
			return nil
		},
	}
}

func newCandidatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <chord>",
		Short: "List the chords tried, in order, when matching a press",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystroke.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, c := range ks.MatchCandidates() {
				fmt.Fprintf(out, "%d. %s\n", i+1, c.Spec())
			}
			return nil
		},
	}
}

func newDisplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "display <chord>...",
		Short: "Render chords as menu glyphs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]keystroke.Keystroke, 0, len(args))
			width := 0
			for _, arg := range args {
				ks, err := keystroke.Parse(arg)
				if err != nil {
					return err
				}
				parsed = append(parsed, ks)
				width = max(width, ks.DisplayWidth())
			}

			out := cmd.OutOrStdout()
			for i, ks := range parsed {
				glyphs := padRight(glyphStyle.Render(ks.String()), width+2, ks.DisplayWidth())
				fmt.Fprintln(out, glyphs+labelStyle.Render(args[i]))
			}
			return nil
		},
	}
}

func newSimulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <chord>",
		Short: "Print a chord with the text an IME would produce filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := keystroke.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ks.WithSimulatedIME().Spec())
			return nil
		},
	}
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [keymap]",
		Short: "Validate a keymap file and list its bindings",
		Long: `Validate a keymap file and list its bindings.

Without a file argument or --keymap, the bindings in effect for --context
are listed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.keymapPath
			if len(args) > 0 {
				path = args[0]
			}
			out := cmd.OutOrStdout()

			if path == "" {
				s, err := opts.session(cmd, "")
				if err != nil {
					return err
				}
				printBindings(out, s.Bindings())
				return nil
			}

			km, err := keymap.LoadFile(path)
			if err != nil {
				return err
			}
			parsed, err := km.Parse()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, headerStyle.Render(km.Name))
			printBindings(out, parsed.ParsedBindings)
			fmt.Fprintf(out, "%s: %d bindings ok\n", path, len(parsed.ParsedBindings))
			return nil
		},
	}
}

func newMatchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match [keymap] <chord>",
		Short: "Resolve a press against the keymaps",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keymapArg string
			if len(args) == 2 {
				keymapArg = args[0]
			}
			chord := args[len(args)-1]

			press, err := keystroke.Parse(chord)
			if err != nil {
				return err
			}
			s, err := opts.session(cmd, keymapArg)
			if err != nil {
				return err
			}

			prepared, pb, ok := s.Resolve(press)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("press", prepared.Spec()))
			fmt.Fprintln(out, field("candidates", candidateSpecs(prepared)))
			if !ok {
				fmt.Fprintln(out, field("action", errorStyle.Render("none")))
				return fmt.Errorf("%w for %s", ErrNoBinding, chord)
			}
			fmt.Fprintln(out, field("action", actionStyle.Render(pb.Action)))
			fmt.Fprintln(out, field("binding", pb.Keys+contextSuffix(pb.Context)))
			return nil
		},
	}
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [keymap]",
		Short: "Reload a keymap file whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keymapArg string
			if len(args) > 0 {
				keymapArg = args[0]
			}
			s, err := opts.session(cmd, keymapArg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = s.Watch(ctx, func(r watcher.Reload) {
				stamp := r.Time.Format("15:04:05")
				if r.Err != nil {
					fmt.Fprintf(out, "%s %s %v\n", stamp, errorStyle.Render("error"), r.Err)
					return
				}
				fmt.Fprintf(out, "%s %s %s (%d bindings)\n", stamp, actionStyle.Render("reloaded"), r.Keymap.Name, len(r.Keymap.Bindings))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newScriptCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script with the keystroke module loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd, "")
			if err != nil {
				return err
			}
			state := s.NewScript(cmd.OutOrStdout())
			defer state.Close()

			return state.DoFile(cmd.Context(), args[0])
		},
	}
}

// printKeystroke writes the fields of ks, one per line.
func printKeystroke(out io.Writer, ks keystroke.Keystroke) {
	ime := "(none)"
	if s, ok := ks.IME(); ok {
		ime = fmt.Sprintf("%q", s)
	}
	fmt.Fprintln(out, field("key", ks.Key))
	fmt.Fprintln(out, field("ime_key", ime))
	fmt.Fprintln(out, field("modifiers", modifierNames(ks.Modifiers)))
	fmt.Fprintln(out, field("spec", ks.Spec()))
	fmt.Fprintln(out, field("display", glyphStyle.Render(ks.String())))
}

// printBindings writes one aligned line per binding.
func printBindings(out io.Writer, bindings []keymap.ParsedBinding) {
	width := 0
	for _, pb := range bindings {
		width = max(width, pb.Keystroke.DisplayWidth())
	}
	for _, pb := range bindings {
		glyphs := padRight(glyphStyle.Render(pb.Glyphs()), width+2, pb.Keystroke.DisplayWidth())
		line := glyphs + actionStyle.Render(pb.Action) + contextSuffix(pb.Context)
		if pb.Description != "" {
			line += " " + labelStyle.Render(pb.Description)
		}
		fmt.Fprintln(out, line)
	}
}

func modifierNames(m keystroke.Modifiers) string {
	var names []string
	if m.Control {
		names = append(names, "ctrl")
	}
	if m.Alt {
		names = append(names, "alt")
	}
	if m.Shift {
		names = append(names, "shift")
	}
	if m.Command {
		names = append(names, "cmd")
	}
	if m.Function {
		names = append(names, "fn")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

func candidateSpecs(ks keystroke.Keystroke) string {
	candidates := ks.MatchCandidates()
	specs := make([]string, len(candidates))
	for i, c := range candidates {
		specs[i] = c.Spec()
	}
	return strings.Join(specs, ", ")
}

func contextSuffix(name string) string {
	if name == "" {
		return ""
	}
	return " [" + name + "]"
}
