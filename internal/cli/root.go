// Package cli implements the keystroke command line tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/keystroke/internal/app"
)

// Version information reported by --version.
var (
	Version = "dev"
	Commit  = "unknown"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	keymapPath  string
	context     string
	logLevel    string
	simulateIME bool
	noDefaults  bool
	quiet       bool
}

// session builds an app session from the flags. A non-empty keymapArg
// takes precedence over --keymap.
func (o *rootOptions) session(cmd *cobra.Command, keymapArg string) (*app.Session, error) {
	keymapPath := o.keymapPath
	if keymapArg != "" {
		keymapPath = keymapArg
	}
	return app.New(app.Options{
		ConfigPath:   o.configPath,
		KeymapPath:   keymapPath,
		Context:      o.context,
		LogLevel:     o.logLevel,
		SimulateIME:  o.simulateIME,
		LogOutput:    cmd.ErrOrStderr(),
		SkipDefaults: o.noDefaults,
		Quiet:        o.quiet,
	})
}

// NewRootCommand returns the keystroke command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "keystroke",
		Short: "Parse, match and display IME-aware key chords",
		Long: `keystroke works with key chords written as ctrl-alt-shift-cmd-fn-key[->ime_key].

The optional ->ime_key suffix records the text an input method produced for
the press, so "alt-s->ß" is the key s with alt held that typed ß.

Examples:
  keystroke parse 'alt-s->ß'            # Show the parsed fields
  keystroke candidates 'alt-s->ß'       # Chords tried when matching
  keystroke display cmd-shift-p ctrl--  # Menu glyphs
  keystroke match 'alt-s->ß' -k my.toml # Resolve against a keymap
  keystroke capture                     # Inspect live key presses`,
		Version:       Version + " (" + Commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	flags.StringVarP(&opts.keymapPath, "keymap", "k", "", "User keymap file (toml, yaml or json)")
	flags.StringVar(&opts.context, "context", "", "Binding context used for matching")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.simulateIME, "simulate-ime", false, "Fill in IME text for typed chords before matching")
	flags.BoolVar(&opts.noDefaults, "no-defaults", false, "Leave the built-in keymap out")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress log output")

	root.AddCommand(
		newParseCommand(),
		newCandidatesCommand(),
		newDisplayCommand(),
		newSimulateCommand(),
		newCheckCommand(opts),
		newMatchCommand(opts),
		newWatchCommand(opts),
		newScriptCommand(opts),
		newCaptureCommand(opts),
	)
	return root
}
