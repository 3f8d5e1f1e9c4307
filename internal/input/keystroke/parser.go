package keystroke

import "strings"

// Parse parses a chord of the form
//
//	[ctrl-][alt-][shift-][cmd-][fn-]key[->ime_key]
//
// Modifier names are case sensitive and may appear in any order. A trailing
// hyphen after the modifiers names the hyphen key ("ctrl--"). The ->ime_key
// suffix is mostly used to build synthetic events; when matching, a
// keystroke with IME text also matches bindings written without it.
func Parse(source string) (Keystroke, error) {
	var (
		mods   Modifiers
		key    string
		ime    string
		hasIME bool
	)

	components := strings.Split(source, "-")
scan:
	for i := 0; i < len(components); i++ {
		component := components[i]
		switch component {
		case "ctrl":
			mods.Control = true
		case "alt":
			mods.Alt = true
		case "shift":
			mods.Shift = true
		case "cmd":
			mods.Command = true
		case "fn":
			mods.Function = true
		default:
			if i+1 == len(components) {
				key = component
				continue
			}

			next := components[i+1]
			switch {
			case next == "" && strings.HasSuffix(source, "-"):
				key = "-"
				break scan
			case len(next) > 1 && next[0] == '>':
				key = component
				ime = next[1:]
				hasIME = true
				i++
			default:
				return Keystroke{}, &ParseError{Source: source}
			}
		}
	}

	if key == "" {
		return Keystroke{}, &ParseError{Source: source}
	}

	return Keystroke{
		Modifiers: mods,
		Key:       key,
		IMEKey:    ime,
		HasIMEKey: hasIME,
	}, nil
}

// MustParse parses a chord and panics on error.
// Use only for known-valid chords in initialization code.
func MustParse(source string) Keystroke {
	ks, err := Parse(source)
	if err != nil {
		panic(err.Error())
	}
	return ks
}
