package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keystroke/internal/input/keystroke"
)

// Keymap is a named collection of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", a file path.
	Source string

	// Bindings are the chord-to-action mappings.
	Bindings []Binding
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a global binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks every binding and reports all problems at once.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed chords.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap. No partial result is returned:
// if any chord is invalid the whole keymap is rejected and the error joins
// one *BindingError per bad binding.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	var errs []error
	for i, b := range k.Bindings {
		if b.Action == "" {
			errs = append(errs, &BindingError{Index: i, Keys: b.Keys, Err: ErrEmptyAction})
			continue
		}
		ks, err := keystroke.Parse(b.Keys)
		if err != nil {
			errs = append(errs, &BindingError{Index: i, Keys: b.Keys, Err: err})
			continue
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:   b,
			Keystroke: ks.WithoutIMEKey(),
		})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("keymap %q: %w", k.Name, errors.Join(errs...))
	}

	return parsed, nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	copy(clone.Bindings, k.Bindings)
	return clone
}
