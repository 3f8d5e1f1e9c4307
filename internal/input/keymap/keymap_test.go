package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/keystroke/internal/input/keystroke"
)

func TestNewKeymap(t *testing.T) {
	km := NewKeymap("test")

	if km.Name != "test" {
		t.Errorf("Name = %q, want %q", km.Name, "test")
	}
	if len(km.Bindings) != 0 {
		t.Errorf("Bindings should be empty, got %d", len(km.Bindings))
	}
}

func TestKeymapBuilders(t *testing.T) {
	km := NewKeymap("test").
		WithSource("test-source").
		Add("cmd-s", "file.save").
		AddBinding(NewBinding("ctrl--", "view.zoomOut").WithContext("editor").WithDescription("Zoom out"))

	if km.Source != "test-source" {
		t.Errorf("Source = %q, want %q", km.Source, "test-source")
	}
	if len(km.Bindings) != 2 {
		t.Fatalf("len(Bindings) = %d, want 2", len(km.Bindings))
	}
	b := km.Bindings[1]
	if b.Context != "editor" || b.Description != "Zoom out" {
		t.Errorf("binding = %+v", b)
	}
}

func TestKeymapParse(t *testing.T) {
	km := NewKeymap("test").
		Add("ctrl-s", "file.save").
		Add("a->å", "insert.aring")

	parsed, err := km.Parse()
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if len(parsed.ParsedBindings) != 2 {
		t.Fatalf("len(ParsedBindings) = %d, want 2", len(parsed.ParsedBindings))
	}

	want := keystroke.New(keystroke.Modifiers{Control: true}, "s")
	if got := parsed.ParsedBindings[0].Keystroke; got != want {
		t.Errorf("Keystroke = %#v, want %#v", got, want)
	}
	if parsed.ParsedBindings[1].Keystroke.HasIMEKey {
		t.Error("parsed binding should not keep IME text")
	}
	if got := parsed.ParsedBindings[0].Glyphs(); got != "^S" {
		t.Errorf("Glyphs() = %q, want %q", got, "^S")
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  *Keymap
		wantErr bool
	}{
		{
			name:   "valid keymap",
			keymap: NewKeymap("ok").Add("cmd-s", "file.save").Add("-", "zoom.out"),
		},
		{
			name:    "invalid chord",
			keymap:  NewKeymap("bad").Add("ctrl", "nothing"),
			wantErr: true,
		},
		{
			name:    "empty action",
			keymap:  NewKeymap("bad").Add("ctrl-s", ""),
			wantErr: true,
		},
		{
			name:    "empty keys",
			keymap:  NewKeymap("bad").Add("", "file.save"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKeymapParseReportsEveryBadBinding(t *testing.T) {
	km := NewKeymap("bad").
		Add("ctrl", "a").
		Add("cmd-s", "file.save").
		Add("a-b", "b").
		Add("x", "")

	_, err := km.Parse()
	if err == nil {
		t.Fatal("Parse should fail")
	}
	if !errors.Is(err, keystroke.ErrInvalidKeystroke) {
		t.Errorf("error should wrap ErrInvalidKeystroke: %v", err)
	}
	if !errors.Is(err, ErrEmptyAction) {
		t.Errorf("error should wrap ErrEmptyAction: %v", err)
	}

	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("error should contain a *BindingError: %v", err)
	}
	if be.Index != 0 || be.Keys != "ctrl" {
		t.Errorf("first BindingError = %+v", be)
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("orig").Add("cmd-s", "file.save")
	clone := km.Clone()
	clone.Bindings[0].Action = "changed"

	if km.Bindings[0].Action != "file.save" {
		t.Error("Clone should not share bindings")
	}
}
