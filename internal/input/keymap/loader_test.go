package keymap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keystroke/internal/input/keystroke"
)

const tomlKeymap = `
name = "user"

[[bindings]]
keys = "cmd-s"
action = "file.save"

[[bindings]]
keys = "ctrl--"
action = "view.zoomOut"
context = "editor"
description = "Zoom out"
`

const yamlKeymap = `
name: user
bindings:
  - keys: cmd-s
    action: file.save
  - keys: ctrl--
    action: view.zoomOut
    context: editor
    description: Zoom out
`

const jsonKeymap = `{
  "name": "user",
  "bindings": [
    {"keys": "cmd-s", "action": "file.save"},
    {"keys": "ctrl--", "action": "view.zoomOut", "context": "editor", "description": "Zoom out"}
  ]
}`

func TestLoadReaderFormats(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatTOML, tomlKeymap},
		{FormatYAML, yamlKeymap},
		{FormatJSON, jsonKeymap},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			km, err := LoadReader(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("LoadReader error = %v", err)
			}
			if km.Name != "user" {
				t.Errorf("Name = %q, want user", km.Name)
			}
			if len(km.Bindings) != 2 {
				t.Fatalf("len(Bindings) = %d, want 2", len(km.Bindings))
			}
			want := Binding{Keys: "ctrl--", Action: "view.zoomOut", Context: "editor", Description: "Zoom out"}
			if km.Bindings[1] != want {
				t.Errorf("Bindings[1] = %+v, want %+v", km.Bindings[1], want)
			}
		})
	}
}

func TestLoadReaderRejectsInvalidChord(t *testing.T) {
	input := `
name = "bad"

[[bindings]]
keys = "cmd-s"
action = "file.save"

[[bindings]]
keys = "ctrl"
action = "broken"
`
	_, err := LoadReader(strings.NewReader(input), FormatTOML)
	if !errors.Is(err, keystroke.ErrInvalidKeystroke) {
		t.Fatalf("LoadReader error = %v, want ErrInvalidKeystroke", err)
	}
	if !strings.Contains(err.Error(), "Invalid keystroke: ctrl") {
		t.Errorf("error should name the chord: %v", err)
	}
}

func TestLoadReaderDecodeError(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("name = ["), FormatTOML); err == nil {
		t.Error("LoadReader should fail on malformed TOML")
	}
	if _, err := LoadReader(strings.NewReader("{}"), Format("ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LoadReader error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"keys.toml", FormatTOML, false},
		{"keys.YAML", FormatYAML, false},
		{"keys.yml", FormatYAML, false},
		{"keys.json", FormatJSON, false},
		{"keys.ini", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadFileSetsSourceAndName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	input := "bindings:\n  - keys: cmd-s\n    action: file.save\n"
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	km, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error = %v", err)
	}
	if km.Name != "mine" {
		t.Errorf("Name = %q, want mine", km.Name)
	}
	if km.Source != path {
		t.Errorf("Source = %q, want %q", km.Source, path)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":    jsonKeymap,
		"a.toml":    tomlKeymap,
		"notes.txt": "ignored",
		"c.yml":     yamlKeymap,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	kms, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir error = %v", err)
	}
	if len(kms) != 3 {
		t.Fatalf("len = %d, want 3", len(kms))
	}
	if filepath.Base(kms[0].Source) != "a.toml" || filepath.Base(kms[2].Source) != "c.yml" {
		t.Errorf("unexpected order: %s, %s", kms[0].Source, kms[2].Source)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	km := NewKeymap("user").
		Add("cmd-s", "file.save").
		AddBinding(NewBinding("a->å", "insert.aring").WithContext("editor"))

	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := km.Encode(&buf, format); err != nil {
				t.Fatalf("Encode error = %v", err)
			}
			back, err := LoadReader(&buf, format)
			if err != nil {
				t.Fatalf("LoadReader error = %v", err)
			}
			if len(back.Bindings) != 2 || back.Bindings[1] != km.Bindings[1] {
				t.Errorf("round trip = %+v", back.Bindings)
			}
		})
	}
}

func TestSaveFileAndLoadAndRegister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.toml")
	if err := NewKeymap("user").Add("cmd-s", "file.save").SaveFile(path); err != nil {
		t.Fatalf("SaveFile error = %v", err)
	}

	r := NewRegistry()
	if _, err := LoadAndRegister(r, path); err != nil {
		t.Fatalf("LoadAndRegister error = %v", err)
	}
	if pb, ok := r.Match(keystroke.MustParse("cmd-s"), ""); !ok || pb.Action != "file.save" {
		t.Errorf("Match = %+v, %v", pb, ok)
	}
}
