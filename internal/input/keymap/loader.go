package keymap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format string

// Supported keymap formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile loads and validates a keymap file. The format is chosen by
// extension. The keymap's Source is set to path.
func LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	km.Source = path
	return km, nil
}

// LoadReader decodes a keymap and validates every chord in it.
func LoadReader(r io.Reader, format Format) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var config keymapConfig
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &config)
	case FormatYAML:
		err = yaml.Unmarshal(data, &config)
	case FormatJSON:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := &Keymap{
		Name:     config.Name,
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for _, bc := range config.Bindings {
		km.Bindings = append(km.Bindings, Binding(bc))
	}

	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// LoadDir loads every keymap file in dir, sorted by file name. Files with
// unknown extensions are skipped; any invalid file fails the whole load.
func LoadDir(dir string) ([]*Keymap, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading keymap dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	keymaps := make([]*Keymap, 0, len(names))
	for _, name := range names {
		km, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		keymaps = append(keymaps, km)
	}
	return keymaps, nil
}

// LoadAndRegister loads a keymap file and registers it.
func LoadAndRegister(registry *Registry, path string) (*Keymap, error) {
	km, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(km); err != nil {
		return nil, err
	}
	return km, nil
}

// keymapConfig is the on-disk structure for keymap files.
type keymapConfig struct {
	Name     string          `json:"name" toml:"name" yaml:"name"`
	Bindings []bindingConfig `json:"bindings" toml:"bindings" yaml:"bindings"`
}

type bindingConfig struct {
	Keys        string `json:"keys" toml:"keys" yaml:"keys"`
	Action      string `json:"action" toml:"action" yaml:"action"`
	Context     string `json:"context,omitempty" toml:"context,omitempty" yaml:"context,omitempty"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// Encode writes the keymap in the given format.
func (k *Keymap) Encode(w io.Writer, format Format) error {
	config := keymapConfig{
		Name:     k.Name,
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		config.Bindings = append(config.Bindings, bindingConfig(b))
	}

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(config)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(config)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveFile saves a keymap; the format is chosen by extension.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := k.Encode(&buf, format); err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
