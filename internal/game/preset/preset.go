// Package preset holds named rolls, e.g. "attack" for "d20+5", loaded from YAML.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicetable/internal/game/dice"
)

// Reserved names the shell handles itself.
var reserved = map[string]bool{"help": true, "quit": true, "exit": true}

// Preset is a named roll.
type Preset struct {
	Name        string `yaml:"name"`
	Roll        string `yaml:"roll"`
	Description string `yaml:"description"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Registry holds presets keyed by lowercased name.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register validates p and adds it under its lowercased name.
//
// Postcondition: returns an error, registering nothing, when the name is
// empty, reserved, already taken, contains whitespace or a command
// separator, or is itself a valid roll; or when Roll does not parse.
func (r *Registry) Register(p Preset) error {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	switch {
	case name == "":
		return errors.New("preset name must not be empty")
	case reserved[name]:
		return fmt.Errorf("preset name %q is reserved", name)
	case strings.ContainsAny(name, " \t,/"):
		return fmt.Errorf("preset name %q must be a single word", name)
	}
	if _, dup := r.presets[name]; dup {
		return fmt.Errorf("preset %q defined twice", name)
	}
	if _, err := dice.ParseRoll(name); err == nil {
		return fmt.Errorf("preset name %q is itself a roll", name)
	}
	if _, err := dice.ParseRoll(p.Roll); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	p.Name = name
	r.presets[name] = p
	return nil
}

// Get returns the preset called name, ignoring case.
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// All returns every preset sorted by name.
func (r *Registry) All() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of presets.
func (r *Registry) Len() int { return len(r.presets) }

// Expand returns the roll for line when line names a preset, and line
// unchanged otherwise.
func (r *Registry) Expand(line string) string {
	if p, ok := r.Get(line); ok {
		return p.Roll
	}
	return line
}

// Parse decodes a presets document:
//
//	presets:
//	  - name: attack
//	    roll: d20+5
//
// Postcondition: Returns a populated Registry, or an error naming the first
// invalid preset.
func Parse(data []byte) (*Registry, error) {
	var f presetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	reg := NewRegistry()
	for _, p := range f.Presets {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Load reads the presets file at path. An empty path yields an empty Registry.
//
// Postcondition: Returns a non-nil Registry, or an error if the file cannot
// be read or fails to parse.
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %q: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return reg, nil
}
