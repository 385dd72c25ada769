package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"

	"gopkg.in/yaml.v3"
)

// ErrNoName is returned when saving a preset without a name.
var ErrNoName = errors.New("preset: missing name")

const ext = ".yaml"

// Preset is a named snapshot of the engine parameters, keyed by CC number.
type Preset struct {
	Name   string      `yaml:"name"`
	Values map[int]int `yaml:"values"`
}

// Source reads parameters. *engine.Engine and *host.Runner implement it.
type Source interface {
	CC(cc int) int
}

// Dest writes parameters.
type Dest interface {
	SetCC(cc, value int)
}

// Capture reads every parameter from src.
func Capture(name string, src Source) Preset {
	p := Preset{Name: name, Values: make(map[int]int, engine.NumParameters)}
	for _, param := range engine.Parameters() {
		p.Values[param.CC] = src.CC(param.CC)
	}
	return p
}

// Apply sets the stored parameters on dst in ascending CC order. CCs the
// engine does not know are skipped.
func (p Preset) Apply(dst Dest) {
	ccs := make([]int, 0, len(p.Values))
	for cc := range p.Values {
		if _, ok := engine.ParameterInfo(cc); ok {
			ccs = append(ccs, cc)
		}
	}
	sort.Ints(ccs)
	for _, cc := range ccs {
		dst.SetCC(cc, p.Values[cc])
	}
}

// FileName maps a preset name to its file name.
func FileName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-") + ext
}

// Save writes p into dir and returns the file path.
func Save(dir string, p Preset) (string, error) {
	if FileName(p.Name) == ext {
		return "", ErrNoName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create preset dir: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode preset %q: %w", p.Name, err)
	}
	path := filepath.Join(dir, FileName(p.Name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write preset %q: %w", p.Name, err)
	}
	return path, nil
}

// Load reads one preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}
	return p, nil
}

// List returns the preset files in dir, sorted. A missing dir has no presets.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
