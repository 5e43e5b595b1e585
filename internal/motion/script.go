package motion

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Segment holds a constant motion level until UntilMS (exclusive).
type Segment struct {
	UntilMS int64   `yaml:"until_ms"`
	Motion  float64 `yaml:"motion"`
}

// ScriptFile is the YAML layout of a motion script.
//
//	name: freeze-test
//	segments:
//	  - {until_ms: 2000, motion: 0.01}
//	  - {until_ms: 6000, motion: 0.001}
//	after: 0.0
type ScriptFile struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
	After    float64   `yaml:"after"` // level once the last segment ends
}

// Script plays back a step function of motion levels.
type Script struct {
	name     string
	segments []Segment
	after    float64
}

// NewScript creates a script source. Segments are sorted by UntilMS.
func NewScript(name string, segments []Segment, after float64) *Script {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UntilMS < sorted[j].UntilMS
	})
	return &Script{name: name, segments: sorted, after: after}
}

// LoadScript reads a YAML motion script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("motion: cannot read script %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML motion script.
func ParseScript(data []byte) (*Script, error) {
	var f ScriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("motion: cannot parse script: %w", err)
	}
	if len(f.Segments) == 0 {
		return nil, fmt.Errorf("motion: script %q has no segments", f.Name)
	}
	return NewScript(f.Name, f.Segments, f.After), nil
}

// Name returns the registry ID.
func (s *Script) Name() string {
	return "script"
}

// Title returns the script's own name.
func (s *Script) Title() string {
	return s.name
}

// EndMS returns the end of the last segment.
func (s *Script) EndMS() int64 {
	if len(s.segments) == 0 {
		return 0
	}
	return s.segments[len(s.segments)-1].UntilMS
}

// Sample returns the level of the segment covering nowMS.
func (s *Script) Sample(nowMS int64) float64 {
	i := sort.Search(len(s.segments), func(i int) bool {
		return nowMS < s.segments[i].UntilMS
	})
	if i == len(s.segments) {
		return Clamp(s.after)
	}
	return Clamp(s.segments[i].Motion)
}
