// Package manifest describes the static scene: bodies, planet scatter and drone formations
package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/spacejam/pattern"
	"github.com/lixenwraith/spacejam/vmath"
)

var (
	ErrUnknownPattern = errors.New("unknown formation pattern")
	ErrUnknownAnchor  = errors.New("unknown formation anchor")
	ErrInvalidScene   = errors.New("invalid scene")
)

//go:embed default.yaml
var defaultScene []byte

// Vec3 is a position written as a three element YAML sequence
type Vec3 [3]float64

func (v Vec3) Vec() vmath.Vec3F { return vmath.V3F(v[0], v[1], v[2]) }

// BodySpec places one named model
type BodySpec struct {
	Name     string  `yaml:"name"`
	Model    string  `yaml:"model"`
	Texture  string  `yaml:"texture"`
	Position Vec3    `yaml:"position"`
	Scale    float64 `yaml:"scale"`
	Radius   float64 `yaml:"radius"` // Collision sphere, 0 for none
}

// BoxSpec is an inclusive sampling volume
type BoxSpec struct {
	Min Vec3 `yaml:"min"`
	Max Vec3 `yaml:"max"`
}

// PlanetSpec scatters one planet per texture
type PlanetSpec struct {
	Prefix      string   `yaml:"prefix"`
	Model       string   `yaml:"model"`
	Textures    []string `yaml:"textures"`
	ScaleMin    int      `yaml:"scaleMin"`
	ScaleMax    int      `yaml:"scaleMax"`
	MinDistance float64  `yaml:"minDistance"`
	Box         BoxSpec  `yaml:"box"`
}

// Name returns the name of the i-th planet, counting from zero
func (p PlanetSpec) Name(i int) string {
	return p.Prefix + strconv.Itoa(i+1)
}

// FormationSpec places Count drones along a path around an anchor body
type FormationSpec struct {
	Pattern string  `yaml:"pattern"`
	Anchor  string  `yaml:"anchor"`
	Radius  float64 `yaml:"radius"`
	Count   int     `yaml:"count"`
	Steps   int     `yaml:"steps"` // Samples per cycle, Count when zero
	B       float64 `yaml:"b"`     // Seam shape
}

// Kind resolves Pattern, valid after Validate
func (f FormationSpec) Kind() pattern.Kind {
	k, _ := pattern.ParseKind(f.Pattern)
	return k
}

// Cycle returns the number of samples per full path cycle
func (f FormationSpec) Cycle() int {
	if f.Steps > 0 {
		return f.Steps
	}
	return f.Count
}

// Scene is the decoded manifest
type Scene struct {
	Universe   BodySpec        `yaml:"universe"`
	Station    BodySpec        `yaml:"station"`
	Hero       BodySpec        `yaml:"hero"`
	Planets    PlanetSpec      `yaml:"planets"`
	Drone      BodySpec        `yaml:"drone"` // Template, Name is the drone name prefix
	Formations []FormationSpec `yaml:"formations"`
}

// Default returns the embedded scene
func Default() (*Scene, error) {
	return Parse(defaultScene)
}

// Load reads a scene from path, the embedded scene when path is empty
func Load(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scene, unknown fields are rejected
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// AnchorNames lists every body a formation may orbit
func (s *Scene) AnchorNames() []string {
	names := make([]string, 0, len(s.Planets.Textures)+1)
	for i := range s.Planets.Textures {
		names = append(names, s.Planets.Name(i))
	}
	return append(names, s.Station.Name)
}

// Validate checks references and ranges
func (s *Scene) Validate() error {
	p := s.Planets
	if p.ScaleMin <= 0 || p.ScaleMin > p.ScaleMax {
		return fmt.Errorf("%w: planet scale range [%d, %d]", ErrInvalidScene, p.ScaleMin, p.ScaleMax)
	}
	if p.MinDistance < 0 {
		return fmt.Errorf("%w: negative planet minDistance", ErrInvalidScene)
	}
	for i := 0; i < 3; i++ {
		if p.Box.Min[i] > p.Box.Max[i] {
			return fmt.Errorf("%w: planet box min exceeds max on axis %d", ErrInvalidScene, i)
		}
	}
	if s.Hero.Radius <= 0 {
		return fmt.Errorf("%w: hero needs a collision radius", ErrInvalidScene)
	}

	anchors := make(map[string]bool)
	for _, name := range s.AnchorNames() {
		anchors[name] = true
	}
	for i, f := range s.Formations {
		if _, ok := pattern.ParseKind(f.Pattern); !ok {
			return fmt.Errorf("formation %d: %w: %q", i, ErrUnknownPattern, f.Pattern)
		}
		if !anchors[f.Anchor] {
			return fmt.Errorf("formation %d: %w: %q", i, ErrUnknownAnchor, f.Anchor)
		}
		if f.Count < 0 || f.Steps < 0 {
			return fmt.Errorf("formation %d: %w: negative count", i, ErrInvalidScene)
		}
		if f.Radius <= 0 {
			return fmt.Errorf("formation %d: %w: radius must be positive", i, ErrInvalidScene)
		}
	}
	return nil
}

// DroneCount is the total number of drones the formations place
func (s *Scene) DroneCount() int {
	n := 0
	for _, f := range s.Formations {
		n += f.Count
	}
	return n
}
