package game

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/manifest"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/pattern"
	"github.com/lixenwraith/spacejam/placement"
	"github.com/lixenwraith/spacejam/vmath"
)

// World holds the static bodies and drones built once at session start
type World struct {
	Universe *component.Body
	Station  *component.Body
	Planets  []*component.Body
	Drones   []*component.Drone

	bodies map[string]*component.Body
}

// Body looks up a planet or the station by name
func (w *World) Body(name string) (*component.Body, bool) {
	b, ok := w.bodies[name]
	return b, ok
}

// Bodies returns the planets followed by the station
func (w *World) Bodies() []*component.Body {
	out := make([]*component.Body, 0, len(w.Planets)+1)
	out = append(out, w.Planets...)
	if w.Station != nil {
		out = append(out, w.Station)
	}
	return out
}

// PlanetPositions lists planet centers in creation order
func (w *World) PlanetPositions() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(w.Planets))
	for i, p := range w.Planets {
		out[i] = p.Node.Pos()
	}
	return out
}

// Random is the randomness world building consumes
type Random interface {
	pattern.Source
	placement.Source
}

// BuildWorld creates the universe, station, planets and drone formations under render
// Colliding bodies are registered with trav as passive solids
func BuildWorld(render *engine.Node, trav *engine.Traverser, scene *manifest.Scene, maxAttempts int, rng Random, log zerolog.Logger) (*World, error) {
	w := &World{bodies: make(map[string]*component.Body)}

	w.Universe = newBody(render, trav, component.BodyUniverse, scene.Universe)
	w.Station = newBody(render, trav, component.BodyStation, scene.Station)
	w.bodies[w.Station.Name()] = w.Station

	if err := w.scatterPlanets(render, trav, scene.Planets, maxAttempts, rng); err != nil {
		return nil, err
	}
	if err := w.placeDrones(render, trav, scene, rng); err != nil {
		return nil, err
	}

	log.Info().
		Int("planets", len(w.Planets)).
		Int("drones", len(w.Drones)).
		Float64("min_separation", placement.MinPairwiseDistance(w.PlanetPositions())).
		Msg("world built")
	return w, nil
}

func newBody(render *engine.Node, trav *engine.Traverser, kind component.BodyKind, spec manifest.BodySpec) *component.Body {
	n := render.AttachNewNode(spec.Name)
	n.SetPos(spec.Position.Vec())
	n.SetScale(spec.Scale)
	n.SetTexture(spec.Texture)

	b := &component.Body{Kind: kind, Node: n, Model: spec.Model}
	if spec.Radius > 0 {
		b.Collider = engine.NewCollider(n, spec.Name+"-cnode", engine.Sphere{Radius: spec.Radius}, 0, parameter.MaskBody)
		trav.AddSolid(b.Collider)
	}
	return b
}

func (w *World) scatterPlanets(render *engine.Node, trav *engine.Traverser, spec manifest.PlanetSpec, maxAttempts int, rng Random) error {
	box := placement.Box{Min: spec.Box.Min.Vec(), Max: spec.Box.Max.Vec()}
	set := placement.NewSet(placement.NewAllocator(box, maxAttempts, rng))

	for i, tex := range spec.Textures {
		name := spec.Name(i)
		pos, err := set.Place(spec.MinDistance)
		if err != nil {
			return fmt.Errorf("placing %s: %w", name, err)
		}
		scale := float64(rng.IntRange(spec.ScaleMin, spec.ScaleMax))

		p := newBody(render, trav, component.BodyPlanet, manifest.BodySpec{
			Name:     name,
			Model:    spec.Model,
			Texture:  tex,
			Position: manifest.Vec3{pos.X, pos.Y, pos.Z},
			Scale:    scale,
			Radius:   scale * parameter.PlanetColliderFactor,
		})
		w.Planets = append(w.Planets, p)
		w.bodies[name] = p
	}
	return nil
}

func (w *World) placeDrones(render *engine.Node, trav *engine.Traverser, scene *manifest.Scene, rng Random) error {
	tmpl := scene.Drone
	prefix := tmpl.Name
	if prefix == "" {
		prefix = parameter.DroneNamePrefix
	}
	scale := tmpl.Scale
	if scale <= 0 {
		scale = parameter.DroneScale
	}
	radius := tmpl.Radius
	if radius <= 0 {
		radius = parameter.DroneColliderRadius
	}

	for _, f := range scene.Formations {
		anchor, ok := w.bodies[f.Anchor]
		if !ok {
			return fmt.Errorf("%w: %q", manifest.ErrUnknownAnchor, f.Anchor)
		}
		kind := f.Kind()
		b := f.B
		if b == 0 && kind == pattern.KindBaseballSeams {
			b = parameter.SeamsShape
		}
		cycle := f.Cycle()
		if cycle <= 0 {
			cycle = parameter.DroneCycle
		}

		for step := 0; step < f.Count; step++ {
			dir := pattern.Sample(kind, step, cycle, b, rng)
			pos := pattern.Place(dir, f.Radius, anchor.Node.Pos())

			name := prefix + strconv.Itoa(len(w.Drones)+1)
			n := render.AttachNewNode(name)
			n.SetPos(pos)
			n.SetScale(scale)
			n.SetTexture(tmpl.Texture)

			col := engine.NewCollider(n, name+"-cnode", engine.Sphere{Radius: radius}, 0, parameter.MaskBody|parameter.MaskDrone)
			trav.AddSolid(col)

			w.Drones = append(w.Drones, &component.Drone{
				Node:     n,
				Collider: col,
				Pattern:  kind,
				Anchor:   anchor,
				Step:     step,
			})
		}
	}
	return nil
}
