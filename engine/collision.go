package engine

import (
	"math"
	"sort"

	"github.com/lixenwraith/spacejam/vmath"
)

// CollisionTaskName is the task that runs the traverser once per frame
const CollisionTaskName = "collisionLoop"

// CollideMask selects which colliders may hit each other
// A from collider hits an into collider when from.FromMask & into.IntoMask != 0
type CollideMask uint32

// Sphere is a collision solid centered on its model node, radius in world units
type Sphere struct {
	Center vmath.Vec3F
	Radius float64
}

// Collider binds a sphere solid to a model node through a dedicated collision node
type Collider struct {
	Node     *Node
	Solid    Sphere
	FromMask CollideMask
	IntoMask CollideMask

	model *Node
}

// NewCollider attaches a collision node named name under model
func NewCollider(model *Node, name string, solid Sphere, from, into CollideMask) *Collider {
	return &Collider{
		Node:     model.AttachNewNode(name),
		Solid:    solid,
		FromMask: from,
		IntoMask: into,
		model:    model,
	}
}

func (c *Collider) Model() *Node { return c.model }

// Center is the solid center in world space
func (c *Collider) Center() vmath.Vec3F {
	return vmath.V3FAdd(c.model.Pos(), c.Solid.Center)
}

func (c *Collider) prevCenter() vmath.Vec3F {
	return vmath.V3FAdd(c.model.PrevPos(), c.Solid.Center)
}

// CollisionEntry describes one contact found during traversal
// T is the sweep parameter of first contact in [0,1], Point the from-center at that moment
type CollisionEntry struct {
	From  *Collider
	Into  *Collider
	Point vmath.Vec3F
	T     float64
}

// CollisionHandler reacts to contacts of a from collider
type CollisionHandler interface {
	HandleCollision(e CollisionEntry)
}

// CollisionHandlerFunc adapts a function to CollisionHandler
type CollisionHandlerFunc func(e CollisionEntry)

func (f CollisionHandlerFunc) HandleCollision(e CollisionEntry) { f(e) }

// Pusher keeps from colliders outside the solids they touch
// A swept mover is resolved on the side it arrived from, so it never exits through the far side
type Pusher struct{}

func (Pusher) HandleCollision(e CollisionEntry) {
	into := e.Into.Center()
	from := e.From.Center()
	minDist := e.From.Solid.Radius + e.Into.Solid.Radius

	side := e.From.prevCenter()
	if e.T > 0 {
		// An earlier contact this pass may already have stopped the mover short of this one
		tHit, hit := sweepSphere(side, from, into, minDist)
		if !hit {
			return
		}
		side = vmath.V3FLerp(side, from, tHit)
	} else if vmath.V3FDist(from, into) >= minDist {
		return
	}

	normal := vmath.V3FNormalize(vmath.V3FSub(side, into))
	if vmath.V3FIsZero(normal) {
		normal = vmath.V3FNormalize(vmath.V3FSub(from, into))
	}
	if vmath.V3FIsZero(normal) {
		normal = vmath.Vec3F{Z: 1}
	}
	center := vmath.V3FAdd(into, vmath.V3FScale(normal, minDist))
	e.From.model.SetPos(vmath.V3FSub(center, e.From.Solid.Center))
}

// Traverser tests moving colliders against every registered solid
type Traverser struct {
	from     []*Collider
	handlers map[*Collider]CollisionHandler
	into     []*Collider

	entries []CollisionEntry
}

func NewTraverser() *Traverser {
	return &Traverser{
		handlers: make(map[*Collider]CollisionHandler),
	}
}

// AddCollider registers an active collider, it is also a valid into target for others
func (t *Traverser) AddCollider(c *Collider, h CollisionHandler) {
	if _, ok := t.handlers[c]; ok {
		t.handlers[c] = h
		return
	}
	t.handlers[c] = h
	t.from = append(t.from, c)
	t.into = append(t.into, c)
}

// AddSolid registers a passive collider that is only ever hit
func (t *Traverser) AddSolid(c *Collider) {
	t.into = append(t.into, c)
}

// RemoveCollider unregisters c from both roles
func (t *Traverser) RemoveCollider(c *Collider) {
	delete(t.handlers, c)
	t.from = removeCollider(t.from, c)
	t.into = removeCollider(t.into, c)
}

func (t *Traverser) HasCollider(c *Collider) bool {
	for _, o := range t.into {
		if o == c {
			return true
		}
	}
	return false
}

func (t *Traverser) NumColliders() int { return len(t.from) }
func (t *Traverser) NumSolids() int    { return len(t.into) }

// Traverse runs one collision pass and resets the swept history of movers
func (t *Traverser) Traverse() {
	// Snapshot: handlers may remove colliders
	from := make([]*Collider, len(t.from))
	copy(from, t.from)

	for _, f := range from {
		h, ok := t.handlers[f]
		if !ok || f.FromMask == 0 {
			continue
		}

		t.entries = t.entries[:0]
		for _, into := range t.into {
			if into == f || into.model == f.model || f.FromMask&into.IntoMask == 0 {
				continue
			}
			if tHit, hit := sweepSphere(f.prevCenter(), f.Center(), into.Center(), f.Solid.Radius+into.Solid.Radius); hit {
				t.entries = append(t.entries, CollisionEntry{
					From:  f,
					Into:  into,
					Point: vmath.V3FLerp(f.prevCenter(), f.Center(), tHit),
					T:     tHit,
				})
			}
		}

		sort.SliceStable(t.entries, func(i, j int) bool { return t.entries[i].T < t.entries[j].T })
		for _, e := range t.entries {
			h.HandleCollision(e)
		}
	}

	for _, f := range t.from {
		f.model.SetPos(f.model.Pos())
	}
}

// Task adapts the traverser to the task manager contract
func (t *Traverser) Task() TaskFunc {
	return func(*Task) TaskStatus {
		t.Traverse()
		return TaskCont
	}
}

// sweepSphere finds the first contact of a point moving a→b with a sphere of radius r at c
func sweepSphere(a, b, c vmath.Vec3F, r float64) (float64, bool) {
	f := vmath.V3FSub(a, c)
	cc := vmath.V3FDot(f, f) - r*r
	if cc <= 0 {
		return 0, true
	}

	d := vmath.V3FSub(b, a)
	aa := vmath.V3FDot(d, d)
	if aa == 0 {
		return 0, false
	}
	bb := 2 * vmath.V3FDot(f, d)
	disc := bb*bb - 4*aa*cc
	if disc < 0 {
		return 0, false
	}
	tHit := (-bb - math.Sqrt(disc)) / (2 * aa)
	if tHit < 0 || tHit > 1 {
		return 0, false
	}
	return tHit, true
}

func removeCollider(list []*Collider, c *Collider) []*Collider {
	for i, o := range list {
		if o == c {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}
