package engine

import (
	"github.com/lixenwraith/spacejam/vmath"
)

// Node is a scene graph element with a world-space transform
// Positions are world coordinates, children do not inherit transforms
type Node struct {
	name     string
	pos      vmath.Vec3F
	prevPos  vmath.Vec3F
	h, p     float64
	scale    float64
	texture  string
	parent   *Node
	children []*Node
}

// NewRoot creates a detached root node, conventionally named "render"
func NewRoot(name string) *Node {
	return &Node{name: name, scale: 1}
}

// AttachNewNode creates a child of n
func (n *Node) AttachNewNode(name string) *Node {
	child := &Node{name: name, scale: 1}
	child.ReparentTo(n)
	return child
}

func (n *Node) Name() string        { return n.name }
func (n *Node) SetName(name string) { n.name = name }

func (n *Node) Pos() vmath.Vec3F { return n.pos }

// PrevPos is the position before the last SetFluidPos, equal to Pos after SetPos
func (n *Node) PrevPos() vmath.Vec3F { return n.prevPos }

// SetPos teleports the node, no swept collision between old and new position
func (n *Node) SetPos(p vmath.Vec3F) {
	n.pos = p
	n.prevPos = p
}

// SetFluidPos moves the node and keeps the previous position for swept collision tests
func (n *Node) SetFluidPos(p vmath.Vec3F) {
	n.prevPos = n.pos
	n.pos = p
}

func (n *Node) H() float64     { return n.h }
func (n *Node) P() float64     { return n.p }
func (n *Node) SetH(h float64) { n.h = h }
func (n *Node) SetP(p float64) { n.p = p }

func (n *Node) SetHpr(h, p float64) {
	n.h = h
	n.p = p
}

// Forward is the unit vector the node faces in world space
func (n *Node) Forward() vmath.Vec3F { return vmath.Forward(n.h, n.p) }

// RelativeVector maps a local direction (X right, Y forward, Z up) to world space
func (n *Node) RelativeVector(local vmath.Vec3F) vmath.Vec3F {
	right := vmath.Right(n.h, n.p)
	fwd := vmath.Forward(n.h, n.p)
	up := cross(right, fwd)
	return vmath.V3FAdd(vmath.V3FAdd(vmath.V3FScale(right, local.X), vmath.V3FScale(fwd, local.Y)), vmath.V3FScale(up, local.Z))
}

func (n *Node) Scale() float64     { return n.scale }
func (n *Node) SetScale(s float64) { n.scale = s }

func (n *Node) Texture() string { return n.texture }

// SetTexture binds a texture by name, asset loading is outside the engine
func (n *Node) SetTexture(tex string) { n.texture = tex }

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) NumChildren() int { return len(n.children) }

// ReparentTo moves n under parent, detaching it from any previous parent
func (n *Node) ReparentTo(parent *Node) {
	n.DetachNode()
	if parent == nil {
		return
	}
	n.parent = parent
	parent.children = append(parent.children, n)
}

// DetachNode removes n from its parent, no-op if already detached
func (n *Node) DetachNode() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			copy(siblings[i:], siblings[i+1:])
			siblings[len(siblings)-1] = nil
			n.parent.children = siblings[:len(siblings)-1]
			break
		}
	}
	n.parent = nil
}

func (n *Node) IsDetached() bool { return n.parent == nil }

// Find returns the first descendant named name, depth first
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func cross(a, b vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
