// Package scene holds the keyboard's object graph: a hierarchy of named
// nodes with positions, bounding boxes and materials. The graph is pure
// geometry; rendering and input translation live in internal/window.
package scene

// Vec3 is a point or extent in scene space. X runs along the keyboard,
// Y is up, Z runs from the player toward the back of the keys.
type Vec3 struct {
	X, Y, Z float64
}

// Material is a visual proxy carrying a named color. It is written by the
// interaction layer and only ever read back by the renderer.
type Material struct {
	Color string
}

// SetColor replaces the material's color name.
func (m *Material) SetColor(name string) {
	m.Color = name
}

// Node is a named object in the scene graph. Position is the center of the
// node's box; Size may be zero for purely structural nodes, which makes
// them invisible to picking.
type Node struct {
	Name     string
	Position Vec3
	Size     Vec3
	Material *Material
	Children []*Node
}

// Add appends child nodes.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// FindByName returns the first node with the given name in a depth-first
// walk of the graph rooted at n, or nil if absent.
func (n *Node) FindByName(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node in the graph rooted at n, depth-first.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Top returns the Y coordinate of the node's upper face.
func (n *Node) Top() float64 {
	return n.Position.Y + n.Size.Y/2
}

// contains reports whether the point (x, z) falls within the node's
// footprint in the X/Z plane. Nodes without a footprint are never hit.
func (n *Node) contains(x, z float64) bool {
	if n.Size.X == 0 || n.Size.Z == 0 {
		return false
	}
	return x >= n.Position.X-n.Size.X/2 && x <= n.Position.X+n.Size.X/2 &&
		z >= n.Position.Z-n.Size.Z/2 && z <= n.Position.Z+n.Size.Z/2
}

// Pick casts a downward ray at (x, z) and returns the first node it
// intersects, i.e. the hit with the highest upper face. Black keys sit
// above white keys and the power button above its housing, so overlapping
// footprints resolve the way a camera ray would. Returns nil on a miss.
func Pick(root *Node, x, z float64) *Node {
	var best *Node
	root.Walk(func(n *Node) {
		if !n.contains(x, z) {
			return
		}
		if best == nil || n.Top() > best.Top() {
			best = n
		}
	})
	return best
}
