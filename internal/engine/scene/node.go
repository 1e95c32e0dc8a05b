// Package scene implements the object tree: nodes, game objects and their
// components.
//
// Traversal is depth-first, parent before children. Transforms are not
// composed along the tree: every object writes its own absolute world
// transform before it renders.
package scene

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when adding a node below itself.
var ErrCycle = errors.New("scene: node would become its own ancestor")

// Object is anything that can live in the tree.
type Object interface {
	Input()
	Update()
	Render() error
	Shutdown()
	// Base returns the embedded Node.
	Base() *Node
}

// Node carries a name, a world and a local transform, and an ordered list
// of children. The parent link is a back-reference; children are owned.
type Node struct {
	name     string
	parent   Object
	children []Object
	world    Transform
	local    Transform

	self Object
}

// NewNode returns a detached node.
func NewNode(name string) *Node {
	n := &Node{name: name, world: NewTransform(), local: NewTransform()}
	n.self = n
	return n
}

// init prepares an embedded Node. outer is the value that embeds it and is
// what the parent stores as its child.
func (n *Node) init(name string, outer Object) {
	n.name = name
	n.world = NewTransform()
	n.local = NewTransform()
	n.self = outer
}

// Base implements Object.
func (n *Node) Base() *Node { return n }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Parent returns the parent object or nil.
func (n *Node) Parent() Object { return n.parent }

// Children returns the children in insertion order. The slice must not be modified.
func (n *Node) Children() []Object { return n.children }

// WorldTransform returns the node's world transform for in-place edits.
func (n *Node) WorldTransform() *Transform { return &n.world }

// LocalTransform returns the node's local transform for in-place edits.
func (n *Node) LocalTransform() *Transform { return &n.local }

// AddChild attaches child to n. A child that already has a parent is
// detached from it first; adding an existing child again is a no-op.
func (n *Node) AddChild(child Object) error {
	c := child.Base()
	for p := Object(n.self); p != nil; p = p.Base().parent {
		if p.Base() == c {
			return fmt.Errorf("adding %q to %q: %w", c.name, n.name, ErrCycle)
		}
	}
	if c.parent != nil {
		if c.parent.Base() == n {
			return nil
		}
		c.parent.Base().RemoveChild(child)
	}
	c.parent = n.self
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from n and clears its parent link. It
// reports whether child was found.
func (n *Node) RemoveChild(child Object) bool {
	c := child.Base()
	for i, other := range n.children {
		if other.Base() == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Destroy detaches the node from its parent and shuts it down. Children
// receive Shutdown but stay attached to this node.
func (n *Node) Destroy() {
	if n.parent != nil {
		n.parent.Base().RemoveChild(n.self)
	}
	n.self.Shutdown()
}

// Input forwards to the children.
func (n *Node) Input() {
	for _, c := range n.children {
		c.Input()
	}
}

// Update forwards to the children.
func (n *Node) Update() {
	for _, c := range n.children {
		c.Update()
	}
}

// Render forwards to the children and stops at the first error.
func (n *Node) Render() error {
	for _, c := range n.children {
		if err := c.Render(); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown forwards to the children.
func (n *Node) Shutdown() {
	for _, c := range n.children {
		c.Shutdown()
	}
}
