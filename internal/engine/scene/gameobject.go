package scene

import "fmt"

// ComponentKind names one of the interchangeable render behaviors of a
// GameObject.
type ComponentKind int

const (
	KindDefault ComponentKind = iota
	KindWireframe
	KindPointCloud

	numKinds
)

func (k ComponentKind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindWireframe:
		return "wireframe"
	case KindPointCloud:
		return "point-cloud"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Component is a behavior attached to one GameObject.
type Component interface {
	Input()
	Update()
	Render() error
	Owner() *GameObject
	setOwner(g *GameObject)
}

// BaseComponent provides no-op hooks and the owner link. Embed it in
// concrete components.
type BaseComponent struct {
	owner *GameObject
}

func (c *BaseComponent) Input()             {}
func (c *BaseComponent) Update()            {}
func (c *BaseComponent) Render() error      { return nil }
func (c *BaseComponent) Owner() *GameObject { return c.owner }

func (c *BaseComponent) setOwner(g *GameObject) { c.owner = g }

// WorldTransform returns the owner's world transform.
func (c *BaseComponent) WorldTransform() *Transform {
	return c.owner.WorldTransform()
}

// LocalTransform returns the owner's local transform.
func (c *BaseComponent) LocalTransform() *Transform {
	return c.owner.LocalTransform()
}

// GameObject is a Node with render components keyed by kind. Exactly one
// kind is active; rendering falls back to KindDefault when the active kind
// has no component.
type GameObject struct {
	Node
	components [numKinds]Component
	active     ComponentKind
	host       Object
}

// NewGameObject returns a detached game object.
func NewGameObject(name string) *GameObject {
	g := &GameObject{}
	g.Node.init(name, g)
	g.host = g
	return g
}

// SetHost registers the value that embeds g. The host is what the parent
// stores, what Destroy shuts down, and what shaders receive as the render
// target.
func (g *GameObject) SetHost(h Object) {
	g.host = h
	g.Node.self = h
}

// Host returns the embedding value, or g itself.
func (g *GameObject) Host() Object { return g.host }

// AddComponent attaches c under kind, replacing any previous component.
func (g *GameObject) AddComponent(kind ComponentKind, c Component) {
	if kind < 0 || kind >= numKinds {
		panic(fmt.Sprintf("scene: invalid component kind %d", int(kind)))
	}
	c.setOwner(g)
	g.components[kind] = c
}

// Component returns the component registered under kind.
func (g *GameObject) Component(kind ComponentKind) (Component, bool) {
	if kind < 0 || kind >= numKinds {
		return nil, false
	}
	c := g.components[kind]
	return c, c != nil
}

// SetActive selects the component used by Render.
func (g *GameObject) SetActive(kind ComponentKind) {
	g.active = kind
}

// Active returns the selected kind.
func (g *GameObject) Active() ComponentKind { return g.active }

// Input runs the components in kind order, then the children.
func (g *GameObject) Input() {
	for _, c := range g.components {
		if c != nil {
			c.Input()
		}
	}
	g.Node.Input()
}

// Update runs the components in kind order, then the children.
func (g *GameObject) Update() {
	for _, c := range g.components {
		if c != nil {
			c.Update()
		}
	}
	g.Node.Update()
}

// Render draws the active component, then the children.
func (g *GameObject) Render() error {
	if err := g.RenderActive(); err != nil {
		return err
	}
	return g.Node.Render()
}

// RenderActive draws only the active component.
func (g *GameObject) RenderActive() error {
	c := g.components[KindDefault]
	if g.active >= 0 && g.active < numKinds && g.components[g.active] != nil {
		c = g.components[g.active]
	}
	if c == nil {
		return nil
	}
	if err := c.Render(); err != nil {
		return fmt.Errorf("rendering %q (%s): %w", g.name, g.active, err)
	}
	return nil
}
