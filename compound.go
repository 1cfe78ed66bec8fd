package sketch

// zOrder selects how reorder moves a child.
type zOrder uint8

const (
	zFront zOrder = iota
	zBack
	zForward
	zBackward
)

// Compound is a container of objects that moves, transforms and hit-tests as
// a unit. Children are positioned in the compound's local frame. Paint order
// follows insertion order: the first child is at the back and the last child
// is at the front.
type Compound struct {
	object
	children []Object
}

// NewCompound creates an empty compound with its origin at (x, y).
func NewCompound(x, y float64) *Compound {
	c := &Compound{}
	c.init(c, c, x, y)
	return c
}

// Add appends child in front of every existing child. If child already
// belongs to a container it is detached from it first. Adding nil, or a
// compound that contains c, panics.
func (c *Compound) Add(child Object) {
	b := c.checkAdd(child)
	if b.parent != nil {
		b.parent.removeChild(b)
	}
	b.parent = c
	c.children = append(c.children, child)
	if globalDebug {
		debugCheckTreeDepth(b)
		debugCheckChildCount(c)
	}
	c.changed()
}

// checkAdd panics if child cannot become a child of c.
func (c *Compound) checkAdd(child Object) *object {
	if child == nil {
		panic("sketch: cannot add nil child")
	}
	b := child.base()
	if b.window != nil {
		panic("sketch: cannot add a window root to a compound")
	}
	if isAncestor(b, &c.object) {
		panic("sketch: adding child would create a cycle")
	}
	return b
}

// AddAt moves child to (x, y) and adds it. A rejected child is not moved.
func (c *Compound) AddAt(child Object, x, y float64) {
	b := c.checkAdd(child)
	b.x = x
	b.y = y
	c.Add(child)
}

// Remove detaches child and reports whether it was a child of c.
func (c *Compound) Remove(child Object) bool {
	if child == nil {
		return false
	}
	b := child.base()
	if b.parent != c {
		return false
	}
	c.removeChild(b)
	b.parent = nil
	c.changed()
	return true
}

// RemoveAll detaches every child.
func (c *Compound) RemoveAll() {
	if len(c.children) == 0 {
		return
	}
	for i, child := range c.children {
		child.base().parent = nil
		c.children[i] = nil
	}
	c.children = c.children[:0]
	c.changed()
}

// ElementCount returns the number of direct children.
func (c *Compound) ElementCount() int {
	return len(c.children)
}

// Element returns the child at index i (0 is the back), or nil when i is out
// of range.
func (c *Compound) Element(i int) Object {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// Elements returns a copy of the children in paint order.
func (c *Compound) Elements() []Object {
	out := make([]Object, len(c.children))
	copy(out, c.children)
	return out
}

// ElementAt returns the frontmost direct child containing (x, y), given in
// the compound's local frame, or nil.
func (c *Compound) ElementAt(x, y float64) Object {
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i].Contains(x, y) {
			return c.children[i]
		}
	}
	return nil
}

// Find returns the first object named name in a depth-first, back-to-front
// walk of the subtree, or nil.
func (c *Compound) Find(name string) Object {
	for _, child := range c.children {
		if child.Name() == name {
			return child
		}
		if sub, ok := child.(*Compound); ok {
			if found := sub.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}

func (c *Compound) reorder(child Object, op zOrder) {
	i := c.indexOf(child.base())
	if i < 0 {
		return
	}
	last := len(c.children) - 1
	j := i
	switch op {
	case zFront:
		j = last
	case zBack:
		j = 0
	case zForward:
		j = min(i+1, last)
	case zBackward:
		j = max(i-1, 0)
	}
	if j == i {
		return
	}
	moved := c.children[i]
	if j > i {
		copy(c.children[i:j], c.children[i+1:j+1])
	} else {
		copy(c.children[j+1:i+1], c.children[j:i])
	}
	c.children[j] = moved
	c.changed()
}

func (c *Compound) indexOf(b *object) int {
	for i, child := range c.children {
		if child.base() == b {
			return i
		}
	}
	return -1
}

// removeChild removes b from c.children without clearing its parent.
func (c *Compound) removeChild(b *object) {
	i := c.indexOf(b)
	if i < 0 {
		return
	}
	copy(c.children[i:], c.children[i+1:])
	c.children[len(c.children)-1] = nil
	c.children = c.children[:len(c.children)-1]
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *object) bool {
	for p := node; p != nil; {
		if p == candidate {
			return true
		}
		if p.parent == nil {
			return false
		}
		p = &p.parent.object
	}
	return false
}

func (c *Compound) extentUnder(m Transform) Rectangle {
	if len(c.children) == 0 {
		x, y := m.Apply(0, 0)
		return Rectangle{X: x, Y: y}
	}
	var e extent
	for _, child := range c.children {
		b := child.base()
		e.addRect(b.geom.extentUnder(b.localToParent().Then(m)))
	}
	return e.rect()
}

func (c *Compound) containsLocal(x, y float64) bool {
	return c.ElementAt(x, y) != nil
}

func (c *Compound) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	for _, child := range c.children {
		b := child.base()
		if !b.visible {
			continue
		}
		dst = b.geom.appendCommands(dst, b.localToParent().Then(world))
	}
	return dst
}
