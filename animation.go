package orrery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenColor, TweenAlpha) and
// call Update(dt) each tick. The group auto-applies values and marks the
// node dirty.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Target returns the node the group writes to.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// Tweens is a list of running groups owned by the caller. Finished groups
// are dropped on Update.
type Tweens struct {
	groups []*TweenGroup
}

// Add starts g. Any running group on the same node is stopped first so two
// groups never write the same fields.
func (t *Tweens) Add(g *TweenGroup) {
	if g.target != nil {
		t.Cancel(g.target)
	}
	t.groups = append(t.groups, g)
}

// Cancel stops every group targeting n, leaving n's fields where they are.
func (t *Tweens) Cancel(n *Node) {
	kept := t.groups[:0]
	for _, g := range t.groups {
		if g.target != n {
			kept = append(kept, g)
		}
	}
	clear(t.groups[len(kept):])
	t.groups = kept
}

// Update advances every running group by dt seconds.
func (t *Tweens) Update(dt float32) {
	kept := t.groups[:0]
	for _, g := range t.groups {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(t.groups[len(kept):])
	t.groups = kept
}

// Len returns the number of running groups.
func (t *Tweens) Len() int {
	return len(t.groups)
}
