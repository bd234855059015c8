package orrery

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandMesh CommandType = iota // DrawTriangles
	CommandText                    // text/v2 Draw
)

// RenderCommand is a single draw instruction emitted during scene traversal.
// Commands are submitted in emission order, which is tree order.
type RenderCommand struct {
	Type  CommandType
	Color Color

	// Mesh-only fields (slice headers, not copies of vertex data). Vertices
	// are already in screen space.
	meshVerts []ebiten.Vertex
	meshInds  []uint16

	// Text-only fields.
	label            *Label
	screenX, screenY float64
}

// traverse walks the node tree depth-first, updating world transforms and
// emitting render commands for visible mesh and text nodes. view maps world
// space to screen space.
func (s *Scene) traverse(n *Node, view, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	switch n.Type {
	case NodeTypeMesh:
		if len(n.Vertices) == 0 || len(n.Indices) == 0 {
			break
		}
		tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
		dst := ensureTransformedVerts(n)
		transformVertices(n.Vertices, dst, multiplyAffine(view, n.worldTransform), tint)
		s.commands = append(s.commands, RenderCommand{
			Type:      CommandMesh,
			Color:     tint,
			meshVerts: dst,
			meshInds:  n.Indices,
		})
	case NodeTypeText:
		if n.Label == nil || n.Label.Font == nil {
			break
		}
		sx, sy := transformPoint(view, n.worldTransform[4], n.worldTransform[5])
		s.commands = append(s.commands, RenderCommand{
			Type:    CommandText,
			Color:   Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
			label:   n.Label,
			screenX: sx,
			screenY: sy,
		})
		// NodeTypeContainer doesn't emit commands
	}

	for _, child := range n.children {
		s.traverse(child, view, n.worldTransform, n.worldAlpha, recompute)
	}
}

// submitCommands draws every command onto target in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}

	white := ensureWhitePixel()
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = s.AntiAlias

	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandMesh:
			target.DrawTriangles(cmd.meshVerts, cmd.meshInds, white, &op)
		case CommandText:
			drawLabel(target, cmd.label, cmd.screenX, cmd.screenY, cmd.Color)
		}
	}
}

// countDrawCalls returns the number of backend draw calls a command list
// issues. Each command is one call; meshes are not merged.
func countDrawCalls(cmds []RenderCommand) int {
	return len(cmds)
}
