package orrery

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultSegments is the number of polygon sides used to approximate circles.
const DefaultSegments = 36

// CirclePoints samples n points evenly around a circle of the given radius
// centred at the origin, starting on the +X axis and winding counter-clockwise.
// Returns nil when n < 1.
func CirclePoints(radius float64, n int) []Vec2 {
	if n < 1 {
		return nil
	}
	pts := make([]Vec2, n)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec2{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return pts
}

// --- Polygon ---

// NewPolygon creates a filled polygon mesh from the given vertices.
// Uses fan triangulation (convex polygons). Color comes from the node's Color
// field.
func NewPolygon(name string, points []Vec2) *Node {
	verts, inds := buildPolygonFan(points)
	return NewMesh(name, verts, inds)
}

// NewCircle creates a filled circle approximated by a segments-sided polygon.
func NewCircle(name string, radius float64, segments int) *Node {
	return NewPolygon(name, CirclePoints(radius, segments))
}

// buildPolygonFan generates vertices and indices for a fan-triangulated polygon.
// N vertices, 3*(N-2) indices.
func buildPolygonFan(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	for i, p := range points {
		verts[i] = whiteVertex(p.X, p.Y)
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}

// whiteVertex returns an opaque white vertex sampling the centre of the white
// pixel. The node tint supplies the final color.
func whiteVertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}

// --- Lines ---

// NewLineStrip creates a mesh drawing connected segments through points, each
// segment a quad of the given width.
func NewLineStrip(name string, points []Vec2, width float64) *Node {
	verts, inds := buildSegments(points, width, false)
	return NewMesh(name, verts, inds)
}

// NewLineLoop is NewLineStrip with a closing segment from the last point back
// to the first (an outline).
func NewLineLoop(name string, points []Vec2, width float64) *Node {
	verts, inds := buildSegments(points, width, true)
	return NewMesh(name, verts, inds)
}

// buildSegments emits one quad per segment: 4 vertices and 6 indices.
// Joins are not mitered; at the widths used for outlines the overlap is
// invisible.
func buildSegments(points []Vec2, width float64, closed bool) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 2 {
		return nil, nil
	}
	segs := n - 1
	if closed && n > 2 {
		segs = n
	}

	verts := make([]ebiten.Vertex, 0, segs*4)
	inds := make([]uint16, 0, segs*6)
	halfW := width / 2

	for i := 0; i < segs; i++ {
		a := points[i]
		b := points[(i+1)%n]
		nx, ny := perpendicular(a, b)
		nx *= halfW
		ny *= halfW

		base := uint16(len(verts))
		verts = append(verts,
			whiteVertex(a.X+nx, a.Y+ny),
			whiteVertex(a.X-nx, a.Y-ny),
			whiteVertex(b.X+nx, b.Y+ny),
			whiteVertex(b.X-nx, b.Y-ny),
		)
		inds = append(inds, base, base+1, base+2, base+1, base+3, base+2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 1
	}
	return -dy / ln, dx / ln
}

// --- Points ---

// NewPoints creates a mesh drawing each point as a square of side size
// centred on the point.
func NewPoints(name string, points []Vec2, size float64) *Node {
	n := NewMesh(name, nil, nil)
	SetPointPositions(n, points, size)
	return n
}

// SetPointPositions rebuilds a point mesh in place. Backing arrays are reused
// when the point count does not grow.
func SetPointPositions(n *Node, points []Vec2, size float64) {
	numVerts := len(points) * 4
	numInds := len(points) * 6

	if cap(n.Vertices) < numVerts {
		n.Vertices = make([]ebiten.Vertex, numVerts)
	}
	n.Vertices = n.Vertices[:numVerts]
	if cap(n.Indices) < numInds {
		n.Indices = make([]uint16, numInds)
	}
	n.Indices = n.Indices[:numInds]

	h := size / 2
	for i, p := range points {
		vi := i * 4
		n.Vertices[vi+0] = whiteVertex(p.X-h, p.Y-h)
		n.Vertices[vi+1] = whiteVertex(p.X+h, p.Y-h)
		n.Vertices[vi+2] = whiteVertex(p.X-h, p.Y+h)
		n.Vertices[vi+3] = whiteVertex(p.X+h, p.Y+h)

		ii := i * 6
		v := uint16(vi)
		n.Indices[ii+0] = v
		n.Indices[ii+1] = v + 1
		n.Indices[ii+2] = v + 2
		n.Indices[ii+3] = v + 1
		n.Indices[ii+4] = v + 3
		n.Indices[ii+5] = v + 2
	}
}
