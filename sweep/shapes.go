package sweep

import "fmt"

// Note that all points involved with the triangulation are pointers. Identity
// is by address everywhere in the engine: two distinct points with equal
// coordinates are distinct vertices. Callers own the point values and must
// keep them alive for the lifetime of the triangulation.

type Point struct {
	X, Y float64

	// Constraint edges for which this point is the upper endpoint. Built
	// while registering outlines and holes.
	edges []*Edge
}

func (p *Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// below is the sweep order: ascending y, tiebreak ascending x.
func (p *Point) below(other *Point) bool {
	if p.Y < other.Y {
		return true
	}
	if p.Y == other.Y {
		return p.X < other.X
	}
	return false
}

// Edge is a constraint edge. Q is the upper endpoint in sweep order. The
// only mutation an edge ever sees is Q being rewritten when the constraint
// is split at a collinear interior point.
type Edge struct {
	P, Q *Point
}

// newEdge orders the endpoints and attaches the edge to the upper one's
// edge list. Coincident endpoints are a fatal input error.
func newEdge(p1, p2 *Point) *Edge {
	e := &Edge{P: p1, Q: p2}
	if p2.below(p1) {
		e.P = p2
		e.Q = p1
	} else if p1.X == p2.X && p1.Y == p2.Y {
		fatal(ErrInvalidInput, "edge endpoints coincide at %v", p1)
	}
	e.Q.edges = append(e.Q.edges, e)
	return e
}

// Triangle keeps its three vertices in CCW order. The three parallel arrays
// are indexed by opposite vertex: neighbors[i], constrained[i] and
// delaunay[i] all describe the edge opposite points[i].
type Triangle struct {
	points      [3]*Point
	neighbors   [3]*Triangle
	constrained [3]bool
	delaunay    [3]bool

	// Set by the extraction pass for triangles inside the constrained region.
	interior bool
}

func NewTriangle(a, b, c *Point) *Triangle {
	return &Triangle{points: [3]*Point{a, b, c}}
}

func (t *Triangle) String() string {
	return fmt.Sprintf("%v %v %v", t.points[0], t.points[1], t.points[2])
}

func (t *Triangle) Point(i int) *Point       { return t.points[i] }
func (t *Triangle) Neighbor(i int) *Triangle { return t.neighbors[i] }
func (t *Triangle) IsConstrained(i int) bool { return t.constrained[i] }
func (t *Triangle) IsInterior() bool         { return t.interior }

// Contains reports whether p is a vertex of t.
func (t *Triangle) Contains(p *Point) bool {
	return p == t.points[0] || p == t.points[1] || p == t.points[2]
}

func (t *Triangle) ContainsEdge(p, q *Point) bool {
	return t.Contains(p) && t.Contains(q)
}

// Index of vertex p, or -1.
func (t *Triangle) Index(p *Point) int {
	switch p {
	case t.points[0]:
		return 0
	case t.points[1]:
		return 1
	case t.points[2]:
		return 2
	}
	return -1
}

// EdgeIndex gives the index of the edge between p1 and p2, or -1 if the
// triangle does not have that edge.
func (t *Triangle) EdgeIndex(p1, p2 *Point) int {
	switch p1 {
	case t.points[0]:
		if p2 == t.points[1] {
			return 2
		}
		if p2 == t.points[2] {
			return 1
		}
	case t.points[1]:
		if p2 == t.points[2] {
			return 0
		}
		if p2 == t.points[0] {
			return 2
		}
	case t.points[2]:
		if p2 == t.points[0] {
			return 1
		}
		if p2 == t.points[1] {
			return 0
		}
	}
	return -1
}

// PointCW is the vertex clockwise of p, nil if p is not a vertex.
func (t *Triangle) PointCW(p *Point) *Point {
	switch p {
	case t.points[0]:
		return t.points[2]
	case t.points[1]:
		return t.points[0]
	case t.points[2]:
		return t.points[1]
	}
	return nil
}

// PointCCW is the vertex counterclockwise of p, nil if p is not a vertex.
func (t *Triangle) PointCCW(p *Point) *Point {
	switch p {
	case t.points[0]:
		return t.points[1]
	case t.points[1]:
		return t.points[2]
	case t.points[2]:
		return t.points[0]
	}
	return nil
}

// NeighborCW is the neighbor across the edge clockwise of p.
func (t *Triangle) NeighborCW(p *Point) *Triangle {
	switch p {
	case t.points[0]:
		return t.neighbors[1]
	case t.points[1]:
		return t.neighbors[2]
	}
	return t.neighbors[0]
}

// NeighborCCW is the neighbor across the edge counterclockwise of p.
func (t *Triangle) NeighborCCW(p *Point) *Triangle {
	switch p {
	case t.points[0]:
		return t.neighbors[2]
	case t.points[1]:
		return t.neighbors[0]
	}
	return t.neighbors[1]
}

// NeighborAcross is the neighbor opposite to p.
func (t *Triangle) NeighborAcross(p *Point) *Triangle {
	switch p {
	case t.points[0]:
		return t.neighbors[0]
	case t.points[1]:
		return t.neighbors[1]
	}
	return t.neighbors[2]
}

// OppositePoint is the vertex of t across the edge shared with ot, where p
// is the vertex of ot not on the shared edge.
func (t *Triangle) OppositePoint(ot *Triangle, p *Point) *Point {
	cw := ot.PointCW(p)
	if cw == nil {
		return nil
	}
	return t.PointCW(cw)
}

// markNeighborEdge records ot as the neighbor across the (p1, p2) edge.
func (t *Triangle) markNeighborEdge(p1, p2 *Point, ot *Triangle) {
	i := t.EdgeIndex(p1, p2)
	if i == -1 {
		fatal(ErrNullTriangle, "marking neighbor across an edge %v-%v the triangle does not have", p1, p2)
	}
	t.neighbors[i] = ot
}

// MarkNeighbor wires t and ot as mutual neighbors across their shared edge,
// if they share one.
func (t *Triangle) MarkNeighbor(ot *Triangle) {
	if ot == nil {
		fatal(ErrNullTriangle, "marking nil neighbor of %v", t)
	}
	switch {
	case ot.ContainsEdge(t.points[1], t.points[2]):
		t.neighbors[0] = ot
		ot.markNeighborEdge(t.points[1], t.points[2], t)
	case ot.ContainsEdge(t.points[0], t.points[2]):
		t.neighbors[1] = ot
		ot.markNeighborEdge(t.points[0], t.points[2], t)
	case ot.ContainsEdge(t.points[0], t.points[1]):
		t.neighbors[2] = ot
		ot.markNeighborEdge(t.points[0], t.points[1], t)
	}
}

func (t *Triangle) clearNeighbors() {
	t.neighbors[0] = nil
	t.neighbors[1] = nil
	t.neighbors[2] = nil
}

func (t *Triangle) clearDelaunayEdges() {
	t.delaunay[0] = false
	t.delaunay[1] = false
	t.delaunay[2] = false
}

func (t *Triangle) markConstrainedEdgeAt(i int) {
	t.constrained[i] = true
}

// MarkConstrainedEdge marks the edge between p and q constrained, if t has it.
func (t *Triangle) MarkConstrainedEdge(p, q *Point) {
	i := t.EdgeIndex(p, q)
	if i != -1 {
		t.constrained[i] = true
	}
}

// Constrained and delaunay flag accessors relative to a pivot vertex. The
// "CW edge of p" is the edge between p and PointCW(p), which is the edge
// opposite PointCCW(p), hence the index rotation.

func (t *Triangle) constrainedEdgeCW(p *Point) bool {
	switch p {
	case t.points[0]:
		return t.constrained[1]
	case t.points[1]:
		return t.constrained[2]
	}
	return t.constrained[0]
}

func (t *Triangle) constrainedEdgeCCW(p *Point) bool {
	switch p {
	case t.points[0]:
		return t.constrained[2]
	case t.points[1]:
		return t.constrained[0]
	}
	return t.constrained[1]
}

func (t *Triangle) setConstrainedEdgeCW(p *Point, ce bool) {
	switch p {
	case t.points[0]:
		t.constrained[1] = ce
	case t.points[1]:
		t.constrained[2] = ce
	default:
		t.constrained[0] = ce
	}
}

func (t *Triangle) setConstrainedEdgeCCW(p *Point, ce bool) {
	switch p {
	case t.points[0]:
		t.constrained[2] = ce
	case t.points[1]:
		t.constrained[0] = ce
	default:
		t.constrained[1] = ce
	}
}

func (t *Triangle) delaunayEdgeCW(p *Point) bool {
	switch p {
	case t.points[0]:
		return t.delaunay[1]
	case t.points[1]:
		return t.delaunay[2]
	}
	return t.delaunay[0]
}

func (t *Triangle) delaunayEdgeCCW(p *Point) bool {
	switch p {
	case t.points[0]:
		return t.delaunay[2]
	case t.points[1]:
		return t.delaunay[0]
	}
	return t.delaunay[1]
}

func (t *Triangle) setDelaunayEdgeCW(p *Point, de bool) {
	switch p {
	case t.points[0]:
		t.delaunay[1] = de
	case t.points[1]:
		t.delaunay[2] = de
	default:
		t.delaunay[0] = de
	}
}

func (t *Triangle) setDelaunayEdgeCCW(p *Point, de bool) {
	switch p {
	case t.points[0]:
		t.delaunay[2] = de
	case t.points[1]:
		t.delaunay[0] = de
	default:
		t.delaunay[1] = de
	}
}

// rotate re-vertexes the triangle in place during an edge flip: opoint stays,
// the vertex chain rotates clockwise around it and npoint takes the freed
// slot. Neighbor and flag arrays are rewired by the caller.
func (t *Triangle) rotate(opoint, npoint *Point) {
	switch opoint {
	case t.points[0]:
		t.points[1] = t.points[0]
		t.points[0] = t.points[2]
		t.points[2] = npoint
	case t.points[1]:
		t.points[2] = t.points[1]
		t.points[1] = t.points[0]
		t.points[0] = npoint
	case t.points[2]:
		t.points[0] = t.points[2]
		t.points[2] = t.points[1]
		t.points[1] = npoint
	default:
		fatal(ErrDegenerateTriangle, "rotating %v around a vertex it does not have", t)
	}
}
