package sweep

import "sort"

// kAlpha controls how far outside the input's bounding box the two artificial
// bootstrap points are placed.
const kAlpha = 0.3

// Context carries all state shared by one triangulation: the registered
// points and constraint edges, the advancing front, the triangle registry and
// the scratch state for edge events and basin fills. A Context is good for
// exactly one Triangulate call.
type Context struct {
	points []*Point
	edges  []*Edge

	// Artificial points bracketing the input below and to the sides. head is
	// the right one, tail the left.
	head, tail *Point

	front                    *advancingFront
	afHead, afMiddle, afTail *Node

	// Every triangle ever allocated, including the artificial shell. Flips
	// re-vertex triangles in place, so none are retired. The extraction pass
	// filters this down to triangles.
	mesh      []*Triangle
	triangles []*Triangle

	basin     basin
	edgeEvent edgeEvent

	used bool
}

// basin is the scratch state for filling a concave dip in the front.
type basin struct {
	leftNode    *Node
	bottomNode  *Node
	rightNode   *Node
	width       float64
	leftHighest bool
}

func (b *basin) clear() {
	*b = basin{}
}

// edgeEvent is the scratch state for the currently inserted constraint.
type edgeEvent struct {
	constrainedEdge *Edge
	right           bool
}

func NewContext() *Context {
	return &Context{}
}

// AddOutline registers a closed polygon ring. Consecutive points become
// constraint edges, including the implicit closing edge. Winding order does
// not matter.
func (tcx *Context) AddOutline(polyline []*Point) {
	if len(polyline) < 3 {
		fatal(ErrInvalidInput, "ring needs at least 3 points, got %d", len(polyline))
	}
	for i := range polyline {
		j := (i + 1) % len(polyline)
		tcx.edges = append(tcx.edges, newEdge(polyline[i], polyline[j]))
	}
	tcx.points = append(tcx.points, polyline...)
}

// AddHole registers a hole ring. Holes are not treated specially here: the
// extraction pass keeps the mesh from crossing any constrained edge, which
// is what excludes hole interiors from the output.
func (tcx *Context) AddHole(polyline []*Point) {
	tcx.AddOutline(polyline)
}

// AddPoint registers a Steiner point with no constraint edges.
func (tcx *Context) AddPoint(p *Point) {
	tcx.points = append(tcx.points, p)
}

func (tcx *Context) pointCount() int { return len(tcx.points) }

func (tcx *Context) point(i int) *Point { return tcx.points[i] }

// Triangles returns the interior triangles after a successful sweep.
func (tcx *Context) Triangles() []*Triangle { return tcx.triangles }

// Mesh returns every triangle in the registry, including the artificial
// shell and any hole interiors. Debugging aid.
func (tcx *Context) Mesh() []*Triangle { return tcx.mesh }

func (tcx *Context) addToMesh(t *Triangle) {
	tcx.mesh = append(tcx.mesh, t)
}

// initTriangulation computes the bootstrap region and sorts the points into
// sweep order.
func (tcx *Context) initTriangulation() {
	if tcx.used {
		fatal(ErrInvalidInput, "context has already been used")
	}
	tcx.used = true
	if len(tcx.points) < 3 {
		fatal(ErrInvalidInput, "triangulation needs at least 3 points, got %d", len(tcx.points))
	}

	xmax, xmin := tcx.points[0].X, tcx.points[0].X
	ymax, ymin := tcx.points[0].Y, tcx.points[0].Y
	for _, p := range tcx.points {
		if p.X > xmax {
			xmax = p.X
		}
		if p.X < xmin {
			xmin = p.X
		}
		if p.Y > ymax {
			ymax = p.Y
		}
		if p.Y < ymin {
			ymin = p.Y
		}
	}

	dx := kAlpha * (xmax - xmin)
	dy := kAlpha * (ymax - ymin)
	tcx.head = &Point{X: xmax + dx, Y: ymin - dy}
	tcx.tail = &Point{X: xmin - dx, Y: ymin - dy}

	sort.SliceStable(tcx.points, func(i, j int) bool {
		return tcx.points[i].below(tcx.points[j])
	})
}

// createAdvancingFront builds the bootstrap triangle over the artificial
// points and the lowest input point, and the three initial front nodes.
func (tcx *Context) createAdvancingFront() {
	triangle := NewTriangle(tcx.points[0], tcx.tail, tcx.head)
	tcx.addToMesh(triangle)

	tcx.afHead = newNode(triangle.Point(1), triangle)
	tcx.afMiddle = newNode(triangle.Point(0), triangle)
	tcx.afTail = newNode(triangle.Point(2), nil)
	tcx.front = newAdvancingFront(tcx.afHead, tcx.afTail)

	tcx.afHead.next = tcx.afMiddle
	tcx.afMiddle.next = tcx.afTail
	tcx.afMiddle.prev = tcx.afHead
	tcx.afTail.prev = tcx.afMiddle
}

// locateNode finds the front node whose span contains p's x value.
func (tcx *Context) locateNode(p *Point) *Node {
	return tcx.front.locateNode(p.X)
}

// mapTriangleToNodes points front nodes at t for every vertex of t that is
// currently on the front. Only edges without a neighbor can be front edges.
func (tcx *Context) mapTriangleToNodes(t *Triangle) {
	for i := 0; i < 3; i++ {
		if t.Neighbor(i) != nil {
			continue
		}
		n := tcx.front.locatePoint(t.PointCW(t.Point(i)))
		if n != nil {
			n.triangle = t
		}
	}
}

// meshClean is the extraction pass: flood from seed, marking every reachable
// triangle interior without ever crossing a constrained edge, and collect
// them in insertion order.
func (tcx *Context) meshClean(seed *Triangle) {
	stack := []*Triangle{seed}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t == nil || t.IsInterior() {
			continue
		}
		t.interior = true
		tcx.triangles = append(tcx.triangles, t)
		for i := 0; i < 3; i++ {
			if !t.constrained[i] {
				stack = append(stack, t.Neighbor(i))
			}
		}
	}
}
