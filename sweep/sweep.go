// Package sweep implements constrained Delaunay triangulation of simple
// polygons with holes and Steiner points, using an incremental sweep-line
// over an advancing front.
//
// Points are swept bottom-up in (y, x) order. Each point closes a wedge of
// the advancing front into a new triangle, the mesh is kept locally Delaunay
// by recursive edge flips, and constraint edges that are not already present
// are forced in by flipping across the triangles they cross. A final flood
// from a boundary triangle extracts the interior.
package sweep

import "math"

// maxDepth bounds the engine's recursive chains. Legitimate meshes stay far
// below it; adversarial input that would otherwise blow the stack is
// reported as ErrRecursionDepth instead.
const maxDepth = 100000

type sweeper struct {
	tcx   *Context
	depth int
}

func (s *sweeper) enter() {
	s.depth++
	if s.depth > maxDepth {
		fatal(ErrRecursionDepth, "recursion deeper than %d frames", maxDepth)
	}
}

func (s *sweeper) leave() {
	s.depth--
}

// Triangulate runs the full sweep over the context's registered input. On
// any failure it panics with a triangulateError; the public API recovers.
func Triangulate(tcx *Context) {
	s := &sweeper{tcx: tcx}
	tcx.initTriangulation()
	tcx.createAdvancingFront()
	s.sweepPoints()
	s.finalizationPolygon()
}

// sweepPoints fires one point event per input point in sweep order, followed
// by an edge event for every constraint whose upper endpoint it is. The
// lowest point is already part of the bootstrap triangle.
func (s *sweeper) sweepPoints() {
	for i := 1; i < s.tcx.pointCount(); i++ {
		point := s.tcx.point(i)
		node := s.pointEvent(point)
		for _, e := range point.edges {
			s.edgeEvent(e, node)
		}
	}
}

// finalizationPolygon finds a triangle inside the constrained region and
// floods the interior from it.
func (s *sweeper) finalizationPolygon() {
	t := s.tcx.front.head.next.triangle
	p := s.tcx.front.head.next.point
	for t != nil && !t.constrainedEdgeCW(p) {
		t = t.NeighborCCW(p)
	}
	if t != nil {
		s.tcx.meshClean(t)
	}
}

// pointEvent inserts a point into the front: a new triangle against the
// front edge below it, a new front node, then greedy hole and basin filling
// around the insertion.
func (s *sweeper) pointEvent(point *Point) *Node {
	node := s.tcx.locateNode(point)
	if node == nil || node.point == nil || node.next == nil || node.next.point == nil {
		fatal(ErrNullNode, "no front node spans x=%g", point.X)
	}

	n := s.newFrontTriangle(point, node)

	// Only +epsilon matters: the locate guarantees the point is never left
	// of node. A shared x means a flat wedge to the left that must close
	// now, before edge events walk the front.
	if point.X <= node.point.X+Epsilon {
		s.fill(node)
	}

	s.fillAdvancingFront(n)
	return n
}

// newFrontTriangle creates the triangle between point and the front edge at
// node, and splices a new front node in after node.
func (s *sweeper) newFrontTriangle(point *Point, node *Node) *Node {
	triangle := NewTriangle(point, node.point, node.next.point)
	triangle.MarkNeighbor(node.triangle)
	s.tcx.addToMesh(triangle)

	n := &Node{point: point, value: point.X}
	n.next = node.next
	n.prev = node
	node.next.prev = n
	node.next = n

	if !s.legalize(triangle) {
		s.tcx.mapTriangleToNodes(triangle)
	}
	return n
}

// fill closes the wedge at node into a triangle and splices node out of the
// front. The constrained flags of the covered edges propagate during
// legalization.
func (s *sweeper) fill(node *Node) {
	triangle := NewTriangle(node.prev.point, node.point, node.next.point)
	triangle.MarkNeighbor(node.prev.triangle)
	triangle.MarkNeighbor(node.triangle)
	s.tcx.addToMesh(triangle)

	node.prev.next = node.next
	node.next.prev = node.prev

	if !s.legalize(triangle) {
		s.tcx.mapTriangleToNodes(triangle)
	}
}

// fillAdvancingFront greedily closes holes to both sides of a fresh node,
// then fills any basin opening to its right.
func (s *sweeper) fillAdvancingFront(n *Node) {
	for node := n.next; node != nil && node.next != nil; node = node.next {
		if largeHoleDontFill(node) {
			break
		}
		s.fill(node)
	}

	for node := n.prev; node != nil && node.prev != nil; node = node.prev {
		if largeHoleDontFill(node) {
			break
		}
		s.fill(node)
	}

	if n.next != nil && n.next.next != nil {
		if basinAngle(n) < pi3Div4 {
			s.fillBasin(n)
		}
	}
}

// largeHoleDontFill decides whether the wedge at node is too open to close.
// A hole is "large" when the interior angle at node exceeds 90 degrees. Two
// lookahead checks, one extra front node on each side, may override that for
// long shallow fronts. A negative angle always wins though: filling it would
// push a triangle inside the front and corrupt the mesh, so the negativity
// test short-circuits before any lookahead.
func largeHoleDontFill(node *Node) bool {
	nextNode := node.next
	prevNode := node.prev
	if !angleExceeds90(node.point, nextNode.point, prevNode.point) {
		return false
	}
	if angleIsNegative(node.point, nextNode.point, prevNode.point) {
		return true
	}

	if next2 := nextNode.next; next2 != nil && !angleExceedsPlus90OrNegative(node.point, next2.point, prevNode.point) {
		return false
	}
	if prev2 := prevNode.prev; prev2 != nil && !angleExceedsPlus90OrNegative(node.point, nextNode.point, prev2.point) {
		return false
	}
	return true
}

func angleIsNegative(origin, a, b *Point) bool {
	return Angle(origin, a, b) < 0
}

func angleExceeds90(origin, a, b *Point) bool {
	angle := Angle(origin, a, b)
	return angle > piDiv2 || angle < -piDiv2
}

func angleExceedsPlus90OrNegative(origin, a, b *Point) bool {
	angle := Angle(origin, a, b)
	return angle > piDiv2 || angle < 0
}

// basinAngle is the slope of the line from node to the point two front nodes
// over; a steep drop signals a basin worth filling.
func basinAngle(node *Node) float64 {
	ax := node.point.X - node.next.next.point.X
	ay := node.point.Y - node.next.next.point.Y
	return math.Atan2(ay, ax)
}

// legalize restores the local Delaunay property around t by recursive edge
// flips. Returns true if any flip happened; the caller then skips its own
// triangle-to-node mapping because the recursion has already done it.
func (s *sweeper) legalize(t *Triangle) bool {
	s.enter()
	defer s.leave()

	for i := 0; i < 3; i++ {
		if t.delaunay[i] {
			continue
		}

		ot := t.Neighbor(i)
		if ot == nil {
			continue
		}

		p := t.Point(i)
		op := ot.OppositePoint(t, p)
		if op == nil {
			fatal(ErrDegenerateTriangle, "%v and %v share no edge", t, ot)
		}
		oi := ot.Index(op)

		// A constrained or delaunay-marked opposite edge is not ours to
		// flip; just carry the constrained flag over.
		if ot.constrained[oi] || ot.delaunay[oi] {
			t.constrained[i] = ot.constrained[oi]
			continue
		}

		if !InCircle(p, t.PointCCW(p), t.PointCW(p), op) {
			continue
		}

		t.delaunay[i] = true
		ot.delaunay[oi] = true
		rotateTrianglePair(t, p, ot, op)

		// The flip exposes four edges to re-check. Map triangle to nodes
		// only once per triangle: the deepest non-flipping level does it.
		if !s.legalize(t) {
			s.tcx.mapTriangleToNodes(t)
		}
		if !s.legalize(ot) {
			s.tcx.mapTriangleToNodes(ot)
		}

		// The delaunay marks only protect the shared edge during the
		// recursion above.
		t.delaunay[i] = false
		ot.delaunay[oi] = false

		return true
	}
	return false
}

// rotateTrianglePair flips the edge shared by t and ot: t keeps p, ot keeps
// op, and the shared edge becomes (p, op). The four outer neighbors and
// their constrained/delaunay flags are captured first and rewired to their
// new positions around the flip axis.
func rotateTrianglePair(t *Triangle, p *Point, ot *Triangle, op *Point) {
	n1 := t.NeighborCCW(p)
	n2 := t.NeighborCW(p)
	n3 := ot.NeighborCCW(op)
	n4 := ot.NeighborCW(op)

	ce1 := t.constrainedEdgeCCW(p)
	ce2 := t.constrainedEdgeCW(p)
	ce3 := ot.constrainedEdgeCCW(op)
	ce4 := ot.constrainedEdgeCW(op)

	de1 := t.delaunayEdgeCCW(p)
	de2 := t.delaunayEdgeCW(p)
	de3 := ot.delaunayEdgeCCW(op)
	de4 := ot.delaunayEdgeCW(op)

	t.rotate(p, op)
	ot.rotate(op, p)

	ot.setDelaunayEdgeCCW(p, de1)
	t.setDelaunayEdgeCW(p, de2)
	t.setDelaunayEdgeCCW(op, de3)
	ot.setDelaunayEdgeCW(op, de4)

	ot.setConstrainedEdgeCCW(p, ce1)
	t.setConstrainedEdgeCW(p, ce2)
	t.setConstrainedEdgeCCW(op, ce3)
	ot.setConstrainedEdgeCW(op, ce4)

	t.clearNeighbors()
	ot.clearNeighbors()
	if n1 != nil {
		ot.MarkNeighbor(n1)
	}
	if n2 != nil {
		t.MarkNeighbor(n2)
	}
	if n3 != nil {
		t.MarkNeighbor(n3)
	}
	if n4 != nil {
		ot.MarkNeighbor(n4)
	}
	t.MarkNeighbor(ot)
}

// fillBasin closes a concave dip of the front to the right of node. The
// basin is delimited by the higher of the two next nodes on the left, the
// local minimum at the bottom, and the first rising peak on the right.
func (s *sweeper) fillBasin(node *Node) {
	b := &s.tcx.basin
	b.clear()

	if Orient2d(node.point, node.next.point, node.next.next.point) == CCW {
		b.leftNode = node.next.next
	} else {
		b.leftNode = node.next
	}

	b.bottomNode = b.leftNode
	for b.bottomNode.next != nil && b.bottomNode.point.Y >= b.bottomNode.next.point.Y {
		b.bottomNode = b.bottomNode.next
	}
	if b.bottomNode == b.leftNode {
		// No valid basin
		return
	}

	b.rightNode = b.bottomNode
	for b.rightNode.next != nil && b.rightNode.point.Y < b.rightNode.next.point.Y {
		b.rightNode = b.rightNode.next
	}
	if b.rightNode == b.bottomNode {
		// No valid basin
		return
	}

	b.width = b.rightNode.point.X - b.leftNode.point.X
	b.leftHighest = b.leftNode.point.Y > b.rightNode.point.Y

	s.fillBasinReq(b.bottomNode)
}

// fillBasinReq fills the basin from the bottom up, always descending toward
// the lower neighbor, until the basin becomes shallower than it is wide.
func (s *sweeper) fillBasinReq(node *Node) {
	s.enter()
	defer s.leave()

	if s.isShallow(node) {
		return
	}

	s.fill(node)

	b := &s.tcx.basin
	switch {
	case node.prev == b.leftNode && node.next == b.rightNode:
		return
	case node.prev == b.leftNode:
		if Orient2d(node.point, node.next.point, node.next.next.point) == CW {
			return
		}
		node = node.next
	case node.next == b.rightNode:
		if Orient2d(node.point, node.prev.point, node.prev.prev.point) == CCW {
			return
		}
		node = node.prev
	default:
		if node.prev.point.Y < node.next.point.Y {
			node = node.prev
		} else {
			node = node.next
		}
	}

	s.fillBasinReq(node)
}

func (s *sweeper) isShallow(node *Node) bool {
	b := &s.tcx.basin
	var height float64
	if b.leftHighest {
		height = b.leftNode.point.Y - node.point.Y
	} else {
		height = b.rightNode.point.Y - node.point.Y
	}
	return b.width > height
}

// edgeEvent forces the constraint edge into the mesh, starting from the
// front node of its upper endpoint.
func (s *sweeper) edgeEvent(edge *Edge, node *Node) {
	s.tcx.edgeEvent.constrainedEdge = edge
	s.tcx.edgeEvent.right = edge.P.X > edge.Q.X

	if node.triangle == nil {
		fatal(ErrNullTriangle, "front node at %v has no triangle", node.point)
	}
	if s.isEdgeSideOfTriangle(node.triangle, edge.P, edge.Q) {
		return
	}

	// Fill the front above the edge first, so the interior walk below never
	// has to mix fills with flips.
	s.fillEdgeEvent(edge, node)
	if node.triangle == nil {
		fatal(ErrNullTriangle, "front node at %v lost its triangle", node.point)
	}
	s.edgeEventPoints(edge.P, edge.Q, node.triangle, edge.Q)
}

// isEdgeSideOfTriangle marks the edge constrained on both sides if the
// triangle already has it.
func (s *sweeper) isEdgeSideOfTriangle(triangle *Triangle, ep, eq *Point) bool {
	index := triangle.EdgeIndex(ep, eq)
	if index == -1 {
		return false
	}
	triangle.markConstrainedEdgeAt(index)
	if t := triangle.Neighbor(index); t != nil {
		t.MarkConstrainedEdge(ep, eq)
	}
	return true
}

// edgeEventPoints walks the interior from triangle toward ep along the
// constraint (ep, eq). point is the pivot vertex of the recursion,
// initially eq. Triangles the constraint exits through a side edge are
// rotated past; the triangle whose opposite edge the constraint crosses
// starts the flip chain. A vertex exactly on the constraint splits it.
func (s *sweeper) edgeEventPoints(ep, eq *Point, triangle *Triangle, point *Point) {
	s.enter()
	defer s.leave()

	if triangle == nil {
		fatal(ErrNullTriangle, "edge event %v-%v walked off the mesh", ep, eq)
	}
	if s.isEdgeSideOfTriangle(triangle, ep, eq) {
		return
	}

	p1 := triangle.PointCCW(point)
	if p1 == nil {
		fatal(ErrDegenerateTriangle, "%v has no CCW vertex of %v", triangle, point)
	}
	o1 := Orient2d(eq, p1, ep)
	if o1 == Collinear {
		if triangle.ContainsEdge(eq, p1) {
			triangle.MarkConstrainedEdge(eq, p1)
			// p1 lies on the constraint: split it there and continue with
			// the lower part.
			s.tcx.edgeEvent.constrainedEdge.Q = p1
			s.edgeEventPoints(ep, p1, triangle.NeighborAcross(point), p1)
		} else {
			fatal(ErrCollinearPoints, "constraint %v-%v is collinear with %v", eq, ep, p1)
		}
		return
	}

	p2 := triangle.PointCW(point)
	if p2 == nil {
		fatal(ErrDegenerateTriangle, "%v has no CW vertex of %v", triangle, point)
	}
	o2 := Orient2d(eq, p2, ep)
	if o2 == Collinear {
		if triangle.ContainsEdge(eq, p2) {
			triangle.MarkConstrainedEdge(eq, p2)
			s.tcx.edgeEvent.constrainedEdge.Q = p2
			s.edgeEventPoints(ep, p2, triangle.NeighborAcross(point), p2)
		} else {
			fatal(ErrCollinearPoints, "constraint %v-%v is collinear with %v", eq, ep, p2)
		}
		return
	}

	if o1 == o2 {
		// The constraint exits through a side edge: rotate toward a
		// triangle that will cross it.
		if o1 == CW {
			triangle = triangle.NeighborCCW(point)
		} else {
			triangle = triangle.NeighborCW(point)
		}
		s.edgeEventPoints(ep, eq, triangle, point)
	} else {
		// This triangle crosses the constraint; start flipping.
		s.flipEdgeEvent(ep, eq, triangle, point)
	}
}

// flipEdgeEvent rotates the edge the constraint crosses, then either the
// constraint is realized and both triangles get marked, or the flip chain
// continues in whichever triangle still crosses it. Quadrilaterals too
// concave to flip are handed to the flip-scan walk.
func (s *sweeper) flipEdgeEvent(ep, eq *Point, t *Triangle, p *Point) {
	s.enter()
	defer s.leave()

	if t == nil {
		fatal(ErrNullTriangle, "flip edge event %v-%v lost its triangle", ep, eq)
	}
	ot := t.NeighborAcross(p)
	if ot == nil {
		fatal(ErrNullTriangle, "no neighbor across %v while flipping %v-%v", p, ep, eq)
	}
	op := ot.OppositePoint(t, p)
	if op == nil {
		fatal(ErrDegenerateTriangle, "%v and %v share no edge", t, ot)
	}

	if InScanArea(p, t.PointCCW(p), t.PointCW(p), op) {
		rotateTrianglePair(t, p, ot, op)
		s.tcx.mapTriangleToNodes(t)
		s.tcx.mapTriangleToNodes(ot)

		if p == eq && op == ep {
			if eq == s.tcx.edgeEvent.constrainedEdge.Q && ep == s.tcx.edgeEvent.constrainedEdge.P {
				t.MarkConstrainedEdge(ep, eq)
				ot.MarkConstrainedEdge(ep, eq)
				s.legalize(t)
				s.legalize(ot)
			} else {
				// The realized edge is not the constraint recorded in the
				// edge event; this happens in the sub-chain that
				// flipScanEdgeEvent starts for its scan edge. It is left
				// unmarked, and the outer flipEdgeEvent goes on with
				// edgeEventPoints once the scan returns.
			}
		} else {
			o := Orient2d(eq, op, ep)
			t = s.nextFlipTriangle(o, t, ot, p, op)
			s.flipEdgeEvent(ep, eq, t, p)
		}
	} else {
		newP := s.nextFlipPoint(ep, eq, ot, op)
		s.flipScanEdgeEvent(ep, eq, t, ot, newP)
		s.edgeEventPoints(ep, eq, t, p)
	}
}

// nextFlipTriangle picks which of the two rotated triangles still crosses
// the constraint. The one that no longer crosses gets its shared edge
// temporarily marked delaunay so legalization cannot undo the flip. A
// collinear orientation means the opposing vertex sits exactly on the
// constraint, which the flip cannot resolve.
func (s *sweeper) nextFlipTriangle(o Orientation, t, ot *Triangle, p, op *Point) *Triangle {
	if o == Collinear {
		fatal(ErrCollinearPoints, "flipped vertex %v lies on the constraint", op)
	}
	if o == CCW {
		// ot is not crossing the edge after the flip
		i := ot.EdgeIndex(p, op)
		ot.delaunay[i] = true
		s.legalize(ot)
		ot.clearDelaunayEdges()
		return t
	}

	// t is not crossing the edge after the flip
	i := t.EdgeIndex(p, op)
	t.delaunay[i] = true
	s.legalize(t)
	t.clearDelaunayEdges()
	return ot
}

// nextFlipPoint is the vertex of ot on the constraint's side of op, the next
// candidate for the flip scan.
func (s *sweeper) nextFlipPoint(ep, eq *Point, ot *Triangle, op *Point) *Point {
	switch Orient2d(eq, op, ep) {
	case CW:
		// Right of the constraint
		return ot.PointCCW(op)
	case CCW:
		// Left of the constraint
		return ot.PointCW(op)
	}
	fatal(ErrCollinearPoints, "opposing point %v lies on the constraint %v-%v", op, ep, eq)
	return nil
}

// flipScanEdgeEvent walks across triangles past ot until it finds a vertex
// inside flipTriangle's scan area, then restarts the flip chain there.
func (s *sweeper) flipScanEdgeEvent(ep, eq *Point, flipTriangle, t *Triangle, p *Point) {
	s.enter()
	defer s.leave()

	ot := t.NeighborAcross(p)
	if ot == nil {
		fatal(ErrNullTriangle, "no neighbor across %v in flip scan", p)
	}
	op := ot.OppositePoint(t, p)
	if op == nil {
		fatal(ErrDegenerateTriangle, "%v and %v share no edge", t, ot)
	}
	p1 := flipTriangle.PointCCW(eq)
	p2 := flipTriangle.PointCW(eq)
	if p1 == nil || p2 == nil {
		fatal(ErrDegenerateTriangle, "%v has no CCW/CW vertex of %v", flipTriangle, eq)
	}

	if InScanArea(eq, p1, p2, op) {
		// Flip with the new edge op->eq
		s.flipEdgeEvent(eq, op, ot, op)
	} else {
		newP := s.nextFlipPoint(ep, eq, ot, op)
		s.flipScanEdgeEvent(ep, eq, flipTriangle, ot, newP)
	}
}

// fillEdgeEvent closes the front above the constraint so the interior walk
// starts from a clean triangle fan.
func (s *sweeper) fillEdgeEvent(edge *Edge, node *Node) {
	if s.tcx.edgeEvent.right {
		s.fillRightAboveEdgeEvent(edge, node)
	} else {
		s.fillLeftAboveEdgeEvent(edge, node)
	}
}

func (s *sweeper) fillRightAboveEdgeEvent(edge *Edge, node *Node) {
	for node.next.point.X < edge.P.X {
		// Check if next node is below the edge
		if Orient2d(edge.Q, node.next.point, edge.P) == CCW {
			s.fillRightBelowEdgeEvent(edge, node)
		} else {
			node = node.next
		}
	}
}

func (s *sweeper) fillRightBelowEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	if node.point.X >= edge.P.X {
		return
	}
	if Orient2d(node.point, node.next.point, node.next.next.point) == CCW {
		// Concave
		s.fillRightConcaveEdgeEvent(edge, node)
	} else {
		// Convex
		s.fillRightConvexEdgeEvent(edge, node)
		// Retry this node: the convex fill changed the front under it
		s.fillRightBelowEdgeEvent(edge, node)
	}
}

func (s *sweeper) fillRightConcaveEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	s.fill(node.next)
	if node.next.point != edge.P {
		// Next above or below edge?
		if Orient2d(edge.Q, node.next.point, edge.P) == CCW {
			// Below
			if Orient2d(node.point, node.next.point, node.next.next.point) == CCW {
				// Next is concave
				s.fillRightConcaveEdgeEvent(edge, node)
			}
		}
	}
}

func (s *sweeper) fillRightConvexEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	// Next concave or convex?
	if Orient2d(node.next.point, node.next.next.point, node.next.next.next.point) == CCW {
		// Concave
		s.fillRightConcaveEdgeEvent(edge, node.next)
	} else {
		// Convex. Above or below the edge?
		if Orient2d(edge.Q, node.next.next.point, edge.P) == CCW {
			// Below
			s.fillRightConvexEdgeEvent(edge, node.next)
		}
	}
}

func (s *sweeper) fillLeftAboveEdgeEvent(edge *Edge, node *Node) {
	for node.prev.point.X > edge.P.X {
		// Check if prev node is below the edge
		if Orient2d(edge.Q, node.prev.point, edge.P) == CW {
			s.fillLeftBelowEdgeEvent(edge, node)
		} else {
			node = node.prev
		}
	}
}

func (s *sweeper) fillLeftBelowEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	if node.point.X <= edge.P.X {
		return
	}
	if Orient2d(node.point, node.prev.point, node.prev.prev.point) == CW {
		// Concave
		s.fillLeftConcaveEdgeEvent(edge, node)
	} else {
		// Convex
		s.fillLeftConvexEdgeEvent(edge, node)
		// Retry this node: the convex fill changed the front under it
		s.fillLeftBelowEdgeEvent(edge, node)
	}
}

func (s *sweeper) fillLeftConcaveEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	s.fill(node.prev)
	if node.prev.point != edge.P {
		// Prev above or below edge?
		if Orient2d(edge.Q, node.prev.point, edge.P) == CW {
			// Below
			if Orient2d(node.point, node.prev.point, node.prev.prev.point) == CW {
				// Prev is concave
				s.fillLeftConcaveEdgeEvent(edge, node)
			}
		}
	}
}

func (s *sweeper) fillLeftConvexEdgeEvent(edge *Edge, node *Node) {
	s.enter()
	defer s.leave()

	// Prev concave or convex?
	if Orient2d(node.prev.point, node.prev.prev.point, node.prev.prev.prev.point) == CW {
		// Concave
		s.fillLeftConcaveEdgeEvent(edge, node.prev)
	} else {
		// Convex. Above or below the edge?
		if Orient2d(edge.Q, node.prev.prev.point, edge.P) == CW {
			// Below
			s.fillLeftConvexEdgeEvent(edge, node.prev)
		}
	}
}
