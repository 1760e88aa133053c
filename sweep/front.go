package sweep

// The advancing front is the x-monotone chain of edges forming the upper
// boundary of the partially built mesh. It is a doubly linked list of nodes
// bracketed by two sentinels carrying the bootstrap triangle, plus a search
// hint that makes repeated locates amortised sub-linear: point events arrive
// in sweep order, so consecutive locates land near each other.

// Node is one vertex of the front. triangle is the mesh triangle whose
// top-most vertex is point; it is what an edge event entering at this node
// descends into.
type Node struct {
	point    *Point
	triangle *Triangle

	next, prev *Node

	// Cached point.X, the list's sort key.
	value float64
}

func newNode(p *Point, t *Triangle) *Node {
	return &Node{point: p, triangle: t, value: p.X}
}

func (n *Node) Point() *Point       { return n.point }
func (n *Node) Triangle() *Triangle { return n.triangle }

type advancingFront struct {
	head, tail *Node

	// Search hint: the node the last locate ended on.
	search *Node
}

func newAdvancingFront(head, tail *Node) *advancingFront {
	return &advancingFront{head: head, tail: tail, search: head}
}

// locateNode finds the node n with n.value <= x < n.next.value, walking from
// the search hint. Returns nil when x is outside the front's span.
func (f *advancingFront) locateNode(x float64) *Node {
	node := f.search
	if x < node.value {
		for node = node.prev; node != nil; node = node.prev {
			if x >= node.value {
				f.search = node
				return node
			}
		}
	} else {
		for node = node.next; node != nil; node = node.next {
			if x < node.value {
				f.search = node.prev
				return node.prev
			}
		}
	}
	return nil
}

// locatePoint finds the front node holding exactly the given point. Used when
// remapping triangles to nodes after flips; the point is expected to be on
// the front or adjacent to the search hint's neighbors.
func (f *advancingFront) locatePoint(p *Point) *Node {
	px := p.X
	node := f.search
	nx := node.point.X

	switch {
	case px == nx:
		if p != node.point {
			// Equal x: the point is either at this node or one of its
			// immediate neighbors.
			if node.prev != nil && p == node.prev.point {
				node = node.prev
			} else if node.next != nil && p == node.next.point {
				node = node.next
			} else {
				return nil
			}
		}
	case px < nx:
		for node = node.prev; node != nil; node = node.prev {
			if p == node.point {
				break
			}
		}
	default:
		for node = node.next; node != nil; node = node.next {
			if p == node.point {
				break
			}
		}
	}

	if node != nil {
		f.search = node
	}
	return node
}
