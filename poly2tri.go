// A constrained Delaunay triangulation package for Go.
//
// This package converts a simple polygon, which may be non-convex, may
// contain holes, and may carry interior Steiner points, into a set of
// non-overlapping triangles. Every input edge appears as a triangle edge,
// and the mesh is Delaunay wherever the constraints permit.
package poly2tri

import "github.com/brandon-kohn/poly2tri/sweep"

type Point = sweep.Point
type Triangle = sweep.Triangle

// Categorical error kinds, re-exported for errors.Is at the API boundary.
var (
	ErrNullTriangle       = sweep.ErrNullTriangle
	ErrNullNode           = sweep.ErrNullNode
	ErrCollinearPoints    = sweep.ErrCollinearPoints
	ErrDegenerateTriangle = sweep.ErrDegenerateTriangle
	ErrRecursionDepth     = sweep.ErrRecursionDepth
	ErrInvalidInput       = sweep.ErrInvalidInput
)

// CDT builds one triangulation. Register the outline, any holes and Steiner
// points, call Triangulate once, then read Triangles. A CDT whose
// Triangulate failed is in an indeterminate state and must not be reused.
type CDT struct {
	tcx *sweep.Context

	outline []*Point
	holes   [][]*Point
	steiner []*Point
}

// NewCDT starts a triangulation of the given closed outline. Consecutive
// points become constraint edges, with an implicit closing edge. Winding
// order does not matter; points must be distinct by coordinate.
func NewCDT(outline []*Point) *CDT {
	return &CDT{tcx: sweep.NewContext(), outline: outline}
}

// AddHole registers a closed hole ring. The hole must lie strictly inside
// the outline and must not intersect it or other holes.
func (c *CDT) AddHole(points []*Point) {
	c.holes = append(c.holes, points)
}

// AddPoint registers an interior Steiner point with no constraint edges.
func (c *CDT) AddPoint(p *Point) {
	c.steiner = append(c.steiner, p)
}

// Triangulate runs the sweep. The returned error wraps one of the Err
// sentinels; on error the CDT must be discarded.
func (c *CDT) Triangulate() (err error) {
	defer func() {
		recoveredErr := sweep.HandlePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()

	// All registration happens here rather than in the Add methods, so every
	// input problem surfaces as an error from this one call.
	c.tcx.AddOutline(c.outline)
	for _, hole := range c.holes {
		c.tcx.AddHole(hole)
	}
	for _, p := range c.steiner {
		c.tcx.AddPoint(p)
	}
	sweep.Triangulate(c.tcx)
	return nil
}

// Triangles returns the interior triangles after a successful Triangulate.
func (c *CDT) Triangles() []*Triangle {
	return c.tcx.Triangles()
}

// Map returns every triangle the sweep allocated, including the artificial
// shell outside the outline. For debugging.
func (c *CDT) Map() []*Triangle {
	return c.tcx.Mesh()
}

// Triangulate is the one-call form: outline first, then any holes.
func Triangulate(outline []*Point, holes ...[]*Point) ([]*Triangle, error) {
	cdt := NewCDT(outline)
	for _, hole := range holes {
		cdt.AddHole(hole)
	}
	if err := cdt.Triangulate(); err != nil {
		return nil, err
	}
	return cdt.Triangles(), nil
}
