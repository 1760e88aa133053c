package sweep

// This contains no actual tests. It is just a helper for checking that a
// triangulation is valid.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Helper to check the universal invariants of a successful triangulation:
// 1. Every triangle is counterclockwise with positive area.
// 2. The sum of the triangle areas equals the outline area minus the holes.
// 3. Every input ring segment appears as a triangle edge, and triangles that
//    have it carry the constrained flag.
// 4. Neighbor links are symmetric and agree on the shared vertices.
// 5. Interior edges not marked constrained are locally Delaunay.
// 6. Every triangle centroid is inside the outline and outside every hole.
// 7. V - E + F = 2 on the planar graph, counting the outer face and one
//    face per hole.

func AssertValidTriangulation(t *testing.T, outline []*Point, holes [][]*Point, triangles []*Triangle) {
	t.Helper()
	require.NotEmpty(t, triangles)

	var triangleArea float64
	for _, tri := range triangles {
		area := signedArea(tri.Point(0), tri.Point(1), tri.Point(2))
		require.Greater(t, area, 0.0, "triangle %v is not CCW", tri)
		triangleArea += area
	}

	wantArea := math.Abs(ringArea(outline))
	for _, hole := range holes {
		wantArea -= math.Abs(ringArea(hole))
	}
	require.InDelta(t, wantArea, triangleArea, 1e-6*wantArea+1e-12,
		"triangle areas must sum to the outline area minus the holes")

	// Collect edges, counting how many triangles share each.
	type edgeKey struct{ a, b *Point }
	normalize := func(a, b *Point) edgeKey {
		if b.below(a) {
			return edgeKey{b, a}
		}
		return edgeKey{a, b}
	}
	edgeCount := make(map[edgeKey]int)
	vertices := make(map[*Point]struct{})
	for _, tri := range triangles {
		for i := 0; i < 3; i++ {
			vertices[tri.Point(i)] = struct{}{}
			edgeCount[normalize(tri.Point((i+1)%3), tri.Point((i+2)%3))]++
		}
	}

	// Constraint preservation
	rings := append([][]*Point{outline}, holes...)
	for _, ring := range rings {
		for i, p1 := range ring {
			p2 := ring[(i+1)%len(ring)]
			require.Contains(t, edgeCount, normalize(p1, p2),
				"input segment %v-%v is not an edge of any triangle", p1, p2)
			for _, tri := range triangles {
				if j := tri.EdgeIndex(p1, p2); j != -1 {
					require.True(t, tri.IsConstrained(j),
						"input segment %v-%v is not constrained in %v", p1, p2, tri)
				}
			}
		}
	}

	// Neighbor symmetry and the local Delaunay property
	interior := make(map[*Triangle]struct{}, len(triangles))
	for _, tri := range triangles {
		interior[tri] = struct{}{}
	}
	for _, tri := range triangles {
		for i := 0; i < 3; i++ {
			ot := tri.Neighbor(i)
			if ot == nil {
				continue
			}
			if _, ok := interior[ot]; !ok {
				continue
			}
			p := tri.Point(i)
			op := ot.OppositePoint(tri, p)
			require.NotNil(t, op, "neighbors %v and %v share no edge", tri, ot)
			oi := ot.Index(op)
			require.Same(t, tri, ot.Neighbor(oi), "neighbor link %v <-> %v is not symmetric", tri, ot)
			require.Equal(t, tri.IsConstrained(i), ot.IsConstrained(oi),
				"constrained flag differs across the edge shared by %v and %v", tri, ot)

			if !tri.IsConstrained(i) {
				requireLocallyDelaunay(t, tri, p, op)
			}
		}
	}

	// Euler characteristic. Each hole ring is a face of the planar graph,
	// as is the unbounded outer face.
	v := len(vertices)
	e := len(edgeCount)
	f := len(triangles) + 1 + len(holes)
	require.Equal(t, 2, v-e+f, "V - E + F = 2 must hold (V=%d E=%d F=%d)", v, e, f)

	// Containment: centroids inside the outline, outside every hole
	for _, tri := range triangles {
		c := centroid(tri)
		require.True(t, ringContains(outline, c), "centroid of %v is outside the outline", tri)
		for _, hole := range holes {
			require.False(t, ringContains(hole, c), "centroid of %v is inside a hole", tri)
		}
	}
}

// requireLocallyDelaunay checks that op is not strictly inside the
// circumscribed circle of tri, with slack proportional to the determinant's
// magnitude so exactly cocircular configurations (any square's diagonal)
// pass regardless of rounding.
func requireLocallyDelaunay(t *testing.T, tri *Triangle, p, op *Point) {
	t.Helper()
	a, b, c := p, tri.PointCCW(p), tri.PointCW(p)

	adx, ady := a.X-op.X, a.Y-op.Y
	bdx, bdy := b.X-op.X, b.Y-op.Y
	cdx, cdy := c.X-op.X, c.Y-op.Y
	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy
	det := alift*(bdx*cdy-cdx*bdy) + blift*(cdx*ady-adx*cdy) + clift*(adx*bdy-bdx*ady)

	scale := alift * blift * clift
	require.LessOrEqual(t, det, 1e-9*math.Sqrt(scale)+1e-12,
		"edge %v-%v of %v is not locally Delaunay (det=%g)", b, c, tri, det)
}

func signedArea(a, b, c *Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)) / 2
}

func ringArea(ring []*Point) float64 {
	var area float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

func centroid(tri *Triangle) *Point {
	return &Point{
		X: (tri.Point(0).X + tri.Point(1).X + tri.Point(2).X) / 3,
		Y: (tri.Point(0).Y + tri.Point(1).Y + tri.Point(2).Y) / 3,
	}
}

// Even-odd ray cast, with the ray going right from p.
func ringContains(ring []*Point, p *Point) bool {
	inside := false
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if x > p.X {
				inside = !inside
			}
		}
	}
	return inside
}
