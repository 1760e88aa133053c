package sweep

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helpers

func ring(coords ...float64) []*Point {
	points := make([]*Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, &Point{X: coords[i], Y: coords[i+1]})
	}
	return points
}

func runSweep(tcx *Context) (err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()
	Triangulate(tcx)
	return nil
}

func triangulate(t *testing.T, outline []*Point, holes ...[]*Point) []*Triangle {
	t.Helper()
	tcx := NewContext()
	tcx.AddOutline(outline)
	for _, hole := range holes {
		tcx.AddHole(hole)
	}
	require.NoError(t, runSweep(tcx))
	return tcx.Triangles()
}

func TestTriangulateSingleTriangle(t *testing.T) {
	outline := ring(0, 0, 1, 0, 0, 1)
	triangles := triangulate(t, outline)

	require.Len(t, triangles, 1)
	for _, p := range outline {
		assert.True(t, triangles[0].Contains(p))
	}
	AssertValidTriangulation(t, outline, nil, triangles)
}

func TestTriangulateUnitSquare(t *testing.T) {
	outline := ring(0, 0, 1, 0, 1, 1, 0, 1)
	triangles := triangulate(t, outline)

	require.Len(t, triangles, 2)
	AssertValidTriangulation(t, outline, nil, triangles)

	// The two triangles share one diagonal; either diagonal is fine.
	shared := 0
	for i := 0; i < 3; i++ {
		if triangles[0].Neighbor(i) == triangles[1] {
			shared++
			assert.False(t, triangles[0].IsConstrained(i))
		}
	}
	assert.Equal(t, 1, shared)
}

func TestTriangulateSquareWithCenteredHole(t *testing.T) {
	outline := ring(0, 0, 4, 0, 4, 4, 0, 4)
	hole := ring(1, 1, 3, 1, 3, 3, 1, 3)
	triangles := triangulate(t, outline, hole)

	require.Len(t, triangles, 8)
	AssertValidTriangulation(t, outline, [][]*Point{hole}, triangles)
}

func TestTriangulateSquareWithSteinerPoint(t *testing.T) {
	outline := ring(0, 0, 1, 0, 1, 1, 0, 1)
	steiner := &Point{X: 0.5, Y: 0.5}

	tcx := NewContext()
	tcx.AddOutline(outline)
	tcx.AddPoint(steiner)
	require.NoError(t, runSweep(tcx))
	triangles := tcx.Triangles()

	require.Len(t, triangles, 4)
	AssertValidTriangulation(t, outline, nil, triangles)
	for _, tri := range triangles {
		assert.True(t, tri.Contains(steiner), "%v is not incident on the Steiner point", tri)
	}
}

func TestTriangulateConcaveL(t *testing.T) {
	outline := ring(0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2)
	triangles := triangulate(t, outline)

	require.Len(t, triangles, 4)
	AssertValidTriangulation(t, outline, nil, triangles)
}

func TestTriangulateNearCollinear(t *testing.T) {
	// A square degenerated until one corner sits on the edge of the
	// collinearity band.
	// Either outcome is acceptable; what matters is that it terminates and
	// does not corrupt the mesh.
	outline := ring(0, 0, 1, 0, 1, 1e-12, 0, 1)

	tcx := NewContext()
	tcx.AddOutline(outline)
	err := runSweep(tcx)
	if err != nil {
		assert.True(t, errors.Is(err, ErrCollinearPoints), "unexpected error kind: %v", err)
		return
	}
	assert.Len(t, tcx.Triangles(), 2)
}

func TestTriangulateDeterministic(t *testing.T) {
	// Triangulating the same convex polygon twice yields the same
	// connectivity.
	segments := func() map[[4]float64]struct{} {
		outline := ring(0, 0, 2, -1, 4, 0, 5, 2, 2, 4, -1, 2)
		set := make(map[[4]float64]struct{})
		for _, tri := range triangulate(t, outline) {
			for i := 0; i < 3; i++ {
				a := tri.Point((i + 1) % 3)
				b := tri.Point((i + 2) % 3)
				if b.below(a) {
					a, b = b, a
				}
				set[[4]float64{a.X, a.Y, b.X, b.Y}] = struct{}{}
			}
		}
		return set
	}

	assert.Equal(t, segments(), segments())
}

func TestTriangulateDodecagonWithSteiner(t *testing.T) {
	outline := ring(
		4, 0, 3.46, 2, 2, 3.46, 0, 4, -2, 3.46, -3.46, 2,
		-4, 0, -3.46, -2, -2, -3.46, 0, -4, 2, -3.46, 3.46, -2,
	)
	tcx := NewContext()
	tcx.AddOutline(outline)
	steiners := []*Point{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: -1.2, Y: -0.7}}
	for _, p := range steiners {
		tcx.AddPoint(p)
	}
	require.NoError(t, runSweep(tcx))

	AssertValidTriangulation(t, outline, nil, tcx.Triangles())
	for _, p := range steiners {
		found := false
		for _, tri := range tcx.Triangles() {
			if tri.Contains(p) {
				found = true
				break
			}
		}
		assert.True(t, found, "Steiner point %v missing from the output", p)
	}
}

func TestMeshIncludesShell(t *testing.T) {
	tcx := NewContext()
	tcx.AddOutline(ring(0, 0, 1, 0, 1, 1, 0, 1))
	require.NoError(t, runSweep(tcx))

	// The full mesh carries the triangles against the artificial points;
	// the interior extraction filters them away.
	assert.Greater(t, len(tcx.Mesh()), len(tcx.Triangles()))
	for _, tri := range tcx.Triangles() {
		assert.True(t, tri.IsInterior())
	}
}

func TestTriangulateErrors(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		tcx := NewContext()
		err := func() (err error) {
			defer func() {
				err = HandlePanicRecover(recover())
			}()
			tcx.AddOutline(ring(0, 0, 1, 0))
			return nil
		}()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("coincident edge endpoints", func(t *testing.T) {
		tcx := NewContext()
		err := func() (err error) {
			defer func() {
				err = HandlePanicRecover(recover())
			}()
			tcx.AddOutline(ring(0, 0, 1, 0, 1, 0, 0, 1))
			return nil
		}()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("context reuse", func(t *testing.T) {
		tcx := NewContext()
		tcx.AddOutline(ring(0, 0, 1, 0, 1, 1, 0, 1))
		require.NoError(t, runSweep(tcx))

		err := runSweep(tcx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestTriangulateFixtures(t *testing.T) {
	fixtureNames := []string{"star", "comb", "ring"}
	reflections := []struct {
		name   string
		fx, fy float64
	}{
		{"original", 1, 1},
		{"x reflected", -1, 1},
		{"y reflected", 1, -1},
		{"xy reflected", -1, -1},
	}

	for _, fixtureName := range fixtureNames {
		for _, refl := range reflections {
			t.Run(fixtureName+" ("+refl.name+")", func(t *testing.T) {
				outline, holes := LoadFixture(fixtureName)
				for _, r := range append([][]*Point{outline}, holes...) {
					for _, p := range r {
						p.X *= refl.fx
						p.Y *= refl.fy
					}
				}
				triangles := triangulate(t, outline, holes...)
				AssertValidTriangulation(t, outline, holes, triangles)
			})
		}
	}
}
