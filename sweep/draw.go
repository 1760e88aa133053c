package sweep

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/brandon-kohn/poly2tri/dbg"
)

// This is for debugging purposes only

const dbgDrawPadding = 20

// dbgDraw renders a set of triangles to a PNG and cats it to the terminal.
// Constrained edges are stroked in a different color so constraint insertion
// problems are visible at a glance.
func dbgDraw(triangles []*Triangle, scale float64) {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			p := t.Point(i)
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	for _, t := range triangles {
		c.MoveTo(t.Point(0).X, t.Point(0).Y)
		c.LineTo(t.Point(1).X, t.Point(1).Y)
		c.LineTo(t.Point(2).X, t.Point(2).Y)
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.SetLineWidth(1)
	c.Stroke()

	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			if !t.IsConstrained(i) {
				continue
			}
			a := t.Point((i + 1) % 3)
			b := t.Point((i + 2) % 3)
			c.MoveTo(a.X, a.Y)
			c.LineTo(b.X, b.Y)
		}
	}
	c.SetRGB(1, 0.2, 0.2)
	c.SetLineWidth(2)
	c.Stroke()

	// Labels are drawn in screen space so the y flip doesn't mirror them
	c.Identity()
	c.SetRGB(1, 1, 1)
	for _, t := range triangles {
		cx := (t.Point(0).X+t.Point(1).X+t.Point(2).X)/3 - minX
		cy := (t.Point(0).Y+t.Point(1).Y+t.Point(2).Y)/3 - minY
		sx := cx*scale + dbgDrawPadding
		sy := float64(height) - (cy*scale + dbgDrawPadding)
		c.DrawStringAnchored(dbg.Name(t), sx, sy, 0.5, 0.5)
	}

	c.SavePNG("/tmp/triangulation.png")
	imgcat.CatFile("/tmp/triangulation.png", os.Stdout)
}
