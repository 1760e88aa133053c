package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/logrusorgru/aurora"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/brandon-kohn/poly2tri"
)

// Demo of constrained Delaunay triangulation. Input on stdin should be
// newline separated points in the form "x y", with each polygon separated by
// an extra newline. The first polygon is the outline; any further polygons
// are holes. Winding order does not matter. None of the geometric
// requirements (simple, non-intersecting, holes inside the outline) are
// validated up front; bad input surfaces as a categorical error.

var (
	svgPath  = kingpin.Flag("svg", "Write the triangulation to an SVG file.").String()
	scale    = kingpin.Flag("scale", "SVG pixels per input unit.").Default("100").Float64()
	showMap  = kingpin.Flag("map", "Output the full mesh, including the artificial shell.").Bool()
	showTris = kingpin.Flag("stats", "Print every triangle.").Bool()
)

const (
	triangleStyle    = "fill:rgb(230,240,255);stroke:rgb(120,120,120);stroke-width:1"
	constraintStyle  = "stroke:rgb(200,40,40);stroke-width:2"
	svgMarginDivisor = 10.0
)

func main() {
	kingpin.Parse()

	polygons := readPolygons(os.Stdin)
	if len(polygons) == 0 {
		fmt.Fprintln(os.Stderr, aurora.Red("no polygons on stdin"))
		os.Exit(1)
	}

	cdt := poly2tri.NewCDT(polygons[0])
	for _, hole := range polygons[1:] {
		cdt.AddHole(hole)
	}
	if err := cdt.Triangulate(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("triangulation failed: %v", err)))
		os.Exit(1)
	}

	triangles := cdt.Triangles()
	if *showMap {
		triangles = cdt.Map()
	}

	fmt.Printf("Read %s, produced %s\n",
		aurora.Cyan(fmt.Sprintf("%d polygons", len(polygons))),
		aurora.Green(fmt.Sprintf("%d triangles", len(triangles))))

	if *showTris {
		for _, t := range triangles {
			fmt.Println(t)
		}
	}

	if *svgPath != "" {
		if err := writeSVG(*svgPath, triangles, *scale); err != nil {
			fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("writing %s: %v", *svgPath, err)))
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", aurora.Cyan(*svgPath))
	}
}

func readPolygons(in *os.File) [][]*poly2tri.Point {
	var polygons [][]*poly2tri.Point
	scanner := bufio.NewScanner(in)
	var points []*poly2tri.Point
	for scanner.Scan() {
		line := scanner.Text()

		// An empty line ends the current polygon
		if strings.TrimSpace(line) == "" {
			if len(points) > 0 {
				polygons = append(polygons, points)
				points = nil
			}
			continue
		}

		point := parsePoint(line)
		points = append(points, point)
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, points)
	}
	return polygons
}

func parsePoint(line string) *poly2tri.Point {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("bad point line: %q", line)))
		os.Exit(1)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err == nil {
		var y float64
		y, err = strconv.ParseFloat(parts[1], 64)
		if err == nil {
			return &poly2tri.Point{X: x, Y: y}
		}
	}
	fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("bad point line %q: %v", line, err)))
	os.Exit(1)
	return nil
}

func writeSVG(path string, triangles []*poly2tri.Triangle, scale float64) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			p := t.Point(i)
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	margin := scale * (maxX - minX) / svgMarginDivisor
	width := int(scale*(maxX-minX) + 2*margin)
	height := int(scale*(maxY-minY) + 2*margin)

	// SVG y grows downward; flip so the input's origin is bottom left.
	toScreen := func(p *poly2tri.Point) (int, int) {
		x := scale*(p.X-minX) + margin
		y := scale*(maxY-p.Y) + margin
		return int(x), int(y)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(width, height)
	for _, t := range triangles {
		xs := make([]int, 3)
		ys := make([]int, 3)
		for i := 0; i < 3; i++ {
			xs[i], ys[i] = toScreen(t.Point(i))
		}
		canvas.Polygon(xs, ys, triangleStyle)
	}
	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			if !t.IsConstrained(i) {
				continue
			}
			x1, y1 := toScreen(t.Point((i + 1) % 3))
			x2, y2 := toScreen(t.Point((i + 2) % 3))
			canvas.Line(x1, y1, x2, y2, constraintStyle)
		}
	}
	canvas.End()
	return nil
}
