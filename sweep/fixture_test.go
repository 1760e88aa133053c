package sweep

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs polygon rings. This is not a
// full (or even correct) svg parser. It parses the SVG and then reads every
// polygon element: the first becomes the outline, any further ones are
// holes. If anything goes wrong, it aborts the test binary.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) (outline []*Point, holes [][]*Point) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}

	rings := make([][]*Point, 0, len(polygons))
	for _, polygonEl := range polygons {
		rings = append(rings, parsePointString(name, polygonEl.Attributes["points"]))
	}
	return rings[0], rings[1:]
}

func parsePointString(name, pointString string) []*Point {
	pointStrings := strings.Split(pointString, " ")
	points := make([]*Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		if pointString == "" {
			continue
		}

		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q in fixture %q", pointString, name)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q in fixture %q: %v", coords[0], name, err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q in fixture %q: %v", coords[1], name, err)
		}
		points = append(points, &Point{X: x, Y: y})
	}
	return points
}
