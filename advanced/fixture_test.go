package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file turns the svg fixtures into point sets. It is not a real SVG
// reader: every <circle> contributes its center, then every <polygon>
// contributes its vertices. If anything goes wrong, it bails.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	var points []Point
	for _, circleEl := range rootEl.FindAll("circle") {
		points = append(points, Point{
			X: parseFixtureFloat(circleEl.Attributes["cx"]),
			Y: parseFixtureFloat(circleEl.Attributes["cy"]),
		})
	}

	for _, polygonEl := range rootEl.FindAll("polygon") {
		for _, pointString := range strings.Fields(polygonEl.Attributes["points"]) {
			pointStrings := strings.Split(pointString, ",")
			if len(pointStrings) != 2 {
				log.Fatalf("Invalid point string %q", pointString)
			}
			points = append(points, Point{
				X: parseFixtureFloat(pointStrings[0]),
				Y: parseFixtureFloat(pointStrings[1]),
			})
		}
	}

	if len(points) == 0 {
		log.Fatalf("No points found in fixture %q", name)
	}
	return points
}

func parseFixtureFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("Invalid number %q: %v", s, err)
	}
	return f
}
