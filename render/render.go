// Interactive HTML views of meshes, drawn with ECharts.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/osuushi/meshindex/advanced"
	"github.com/pkg/errors"
)

type MeshOptions struct {
	Title string
	// Chart size in pixels. Zero means 1000x800.
	Width, Height int

	// Input points, drawn as dots
	Points []advanced.Point
	// Mesh, drawn as outlines
	Triangles []advanced.Triangle
	// Query points. The triangle each one hits is highlighted.
	Probes []advanced.Point
	// Used to find probe hits. Without a tree, every triangle is tested.
	Tree *advanced.Node

	// Pre-rendered HTML for the log column. Empty leaves the column empty.
	LogHTML string
}

// Write a complete HTML page showing the mesh.
func Mesh(w io.Writer, options MeshOptions) error {
	title := options.Title
	if title == "" {
		title = "Mesh"
	}

	if _, err := fmt.Fprintf(w, pageHeader, html.EscapeString(title)); err != nil {
		return errors.Wrap(err, "write page header")
	}
	if err := MeshChart(options).Render(w); err != nil {
		return errors.Wrap(err, "render chart")
	}
	if _, err := fmt.Fprint(w, pageLogs, options.LogHTML, pageFooter); err != nil {
		return errors.Wrap(err, "write page footer")
	}
	return nil
}

// Build the chart alone, for callers that embed it in their own page.
func MeshChart(options MeshOptions) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, options)

	points := make([]opts.ScatterData, 0, len(options.Points))
	for _, p := range options.Points {
		points = append(points, opts.ScatterData{Value: []float64{p.X, p.Y}})
	}
	scatter.AddSeries("Points", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, e := range uniqueEdges(options.Triangles) {
		scatter.Overlap(segment("Edges", e[0], e[1], "cyan", 1))
	}

	probes := make([]opts.ScatterData, 0, len(options.Probes))
	for _, probe := range options.Probes {
		probes = append(probes, opts.ScatterData{Value: []float64{probe.X, probe.Y}})
		hit, ok := findHit(options, probe)
		if !ok {
			continue
		}
		name := "Hit " + strconv.Itoa(len(probes))
		vertices := hit.Vertices()
		for i := range vertices {
			scatter.Overlap(segment(name, vertices[i], vertices[(i+1)%3], "orange", 3))
		}
	}
	if len(probes) > 0 {
		scatter.AddSeries("Probes", probes).
			SetSeriesOptions(
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: "red",
				}),
			)
	}
	return scatter
}

func prepareScatter(scatter *charts.Scatter, options MeshOptions) {
	width, height := options.Width, options.Height
	if width <= 0 || height <= 0 {
		width, height = 1000, 800
	}
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: options.Title,
			Width:     strconv.Itoa(width) + "px",
			Height:    strconv.Itoa(height) + "px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                options.Title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// One straight line between two points, as its own overlapping chart.
func segment(name string, a, b advanced.Point, color string, width float32) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
	)
	line.AddSeries(name, []opts.LineData{
		{Value: []float64{a.X, a.Y}},
		{Value: []float64{b.X, b.Y}},
	}).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: color,
			Width: width,
		}),
	)
	return line
}

func findHit(options MeshOptions, p advanced.Point) (advanced.Triangle, bool) {
	if options.Tree != nil {
		return options.Tree.Sample(p)
	}
	for _, t := range options.Triangles {
		if t.ContainsPoint(p) {
			return t, true
		}
	}
	return advanced.Triangle{}, false
}

// Every edge of the mesh once, in first seen order. Shared edges would
// otherwise be drawn twice.
func uniqueEdges(triangles []advanced.Triangle) [][2]advanced.Point {
	seen := make(map[[2]advanced.Point]struct{})
	var edges [][2]advanced.Point
	for _, t := range triangles {
		vertices := t.Vertices()
		for i := range vertices {
			a, b := vertices[i], vertices[(i+1)%3]
			key := [2]advanced.Point{a, b}
			if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
				key = [2]advanced.Point{b, a}
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, [2]advanced.Point{a, b})
		}
	}
	return edges
}
