package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/osuushi/meshindex/advanced"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type benchResult struct {
	stage    string
	count    int
	duration time.Duration
}

func (r benchResult) String() string {
	per := time.Duration(0)
	if r.count > 0 {
		per = r.duration / time.Duration(r.count)
	}
	return fmt.Sprintf("%-12s %8d in %-14s %s each", heading(r.stage), r.count, r.duration, per)
}

// Bench times each stage on uniformly random points in a square of side
// extent. Queries are drawn from a slightly larger square so some of them miss.
//
// Epsilon is absolute, so the extent must keep typical circumcircles well
// above it; a unit square with thousands of points does not.
func (c *CLI) Bench(pointCount, sampleCount int, extent float64, seed int64) error {
	if pointCount < 3 {
		return errors.Errorf("need at least 3 points, got %d", pointCount)
	}
	if sampleCount < 0 {
		return errors.Errorf("sample count must not be negative, got %d", sampleCount)
	}
	if extent <= 0 {
		return errors.Errorf("extent must be positive, got %g", extent)
	}
	rng := rand.New(rand.NewSource(seed))
	points := make([]advanced.Point, pointCount)
	for i := range points {
		points[i] = advanced.Point{X: rng.Float64() * extent, Y: rng.Float64() * extent}
	}
	probes := make([]advanced.Point, sampleCount)
	for i := range probes {
		probes[i] = advanced.Point{
			X: (rng.Float64()*1.2 - 0.1) * extent,
			Y: (rng.Float64()*1.2 - 0.1) * extent,
		}
	}

	indexer := c.indexer(c.Log)
	results := []benchResult{}

	start := time.Now()
	triples := indexer.Triangulate(points)
	results = append(results, benchResult{"triangulate", pointCount, time.Since(start)})

	start = time.Now()
	tree, err := indexer.NewTreeFromTriples(points, triples)
	if err != nil {
		return errors.Wrap(err, "build tree")
	}
	results = append(results, benchResult{"build", len(triples), time.Since(start)})

	hits := 0
	start = time.Now()
	for _, p := range probes {
		if _, ok := tree.Sample(p); ok {
			hits++
		}
	}
	results = append(results, benchResult{"sample", sampleCount, time.Since(start)})

	for _, r := range results {
		c.Log.Info("bench", zap.String("stage", r.stage), zap.Int("count", r.count), zap.Duration("duration", r.duration))
		fmt.Fprintln(c.Stdout, r)
	}
	stats := tree.Stats()
	fmt.Fprintf(c.Stdout, "%s %d nodes, depth %d, %d of %d queries hit\n",
		heading("tree"), stats.Nodes, stats.Depth, hits, sampleCount)
	return nil
}
