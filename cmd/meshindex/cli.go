package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/meshindex"
	"github.com/osuushi/meshindex/advanced"
	"github.com/osuushi/meshindex/export"
	"github.com/osuushi/meshindex/internal/config"
	"github.com/osuushi/meshindex/internal/logger"
	"github.com/osuushi/meshindex/pointio"
	"github.com/osuushi/meshindex/render"
	"github.com/osuushi/meshindex/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI runs the commands. Output goes to Stdout, logs to Log.
type CLI struct {
	Config config.Config
	Log    *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

func (c *CLI) indexer(log *zap.Logger) *meshindex.Indexer {
	triangulator := c.Config.Triangulator()
	triangulator.Logger = log
	return &meshindex.Indexer{
		Triangulator: *triangulator,
		TreeBuilder:  advanced.TreeBuilder{Logger: log},
	}
}

// Read a point file, picking the format by extension.
func (c *CLI) readPoints(path string) (pointio.Points, error) {
	var in io.Reader = c.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return pointio.Points{}, errors.Wrap(err, "open points")
		}
		defer file.Close()
		in = file
	}

	var points pointio.Points
	var err error
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		points, err = pointio.ReadSVG(in)
	} else {
		points, err = pointio.ReadText(in)
	}
	if err != nil {
		return points, errors.Wrapf(err, "read %s", path)
	}
	c.Log.Debug("read points", zap.String("path", path), zap.Int("count", len(points.XY)))
	return points, nil
}

func (c *CLI) buildTree(path string, log *zap.Logger) (pointio.Points, *meshindex.Tree, error) {
	points, err := c.readPoints(path)
	if err != nil {
		return points, nil, err
	}
	tree, err := c.indexer(log).NewTree(points.XY)
	if err != nil {
		return points, nil, errors.Wrapf(err, "index %s", path)
	}
	return points, tree, nil
}

func (c *CLI) Triangulate(path string) error {
	points, err := c.readPoints(path)
	if err != nil {
		return err
	}
	return pointio.WriteTriples(c.Stdout, c.indexer(c.Log).Triangulate(points.XY))
}

func (c *CLI) Sample(path string, x, y float64) error {
	_, tree, err := c.buildTree(path, c.Log)
	if err != nil {
		return err
	}
	p := advanced.Point{X: x, Y: y}
	triangle, ok := tree.Sample(p)
	if !ok {
		fmt.Fprintf(c.Stdout, "%s is outside the mesh\n", p)
		return nil
	}
	fmt.Fprintln(c.Stdout, triangle)
	return nil
}

func (c *CLI) Tree(path string) error {
	_, tree, err := c.buildTree(path, c.Log)
	if err != nil {
		return err
	}
	stats := tree.Stats()
	fmt.Fprintf(c.Stdout, "%d triangles, %d nodes, depth %d\n", stats.Leaves, stats.Nodes, stats.Depth)
	return tree.Root().Dump(c.Stdout)
}

func (c *CLI) Draw(path, output string, scale float64, probeArgs []string, inline bool) error {
	probes, err := parseProbes(probeArgs)
	if err != nil {
		return err
	}
	_, tree, err := c.buildTree(path, c.Log)
	if err != nil {
		return err
	}
	image := advanced.DrawMesh(tree.Triangles(), advanced.DrawOptions{
		Scale:  scale,
		Tree:   tree.Root(),
		Probes: probes,
	})
	if err := image.SavePNG(output); err != nil {
		return errors.Wrap(err, "save PNG")
	}
	c.Log.Info("wrote image", zap.String("path", output))
	if inline {
		if err := imgcat.CatFile(output, c.Stdout); err != nil {
			return errors.Wrap(err, "show image")
		}
	}
	return nil
}

func (c *CLI) Render(path, output string, probeArgs []string) error {
	probes, err := parseProbes(probeArgs)
	if err != nil {
		return err
	}

	// The page shows the log of the build it draws
	buffered := logger.NewBuffered(zapcore.DebugLevel)
	log := zap.New(zapcore.NewTee(c.Log.Core(), buffered.Core()))
	points, tree, err := c.buildTree(path, log)
	if err != nil {
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "create page")
	}
	defer file.Close()
	err = render.Mesh(file, render.MeshOptions{
		Title:     filepath.Base(path),
		Width:     c.Config.Render.Width,
		Height:    c.Config.Render.Height,
		Points:    points.XY,
		Triangles: tree.Triangles(),
		Probes:    probes,
		Tree:      tree.Root(),
		LogHTML:   buffered.HTML(),
	})
	if err != nil {
		return err
	}
	c.Log.Info("wrote page", zap.String("path", output))
	return file.Close()
}

func (c *CLI) Export(path, output string) error {
	points, err := c.readPoints(path)
	if err != nil {
		return err
	}
	triples := c.indexer(c.Log).Triangulate(points.XY)
	if err := export.GLB(output, points.XY, points.Heights(), triples); err != nil {
		return errors.Wrapf(err, "export %s", path)
	}
	c.Log.Info("wrote model", zap.String("path", output), zap.Int("triangles", len(triples)))
	return nil
}

// Serve until interrupted.
func (c *CLI) Serve() error {
	s := server.New(c.Config, c.Log)
	s.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Stop(ctx)
}

// Parse probes written as "x,y".
func parseProbes(args []string) ([]advanced.Point, error) {
	probes := make([]advanced.Point, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("probe %q is not of the form x,y", arg)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Errorf("probe %q has an invalid x", arg)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Errorf("probe %q has an invalid y", arg)
		}
		probes = append(probes, advanced.Point{X: x, Y: y})
	}
	return probes, nil
}

func heading(s string) string {
	return aurora.Cyan(s).String()
}
