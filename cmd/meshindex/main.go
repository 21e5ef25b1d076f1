package main

import (
	"os"

	"github.com/osuushi/meshindex/internal/config"
	"github.com/osuushi/meshindex/internal/logger"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Command line front end. Point files hold one "x y" or "x y z" point per
// line; files ending in .svg contribute their circle centers and polygon
// vertices instead. A path of "-" reads stdin.
func main() {
	app := kingpin.New("meshindex", "Delaunay triangulation and point location for 2D point sets.")
	configPath := app.Flag("config", "YAML configuration file.").Short('c').String()
	logLevel := app.Flag("log-level", "Log level (debug, info, warn, error). Overrides the config file.").String()

	triangulateCmd := app.Command("triangulate", "Print the Delaunay triangles of a point file as index triples.")
	triangulateInput := triangulateCmd.Arg("input", "Point file.").Required().String()

	sampleCmd := app.Command("sample", "Print the triangle containing a point.")
	sampleInput := sampleCmd.Arg("input", "Point file.").Required().String()
	sampleX := sampleCmd.Arg("x", "Query x.").Required().Float64()
	sampleY := sampleCmd.Arg("y", "Query y.").Required().Float64()

	treeCmd := app.Command("tree", "Print statistics and an outline of the search tree.")
	treeInput := treeCmd.Arg("input", "Point file.").Required().String()

	drawCmd := app.Command("draw", "Draw the mesh and its search tree to a PNG.")
	drawInput := drawCmd.Arg("input", "Point file.").Required().String()
	drawOutput := drawCmd.Arg("output", "PNG file to write.").Required().String()
	drawScale := drawCmd.Flag("scale", "Pixels per unit. Zero fits the mesh to 800 pixels.").Default("0").Float64()
	drawProbes := drawCmd.Flag("probe", "Point to query, as x,y. Repeatable.").Strings()
	drawImgcat := drawCmd.Flag("imgcat", "Also show the image inline in the terminal.").Bool()

	renderCmd := app.Command("render", "Render the mesh as an interactive HTML page.")
	renderInput := renderCmd.Arg("input", "Point file.").Required().String()
	renderOutput := renderCmd.Arg("output", "HTML file to write.").Required().String()
	renderProbes := renderCmd.Flag("probe", "Point to query, as x,y. Repeatable.").Strings()

	exportCmd := app.Command("export", "Export the mesh as binary glTF, using z values as heights.")
	exportInput := exportCmd.Arg("input", "Point file.").Required().String()
	exportOutput := exportCmd.Arg("output", "GLB file to write.").Required().String()

	benchCmd := app.Command("bench", "Time triangulation, tree building and sampling on random points.")
	benchPoints := benchCmd.Flag("points", "Number of random points.").Default("10000").Int()
	benchSamples := benchCmd.Flag("samples", "Number of random queries.").Default("100000").Int()
	benchExtent := benchCmd.Flag("extent", "Side of the square the points are drawn from.").Default("1000").Float64()
	benchSeed := benchCmd.Flag("seed", "Random seed.").Default("1").Int64()

	serveCmd := app.Command("serve", "Serve the HTTP API.")
	serveAddr := serveCmd.Flag("addr", "Listen address. Overrides the config file.").String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		app.FatalIfError(err, "")
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := logger.ParseLevel(cfg.Log.Level)
	app.FatalIfError(err, "")

	cli := &CLI{
		Config: cfg,
		Log:    logger.New(os.Stderr, level),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	defer cli.Log.Sync()

	switch command {
	case triangulateCmd.FullCommand():
		err = cli.Triangulate(*triangulateInput)
	case sampleCmd.FullCommand():
		err = cli.Sample(*sampleInput, *sampleX, *sampleY)
	case treeCmd.FullCommand():
		err = cli.Tree(*treeInput)
	case drawCmd.FullCommand():
		err = cli.Draw(*drawInput, *drawOutput, *drawScale, *drawProbes, *drawImgcat)
	case renderCmd.FullCommand():
		err = cli.Render(*renderInput, *renderOutput, *renderProbes)
	case exportCmd.FullCommand():
		err = cli.Export(*exportInput, *exportOutput)
	case benchCmd.FullCommand():
		err = cli.Bench(*benchPoints, *benchSamples, *benchExtent, *benchSeed)
	case serveCmd.FullCommand():
		if *serveAddr != "" {
			cli.Config.Server.Addr = *serveAddr
		}
		err = cli.Serve()
	default:
		err = errors.Errorf("unknown command %q", command)
	}
	app.FatalIfError(err, "%s", command)
}
