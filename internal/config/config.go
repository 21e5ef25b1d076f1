package config

import (
	"os"
	"time"

	"github.com/osuushi/meshindex/advanced"
	"github.com/osuushi/meshindex/internal/logger"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML file. Anything the file leaves out keeps its value
// from Default.
type Config struct {
	Triangulation Triangulation `yaml:"triangulation"`
	Log           Log           `yaml:"log"`
	Server        Server        `yaml:"server"`
	Render        Render        `yaml:"render"`
}

type Triangulation struct {
	Epsilon            float64 `yaml:"epsilon"`
	SuperTriangleScale float64 `yaml:"super_triangle_scale"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Size of rendered charts, in pixels.
type Render struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func Default() Config {
	return Config{
		Triangulation: Triangulation{
			Epsilon:            advanced.Epsilon,
			SuperTriangleScale: advanced.SuperTriangleScale,
		},
		Log: Log{Level: "info"},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Render: Render{Width: 1000, Height: 800},
	}
}

// Load a YAML file over the defaults and validate the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, "invalid config YAML")
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Triangulation.Epsilon <= 0 {
		return errors.Errorf("triangulation.epsilon must be positive, got %g", c.Triangulation.Epsilon)
	}
	if c.Triangulation.SuperTriangleScale < advanced.MinSuperTriangleScale {
		return errors.Errorf("triangulation.super_triangle_scale must be at least %g, got %g",
			advanced.MinSuperTriangleScale, c.Triangulation.SuperTriangleScale)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

// Triangulator configured from the file.
func (c Config) Triangulator() *advanced.Triangulator {
	return &advanced.Triangulator{
		Epsilon:            c.Triangulation.Epsilon,
		SuperTriangleScale: c.Triangulation.SuperTriangleScale,
	}
}
