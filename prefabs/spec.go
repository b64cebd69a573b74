package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// GameFile is the tuning file loaded at start and on hot reload.
const GameFile = "game.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Window    WindowSpec    `yaml:"window"`
	Physics   PhysicsSpec   `yaml:"physics"`
	Collision CollisionSpec `yaml:"collision"`
	Launcher  LauncherSpec  `yaml:"launcher"`
	Levels    []LevelSpec   `yaml:"levels"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PhysicsSpec struct {
	Gravity        float64 `yaml:"gravity"`
	TimeStep       float64 `yaml:"time_step"`
	Iterations     int     `yaml:"iterations"`
	GroundY        float64 `yaml:"ground_y"`
	GroundFriction float64 `yaml:"ground_friction"`
}

// CollisionSpec holds the contact impulse thresholds: contacts below
// IgnoreBelow are dropped, contacts above DestroyAbove remove destructibles.
type CollisionSpec struct {
	IgnoreBelow  float64 `yaml:"ignore_below"`
	DestroyAbove float64 `yaml:"destroy_above"`
}

type LauncherSpec struct {
	AnchorX   float64   `yaml:"anchor_x"`
	AnchorY   float64   `yaml:"anchor_y"`
	FlyHeight float64   `yaml:"fly_height"`
	Birds     []string  `yaml:"birds"`
	Default   string    `yaml:"default"`
	Slingshot string    `yaml:"slingshot"`
	LineWidth float32   `yaml:"line_width"`
	LineColor YAMLColor `yaml:"line_color"`
}

// LevelSpec names the layout script of one level. Params are passed to the
// script unchanged.
type LevelSpec struct {
	Name       string         `yaml:"name"`
	Script     string         `yaml:"script"`
	Background string         `yaml:"background"`
	Params     map[string]any `yaml:"params"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", GameFile, err)
	}
	return &spec, nil
}

func (g *GameSpec) applyDefaults() {
	if g.Window.Width <= 0 {
		g.Window.Width = 1700
	}
	if g.Window.Height <= 0 {
		g.Window.Height = 700
	}
	if g.Window.Title == "" {
		g.Window.Title = "Angry birds"
	}
	if g.Physics.Gravity == 0 {
		g.Physics.Gravity = -900
	}
	if g.Physics.TimeStep <= 0 {
		g.Physics.TimeStep = 1.0 / 60.0
	}
	if g.Physics.Iterations <= 0 {
		g.Physics.Iterations = 10
	}
	if g.Physics.GroundFriction == 0 {
		g.Physics.GroundFriction = 10
	}
	if g.Collision.IgnoreBelow == 0 {
		g.Collision.IgnoreBelow = 100
	}
	if g.Collision.DestroyAbove == 0 {
		g.Collision.DestroyAbove = 1200
	}
	if g.Launcher.FlyHeight == 0 {
		g.Launcher.FlyHeight = 100
	}
	if g.Launcher.LineWidth <= 0 {
		g.Launcher.LineWidth = 3
	}
	if g.Launcher.LineColor.Color == nil {
		g.Launcher.LineColor.Color = colornames.Black
	}
	if g.Launcher.Default == "" && len(g.Launcher.Birds) > 0 {
		g.Launcher.Default = g.Launcher.Birds[0]
	}
}

func (g *GameSpec) Validate() error {
	var errs []error
	if g.Collision.IgnoreBelow > g.Collision.DestroyAbove {
		errs = append(errs, fmt.Errorf("collision: ignore_below %.0f exceeds destroy_above %.0f", g.Collision.IgnoreBelow, g.Collision.DestroyAbove))
	}
	if len(g.Launcher.Birds) == 0 {
		errs = append(errs, errors.New("launcher: no birds configured"))
	}
	found := false
	for _, b := range g.Launcher.Birds {
		if b == g.Launcher.Default {
			found = true
		}
	}
	if !found {
		errs = append(errs, fmt.Errorf("launcher: default bird %q is not in birds", g.Launcher.Default))
	}
	if len(g.Levels) == 0 {
		errs = append(errs, errors.New("no levels configured"))
	}
	for i, lvl := range g.Levels {
		if strings.TrimSpace(lvl.Script) == "" {
			errs = append(errs, fmt.Errorf("levels[%d]: missing script", i))
		}
	}
	return errors.Join(errs...)
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
