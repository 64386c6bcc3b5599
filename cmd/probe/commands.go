package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/spatial"
	"github.com/Faultbox/townview/internal/world"
	"github.com/Faultbox/townview/pkg/formats"
	"github.com/Faultbox/townview/pkg/math"
)

// sceneFlags are the options every command shares.
type sceneFlags struct {
	cellSize  float64
	scale     float64
	yaw       float64
	translate string
}

func newFlagSet(name string, out io.Writer) (*flag.FlagSet, *sceneFlags) {
	defaults := config.Default()
	sf := &sceneFlags{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Float64Var(&sf.cellSize, "cell-size", float64(defaults.World.CellSize), "Grid cell size in model units")
	fs.Float64Var(&sf.scale, "scale", float64(defaults.Scene.Scale), "Uniform scene scale")
	fs.Float64Var(&sf.yaw, "yaw", float64(defaults.Scene.YawDeg), "Scene rotation about +Y in degrees")
	fs.StringVar(&sf.translate, "translate", "0,0,0", "Scene translation as x,y,z")
	return fs, sf
}

func (sf *sceneFlags) options() spatial.Options {
	opts := spatial.DefaultOptions()
	opts.CellSize = float32(sf.cellSize)
	return opts
}

func (sf *sceneFlags) model() (mgl32.Mat4, error) {
	t, err := parseVec3(sf.translate)
	if err != nil {
		return mgl32.Mat4{}, fmt.Errorf("-translate: %w", err)
	}
	if !(sf.scale > 0) {
		return mgl32.Mat4{}, fmt.Errorf("-scale must be positive, got %v", sf.scale)
	}
	return math.ModelMatrix(t, float32(sf.yaw), float32(sf.scale)), nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFloats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", a, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func cmdInfo(out io.Writer, args []string) error {
	fs, sf := newFlagSet("info", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: probe info <file.obj>")
	}

	obj, err := formats.LoadOBJ(fs.Arg(0))
	if err != nil {
		return err
	}
	w, err := world.FromOBJ(obj, sf.options())
	if err != nil {
		return err
	}

	faces := make(map[string]int)
	for _, f := range obj.Faces {
		faces[f.Material]++
	}

	s := w.Stats()
	fmt.Fprintf(out, "Mesh:      %s\n", fs.Arg(0))
	fmt.Fprintf(out, "Vertices:  %d\n", len(obj.Positions))
	fmt.Fprintf(out, "Faces:     %d (%d terrain, %d obstacle)\n", s.Faces, s.TerrainFaces, s.ObstacleFaces)
	fmt.Fprintf(out, "Terrain:   %d triangles\n", s.TerrainTriangles)
	fmt.Fprintf(out, "Obstacles: %d vertices in %d cells of %g units\n", s.ObstacleVertices, s.Cells, sf.cellSize)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Materials:")
	for _, m := range obj.Materials() {
		name := m
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(out, "  %-24s %-8s %d\n", name, spatial.Classify(m), faces[m])
	}
	return nil
}

func cmdHeight(out io.Writer, args []string) error {
	fs, sf := newFlagSet("height", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("usage: probe height <file.obj> <x> <z>")
	}

	xz, err := parseFloats(fs.Args()[1:3])
	if err != nil {
		return err
	}
	model, err := sf.model()
	if err != nil {
		return err
	}
	w, err := world.Load(fs.Arg(0), sf.options())
	if err != nil {
		return err
	}

	y, ok := w.GroundHeight(model, xz[0], xz[1])
	if !ok {
		fmt.Fprintf(out, "no ground under (%g, %g)\n", xz[0], xz[1])
		return nil
	}
	fmt.Fprintf(out, "ground at (%g, %g): y=%.4f\n", xz[0], xz[1], y)
	return nil
}

func cmdResolve(out io.Writer, args []string) error {
	fs, sf := newFlagSet("resolve", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 4 {
		return fmt.Errorf("usage: probe resolve <file.obj> <x> <y> <z> [radius]")
	}

	nums, err := parseFloats(fs.Args()[1:])
	if err != nil {
		return err
	}
	radius := config.Default().Player.Radius
	if len(nums) > 3 {
		radius = nums[3]
	}
	if radius < 0 {
		return fmt.Errorf("radius must be non-negative, got %v", radius)
	}
	model, err := sf.model()
	if err != nil {
		return err
	}
	w, err := world.Load(fs.Arg(0), sf.options())
	if err != nil {
		return err
	}

	start := mgl32.Vec3{nums[0], nums[1], nums[2]}
	pos := start
	r := w.ResolveSphereDetailed(model, &pos, radius)

	fmt.Fprintf(out, "start:   (%.4f, %.4f, %.4f)\n", start[0], start[1], start[2])
	fmt.Fprintf(out, "end:     (%.4f, %.4f, %.4f)\n", pos[0], pos[1], pos[2])
	fmt.Fprintf(out, "passes:  %d\n", r.Passes)
	fmt.Fprintf(out, "pushes:  %d\n", r.Pushes)
	fmt.Fprintf(out, "settled: %t\n", r.Settled)
	return nil
}
