package spatial

import "github.com/go-gl/mathgl/mgl32"

// Stats summarizes what a World was built from.
type Stats struct {
	Faces            int
	TerrainFaces     int
	ObstacleFaces    int
	TerrainTriangles int
	ObstacleVertices int
	Cells            int
}

// Builder ingests mesh faces and produces an immutable World.
// A Builder must not be used after Build.
type Builder struct {
	opts    Options
	terrain TerrainStore
	grid    *Grid
	stats   Stats
	built   bool
}

// NewBuilder creates a builder with validated options.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(opts.CellSize)
	if err != nil {
		return nil, err
	}
	return &Builder{opts: opts, grid: grid}, nil
}

// AddFace classifies a face by its material name and routes its model-local
// vertex positions to either the terrain store or the collision grid.
// It returns the classification.
func (b *Builder) AddFace(material string, positions []mgl32.Vec3) FaceKind {
	if b.built {
		panic("spatial: AddFace called after Build")
	}

	kind := Classify(material)
	b.stats.Faces++

	switch kind {
	case KindTerrain:
		b.stats.TerrainFaces++
		b.terrain.AddPolygon(positions)
	default:
		b.stats.ObstacleFaces++
		for _, p := range positions {
			b.grid.AddVertex(p)
		}
		b.stats.ObstacleVertices += len(positions)
	}
	return kind
}

// Build finalizes the ingested geometry into a read-only World.
func (b *Builder) Build() *World {
	b.built = true
	b.stats.TerrainTriangles = b.terrain.Len()
	b.stats.Cells = b.grid.Len()

	return &World{
		opts:    b.opts,
		terrain: b.terrain,
		grid:    b.grid,
		stats:   b.stats,
	}
}
