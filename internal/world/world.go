// Package world turns a mesh file into the spatial query structure the
// viewer walks around in.
package world

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/logger"
	"github.com/Faultbox/townview/internal/spatial"
	"github.com/Faultbox/townview/pkg/formats"
)

// Load reads an OBJ mesh from path and builds a world from it.
func Load(path string, opts spatial.Options) (*spatial.World, error) {
	start := time.Now()

	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}

	w, err := FromOBJ(obj, opts)
	if err != nil {
		return nil, fmt.Errorf("loading world %s: %w", path, err)
	}

	s := w.Stats()
	logger.Named("world").Info("world loaded",
		zap.String("path", path),
		zap.Int("vertices", len(obj.Positions)),
		zap.Int("faces", s.Faces),
		zap.Int("terrainFaces", s.TerrainFaces),
		zap.Int("terrainTriangles", s.TerrainTriangles),
		zap.Int("obstacleVertices", s.ObstacleVertices),
		zap.Int("cells", s.Cells),
		zap.Float32("cellSize", opts.CellSize),
		zap.Duration("took", time.Since(start)))

	if s.TerrainTriangles == 0 {
		logger.Named("world").Warn("mesh has no terrain faces, ground lock will have no effect",
			zap.String("path", path))
	}

	return w, nil
}

// FromOBJ builds a world from an already parsed mesh.
func FromOBJ(obj *formats.OBJ, opts spatial.Options) (*spatial.World, error) {
	b, err := spatial.NewBuilder(opts)
	if err != nil {
		return nil, err
	}

	for i := range obj.Faces {
		b.AddFace(obj.Faces[i].Material, obj.FacePositions(i))
	}

	return b.Build(), nil
}
