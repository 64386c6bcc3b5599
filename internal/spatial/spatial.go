// Package spatial answers the per-frame geometric queries of the viewer:
// ground height under a point (ray cast against terrain triangles) and
// sphere push-out against a sparse grid of obstacle bounding boxes.
//
// All stored geometry is in model-local space. Queries take the current
// model matrix so the scene can be moved, rotated or scaled at runtime
// without rebuilding anything.
package spatial

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Defaults.
const (
	DefaultCellSize         = 250.0
	DefaultRelaxationPasses = 3
	DefaultRayStartHeight   = 100000.0
)

// Option errors.
var (
	ErrInvalidCellSize = errors.New("cell size must be positive and finite")
	ErrInvalidPasses   = errors.New("relaxation passes must be at least 1")
	ErrInvalidRayStart = errors.New("ray start height must be positive and finite")
)

// Options holds the tunables of the query layer.
type Options struct {
	// CellSize is the edge of a grid cell in model-local units. Larger cells
	// mean fewer boxes per query but looser obstacle shapes.
	CellSize float32

	// RelaxationPasses caps how many sweeps the resolver makes per call.
	RelaxationPasses int

	// RayStartHeight is the world-space Y the ground ray starts from. It must
	// be above the highest terrain.
	RayStartHeight float32
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		CellSize:         DefaultCellSize,
		RelaxationPasses: DefaultRelaxationPasses,
		RayStartHeight:   DefaultRayStartHeight,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if !(o.CellSize > 0) || math32.IsInf(o.CellSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCellSize, o.CellSize)
	}
	if o.RelaxationPasses < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPasses, o.RelaxationPasses)
	}
	if !(o.RayStartHeight > 0) || math32.IsInf(o.RayStartHeight, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRayStart, o.RayStartHeight)
	}
	return nil
}
