package spatial

import "strings"

// FaceKind is the load-time classification of a mesh face.
type FaceKind uint8

// Face kinds.
const (
	KindObstacle FaceKind = iota // Contributes to the collision grid
	KindTerrain                  // Contributes to ground height sampling
)

// String returns a human-readable kind name.
func (k FaceKind) String() string {
	switch k {
	case KindTerrain:
		return "terrain"
	default:
		return "obstacle"
	}
}

// terrainMarker is matched case-insensitively against material names.
const terrainMarker = "terrain"

// Classify decides whether a face with the given material is walkable
// terrain. An empty name means the face has no material; it and every
// unmatched name are obstacles.
func Classify(material string) FaceKind {
	if material == "" {
		return KindObstacle
	}
	if strings.Contains(strings.ToLower(material), terrainMarker) {
		return KindTerrain
	}
	return KindObstacle
}
