package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ format errors.
var (
	ErrInvalidVertex   = errors.New("invalid OBJ vertex")
	ErrInvalidFace     = errors.New("invalid OBJ face")
	ErrIndexOutOfRange = errors.New("OBJ index out of range")
)

// maxOBJLine bounds a single statement. Large exports put long faces on one line.
const maxOBJLine = 1 << 20

// OBJFace is one polygon of a Wavefront OBJ mesh.
type OBJFace struct {
	Material string // Active usemtl name, empty before the first usemtl
	Indices  []int  // Zero-based indices into OBJ.Positions
	Line     int    // Source line, for diagnostics
}

// OBJ represents a parsed Wavefront OBJ mesh. Only geometry needed for
// spatial queries is kept: positions, faces and their materials.
type OBJ struct {
	Positions []mgl32.Vec3
	Faces     []OBJFace

	// MaterialLibs lists every mtllib reference in file order. The libraries
	// themselves are not read.
	MaterialLibs []string

	TexCoords int // Count of vt statements
	Normals   int // Count of vn statements
}

// FacePositions returns the vertex positions of face i.
func (o *OBJ) FacePositions(i int) []mgl32.Vec3 {
	face := &o.Faces[i]
	out := make([]mgl32.Vec3, len(face.Indices))
	for j, idx := range face.Indices {
		out[j] = o.Positions[idx]
	}
	return out
}

// Materials returns the distinct face material names in order of first use.
func (o *OBJ) Materials() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range o.Faces {
		if !seen[f.Material] {
			seen[f.Material] = true
			names = append(names, f.Material)
		}
	}
	return names
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ: %w", err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses a Wavefront OBJ mesh.
//
// Supported statements: v, vt, vn (counted), f with v, v/vt, v//vn and
// v/vt/vn references (negative indices are relative to the vertices read so
// far), usemtl and mtllib. Everything else is ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	material := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxOBJLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidVertex, lineNo, err)
			}
			obj.Positions = append(obj.Positions, p)

		case "vt":
			obj.TexCoords++

		case "vn":
			obj.Normals++

		case "f":
			indices, err := parseOBJFace(fields[1:], len(obj.Positions))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Faces = append(obj.Faces, OBJFace{
				Material: material,
				Indices:  indices,
				Line:     lineNo,
			})

		case "usemtl":
			material = strings.Join(fields[1:], " ")

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	// Positive indices may point forward; check them once every vertex is known.
	for _, f := range obj.Faces {
		for _, idx := range f.Indices {
			if idx >= len(obj.Positions) {
				return nil, fmt.Errorf("%w: line %d: index %d, %d vertices",
					ErrIndexOutOfRange, f.Line, idx+1, len(obj.Positions))
			}
		}
	}

	return obj, nil
}

func parseOBJVertex(args []string) (mgl32.Vec3, error) {
	// x y z [w], w and vertex colors are ignored.
	if len(args) < 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(args))
	}
	var p mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return mgl32.Vec3{}, err
		}
		p[i] = float32(f)
	}
	return p, nil
}

// parseOBJFace resolves the position part of each face reference to a
// zero-based index. seen is the number of vertices defined so far.
func parseOBJFace(args []string, seen int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: %d vertices, need at least 3", ErrInvalidFace, len(args))
	}

	indices := make([]int, len(args))
	for i, ref := range args {
		parts := strings.Split(ref, "/")
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w: reference %q", ErrInvalidFace, ref)
		}
		// vt and vn parts must be well formed even though they are unused.
		for _, p := range parts[1:] {
			if p == "" {
				continue
			}
			if _, err := strconv.Atoi(p); err != nil {
				return nil, fmt.Errorf("%w: reference %q", ErrInvalidFace, ref)
			}
		}

		n, err := strconv.Atoi(parts[0])
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: reference %q", ErrInvalidFace, ref)
		}

		if n < 0 {
			n = seen + n
			if n < 0 {
				return nil, fmt.Errorf("%w: relative index %s, %d vertices", ErrIndexOutOfRange, parts[0], seen)
			}
		} else {
			n--
		}
		indices[i] = n
	}
	return indices, nil
}
