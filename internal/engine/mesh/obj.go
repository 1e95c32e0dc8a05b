package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/vortex/pkg/math"
)

// OBJIndex is one face corner: zero-based position, texture coordinate and
// normal indices. Missing components are -1.
type OBJIndex struct {
	Position, TexCoord, Normal int
}

// OBJModel is the raw content of a Wavefront OBJ file, triangulated.
type OBJModel struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Normals   []math.Vec3
	Indices   []OBJIndex

	HasTexCoords bool
	HasNormals   bool
}

// ParseOBJ reads v, vt, vn and f records. Faces with more than three
// corners are fan-triangulated around the first corner. Indices may be
// negative, counting back from the last element read so far. Other
// records are ignored.
func ParseOBJ(r io.Reader) (*OBJModel, error) {
	m := &OBJModel{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			m.Positions = append(m.Positions, v)
		case "vt":
			var v math.Vec2
			v, err = parseVec2(fields[1:])
			m.TexCoords = append(m.TexCoords, v)
		case "vn":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			m.Normals = append(m.Normals, v)
		case "f":
			err = m.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return m, nil
}

func (m *OBJModel) parseFace(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face needs 3 corners, got %d", len(corners))
	}
	idx := make([]OBJIndex, len(corners))
	for i, c := range corners {
		var err error
		if idx[i], err = m.parseCorner(c); err != nil {
			return err
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		m.Indices = append(m.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// parseCorner parses v, v/t, v//n or v/t/n.
func (m *OBJModel) parseCorner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, fmt.Errorf("bad face corner %q", s)
	}
	out := OBJIndex{Position: -1, TexCoord: -1, Normal: -1}

	var err error
	if out.Position, err = resolve(parts[0], len(m.Positions)); err != nil {
		return out, fmt.Errorf("corner %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if out.TexCoord, err = resolve(parts[1], len(m.TexCoords)); err != nil {
			return out, fmt.Errorf("corner %q: %w", s, err)
		}
		m.HasTexCoords = true
	}
	if len(parts) > 2 && parts[2] != "" {
		if out.Normal, err = resolve(parts[2], len(m.Normals)); err != nil {
			return out, fmt.Errorf("corner %q: %w", s, err)
		}
		m.HasNormals = true
	}
	return out, nil
}

// resolve turns a one-based or negative OBJ index into a zero-based one.
func resolve(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return -1, fmt.Errorf("index 0 is invalid")
	}
	if n < 0 || n >= count {
		return -1, fmt.Errorf("index %s out of range (%d elements)", s, count)
	}
	return n, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

// Indexed is a de-duplicated vertex list with triangle indices.
type Indexed struct {
	Positions []math.Vec3
	TexCoords []math.Vec2
	Normals   []math.Vec3
	Indices   []uint32
}

// ToIndexed merges identical face corners into shared vertices. When the
// file has no normals, smooth normals are generated over corners that
// share a position, so texture seams do not split the shading.
func (m *OBJModel) ToIndexed() *Indexed {
	out := &Indexed{}
	seen := make(map[OBJIndex]uint32)

	// Per-position model for normal generation.
	byPos := &Indexed{}
	posIndex := make(map[int]uint32)
	var vertexPos []uint32

	for _, c := range m.Indices {
		pos := m.Positions[c.Position]
		tex := math.Vec2{}
		if c.TexCoord >= 0 {
			tex = m.TexCoords[c.TexCoord]
		}
		norm := math.Vec3{Y: 1}
		if c.Normal >= 0 {
			norm = m.Normals[c.Normal]
		}

		i, known := seen[c]
		if !known {
			i = uint32(len(out.Positions))
			seen[c] = i
			out.Positions = append(out.Positions, pos)
			out.TexCoords = append(out.TexCoords, tex)
			out.Normals = append(out.Normals, norm)
		}
		out.Indices = append(out.Indices, i)

		if !m.HasNormals {
			p, ok := posIndex[c.Position]
			if !ok {
				p = uint32(len(byPos.Positions))
				posIndex[c.Position] = p
				byPos.Positions = append(byPos.Positions, pos)
				byPos.Normals = append(byPos.Normals, math.Vec3{})
			}
			byPos.Indices = append(byPos.Indices, p)
			if !known {
				vertexPos = append(vertexPos, p)
			}
		}
	}

	if !m.HasNormals {
		byPos.CalcNormals()
		for i := range out.Normals {
			out.Normals[i] = byPos.Normals[vertexPos[i]]
		}
	}
	return out
}

// CalcNormals replaces Normals with the normalized sum of the unit face
// normals around each vertex. Degenerate triangles contribute nothing and
// a vertex with no usable triangle keeps a zero normal.
func (ix *Indexed) CalcNormals() {
	ix.Normals = make([]math.Vec3, len(ix.Positions))
	for i := 0; i+2 < len(ix.Indices); i += 3 {
		i0, i1, i2 := ix.Indices[i], ix.Indices[i+1], ix.Indices[i+2]
		e1 := ix.Positions[i1].Sub(ix.Positions[i0])
		e2 := ix.Positions[i2].Sub(ix.Positions[i0])
		n, err := e1.Cross(e2).TryNormalize()
		if err != nil {
			continue
		}
		ix.Normals[i0] = ix.Normals[i0].Add(n)
		ix.Normals[i1] = ix.Normals[i1].Add(n)
		ix.Normals[i2] = ix.Normals[i2].Add(n)
	}
	for i, n := range ix.Normals {
		if u, err := n.TryNormalize(); err == nil {
			ix.Normals[i] = u
		}
	}
}

// Vertices packs the indexed data into Vertex values.
func (ix *Indexed) Vertices() []Vertex {
	out := make([]Vertex, len(ix.Positions))
	for i := range out {
		out[i] = Vertex{Position: ix.Positions[i], TexCoord: ix.TexCoords[i], Normal: ix.Normals[i]}
	}
	return out
}
