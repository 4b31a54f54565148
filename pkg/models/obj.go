package models

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"rasterkit/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file into a Mesh. It supports v/vn/vt
// records and f records with the common index forms (v, v/vt, v//vn,
// v/vt/vn), including OBJ's 1-based and negative (relative-to-end)
// indexing. Faces with more than three vertices are fan-triangulated
// around the first vertex. Materials (.mtl) are not loaded; faces get
// Material: -1.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var positions []math3d.Vec3
	var normals []math3d.Vec3
	var uvs []math3d.Vec2

	type objVertex struct {
		posIdx, uvIdx, normIdx int // -1 when absent
	}
	// dedup identical (pos,uv,norm) triples so shared corners share a MeshVertex
	seen := make(map[objVertex]int)
	mesh := NewMesh(baseName(path))

	vertexFor := func(ov objVertex) (int, error) {
		if idx, ok := seen[ov]; ok {
			return idx, nil
		}
		if ov.posIdx < 0 || ov.posIdx >= len(positions) {
			return 0, fmt.Errorf("face references out-of-range vertex index")
		}
		v := MeshVertex{Position: positions[ov.posIdx]}
		if ov.normIdx >= 0 {
			if ov.normIdx >= len(normals) {
				return 0, fmt.Errorf("face references out-of-range normal index")
			}
			v.Normal = normals[ov.normIdx]
		}
		if ov.uvIdx >= 0 {
			if ov.uvIdx >= len(uvs) {
				return 0, fmt.Errorf("face references out-of-range uv index")
			}
			v.UV = uvs[ov.uvIdx]
		}
		idx := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, v)
		seen[ov] = idx
		return idx, nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, uv)
		case "f":
			idxs := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ov, err := parseFaceToken(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				vi, err := vertexFor(ov)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idxs = append(idxs, vi)
			}
			if len(idxs) < 3 {
				return nil, fmt.Errorf("line %d: face has fewer than 3 vertices", lineNo)
			}
			for i := 1; i+1 < len(idxs); i++ {
				mesh.Faces = append(mesh.Faces, Face{
					V:        [3]int{idxs[0], idxs[i], idxs[i+1]},
					Material: -1,
				})
			}
		}
		// Anything else (o, g, s, usemtl, mtllib, ...) is silently skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

func parseVec2(fields []string) (math3d.Vec2, error) {
	if len(fields) < 2 {
		return math3d.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math3d.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return math3d.Vec2{}, err
	}
	// OBJ's vt V=0 is the bottom of the texture, matching this engine's
	// UV convention already, so no flip is needed here (unlike GLTF).
	return math3d.V2(u, v), nil
}

// parseFaceToken parses a single f record token in v, v/vt, v//vn or
// v/vt/vn form, resolving 1-based and negative (relative-to-end)
// indices against the current counts.
func parseFaceToken(tok string, nPos, nUV, nNorm int) (struct{ posIdx, uvIdx, normIdx int }, error) {
	parts := strings.Split(tok, "/")
	result := struct{ posIdx, uvIdx, normIdx int }{posIdx: -1, uvIdx: -1, normIdx: -1}

	resolve := func(s string, count int) (int, error) {
		if s == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("bad index %q: %w", s, err)
		}
		switch {
		case n > 0:
			return n - 1, nil
		case n < 0:
			if count+n < 0 {
				return -1, fmt.Errorf("index %d is out of range", n)
			}
			return count + n, nil
		default:
			return -1, fmt.Errorf("index 0 is invalid in OBJ")
		}
	}

	pi, err := resolve(parts[0], nPos)
	if err != nil {
		return result, err
	}
	result.posIdx = pi

	if len(parts) >= 2 {
		ui, err := resolve(parts[1], nUV)
		if err != nil {
			return result, err
		}
		result.uvIdx = ui
	}
	if len(parts) >= 3 {
		ni, err := resolve(parts[2], nNorm)
		if err != nil {
			return result, err
		}
		result.normIdx = ni
	}
	return result, nil
}

func baseName(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	name := path[i+1:]
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return name
}
