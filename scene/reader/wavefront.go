package reader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/achilleasa/go-pathtrace/types"
)

// objMaterial mirrors the subset of a Wavefront MTL entry this adapter
// cares about: the channels that feed scene.Material.
type objMaterial struct {
	name   string
	ka     types.Vec3
	kd     types.Vec3
	ks     types.Vec3
	ns     float32
	haveNs bool
}

// objFace is a single triangle as returned by the tokenizer, with indices
// into this file's own positions/normals/texcoords lists (0-based). A slot
// is -1 when the OBJ line did not specify it.
type objFace struct {
	v, n, t [3]int
	mat     int
}

// objResult is the tokenizer's output for a single OBJ file: this plays the
// role the spec calls "the external parser's result" (positions, normals,
// texcoords, per-shape index triples, per-face material ids, and material
// attributes).
type objResult struct {
	positions []types.Vec3
	normals   []types.Vec3
	texcoords []types.Vec2
	faces     []objFace
	materials []objMaterial
}

// parseOBJ hand-rolls a triangulating Wavefront OBJ/MTL tokenizer: this
// repository's stand-in for the spec's black-box external parser, since no
// third-party Go OBJ library appears anywhere in the example corpus.
func parseOBJ(path string) (*objResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: %s", err.Error())
	}
	defer f.Close()

	r := &objResult{}
	matIndex := map[string]int{}
	curMat := -1

	dir := filepath.Dir(path)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "#" {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, objErr(path, lineNum, err)
			}
			r.positions = append(r.positions, v)
		case "vn":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, objErr(path, lineNum, err)
			}
			r.normals = append(r.normals, v)
		case "vt":
			v, err := parseVec2(fields)
			if err != nil {
				return nil, objErr(path, lineNum, err)
			}
			r.texcoords = append(r.texcoords, v)
		case "l", "p":
			return nil, fmt.Errorf("%s:%d: unsupported primitive %q", path, lineNum, fields[0])
		case "f":
			faces, err := parseFace(fields, len(r.positions), len(r.normals), len(r.texcoords), curMat)
			if err != nil {
				return nil, objErr(path, lineNum, err)
			}
			r.faces = append(r.faces, faces...)
		case "usemtl":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%s:%d: usemtl expects 1 argument", path, lineNum)
			}
			idx, ok := matIndex[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%s:%d: undefined material %q", path, lineNum, fields[1])
			}
			curMat = idx
		case "mtllib":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%s:%d: mtllib expects 1 argument", path, lineNum)
			}
			mtlPath := fields[1]
			if !filepath.IsAbs(mtlPath) {
				mtlPath = filepath.Join(dir, mtlPath)
			}
			if err := parseMTL(mtlPath, r, matIndex); err != nil {
				return nil, err
			}
		default:
			// g, o, s and any other directive carry no geometry we
			// need at this granularity; ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reader: %s", err.Error())
	}

	return r, nil
}

func objErr(path string, line int, err error) error {
	return fmt.Errorf("%s:%d: %s", path, line, err.Error())
}

// parseFace parses an "f" line and triangulates it. Only 3- and 4-vertex
// faces are supported; quads are split into two triangles.
func parseFace(fields []string, nv, nn, nt int, curMat int) ([]objFace, error) {
	args := fields[1:]
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("unsupported face with %d vertices; only triangles and quads are supported", len(args))
	}

	var vs, ns, ts [4]int
	for i, arg := range args {
		parts := strings.Split(arg, "/")
		if parts[0] == "" {
			return nil, fmt.Errorf("face vertex %d has no position index", i)
		}

		idx, err := selectFaceIndex(parts[0], nv)
		if err != nil {
			return nil, fmt.Errorf("face vertex %d: %s", i, err.Error())
		}
		vs[i] = idx
		ns[i] = -1
		ts[i] = -1

		if len(parts) >= 2 && parts[1] != "" {
			idx, err := selectFaceIndex(parts[1], nt)
			if err != nil {
				return nil, fmt.Errorf("face vertex %d texcoord: %s", i, err.Error())
			}
			ts[i] = idx
		}
		if len(parts) >= 3 && parts[2] != "" {
			idx, err := selectFaceIndex(parts[2], nn)
			if err != nil {
				return nil, fmt.Errorf("face vertex %d normal: %s", i, err.Error())
			}
			ns[i] = idx
		}
	}

	tri := func(a, b, c int) objFace {
		return objFace{
			v:   [3]int{vs[a], vs[b], vs[c]},
			n:   [3]int{ns[a], ns[b], ns[c]},
			t:   [3]int{ts[a], ts[b], ts[c]},
			mat: curMat,
		}
	}

	if len(args) == 3 {
		return []objFace{tri(0, 1, 2)}, nil
	}
	return []objFace{tri(0, 1, 2), tri(0, 2, 3)}, nil
}

// selectFaceIndex resolves a (possibly negative) 1-based OBJ index into a
// 0-based offset, the way the teacher's selectFaceCoordIndex does.
func selectFaceIndex(token string, listLen int) (int, error) {
	index, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = listLen + int(index)
	} else {
		offset = int(index) - 1
	}
	if offset < 0 || offset >= listLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// parseMTL parses a material library and appends its materials to r,
// recording their names in matIndex so later usemtl lines can resolve them.
func parseMTL(path string, r *objResult, matIndex map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reader: %s", err.Error())
	}
	defer f.Close()

	var cur *objMaterial
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "#" {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) != 2 {
				return fmt.Errorf("%s:%d: newmtl expects 1 argument", path, lineNum)
			}
			if _, exists := matIndex[fields[1]]; exists {
				return fmt.Errorf("%s:%d: material %q already defined", path, lineNum, fields[1])
			}
			r.materials = append(r.materials, objMaterial{name: fields[1]})
			cur = &r.materials[len(r.materials)-1]
			matIndex[fields[1]] = len(r.materials) - 1
		case "Ka", "Kd", "Ks":
			if cur == nil {
				return fmt.Errorf("%s:%d: %s without newmtl", path, lineNum, fields[0])
			}
			v, err := parseVec3(fields)
			if err != nil {
				return objErr(path, lineNum, err)
			}
			switch fields[0] {
			case "Ka":
				cur.ka = v
			case "Kd":
				cur.kd = v
			case "Ks":
				cur.ks = v
			}
		case "Ns":
			if cur == nil {
				return fmt.Errorf("%s:%d: Ns without newmtl", path, lineNum)
			}
			n, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return objErr(path, lineNum, err)
			}
			cur.ns, cur.haveNs = float32(n), true
		default:
			// illum, map_*, d, Tr, etc. are not part of this
			// material model and are ignored.
		}
	}
	return scanner.Err()
}

func parseVec3(fields []string) (types.Vec3, error) {
	if len(fields) < 4 {
		return types.Vec3{}, fmt.Errorf("%q expects 3 arguments", fields[0])
	}
	var v types.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(fields []string) (types.Vec2, error) {
	if len(fields) < 3 {
		return types.Vec2{}, fmt.Errorf("%q expects 2 arguments", fields[0])
	}
	var v types.Vec2
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return types.Vec2{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
