// Package reader assembles a scene.Scene from a scene-file path: it parses
// the declarative scene-file grammar, loads and merges the listed OBJ/MTL
// geometry, repairs faces with missing attributes, and hands the result to
// the compiler package for BV construction.
package reader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/achilleasa/go-pathtrace/log"
	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

var logger = log.New("reader")

// sectionKind identifies which scene-file section is currently open.
type sectionKind int

const (
	noSection sectionKind = iota
	sceneSection
	cameraSection
	lightSection
	objSection
)

// config is the parsed, pre-geometry result of reading a scene file.
type config struct {
	resX, resY   uint32
	haveRes      bool
	camera       scene.Camera
	haveCamera   bool
	lights       []scene.Light
	objPaths     []string
}

// parseSceneFile reads path and returns the parsed configuration. Relative
// obj paths are resolved against path's directory.
func parseSceneFile(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: %s", err.Error())
	}
	defer f.Close()

	dir := filepath.Dir(path)
	cfg := &config{}

	section := noSection
	var lineNum int

	// per-section scratch state, reset whenever a new section opens
	var eye, u, v, w, axis types.Vec3
	var haveEye, haveBasis bool
	var basisProp string
	var focalLen, angleDeg, projW, projH float32
	var haveFocalLen, haveProjSize bool
	var lightPos, lightRGB types.Vec3
	var haveLightPos, haveLightRGB bool

	emitErr := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s:%d: %s", path, lineNum, fmt.Sprintf(format, args...))
	}

	closeSection := func() error {
		switch section {
		case sceneSection:
			if !cfg.haveRes {
				return emitErr("missing res prop")
			}
		case cameraSection:
			if !haveEye || !haveBasis || !haveFocalLen || !haveProjSize {
				missing := []string{}
				if !haveEye {
					missing = append(missing, "eye")
				}
				if !haveBasis {
					missing = append(missing, "uvw/axis_angle")
				}
				if !haveFocalLen {
					missing = append(missing, "focal_len")
				}
				if !haveProjSize {
					missing = append(missing, "proj_size")
				}
				return emitErr("missing %s prop(s)", strings.Join(missing, ", "))
			}
			if basisProp == "axis_angle" {
				cfg.camera = scene.NewCameraAxisAngle(eye, axis, angleDeg, focalLen, projW, projH)
			} else {
				cfg.camera = scene.NewCameraUVW(eye, u, v, w, focalLen, projW, projH)
			}
			cfg.haveCamera = true
		case lightSection:
			if !haveLightPos || !haveLightRGB {
				missing := []string{}
				if !haveLightPos {
					missing = append(missing, "pos")
				}
				if !haveLightRGB {
					missing = append(missing, "rgb")
				}
				return emitErr("missing %s prop(s)", strings.Join(missing, ", "))
			}
			cfg.lights = append(cfg.lights, scene.NewLight(lightPos, lightRGB))
		case objSection:
			// An obj section with no paths is tolerated; "no obj
			// files listed" is only fatal across the whole file.
		}
		return nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)

		if len(fields) == 0 {
			if section != noSection {
				if err := closeSection(); err != nil {
					return nil, err
				}
			}
			section = noSection
			haveEye, haveBasis, haveFocalLen, haveProjSize = false, false, false, false
			haveLightPos, haveLightRGB = false, false
			axis, angleDeg, basisProp = types.Vec3{}, 0, ""
			continue
		}

		if section == noSection {
			switch fields[0] {
			case "scene":
				section = sceneSection
			case "camera":
				section = cameraSection
			case "light":
				section = lightSection
			case "obj":
				section = objSection
			default:
				return nil, emitErr("unrecognized section %q", fields[0])
			}
			if len(fields) > 1 {
				return nil, emitErr("unexpected arguments after section header %q", fields[0])
			}
			continue
		}

		if section == objSection {
			if len(fields) != 1 {
				return nil, emitErr("unrecognized prop %q", line)
			}
			p := fields[0]
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			cfg.objPaths = append(cfg.objPaths, p)
			continue
		}

		nums, err := parseFloats(fields[1:])

		switch section {
		case sceneSection:
			switch fields[0] {
			case "res":
				ints, err := parseInts(fields[1:])
				if err != nil || len(ints) != 2 || ints[0] <= 0 || ints[1] <= 0 {
					return nil, emitErr("malformed res value")
				}
				cfg.resX, cfg.resY = uint32(ints[0]), uint32(ints[1])
				cfg.haveRes = true
			default:
				return nil, emitErr("unrecognized prop %q", fields[0])
			}
		case cameraSection:
			switch fields[0] {
			case "eye":
				if err != nil || len(nums) != 3 {
					return nil, emitErr("malformed eye value")
				}
				eye = types.XYZ(nums[0], nums[1], nums[2])
				haveEye = true
			case "uvw":
				if basisProp == "axis_angle" {
					return nil, emitErr("camera basis given twice (uvw after axis_angle)")
				}
				if err != nil || len(nums) != 9 {
					return nil, emitErr("malformed uvw value")
				}
				u = types.XYZ(nums[0], nums[1], nums[2])
				v = types.XYZ(nums[3], nums[4], nums[5])
				w = types.XYZ(nums[6], nums[7], nums[8])
				haveBasis, basisProp = true, "uvw"
			case "axis_angle":
				if basisProp == "uvw" {
					return nil, emitErr("camera basis given twice (axis_angle after uvw)")
				}
				if err != nil || len(nums) != 4 {
					return nil, emitErr("malformed axis_angle value")
				}
				axis = types.XYZ(nums[0], nums[1], nums[2])
				angleDeg = nums[3]
				haveBasis, basisProp = true, "axis_angle"
			case "focal_len":
				if err != nil || len(nums) != 1 || nums[0] <= 0 {
					return nil, emitErr("malformed focal_len value")
				}
				focalLen = nums[0]
				haveFocalLen = true
			case "proj_size":
				if err != nil || len(nums) != 2 || nums[0] <= 0 || nums[1] <= 0 {
					return nil, emitErr("malformed proj_size value")
				}
				projW, projH = nums[0], nums[1]
				haveProjSize = true
			default:
				return nil, emitErr("unrecognized prop %q", fields[0])
			}
		case lightSection:
			switch fields[0] {
			case "pos":
				if err != nil || len(nums) != 3 {
					return nil, emitErr("malformed pos value")
				}
				lightPos = types.XYZ(nums[0], nums[1], nums[2])
				haveLightPos = true
			case "rgb":
				if err != nil || len(nums) != 3 {
					return nil, emitErr("malformed rgb value")
				}
				lightRGB = types.XYZ(nums[0], nums[1], nums[2])
				haveLightRGB = true
			default:
				return nil, emitErr("unrecognized prop %q", fields[0])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reader: %s", err.Error())
	}

	if section != noSection {
		if err := closeSection(); err != nil {
			return nil, err
		}
	}

	if len(cfg.objPaths) == 0 {
		return nil, fmt.Errorf("%s: no obj files listed", path)
	}
	if !cfg.haveCamera {
		return nil, fmt.Errorf("%s: no camera section", path)
	}
	if len(cfg.lights) == 0 {
		return nil, fmt.Errorf("%s: no lights", path)
	}
	if !cfg.haveRes {
		return nil, fmt.Errorf("%s: no resolution", path)
	}

	return cfg, nil
}

func parseFloats(tokens []string) ([]float32, error) {
	out := make([]float32, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

func parseInts(tokens []string) ([]int, error) {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
