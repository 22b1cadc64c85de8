package reader

import (
	"time"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/scene/compiler"
)

// Load parses the scene file at path, merges its listed OBJ/MTL geometry,
// repairs incomplete faces, builds the BV table and returns the finished,
// immutable scene. texcoordsEnabled selects whether texcoord indices are
// tracked and serialized.
func Load(path string, maxBV uint32, texcoordsEnabled bool) (*scene.Scene, error) {
	logger.Noticef("parsing scene file %s", path)
	start := time.Now()

	cfg, err := parseSceneFile(path)
	if err != nil {
		return nil, err
	}

	sc := scene.New(texcoordsEnabled)
	sc.Camera = cfg.camera
	sc.ResX, sc.ResY = cfg.resX, cfg.resY
	sc.L = cfg.lights

	for _, objPath := range cfg.objPaths {
		logger.Infof("loading obj %s", objPath)
		obj, err := parseOBJ(objPath)
		if err != nil {
			return nil, err
		}
		mergeOBJ(sc, obj)
	}

	if err := repairFaces(sc); err != nil {
		return nil, err
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	if err := compiler.BuildBVH(sc, maxBV); err != nil {
		return nil, err
	}

	logger.Noticef(
		"parsed scene in %d ms: %d triangles, %d vertices, %d materials, %d bv leaves",
		time.Since(start).Nanoseconds()/1e6, len(sc.F), len(sc.V), len(sc.M), len(sc.BV),
	)

	return sc, nil
}
