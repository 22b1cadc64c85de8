package scene

import (
	"fmt"

	"github.com/achilleasa/go-pathtrace/types"
)

// Scene is the root aggregate produced by scene assembly: a camera,
// resolution, lights, pooled geometry arrays, the triangle table and,
// once the BV builder has run, the flat bounding-volume table.
type Scene struct {
	Camera Camera
	ResX   uint32
	ResY   uint32

	L []Light

	V  []types.Vec3
	NV []types.Vec3
	UV []types.Vec2
	M  []Material

	F []Triangle

	BV []BV

	// TexcoordsEnabled selects, at assembly time, whether per-triangle
	// texcoord indices are tracked and serialized. The reference design
	// makes this choice at compile time via a feature toggle; this repo
	// exposes the same choice as a constructor-time flag.
	TexcoordsEnabled bool
}

// New returns an empty scene ready for assembly by the reader package.
func New(texcoordsEnabled bool) *Scene {
	return &Scene{
		TexcoordsEnabled: texcoordsEnabled,
	}
}

// Validate checks the invariants required of a fully assembled scene, prior
// to BV construction and serialization.
func (s *Scene) Validate() error {
	if len(s.F) == 0 {
		return fmt.Errorf("scene: no faces")
	}
	if len(s.V) == 0 {
		return fmt.Errorf("scene: no vertices")
	}
	if len(s.L) == 0 {
		return fmt.Errorf("scene: no lights")
	}
	if s.ResX == 0 || s.ResY == 0 {
		return fmt.Errorf("scene: resolution not set")
	}

	nv, nnv, nuv, nm := int32(len(s.V)), int32(len(s.NV)), int32(len(s.UV)), int32(len(s.M))
	for i := range s.F {
		t := &s.F[i]
		for k := 0; k < 3; k++ {
			if t.Vidx[k] < 0 || t.Vidx[k] >= nv {
				return fmt.Errorf("scene: face %d has out of range vertex index %d", i, t.Vidx[k])
			}
			if t.NVidx[k] < 0 || t.NVidx[k] >= nnv {
				return fmt.Errorf("scene: face %d has out of range normal index %d", i, t.NVidx[k])
			}
			if s.TexcoordsEnabled && (t.UVidx[k] < 0 || t.UVidx[k] >= nuv) {
				return fmt.Errorf("scene: face %d has out of range texcoord index %d", i, t.UVidx[k])
			}
		}
		if t.Matid < 0 || t.Matid >= nm {
			return fmt.Errorf("scene: face %d has out of range material index %d", i, t.Matid)
		}
	}
	return nil
}

// TriVertices resolves a triangle's three vertex positions via the pools.
func (s *Scene) TriVertices(t *Triangle) [3]types.Vec3 {
	return [3]types.Vec3{s.V[t.Vidx[0]], s.V[t.Vidx[1]], s.V[t.Vidx[2]]}
}
