package reader

import (
	"fmt"
	"math"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// mergeOBJ appends obj's geometry and materials into sc's pools, remapping
// every index by the pools' current lengths, per spec §4.3.
func mergeOBJ(sc *scene.Scene, obj *objResult) {
	baseV := int32(len(sc.V))
	baseNV := int32(len(sc.NV))
	baseUV := int32(len(sc.UV))
	baseM := int32(len(sc.M))

	sc.V = append(sc.V, obj.positions...)
	sc.NV = append(sc.NV, obj.normals...)
	sc.UV = append(sc.UV, obj.texcoords...)

	for _, m := range obj.materials {
		sc.M = append(sc.M, scene.Material{
			Ka: m.ka,
			Kd: m.kd,
			Ks: m.ks,
			Km: mirrorCoefficient(m.ns),
			Ns: m.ns,
		})
	}

	for _, face := range obj.faces {
		t := scene.Triangle{
			Vidx:  [3]int32{baseV + int32(face.v[0]), baseV + int32(face.v[1]), baseV + int32(face.v[2])},
			NVidx: remapOrMiss(face.n, baseNV),
			Matid: remapSingleOrMiss(face.mat, baseM),
		}
		if sc.TexcoordsEnabled {
			t.UVidx = remapOrMiss(face.t, baseUV)
		} else {
			t.UVidx = [3]int32{scene.NoIndex, scene.NoIndex, scene.NoIndex}
		}

		verts := [3]types.Vec3{sc.V[t.Vidx[0]], sc.V[t.Vidx[1]], sc.V[t.Vidx[2]]}
		t.SetBBoxFromVertices(verts)

		sc.F = append(sc.F, t)
	}
}

func remapOrMiss(idx [3]int, base int32) [3]int32 {
	var out [3]int32
	for i, v := range idx {
		if v < 0 {
			out[i] = scene.NoIndex
		} else {
			out[i] = base + int32(v)
		}
	}
	return out
}

func remapSingleOrMiss(idx int, base int32) int32 {
	if idx < 0 {
		return scene.NoIndex
	}
	return base + int32(idx)
}

// mirrorCoefficient approximates Blender's shininess-to-roughness curve:
// km = sqrt(clamp(ns/1000, 0, 1)) per channel.
func mirrorCoefficient(ns float32) types.Vec3 {
	n := ns / 1000
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	s := float32(math.Sqrt(float64(n)))
	return types.Vec3{s, s, s}
}

// repairFaces fills in missing material, texcoord and normal indices left
// by mergeOBJ, per spec §4.4. It must run once, after all OBJ files have
// been merged.
func repairFaces(sc *scene.Scene) error {
	defaultMatIdx := scene.NoIndex
	defaultUVIdx := scene.NoIndex

	for i := range sc.F {
		t := &sc.F[i]

		if t.Matid < 0 {
			if defaultMatIdx < 0 {
				sc.M = append(sc.M, scene.DefaultMaterial())
				defaultMatIdx = int32(len(sc.M) - 1)
			}
			t.Matid = defaultMatIdx
		}

		if sc.TexcoordsEnabled && missingAny(t.UVidx) {
			if defaultUVIdx < 0 {
				sc.UV = append(sc.UV, types.Vec2{0, 0})
				defaultUVIdx = int32(len(sc.UV) - 1)
			}
			t.UVidx = [3]int32{defaultUVIdx, defaultUVIdx, defaultUVIdx}
		}

		if missingAny(t.NVidx) {
			verts := sc.TriVertices(t)
			normal := verts[1].Sub(verts[0]).Cross(verts[2].Sub(verts[0])).Normalize()
			sc.NV = append(sc.NV, normal)
			idx := int32(len(sc.NV) - 1)
			t.NVidx = [3]int32{idx, idx, idx}
		}
	}

	if len(sc.F) == 0 {
		return fmt.Errorf("scene: no faces after repair")
	}
	if len(sc.V) == 0 {
		return fmt.Errorf("scene: no vertices after repair")
	}
	return nil
}

func missingAny(idx [3]int32) bool {
	return idx[0] < 0 || idx[1] < 0 || idx[2] < 0
}
