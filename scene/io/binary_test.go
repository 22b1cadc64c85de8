package io

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// tinyScene builds the S1 single-triangle fixture: one triangle at
// (0,0,0),(1,0,0),(0,1,0), one normal, default material, one light, a
// trivial camera, resolution 2x2 and a single BV leaf.
func tinyScene(texcoords bool) *scene.Scene {
	sc := scene.New(texcoords)
	sc.ResX, sc.ResY = 2, 2
	sc.Camera = scene.NewCameraUVW(
		types.Vec3{0, 0, 5}, types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0}, types.Vec3{0, 0, 1},
		1, 1, 1,
	)
	sc.L = []scene.Light{scene.NewLight(types.Vec3{0, 5, 0}, types.Vec3{1, 1, 1})}
	sc.M = []scene.Material{scene.DefaultMaterial()}
	sc.V = []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	sc.NV = []types.Vec3{{0, 0, 1}}
	if texcoords {
		sc.UV = []types.Vec2{{0, 0}}
	}

	var tri scene.Triangle
	tri.Vidx = [3]int32{0, 1, 2}
	tri.NVidx = [3]int32{0, 0, 0}
	tri.Matid = 0
	if texcoords {
		tri.UVidx = [3]int32{0, 0, 0}
	} else {
		tri.UVidx = [3]int32{scene.NoIndex, scene.NoIndex, scene.NoIndex}
	}
	tri.SetBBoxFromVertices([3]types.Vec3{sc.V[0], sc.V[1], sc.V[2]})
	sc.F = []scene.Triangle{tri}

	bb := types.NewEmptyBBox().Expand(sc.V[0]).Expand(sc.V[1]).Expand(sc.V[2])
	sc.BV = []scene.BV{{BBox: bb, NTris: 1}}
	return sc
}

func TestSerializedWordCountMatchesSerialize(t *testing.T) {
	for _, layout := range []Layout{Indexed, Duplicated} {
		for _, tex := range []bool{false, true} {
			sc := tinyScene(tex)
			n := SerializedWordCount(sc, layout)
			buf := make([]uint32, n)
			if err := Serialize(sc, layout, buf); err != nil {
				t.Fatalf("layout=%v tex=%v: Serialize: %s", layout, tex, err)
			}
			if uint32(len(buf)) != n {
				t.Fatalf("layout=%v tex=%v: len(buf) = %d, want %d", layout, tex, len(buf), n)
			}
		}
	}
}

func TestHeaderContract(t *testing.T) {
	sc := tinyScene(false)
	n := SerializedWordCount(sc, Duplicated)
	buf := make([]uint32, n)
	if err := Serialize(sc, Duplicated, buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	if buf[0] != types.Magic {
		t.Fatalf("word 0 = 0x%08X, want magic 0x%08X", buf[0], types.Magic)
	}
	if buf[1] != sc.ResX || buf[2] != sc.ResY {
		t.Fatalf("words 1,2 = %d,%d, want resX=%d, resY=%d", buf[1], buf[2], sc.ResX, sc.ResY)
	}
	if buf[3] != uint32(len(sc.L)) {
		t.Fatalf("word 3 = %d, want |L|=%d", buf[3], len(sc.L))
	}
	if buf[4] != uint32(len(sc.BV)) {
		t.Fatalf("word 4 = %d, want |BV|=%d", buf[4], len(sc.BV))
	}
}

func TestSwapIdempotence(t *testing.T) {
	sc := tinyScene(false)
	n := SerializedWordCount(sc, Duplicated)

	plain := make([]uint32, n)
	if err := Serialize(sc, Duplicated, plain); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	swapped := make([]uint32, n)
	copy(swapped, plain)
	ApplyByteSwap(swapped)

	if swapped[0] != 0x4E454353 {
		t.Fatalf("swapped word 0 = 0x%08X, want 0x4E454353", swapped[0])
	}

	reSwapped := make([]uint32, n)
	copy(reSwapped, swapped)
	ApplyByteSwap(reSwapped)

	for i := range plain {
		if reSwapped[i] != plain[i] {
			t.Fatalf("word %d: byteswap is not its own inverse: %08X != %08X", i, reSwapped[i], plain[i])
		}
	}
}

func TestReadMagic(t *testing.T) {
	matches, needsSwap := ReadMagic(types.Magic)
	if !matches || needsSwap {
		t.Fatalf("ReadMagic(Magic) = (%v, %v), want (true, false)", matches, needsSwap)
	}

	matches, needsSwap = ReadMagic(types.ByteSwap32(types.Magic))
	if !matches || !needsSwap {
		t.Fatalf("ReadMagic(swapped Magic) = (%v, %v), want (true, true)", matches, needsSwap)
	}

	matches, _ = ReadMagic(0xDEADBEEF)
	if matches {
		t.Fatalf("ReadMagic(garbage) should not match")
	}
}
