package compiler

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// unitTriAt returns a degenerate triangle (all three vertices equal) at
// center c, which is enough to exercise the BV builder's partitioning.
func unitTriAt(c types.Vec3) scene.Triangle {
	var tri scene.Triangle
	tri.SetBBoxFromVertices([3]types.Vec3{c, c, c})
	return tri
}

func TestBuildBVHSingleTriangle(t *testing.T) {
	sc := scene.New(false)
	sc.F = []scene.Triangle{unitTriAt(types.Vec3{0, 0, 0})}

	if err := BuildBVH(sc, 1); err != nil {
		t.Fatalf("BuildBVH: %s", err)
	}
	if len(sc.BV) != 1 {
		t.Fatalf("|BV| = %d, want 1", len(sc.BV))
	}
	if sc.BV[0].NTris != 1 {
		t.Fatalf("BV[0].NTris = %d, want 1", sc.BV[0].NTris)
	}
}

func TestBuildBVHPowerOfTwoCapSaturates(t *testing.T) {
	sc := scene.New(false)
	for i := 0; i < 8; i++ {
		sc.F = append(sc.F, unitTriAt(types.Vec3{float32(i), 0, 0}))
	}

	if err := BuildBVH(sc, 16); err != nil {
		t.Fatalf("BuildBVH: %s", err)
	}
	if len(sc.BV) != 4 {
		t.Fatalf("|BV| = %d, want 4 (stop_depth reduced to ulog2(8)-1 = 2)", len(sc.BV))
	}
}

func TestBuildBVHPartitionAlongLongestAxis(t *testing.T) {
	sc := scene.New(false)
	for i := 0; i < 4; i++ {
		sc.F = append(sc.F, unitTriAt(types.Vec3{float32(i), 0, 0}))
	}

	if err := BuildBVH(sc, 2); err != nil {
		t.Fatalf("BuildBVH: %s", err)
	}
	if len(sc.BV) != 2 {
		t.Fatalf("|BV| = %d, want 2", len(sc.BV))
	}

	if sc.BV[0].NTris != 2 || sc.BV[1].NTris != 2 {
		t.Fatalf("leaf sizes = %d, %d, want 2, 2", sc.BV[0].NTris, sc.BV[1].NTris)
	}

	for i := range sc.F {
		if sc.F[i].Center()[0] != float32(i) {
			t.Fatalf("triangle order changed: F[%d].center.x = %v, want %v", i, sc.F[i].Center()[0], i)
		}
	}

	if sc.BV[0].BBox.Max[0] > sc.BV[1].BBox.Min[0] {
		t.Fatalf("BV[0] (%v) and BV[1] (%v) overlap on the split axis", sc.BV[0].BBox, sc.BV[1].BBox)
	}
}

func TestBuildBVHPartitionCompletenessAndContainment(t *testing.T) {
	sc := scene.New(false)
	for i := 0; i < 17; i++ {
		sc.F = append(sc.F, unitTriAt(types.Vec3{float32(i % 5), float32(i % 3), float32(i)}))
	}

	if err := BuildBVH(sc, 8); err != nil {
		t.Fatalf("BuildBVH: %s", err)
	}

	if !types.IsPowOfTwo(uint32(len(sc.BV))) {
		t.Fatalf("|BV| = %d is not a power of two", len(sc.BV))
	}
	if uint32(len(sc.BV)) > 8 {
		t.Fatalf("|BV| = %d exceeds max_bv 8", len(sc.BV))
	}

	var total uint32
	idx := 0
	for leafI, bv := range sc.BV {
		total += bv.NTris
		for k := uint32(0); k < bv.NTris; k++ {
			tri := &sc.F[idx]
			if !bv.BBox.Contains(tri.BBox()) {
				t.Fatalf("leaf %d does not contain triangle %d's bbox", leafI, idx)
			}
			idx++
		}
	}
	if total != uint32(len(sc.F)) {
		t.Fatalf("sum of BV[i].NTris = %d, want %d", total, len(sc.F))
	}
}

func TestBuildBVHRejectsNonPowerOfTwoMaxBV(t *testing.T) {
	sc := scene.New(false)
	sc.F = []scene.Triangle{unitTriAt(types.Vec3{})}
	if err := BuildBVH(sc, 3); err == nil {
		t.Fatalf("expected error for non power-of-two max_bv")
	}
}
