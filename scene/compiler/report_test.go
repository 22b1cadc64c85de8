package compiler

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

func TestComputeBVStats(t *testing.T) {
	sc := scene.New(false)
	sc.Camera = scene.NewCameraUVW(
		types.Vec3{0, 0, 5}, types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0}, types.Vec3{0, 0, 1},
		1, 2, 2,
	)
	sc.BV = []scene.BV{
		{BBox: types.BBox{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}, NTris: 2},
	}

	stats := ComputeBVStats(sc, 4, 4)
	if stats.Rays != 16 {
		t.Fatalf("Rays = %d, want 16", stats.Rays)
	}
	if stats.LeafCount != 1 {
		t.Fatalf("LeafCount = %d, want 1", stats.LeafCount)
	}
	if stats.AvgTriCount != 2 {
		t.Fatalf("AvgTriCount = %v, want 2", stats.AvgTriCount)
	}
	if stats.MaxTests > 1 || stats.MinTests < 0 {
		t.Fatalf("unexpected test bounds: min=%d max=%d", stats.MinTests, stats.MaxTests)
	}
	if stats.HitRays == 0 {
		t.Fatalf("expected at least one ray to hit the single leaf")
	}
}
