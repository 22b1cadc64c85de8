package compiler

import (
	"math"

	"github.com/achilleasa/go-pathtrace/scene"
)

// BVStats summarizes how many BV leaves a full-frame primary-ray sweep
// touches: the aggregate cost a hardware traversal unit would pay walking
// the flat BV table produced by BuildBVH.
type BVStats struct {
	Rays        int
	TotalTests  int
	MinTests    int
	MaxTests    int
	HitRays     int
	LeafCount   int
	AvgTriCount float64
}

// ComputeBVStats casts one primary ray per pixel of a resX x resY image and
// counts, for each ray, how many of the scene's BV leaves it overlaps.
func ComputeBVStats(sc *scene.Scene, resX, resY int) BVStats {
	stats := BVStats{
		LeafCount: len(sc.BV),
		MinTests:  math.MaxInt32,
	}

	var triSum int
	for _, bv := range sc.BV {
		triSum += int(bv.NTris)
	}
	if stats.LeafCount > 0 {
		stats.AvgTriCount = float64(triSum) / float64(stats.LeafCount)
	}

	for y := 0; y < resY; y++ {
		for x := 0; x < resX; x++ {
			origin, dir := sc.Camera.PrimaryRay(x, y, resX, resY)

			tests := 0
			hit := false
			for _, bv := range sc.BV {
				if bv.BBox.IntersectRay(origin, dir, 0, float32(math.Inf(1))) {
					tests++
					hit = true
				}
			}

			stats.Rays++
			stats.TotalTests += tests
			if hit {
				stats.HitRays++
			}
			if tests < stats.MinTests {
				stats.MinTests = tests
			}
			if tests > stats.MaxTests {
				stats.MaxTests = tests
			}
		}
	}

	if stats.Rays == 0 {
		stats.MinTests = 0
	}
	return stats
}

// AvgTests returns the mean number of BV tests per ray.
func (s BVStats) AvgTests() float64 {
	if s.Rays == 0 {
		return 0
	}
	return float64(s.TotalTests) / float64(s.Rays)
}

// HitRate returns the fraction of rays that overlapped at least one leaf.
func (s BVStats) HitRate() float64 {
	if s.Rays == 0 {
		return 0
	}
	return float64(s.HitRays) / float64(s.Rays)
}
