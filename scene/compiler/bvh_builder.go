// Package compiler builds the flat bounding-volume table over a scene's
// triangle array.
package compiler

import (
	"fmt"
	"sort"
	"time"

	"github.com/achilleasa/go-pathtrace/log"
	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

var logger = log.New("compiler")

type bvhStats struct {
	leafs    int
	maxDepth int
}

// BuildBVH partitions sc.F in place using a longest-axis median split and
// populates sc.BV. maxBV must be a power of two; it caps the number of
// leaves the recursion is allowed to produce.
func BuildBVH(sc *scene.Scene, maxBV uint32) error {
	if !types.IsPowOfTwo(maxBV) {
		return fmt.Errorf("compiler: max_bv %d is not a power of two", maxBV)
	}
	if len(sc.F) == 0 {
		return fmt.Errorf("compiler: no triangles to partition")
	}

	stopDepth := types.Ulog2(maxBV)
	fullDepth := types.Ulog2(uint32(len(sc.F)))
	if stopDepth >= fullDepth && stopDepth > 0 {
		if fullDepth > 0 {
			stopDepth = fullDepth - 1
		} else {
			stopDepth = 0
		}
	}

	b := &builder{sc: sc, stopDepth: stopDepth}

	start := time.Now()
	b.gatherBVs(0, len(sc.F), 0)
	logger.Debugf(
		"bvh build time: %d ms, leaves: %d, maxDepth: %d, stopDepth: %d",
		time.Since(start).Nanoseconds()/1e6, b.stats.leafs, b.stats.maxDepth, stopDepth,
	)

	sc.BV = b.bvs
	return nil
}

type builder struct {
	sc        *scene.Scene
	stopDepth uint32
	bvs       []scene.BV
	stats     bvhStats
}

// gatherBVs recursively partitions sc.F[begin:end] by a longest-axis median
// split, appending one leaf BV per region reached at stopDepth. It mirrors
// the reference implementation's gather_bvs/init_bvs procedure.
func (b *builder) gatherBVs(begin, end int, depth uint32) {
	if depth > uint32(b.stats.maxDepth) {
		b.stats.maxDepth = int(depth)
	}

	f := b.sc.F

	bbox := types.NewEmptyBBox()
	for i := begin; i < end; i++ {
		bbox = bbox.Union(f[i].BBox())
	}

	if depth == b.stopDepth {
		b.bvs = append(b.bvs, scene.BV{
			BBox:  bbox,
			NTris: uint32(end - begin),
		})
		b.stats.leafs++
		return
	}

	axis := bbox.MaxExtentAxis()
	region := f[begin:end]
	sort.Slice(region, func(i, j int) bool {
		return region[i].Center()[axis] < region[j].Center()[axis]
	})

	mid := begin + (end-begin)/2
	b.gatherBVs(begin, mid, depth+1)
	b.gatherBVs(mid, end, depth+1)
}
