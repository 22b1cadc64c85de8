package scene

import "github.com/achilleasa/go-pathtrace/types"

// NoIndex marks a triangle attribute slot as unresolved until face repair
// fills it in.
const NoIndex int32 = -1

// Triangle indexes into the scene's pooled vertex/normal/texcoord/material
// arrays. Vidx is always fully populated by the OBJ adapter; NVidx, UVidx and
// Matid may individually be NoIndex until the repair pass runs.
type Triangle struct {
	Vidx  [3]int32
	NVidx [3]int32
	UVidx [3]int32
	Matid int32

	bb types.BBox
}

// BBox returns the triangle's cached bounding box.
func (t *Triangle) BBox() types.BBox {
	return t.bb
}

// Center returns the centroid of the triangle's bounding box.
func (t *Triangle) Center() types.Vec3 {
	return t.bb.Center()
}

// SetBBoxFromVertices recomputes t.bb from the three resolved vertex
// positions. Callers must invoke this whenever Vidx changes.
func (t *Triangle) SetBBoxFromVertices(v [3]types.Vec3) {
	bb := types.NewEmptyBBox()
	bb = bb.Expand(v[0])
	bb = bb.Expand(v[1])
	bb = bb.Expand(v[2])
	t.bb = bb
}
