package scene

import "github.com/achilleasa/go-pathtrace/types"

// BV is a leaf bounding volume produced by the BV builder: a bounding box
// plus the number of triangles in its contiguous slice of F.
type BV struct {
	BBox  types.BBox
	NTris uint32
}
