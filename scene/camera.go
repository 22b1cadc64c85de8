package scene

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

// Camera describes a pinhole camera via its eye position and an orthonormal
// basis (u,v,w), where -w is the view direction. FocalLen, Width and Height
// (the projection-plane dimensions in world units) are all positive.
type Camera struct {
	Eye types.Vec3
	U   types.Vec3
	V   types.Vec3
	W   types.Vec3

	FocalLen float32
	Width    float32
	Height   float32
}

// NewCameraUVW builds a camera from an explicit orthonormal basis, as given
// directly by the scene file's "uvw" property.
func NewCameraUVW(eye, u, v, w types.Vec3, focalLen, width, height float32) Camera {
	return Camera{
		Eye:      eye,
		U:        u,
		V:        v,
		W:        w,
		FocalLen: focalLen,
		Width:    width,
		Height:   height,
	}
}

// PrimaryRay returns the world-space origin and direction of the ray through
// pixel (px, py) of a resX x resY image, with (0,0) at the top-left corner.
func (c Camera) PrimaryRay(px, py int, resX, resY int) (origin, dir types.Vec3) {
	su := (float32(px)+0.5)/float32(resX)*2 - 1
	sv := 1 - (float32(py)+0.5)/float32(resY)*2

	dir = c.W.Mul(-c.FocalLen).
		Add(c.U.Mul(su * c.Width / 2)).
		Add(c.V.Mul(sv * c.Height / 2)).
		Normalize()
	return c.Eye, dir
}

// NewCameraAxisAngle builds a camera basis by rotating the canonical basis
// (1,0,0),(0,1,0),(0,0,1) about axis by angleDeg degrees, as given by the
// scene file's "axis_angle" property.
func NewCameraAxisAngle(eye, axis types.Vec3, angleDeg float32, focalLen, width, height float32) Camera {
	rad := float32(float64(angleDeg) * math.Pi / 180.0)
	q := types.QuatFromAxisAngle(axis.Normalize(), rad).Normalize()

	return Camera{
		Eye:      eye,
		U:        q.Rotate(types.Vec3{1, 0, 0}),
		V:        q.Rotate(types.Vec3{0, 1, 0}),
		W:        q.Rotate(types.Vec3{0, 0, 1}),
		FocalLen: focalLen,
		Width:    width,
		Height:   height,
	}
}
