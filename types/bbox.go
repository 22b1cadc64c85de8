package types

import "math"

// BBox is an axis-aligned bounding box described by its min and max corners.
// The zero value is not usable; use NewEmptyBBox so Expand behaves as an
// identity operation on an empty box.
type BBox struct {
	Min, Max Vec3
}

// NewEmptyBBox returns a bbox initialized to (+inf, -inf) so that expanding
// it with any point or box yields exactly that point or box.
func NewEmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Expand grows the box so it also contains v.
func (b BBox) Expand(v Vec3) BBox {
	return BBox{
		Min: MinVec3(b.Min, v),
		Max: MaxVec3(b.Max, v),
	}
}

// Union grows the box so it also contains other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// Center returns the midpoint of the box.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxExtentAxis returns the index (0=x, 1=y, 2=z) of the box's longest side.
func (b BBox) MaxExtentAxis() int {
	side := b.Max.Sub(b.Min)
	axis := 0
	best := side[0]
	if side[1] > best {
		axis, best = 1, side[1]
	}
	if side[2] > best {
		axis = 2
	}
	return axis
}

// Contains reports whether other is fully enclosed by b, component-wise.
func (b BBox) Contains(other BBox) bool {
	for i := 0; i < 3; i++ {
		if other.Min[i] < b.Min[i] || other.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// IntersectRay reports whether the ray (origin, dir) hits b within
// [tMin, tMax], using the slab method.
func (b BBox) IntersectRay(origin, dir Vec3, tMin, tMax float32) bool {
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return false
			}
			continue
		}
		invD := 1 / dir[i]
		t0 := (b.Min[i] - origin[i]) * invD
		t1 := (b.Max[i] - origin[i]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}
