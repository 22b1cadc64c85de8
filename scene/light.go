package scene

import "github.com/achilleasa/go-pathtrace/types"

// Light is a point light with a clamped RGB color.
type Light struct {
	Pos types.Vec3
	RGB types.Vec3
}

// NewLight clamps rgb to [0,1] per channel, per the scene-file grammar.
func NewLight(pos, rgb types.Vec3) Light {
	return Light{Pos: pos, RGB: rgb.Clamp01()}
}
