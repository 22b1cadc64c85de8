package scene

import "github.com/achilleasa/go-pathtrace/types"

// Material describes the surface response of a triangle: ambient, diffuse,
// specular and mirror coefficients plus a shininess exponent.
type Material struct {
	Ka types.Vec3
	Kd types.Vec3
	Ks types.Vec3
	Km types.Vec3
	Ns float32
}

// DefaultMaterial returns the "gray plastic" material assigned to any face
// that the OBJ/MTL adapter could not resolve a material for.
func DefaultMaterial() Material {
	return Material{
		Ka: types.Vec3{1, 1, 1},
		Kd: types.Vec3{0.8, 0.8, 0.8},
		Ks: types.Vec3{0.5, 0.5, 0.5},
		Km: types.Vec3{0.05, 0.05, 0.05},
		Ns: 250,
	}
}
