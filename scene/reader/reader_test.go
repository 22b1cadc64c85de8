package reader

import "testing"

func TestLoadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "mesh.mtl", `
newmtl plain
Ka 1 1 1
Kd 0.8 0.8 0.8
Ks 0.5 0.5 0.5
Ns 250
`)
	writeTemp(t, dir, "mesh.obj", `
mtllib mesh.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl plain
f 1 2 3
`)
	scenePath := writeTemp(t, dir, "test.scene", `scene
res 2 2

camera
eye 0 0 5
uvw 1 0 0  0 1 0  0 0 1
focal_len 1
proj_size 1 1

light
pos 0 5 0
rgb 1 1 1

obj
mesh.obj
`)

	sc, err := Load(scenePath, 1, false)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if len(sc.F) != 1 {
		t.Fatalf("len(F) = %d, want 1", len(sc.F))
	}
	if len(sc.BV) != 1 {
		t.Fatalf("len(BV) = %d, want 1", len(sc.BV))
	}
	if sc.BV[0].NTris != 1 {
		t.Fatalf("BV[0].NTris = %d, want 1", sc.BV[0].NTris)
	}
	if sc.ResX != 2 || sc.ResY != 2 {
		t.Fatalf("resolution = %d,%d, want 2,2", sc.ResX, sc.ResY)
	}
	if err := sc.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
}

func TestLoadRejectsMissingObjFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeTemp(t, dir, "test.scene", `scene
res 2 2

camera
eye 0 0 5
uvw 1 0 0  0 1 0  0 0 1
focal_len 1
proj_size 1 1

light
pos 0 5 0
rgb 1 1 1

obj
missing.obj
`)

	if _, err := Load(scenePath, 1, false); err == nil {
		t.Fatalf("expected error for missing obj file")
	}
}
