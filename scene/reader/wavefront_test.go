package reader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writeTemp: %s", err)
	}
	return p
}

func TestParseOBJMissingNormalsAreFlagged(t *testing.T) {
	dir := t.TempDir()
	objPath := writeTemp(t, dir, "scene.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	obj, err := parseOBJ(objPath)
	if err != nil {
		t.Fatalf("parseOBJ: %s", err)
	}
	if len(obj.faces) != 1 {
		t.Fatalf("len(faces) = %d, want 1", len(obj.faces))
	}
	for _, n := range obj.faces[0].n {
		if n >= 0 {
			t.Fatalf("expected unset normal index, got %d", n)
		}
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	dir := t.TempDir()
	objPath := writeTemp(t, dir, "scene.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	obj, err := parseOBJ(objPath)
	if err != nil {
		t.Fatalf("parseOBJ: %s", err)
	}
	want := [3]int{0, 1, 2}
	if obj.faces[0].v != want {
		t.Fatalf("face.v = %v, want %v", obj.faces[0].v, want)
	}
}

func TestParseOBJQuadTriangulation(t *testing.T) {
	dir := t.TempDir()
	objPath := writeTemp(t, dir, "scene.obj", `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	obj, err := parseOBJ(objPath)
	if err != nil {
		t.Fatalf("parseOBJ: %s", err)
	}
	if len(obj.faces) != 2 {
		t.Fatalf("len(faces) = %d, want 2", len(obj.faces))
	}
}

func TestParseOBJUnsupportedPrimitive(t *testing.T) {
	dir := t.TempDir()
	objPath := writeTemp(t, dir, "scene.obj", `
v 0 0 0
v 1 0 0
l 1 2
`)
	if _, err := parseOBJ(objPath); err == nil {
		t.Fatalf("expected error for unsupported primitive")
	}
}

func TestParseMTLAndUsemtl(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "scene.mtl", `
newmtl red
Ka 0.1 0.1 0.1
Kd 0.8 0 0
Ks 0.2 0.2 0.2
Ns 100
`)
	objPath := writeTemp(t, dir, "scene.obj", `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
`)

	obj, err := parseOBJ(objPath)
	if err != nil {
		t.Fatalf("parseOBJ: %s", err)
	}
	if len(obj.materials) != 1 || obj.materials[0].name != "red" {
		t.Fatalf("materials = %+v, want one material named red", obj.materials)
	}
	if obj.faces[0].mat != 0 {
		t.Fatalf("face.mat = %d, want 0", obj.faces[0].mat)
	}
}
