// Package io lays out a scene and its BV table as a deterministic,
// offset-addressed, word-oriented binary blob, per spec §4.6.
package io

import (
	"fmt"

	"github.com/achilleasa/go-pathtrace/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// Layout selects how triangle attributes are serialized.
type Layout int

const (
	// Indexed shares vertex/normal/material/texcoord pools across
	// triangles; triangles reference them by index.
	Indexed Layout = iota
	// Duplicated inlines each triangle's resolved vertex, normal and
	// material attributes, at the cost of repeating shared data.
	Duplicated
)

type section struct {
	words uint32
}

// sectionList returns, in header order, the word count of every section
// this layout produces for sc. Both SerializedWordCount and Serialize
// derive their section offsets from this single source of truth.
func sectionList(sc *scene.Scene, layout Layout) []section {
	nF := uint32(len(sc.F))
	nBV := uint32(len(sc.BV))
	nV := uint32(len(sc.V))
	nNV := uint32(len(sc.NV))
	nM := uint32(len(sc.M))
	nL := uint32(len(sc.L))
	nUV := uint32(len(sc.UV))

	secs := []section{
		{cameraWords},
		{bvWords * nBV},
	}

	switch layout {
	case Indexed:
		secs = append(secs,
			section{3 * nV},
			section{3 * nNV},
			section{3 * nF},
			section{3 * nF},
			section{1 * nF},
			section{matWords * nM},
			section{lightWords * nL},
		)
		if sc.TexcoordsEnabled {
			secs = append(secs, section{2 * nUV}, section{3 * nF})
		}
	case Duplicated:
		secs = append(secs,
			section{9 * nF},
			section{9 * nF},
			section{matWords * nF},
			section{lightWords * nL},
		)
		if sc.TexcoordsEnabled {
			secs = append(secs, section{6 * nF})
		}
	}
	return secs
}

const (
	cameraWords = 15
	bvWords     = 7
	matWords    = 13
	lightWords  = 6
)

// SerializedWordCount returns the exact number of 32-bit words serialize
// will write for sc under layout.
func SerializedWordCount(sc *scene.Scene, layout Layout) uint32 {
	secs := sectionList(sc, layout)
	total := uint32(5 + len(secs))
	for _, s := range secs {
		total += s.words
	}
	return total
}

// Serialize writes sc into buf under layout. len(buf) must equal
// SerializedWordCount(sc, layout).
func Serialize(sc *scene.Scene, layout Layout, buf []uint32) error {
	secs := sectionList(sc, layout)
	headerWords := uint32(5 + len(secs))
	want := headerWords
	for _, s := range secs {
		want += s.words
	}
	if uint32(len(buf)) != want {
		return fmt.Errorf("io: buffer has %d words, want %d", len(buf), want)
	}

	buf[0] = types.Magic
	buf[1] = sc.ResX
	buf[2] = sc.ResY
	buf[3] = uint32(len(sc.L))
	buf[4] = uint32(len(sc.BV))

	offset := headerWords
	for i, s := range secs {
		buf[5+i] = offset
		offset += s.words
	}

	cur := 0
	next := func(n uint32) []uint32 {
		s := buf[cur : cur+int(n)]
		cur += int(n)
		return s
	}
	// skip past the header; body sections start exactly at offsets[0].
	cur = int(headerWords)

	writeCamera(next(cameraWords), sc.Camera)
	writeBVs(next(bvWords*uint32(len(sc.BV))), sc.BV)

	switch layout {
	case Indexed:
		writeVec3Pool(next(3*uint32(len(sc.V))), sc.V)
		writeVec3Pool(next(3*uint32(len(sc.NV))), sc.NV)
		writeIndexTriples(next(3*uint32(len(sc.F))), sc.F, func(t *scene.Triangle) [3]int32 { return t.Vidx })
		writeIndexTriples(next(3*uint32(len(sc.F))), sc.F, func(t *scene.Triangle) [3]int32 { return t.NVidx })
		writeMatIDs(next(uint32(len(sc.F))), sc.F)
		writeMaterials(next(matWords*uint32(len(sc.M))), sc.M)
		writeLights(next(lightWords*uint32(len(sc.L))), sc.L)
		if sc.TexcoordsEnabled {
			writeVec2Pool(next(2*uint32(len(sc.UV))), sc.UV)
			writeIndexTriples(next(3*uint32(len(sc.F))), sc.F, func(t *scene.Triangle) [3]int32 { return t.UVidx })
		}
	case Duplicated:
		writePerTriVertices(next(9*uint32(len(sc.F))), sc)
		writePerTriNormals(next(9*uint32(len(sc.F))), sc)
		writePerTriMaterials(next(matWords*uint32(len(sc.F))), sc)
		writeLights(next(lightWords*uint32(len(sc.L))), sc.L)
		if sc.TexcoordsEnabled {
			writePerTriTexcoords(next(6*uint32(len(sc.F))), sc)
		}
	}

	return nil
}

func writeVec3Fixed(buf []uint32, v types.Vec3) {
	buf[0] = types.ToFixed(v[0])
	buf[1] = types.ToFixed(v[1])
	buf[2] = types.ToFixed(v[2])
}

func writeVec2Fixed(buf []uint32, v types.Vec2) {
	buf[0] = types.ToFixed(v[0])
	buf[1] = types.ToFixed(v[1])
}

func writeBBox(buf []uint32, bb types.BBox) {
	writeVec3Fixed(buf[0:3], bb.Min)
	writeVec3Fixed(buf[3:6], bb.Max)
}

func writeCamera(buf []uint32, c scene.Camera) {
	writeVec3Fixed(buf[0:3], c.Eye)
	writeVec3Fixed(buf[3:6], c.U)
	writeVec3Fixed(buf[6:9], c.V)
	writeVec3Fixed(buf[9:12], c.W)
	buf[12] = types.ToFixed(c.FocalLen)
	buf[13] = types.ToFixed(c.Width)
	buf[14] = types.ToFixed(c.Height)
}

func writeBVs(buf []uint32, bvs []scene.BV) {
	for i, bv := range bvs {
		b := buf[i*bvWords : (i+1)*bvWords]
		writeBBox(b[0:6], bv.BBox)
		b[6] = bv.NTris
	}
}

func writeMaterial(buf []uint32, m scene.Material) {
	writeVec3Fixed(buf[0:3], m.Ka)
	writeVec3Fixed(buf[3:6], m.Kd)
	writeVec3Fixed(buf[6:9], m.Ks)
	writeVec3Fixed(buf[9:12], m.Km)
	buf[12] = types.ToFixed(m.Ns)
}

func writeMaterials(buf []uint32, mats []scene.Material) {
	for i, m := range mats {
		writeMaterial(buf[i*matWords:(i+1)*matWords], m)
	}
}

func writeLight(buf []uint32, l scene.Light) {
	writeVec3Fixed(buf[0:3], l.Pos)
	writeVec3Fixed(buf[3:6], l.RGB)
}

func writeLights(buf []uint32, lights []scene.Light) {
	for i, l := range lights {
		writeLight(buf[i*lightWords:(i+1)*lightWords], l)
	}
}

func writeVec3Pool(buf []uint32, pool []types.Vec3) {
	for i, v := range pool {
		writeVec3Fixed(buf[i*3:i*3+3], v)
	}
}

func writeVec2Pool(buf []uint32, pool []types.Vec2) {
	for i, v := range pool {
		writeVec2Fixed(buf[i*2:i*2+2], v)
	}
}

func writeIndexTriples(buf []uint32, tris []scene.Triangle, sel func(*scene.Triangle) [3]int32) {
	for i := range tris {
		idx := sel(&tris[i])
		buf[i*3] = uint32(idx[0])
		buf[i*3+1] = uint32(idx[1])
		buf[i*3+2] = uint32(idx[2])
	}
}

func writeMatIDs(buf []uint32, tris []scene.Triangle) {
	for i := range tris {
		buf[i] = uint32(tris[i].Matid)
	}
}

func writePerTriVertices(buf []uint32, sc *scene.Scene) {
	for i := range sc.F {
		v := sc.TriVertices(&sc.F[i])
		b := buf[i*9 : i*9+9]
		writeVec3Fixed(b[0:3], v[0])
		writeVec3Fixed(b[3:6], v[1])
		writeVec3Fixed(b[6:9], v[2])
	}
}

func writePerTriNormals(buf []uint32, sc *scene.Scene) {
	for i := range sc.F {
		t := &sc.F[i]
		b := buf[i*9 : i*9+9]
		writeVec3Fixed(b[0:3], sc.NV[t.NVidx[0]])
		writeVec3Fixed(b[3:6], sc.NV[t.NVidx[1]])
		writeVec3Fixed(b[6:9], sc.NV[t.NVidx[2]])
	}
}

func writePerTriMaterials(buf []uint32, sc *scene.Scene) {
	for i := range sc.F {
		writeMaterial(buf[i*matWords:(i+1)*matWords], sc.M[sc.F[i].Matid])
	}
}

func writePerTriTexcoords(buf []uint32, sc *scene.Scene) {
	for i := range sc.F {
		t := &sc.F[i]
		b := buf[i*6 : i*6+6]
		writeVec2Fixed(b[0:2], sc.UV[t.UVidx[0]])
		writeVec2Fixed(b[2:4], sc.UV[t.UVidx[1]])
		writeVec2Fixed(b[4:6], sc.UV[t.UVidx[2]])
	}
}

// ApplyByteSwap reverses the bytes of every word in buf, in place.
func ApplyByteSwap(buf []uint32) {
	for i, w := range buf {
		buf[i] = types.ByteSwap32(w)
	}
}

// ReadMagic inspects word0, the first word of a serialized buffer, and
// reports whether it matches the
// expected magic number directly, after a byteswap, or neither.
func ReadMagic(word0 uint32) (matches bool, needsSwap bool) {
	if word0 == types.Magic {
		return true, false
	}
	if types.ByteSwap32(word0) == types.Magic {
		return true, true
	}
	return false, false
}
