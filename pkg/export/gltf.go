// Package export writes packed meshes to interchange formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/vbomesh/pkg/mesh"
)

// ErrEmptyMesh is returned when exporting a mesh without vertices.
var ErrEmptyMesh = errors.New("mesh has no vertices")

// GLTFDocument builds a single-mesh glTF document from m. The document has
// one primitive with POSITION and NORMAL attributes, TEXCOORD_0 and TANGENT
// when m has them, and uint32 indices. glTF requires unit normals, so zero
// normals (vertices used only by degenerate triangles, or by none) are
// written as +Z.
func GLTFDocument(m *mesh.Mesh, name string) *gltf.Document {
	doc := gltf.NewDocument()

	attrs := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(doc, vec3s(m.Positions)),
		gltf.NORMAL:   modeler.WriteNormal(doc, unitNormals(m)),
	}
	if m.HasTexCoords() {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, vec2s(m.TexCoords))
	}
	if m.HasTangents() {
		attrs[gltf.TANGENT] = modeler.WriteTangent(doc, vec4s(m.Tangents))
	}

	primitive := &gltf.Primitive{
		Attributes: attrs,
		Mode:       gltf.PrimitiveTriangles,
	}
	if m.TriangleCount() > 0 {
		primitive.Indices = gltf.Index(modeler.WriteIndices(doc, m.Indices))
	}

	doc.Meshes = []*gltf.Mesh{{
		Name:       name,
		Primitives: []*gltf.Primitive{primitive},
	}}
	doc.Nodes = []*gltf.Node{{
		Name: name,
		Mesh: gltf.Index(0),
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc
}

// WriteGLB encodes m as binary glTF.
func WriteGLB(w io.Writer, m *mesh.Mesh, name string) error {
	if m.VertexCount() == 0 {
		return ErrEmptyMesh
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(GLTFDocument(m, name)); err != nil {
		return fmt.Errorf("encoding glTF: %w", err)
	}
	return nil
}

// WriteGLBFile writes m to path as binary glTF. The mesh is named after the
// file's base name.
func WriteGLBFile(path string, m *mesh.Mesh) error {
	if m.VertexCount() == 0 {
		return ErrEmptyMesh
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := WriteGLB(f, m, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// unitNormals returns m's normals with zero vectors replaced by +Z.
func unitNormals(m *mesh.Mesh) [][3]float32 {
	out := make([][3]float32, m.VertexCount())
	for i := range out {
		n := m.Normal(i)
		if n.IsZero() {
			out[i] = [3]float32{0, 0, 1}
			continue
		}
		out[i] = [3]float32{n.X, n.Y, n.Z}
	}
	return out
}

func vec2s(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[i*2], flat[i*2+1]}
	}
	return out
}

func vec3s(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}

func vec4s(flat []float32) [][4]float32 {
	out := make([][4]float32, len(flat)/4)
	for i := range out {
		out[i] = [4]float32{flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3]}
	}
	return out
}
