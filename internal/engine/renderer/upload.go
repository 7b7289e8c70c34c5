package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/internal/engine/shader"
	"github.com/Faultbox/vbomesh/pkg/mesh"
)

// attribute is one packed mesh buffer bound to a shader location.
type attribute struct {
	name     string
	location uint32
	size     int32
	data     []float32
}

// attributes lists the buffers present on m, one VBO each.
func attributes(m *mesh.Mesh) []attribute {
	attrs := []attribute{
		{"position", shader.LocPosition, 3, m.Positions},
		{"normal", shader.LocNormal, 3, m.Normals},
	}
	if m.HasTexCoords() {
		attrs = append(attrs, attribute{"texcoord", shader.LocTexCoord, 2, m.TexCoords})
	}
	if m.HasTangents() {
		attrs = append(attrs, attribute{"tangent", shader.LocTangent, 4, m.Tangents})
	}
	return attrs
}

// GPUMesh holds the GL objects for one uploaded mesh.
type GPUMesh struct {
	vao        uint32
	vbos       []uint32
	ebo        uint32
	indexCount int32
}

// Upload creates a VAO with one VBO per packed attribute and an element
// buffer for the triangle indices.
func (r *Renderer) Upload(m *mesh.Mesh) (*GPUMesh, error) {
	if m.VertexCount() == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}

	g := &GPUMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	for _, a := range attributes(m) {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(a.data)*4, gl.Ptr(a.data), gl.STATIC_DRAW)
		gl.VertexAttribPointer(a.location, a.size, gl.FLOAT, false, 0, nil)
		gl.EnableVertexAttribArray(a.location)
		g.vbos = append(g.vbos, vbo)
	}

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", g.vao),
		zap.Int("buffers", len(g.vbos)),
		zap.Int32("indices", g.indexCount),
	)
	return g, nil
}

// Destroy releases the GL objects. Safe to call on nil.
func (g *GPUMesh) Destroy() {
	if g == nil {
		return
	}
	if len(g.vbos) > 0 {
		gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
		g.vbos = nil
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
