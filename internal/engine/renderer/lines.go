package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/vbomesh/internal/engine/shader"
)

// LineMesh is a position-only line list, used for overlays such as bounds.
type LineMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// UploadLines uploads [x, y, z] line-list vertices.
func (r *Renderer) UploadLines(vertices []float32) *LineMesh {
	l := &LineMesh{count: int32(len(vertices) / 3)}
	if l.count == 0 {
		return l
	}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)

	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(shader.LocPosition, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(shader.LocPosition)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return l
}

// DrawLines renders l in a solid color.
func (r *Renderer) DrawLines(l *LineMesh, view, projection mgl32.Mat4, color mgl32.Vec3) {
	if l == nil || l.count == 0 {
		return
	}

	r.use(view, projection, shadeSolid, color)
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.count)
	gl.BindVertexArray(0)
}

// Destroy releases the GL objects. Safe to call on nil.
func (l *LineMesh) Destroy() {
	if l == nil {
		return
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
		l.vbo = 0
	}
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
		l.vao = 0
	}
}
