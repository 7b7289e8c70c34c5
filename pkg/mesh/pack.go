package mesh

import (
	"go.uber.org/zap"
)

// Summary counts what a load produced.
type Summary struct {
	Vertices  int
	Faces     int
	Triangles int
	Normals   int
	Tangents  int
	TexCoords int
}

// Pack flattens g into a Mesh. Normals are zero-filled when g has none.
// The texture coordinate buffer is present iff g has texture coordinates,
// the tangent buffer iff it also has tangents.
func Pack(g *Geometry) *Mesh {
	n := len(g.Positions)
	m := &Mesh{
		Positions: make([]float32, 0, 3*n),
		Normals:   make([]float32, 3*n),
		Indices:   make([]uint32, len(g.Indices)),
		FaceCount: g.FaceCount,
		Center:    g.Center,
		Bounds:    ComputeBounds(g.Positions),
		Warnings:  g.Warnings,
	}

	for _, p := range g.Positions {
		m.Positions = append(m.Positions, p.X, p.Y, p.Z)
	}
	for i := 0; i < n && i < len(g.Normals); i++ {
		m.Normals[i*3] = g.Normals[i].X
		m.Normals[i*3+1] = g.Normals[i].Y
		m.Normals[i*3+2] = g.Normals[i].Z
	}

	if len(g.TexCoords) > 0 {
		m.TexCoords = make([]float32, 2*n)
		for i := 0; i < n && i < len(g.TexCoords); i++ {
			m.TexCoords[i*2] = g.TexCoords[i].X
			m.TexCoords[i*2+1] = g.TexCoords[i].Y
		}

		if len(g.Tangents) > 0 {
			m.Tangents = make([]float32, 4*n)
			for i := 0; i < n && i < len(g.Tangents); i++ {
				t := g.Tangents[i]
				m.Tangents[i*4] = t.X
				m.Tangents[i*4+1] = t.Y
				m.Tangents[i*4+2] = t.Z
				m.Tangents[i*4+3] = t.W
			}
		}
	}

	copy(m.Indices, g.Indices)
	return m
}

// Summary returns the counts reported after a load.
func (m *Mesh) Summary() Summary {
	s := Summary{
		Vertices:  m.VertexCount(),
		Faces:     m.FaceCount,
		Triangles: m.TriangleCount(),
		Normals:   len(m.Normals) / 3,
	}
	if m.HasTexCoords() {
		s.TexCoords = len(m.TexCoords) / 2
	}
	if m.HasTangents() {
		s.Tangents = len(m.Tangents) / 4
	}
	return s
}

// Fields returns the summary as structured log fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("vertices", s.Vertices),
		zap.Int("faces", s.Faces),
		zap.Int("triangles", s.Triangles),
		zap.Int("normals", s.Normals),
		zap.Int("tangents", s.Tangents),
		zap.Int("texcoords", s.TexCoords),
	}
}
