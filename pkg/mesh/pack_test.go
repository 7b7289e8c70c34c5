package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vbomesh/pkg/math"
)

func TestPack_Layout(t *testing.T) {
	g := &Geometry{
		Positions: []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}, {X: 7, Y: 8, Z: 9}},
		Normals:   []math.Vec3{{Z: 1}, {Y: 1}, {X: 1}},
		TexCoords: []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Tangents:  []math.Vec4{{X: 1, W: 1}, {X: 1, W: -1}, {Y: 1, W: 1}},
		Indices:   []uint32{0, 1, 2},
		FaceCount: 1,
	}

	m := Pack(g)

	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 0, 1, 0, 0}, m.Normals)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, m.TexCoords)
	assert.Equal(t, []float32{1, 0, 0, 1, 1, 0, 0, -1, 0, 1, 0, 1}, m.Tangents)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, math.Vec3{X: 4, Y: 5, Z: 6}, m.Position(1))
	assert.Equal(t, math.Vec3{Y: 1}, m.Normal(1))
	assert.Equal(t, math.Vec4{X: 1, W: -1}, m.Tangent(1))
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, m.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 7, Y: 8, Z: 9}, m.Bounds.Max)
}

func TestPack_OptionalBuffers(t *testing.T) {
	positions := []math.Vec3{{}, {X: 1}, {Y: 1}}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}

	t.Run("no texcoords", func(t *testing.T) {
		m := Pack(&Geometry{Positions: positions, Normals: normals, Indices: []uint32{0, 1, 2}})
		assert.False(t, m.HasTexCoords())
		assert.False(t, m.HasTangents())
		assert.Nil(t, m.TexCoords)
		assert.Nil(t, m.Tangents)
	})

	t.Run("tangents without texcoords are dropped", func(t *testing.T) {
		m := Pack(&Geometry{
			Positions: positions,
			Normals:   normals,
			Tangents:  []math.Vec4{{X: 1, W: 1}, {X: 1, W: 1}, {X: 1, W: 1}},
		})
		assert.False(t, m.HasTangents())
	})

	t.Run("texcoords without tangents", func(t *testing.T) {
		m := Pack(&Geometry{
			Positions: positions,
			Normals:   normals,
			TexCoords: []math.Vec2{{}, {X: 1}, {Y: 1}},
		})
		assert.True(t, m.HasTexCoords())
		assert.Len(t, m.TexCoords, 6)
		assert.False(t, m.HasTangents())
	})

	t.Run("missing normals are zero", func(t *testing.T) {
		m := Pack(&Geometry{Positions: positions})
		require.Len(t, m.Normals, 9)
		for _, f := range m.Normals {
			assert.Zero(t, f)
		}
	})
}

func TestPack_Summary(t *testing.T) {
	m := Pack(&Geometry{
		Positions: []math.Vec3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		Normals:   []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}},
		TexCoords: []math.Vec2{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		Indices:   []uint32{0, 1, 2, 1, 3, 2},
		FaceCount: 1,
	})

	want := Summary{Vertices: 4, Faces: 1, Triangles: 2, Normals: 4, TexCoords: 4}
	assert.Equal(t, want, m.Summary())
	assert.Len(t, want.Fields(), 6)
}
