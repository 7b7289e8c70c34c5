// Package mesh turns parsed OBJ data into GPU-ready buffers: it synthesizes
// missing normals and tangents, optionally recenters the model and packs
// every attribute into flat arrays.
package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/pkg/formats"
	"github.com/Faultbox/vbomesh/pkg/math"
)

// Options selects the optional pipeline stages.
type Options struct {
	// Recenter moves the bounding box center to the origin.
	Recenter bool
	// LoadTexCoords reads "vt" records and enables tangent generation.
	LoadTexCoords bool
	// GenerateTangents computes tangents when texture coordinates exist.
	GenerateTangents bool

	// Logger receives warnings and the load summary. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Geometry holds index-aligned per-vertex attribute lists and the triangle
// list. It is the working form the pipeline stages mutate.
type Geometry struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Tangents  []math.Vec4
	Indices   []uint32

	FaceCount int
	Center    math.Vec3
	Warnings  []formats.Warning
}

// GeometryFromOBJ wraps a parse result without copying its slices.
func GeometryFromOBJ(obj *formats.OBJ) *Geometry {
	return &Geometry{
		Positions: obj.Positions,
		Normals:   obj.Normals,
		TexCoords: obj.TexCoords,
		Indices:   obj.Indices,
		FaceCount: obj.FaceCount,
		Warnings:  obj.Warnings,
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is the packed output of a load. Buffers are flat and tightly packed:
// 3 floats per vertex for positions and normals, 2 for texture coordinates,
// 4 for tangents (xyz direction, w handedness) and 3 indices per triangle.
// TexCoords and Tangents are nil when absent.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Tangents  []float32
	Indices   []uint32

	// FaceCount is the number of polygon records before triangulation.
	FaceCount int
	// Bounds is computed after centering.
	Bounds Bounds
	// Center is the offset subtracted from every position, zero if the
	// mesh was not recentered.
	Center math.Vec3

	Warnings []formats.Warning
	Source   string
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasTexCoords reports whether a texture coordinate buffer is present.
func (m *Mesh) HasTexCoords() bool {
	return m.TexCoords != nil
}

// HasTangents reports whether a tangent buffer is present.
func (m *Mesh) HasTangents() bool {
	return m.Tangents != nil
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[i*3], Y: m.Positions[i*3+1], Z: m.Positions[i*3+2]}
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) math.Vec3 {
	return math.Vec3{X: m.Normals[i*3], Y: m.Normals[i*3+1], Z: m.Normals[i*3+2]}
}

// Tangent returns vertex i's tangent. Panics if the mesh has no tangents.
func (m *Mesh) Tangent(i int) math.Vec4 {
	return math.Vec4{X: m.Tangents[i*4], Y: m.Tangents[i*4+1], Z: m.Tangents[i*4+2], W: m.Tangents[i*4+3]}
}
