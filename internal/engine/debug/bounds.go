// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/vbomesh/pkg/mesh"

// BoundsVertexCount is the number of line vertices for a box (12 edges × 2).
const BoundsVertexCount = 24

// BoundsLines returns line-list vertices, [x, y, z] each, outlining b grown
// by padding on every side.
func BoundsLines(b mesh.Bounds, padding float32) []float32 {
	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// PaddingFor returns a padding proportional to the box size so the outline
// does not z-fight with faces lying on the bounds.
func PaddingFor(b mesh.Bounds) float32 {
	return b.Size().Length() * 0.005
}
