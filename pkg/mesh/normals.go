package mesh

import "github.com/Faultbox/vbomesh/pkg/math"

// GenerateNormals computes one normal per position by summing the unit face
// normals of every triangle that uses it, then normalizing. Each adjacent
// triangle contributes equally. Vertices touched only by zero-area
// triangles, or by none, get a zero normal.
func GenerateNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])
		n := edge1.Cross(edge2).Normalize()

		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
