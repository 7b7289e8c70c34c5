package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vbomesh/pkg/math"
)

// GenerateTangents computes a per-vertex tangent for normal mapping.
// normals and texCoords must be index-aligned with positions.
//
// Each triangle's tangent and bitangent are derived from its position and
// texture coordinate deltas and summed, unweighted, into its three vertices.
// The summed tangent is then Gram-Schmidt orthogonalized against the vertex
// normal; w holds the handedness (-1 or +1) so the bitangent can be rebuilt
// as cross(N, T) * w.
//
// Triangles whose UV mapping is degenerate (zero determinant) contribute
// nothing and are counted in the second return value. A vertex left without
// a usable tangent gets an arbitrary unit tangent orthogonal to its normal
// with w = +1, so the output never contains NaN or Inf.
func GenerateTangents(positions, normals []math.Vec3, texCoords []math.Vec2, indices []uint32) ([]math.Vec4, int) {
	tan1 := make([]math.Vec3, len(positions))
	tan2 := make([]math.Vec3, len(positions))
	skipped := 0

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		q1 := positions[i1].Sub(positions[i0])
		q2 := positions[i2].Sub(positions[i0])

		d1 := texCoords[i1].Sub(texCoords[i0])
		d2 := texCoords[i2].Sub(texCoords[i0])

		det := d1.Cross(d2)
		if det == 0 {
			skipped++
			continue
		}
		r := 1 / det

		tangent := q1.Scale(d2.Y).Sub(q2.Scale(d1.Y)).Scale(r)
		bitangent := q2.Scale(d1.X).Sub(q1.Scale(d2.X)).Scale(r)
		if !tangent.IsFinite() || !bitangent.IsFinite() {
			skipped++
			continue
		}

		tan1[i0] = tan1[i0].Add(tangent)
		tan1[i1] = tan1[i1].Add(tangent)
		tan1[i2] = tan1[i2].Add(tangent)
		tan2[i0] = tan2[i0].Add(bitangent)
		tan2[i1] = tan2[i1].Add(bitangent)
		tan2[i2] = tan2[i2].Add(bitangent)
	}

	tangents := make([]math.Vec4, len(positions))
	for i := range tangents {
		n := normals[i]
		t := tan1[i]

		// Gram-Schmidt orthogonalize
		ortho := t.Sub(n.Scale(n.Dot(t))).Normalize()
		if ortho.IsZero() {
			tangents[i] = orthogonalTo(n).Vec4(1)
			continue
		}

		w := float32(1)
		if n.Cross(t).Dot(tan2[i]) < 0 {
			w = -1
		}
		tangents[i] = ortho.Vec4(w)
	}

	return tangents, skipped
}

// orthogonalTo returns a unit vector perpendicular to n, or +X when n is zero.
func orthogonalTo(n math.Vec3) math.Vec3 {
	n = n.Normalize()
	if n.IsZero() {
		return math.Vec3{X: 1}
	}

	axis := math.Vec3{X: 1}
	if math32.Abs(n.X) > 0.9 {
		axis = math.Vec3{Y: 1}
	}
	return axis.Sub(n.Scale(n.Dot(axis))).Normalize()
}
