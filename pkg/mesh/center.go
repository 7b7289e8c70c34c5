package mesh

import "github.com/Faultbox/vbomesh/pkg/math"

// ComputeBounds returns the axis-aligned bounding box of positions.
// An empty slice yields a zero box.
func ComputeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center translates positions so their bounding box is centered at the
// origin and returns the offset that was subtracted. Empty input is a no-op.
func Center(positions []math.Vec3) math.Vec3 {
	if len(positions) == 0 {
		return math.Vec3{}
	}

	c := ComputeBounds(positions).Center()
	for i := range positions {
		positions[i] = positions[i].Sub(c)
	}
	return c
}
