package math

// Vec4 is a 4D vector. Tangents use XYZ for direction and W for handedness.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return v.XYZ().IsFinite() && isFinite(v.W)
}
