package renderer

import "fmt"

// ShadeMode selects what the fragment shader visualizes. Values match uMode
// in the mesh fragment shader.
type ShadeMode int32

const (
	ShadeLit ShadeMode = iota
	ShadeNormals
	ShadeTangents
	ShadeTexCoords

	// shadeSolid fills with the uniform color, used for overlays
	shadeSolid
)

func (m ShadeMode) String() string {
	switch m {
	case ShadeLit:
		return "lit"
	case ShadeNormals:
		return "normals"
	case ShadeTangents:
		return "tangents"
	case ShadeTexCoords:
		return "texcoords"
	default:
		return fmt.Sprintf("ShadeMode(%d)", int32(m))
	}
}

// Toggle returns m, or ShadeLit if the current mode is already m.
func (m ShadeMode) Toggle(current ShadeMode) ShadeMode {
	if current == m {
		return ShadeLit
	}
	return m
}
