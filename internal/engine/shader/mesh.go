package shader

import (
	_ "embed"
)

//go:embed shaders/mesh.vert
var meshVertexSrc string

//go:embed shaders/mesh.frag
var meshFragmentSrc string

// Vertex attribute locations used by the mesh program.
const (
	LocPosition = 0
	LocNormal   = 1
	LocTexCoord = 2
	LocTangent  = 3
)

// MeshProgram is the linked mesh shader with its uniform locations.
type MeshProgram struct {
	ID uint32

	Model      int32
	View       int32
	Projection int32
	Mode       int32
	LightDir   int32
	Color      int32
}

// CompileMesh builds the mesh shader program.
func CompileMesh() (*MeshProgram, error) {
	id, err := CompileProgram("mesh", meshVertexSrc, meshFragmentSrc)
	if err != nil {
		return nil, err
	}

	return &MeshProgram{
		ID:         id,
		Model:      MustGetUniform(id, "uModel"),
		View:       MustGetUniform(id, "uView"),
		Projection: MustGetUniform(id, "uProjection"),
		Mode:       MustGetUniform(id, "uMode"),
		LightDir:   MustGetUniform(id, "uLightDir"),
		Color:      MustGetUniform(id, "uColor"),
	}, nil
}

// MeshSources returns the embedded vertex and fragment shader sources.
func MeshSources() (vertex, fragment string) {
	return meshVertexSrc, meshFragmentSrc
}
