package mesh

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/vbomesh/pkg/formats"
	"github.com/Faultbox/vbomesh/pkg/math"
)

func TestLoad_CommentsOnly(t *testing.T) {
	src := "# nothing here\n\n# still nothing\n"

	m, err := Load(strings.NewReader(src), Options{
		Recenter:         true,
		LoadTexCoords:    true,
		GenerateTangents: true,
		Logger:           zaptest.NewLogger(t),
	})

	require.NoError(t, err)
	assert.Zero(t, m.VertexCount())
	assert.Zero(t, m.TriangleCount())
	assert.Empty(t, m.Warnings)
	assert.False(t, m.HasTexCoords())
}

func TestLoadFile_Cube(t *testing.T) {
	m, err := LoadFile(filepath.Join("testdata", "cube.obj"), Options{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, 6, m.FaceCount)
	assert.Equal(t, filepath.Join("testdata", "cube.obj"), m.Source)
	assert.Len(t, m.Normals, 24)
	for i := 0; i < m.VertexCount(); i++ {
		assert.InDelta(t, 1, m.Normal(i).Length(), epsilon, "normal %d", i)
	}
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices[:6])
}

func TestLoad_Recenter(t *testing.T) {
	src := "v 10 10 10\nv 12 10 10\nv 12 14 10\nv 10 14 16\nf 1 2 3 4\n"

	m, err := Load(strings.NewReader(src), Options{Recenter: true})
	require.NoError(t, err)

	assertVec3(t, math.Vec3{X: 11, Y: 12, Z: 13}, m.Center)
	assertVec3(t, math.Vec3{}, m.Bounds.Center())
	assertVec3(t, math.Vec3{X: -1, Y: -2, Z: -3}, m.Position(0))

	// Recentering must not touch orientation data.
	plain, err := Load(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, plain.Normals, m.Normals)
	assert.Equal(t, math.Vec3{}, plain.Center)
}

func TestLoadFile_QuadTangents(t *testing.T) {
	m, err := LoadFile(filepath.Join("testdata", "quad_uv.obj"), Options{
		LoadTexCoords:    true,
		GenerateTangents: true,
	})
	require.NoError(t, err)

	require.True(t, m.HasTexCoords())
	require.True(t, m.HasTangents())
	assert.Len(t, m.TexCoords, 8)
	assert.Len(t, m.Tangents, 16)
	for i := 0; i < m.VertexCount(); i++ {
		tan := m.Tangent(i)
		assertVec3(t, math.Vec3{X: 1}, tan.XYZ(), "tangent %d", i)
		assert.Equal(t, m.Tangent(0).W, tan.W)
	}
	// Normals come from the file, not the synthesizer.
	assertVec3(t, math.Vec3{Z: 1}, m.Normal(2))
}

func TestLoad_OptionalStages(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf 1/1 2/2 3/3\n"

	tests := []struct {
		name         string
		opts         Options
		wantTexCoord bool
		wantTangent  bool
	}{
		{"defaults", Options{}, false, false},
		{"tangents without texcoords", Options{GenerateTangents: true}, false, false},
		{"texcoords only", Options{LoadTexCoords: true}, true, false},
		{"texcoords and tangents", Options{LoadTexCoords: true, GenerateTangents: true}, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Load(strings.NewReader(src), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTexCoord, m.HasTexCoords())
			assert.Equal(t, tc.wantTangent, m.HasTangents())
		})
	}
}

func TestLoad_IndexMismatchStillLoads(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf 1/3 2/2 3/1\n"

	core, logs := observer.New(zapcore.WarnLevel)
	m, err := Load(strings.NewReader(src), Options{LoadTexCoords: true, Logger: zap.New(core)})
	require.NoError(t, err)

	assert.Equal(t, 1, m.TriangleCount())
	require.NotEmpty(t, m.Warnings)
	assert.Equal(t, formats.WarnIndexMismatch, m.Warnings[0].Kind)

	entries := logs.FilterMessage("mesh loaded with warnings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
}

func TestLoad_DegenerateUVWarning(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0.5 0.5\nvt 0.5 0.5\nvt 0.5 0.5\nf 1/1 2/2 3/3\n"

	m, err := Load(strings.NewReader(src), Options{LoadTexCoords: true, GenerateTangents: true})
	require.NoError(t, err)

	require.True(t, m.HasTangents())
	for _, f := range m.Tangents {
		assert.False(t, math32.IsNaN(f) || math32.IsInf(f, 0), "non-finite value in tangent buffer")
	}
	assert.Equal(t, 1, formats.CountWarnings(m.Warnings)[formats.WarnDegenerateUV])
}

func TestLoad_SummaryLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	_, err := LoadFile(filepath.Join("testdata", "cube.obj"), Options{Logger: zap.New(core)})
	require.NoError(t, err)

	entries := logs.FilterMessage("loaded mesh").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(8), fields["vertices"])
	assert.Equal(t, int64(6), fields["faces"])
	assert.Equal(t, int64(12), fields["triangles"])
	assert.Equal(t, filepath.Join("testdata", "cube.obj"), fields["path"])
}

func TestLoadFile_Missing(t *testing.T) {
	m, err := LoadFile(filepath.Join(t.TempDir(), "nope.obj"), Options{})
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, formats.ErrSourceUnavailable), "got %v", err)
}

func TestLoadFile_ReadErrorWrappedOnce(t *testing.T) {
	// Opening a directory succeeds, reading it does not
	dir := t.TempDir()
	m, err := LoadFile(dir, Options{})

	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, formats.ErrSourceUnavailable), "got %v", err)
	assert.Equal(t, 1, strings.Count(err.Error(), formats.ErrSourceUnavailable.Error()), "got %v", err)
}

func TestLoad_WarningKindsLoggedInOrder(t *testing.T) {
	// Out of range is found after parsing, malformed and mismatch while parsing
	src := "v 0 0 0\nv 1 0 0\nv 0 1 x\nvn 0 0 1\nvn 0 0 1\nvn 0 0 1\nf 1//2 2//2 3//3\nf 1 2 7\n"

	for i := 0; i < 10; i++ {
		core, logs := observer.New(zapcore.WarnLevel)
		_, err := Load(strings.NewReader(src), Options{Logger: zap.New(core)})
		require.NoError(t, err)

		var kinds []string
		for _, e := range logs.FilterMessage("mesh loaded with warnings").All() {
			kinds = append(kinds, e.ContextMap()["kind"].(string))
		}
		assert.Equal(t, []string{"IndexMismatch", "MalformedRecord", "IndexOutOfRange"}, kinds)
	}
}

func TestLoad_NonFiniteVertexDoesNotSpread(t *testing.T) {
	src := "v nan 0 0\nv 1 0 0\nv 0 1 0\nv 5 5 5\nf 2 3 4\n"

	m, err := Load(strings.NewReader(src), Options{Recenter: true})
	require.NoError(t, err)

	for i, f := range m.Positions {
		assert.False(t, math32.IsNaN(f) || math32.IsInf(f, 0), "position component %d is %v", i, f)
	}
	assert.Equal(t, 1, formats.CountWarnings(m.Warnings)[formats.WarnMalformedRecord])
	assertVec3(t, math.Vec3{X: 2.5, Y: 2.5, Z: 2.5}, m.Center)
}
