package mesh

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/pkg/formats"
)

// Load parses an OBJ stream and runs the full pipeline. The only error it
// returns wraps formats.ErrSourceUnavailable; everything else is reported
// through Mesh.Warnings.
func Load(r io.Reader, opts Options) (*Mesh, error) {
	obj, err := formats.ParseOBJ(r, objOptions(opts))
	if err != nil {
		return nil, err
	}
	return finish(obj, opts, opts.logger()), nil
}

// LoadFile loads an OBJ file from disk.
func LoadFile(path string, opts Options) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path, objOptions(opts))
	if err != nil {
		return nil, err
	}

	m := finish(obj, opts, opts.logger().With(zap.String("path", path)))
	m.Source = path
	return m, nil
}

func objOptions(opts Options) formats.OBJOptions {
	return formats.OBJOptions{LoadTexCoords: opts.LoadTexCoords}
}

func finish(obj *formats.OBJ, opts Options, log *zap.Logger) *Mesh {
	m := Process(GeometryFromOBJ(obj), opts)
	logResult(log, m)
	return m
}

// Process runs the post-parse stages on g in order: normal synthesis when
// g has no normals, tangent synthesis when requested and texture
// coordinates exist, recentering when requested, then packing.
func Process(g *Geometry, opts Options) *Mesh {
	if len(g.Normals) == 0 {
		g.Normals = GenerateNormals(g.Positions, g.Indices)
	}

	if opts.GenerateTangents && len(g.TexCoords) > 0 {
		tangents, skipped := GenerateTangents(g.Positions, g.Normals, g.TexCoords, g.Indices)
		g.Tangents = tangents
		if skipped > 0 {
			g.Warnings = append(g.Warnings, formats.Warning{
				Kind:    formats.WarnDegenerateUV,
				Message: fmt.Sprintf("%d triangles have degenerate texture coordinates", skipped),
			})
		}
	}

	if opts.Recenter {
		g.Center = Center(g.Positions)
	}

	return Pack(g)
}

func logResult(log *zap.Logger, m *Mesh) {
	for _, w := range m.Warnings {
		log.Debug("mesh warning", zap.Stringer("warning", w))
	}
	counts := formats.CountWarnings(m.Warnings)
	kinds := make([]formats.WarningKind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		log.Warn("mesh loaded with warnings",
			zap.Stringer("kind", kind),
			zap.Int("count", counts[kind]),
		)
	}
	log.Info("loaded mesh", m.Summary().Fields()...)
}
