package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vbomesh/pkg/math"
)

// ErrSourceUnavailable is returned when an OBJ stream cannot be opened or read.
// It is the only condition that aborts a load.
var ErrSourceUnavailable = errors.New("OBJ source unavailable")

// OBJOptions controls which records the parser keeps.
type OBJOptions struct {
	// LoadTexCoords enables "vt" records. When false they are ignored entirely.
	LoadTexCoords bool
}

// OBJ is the raw result of parsing a Wavefront OBJ stream.
// All attribute lists share the position index space.
type OBJ struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2

	// Indices holds triangles, three position indices each.
	Indices []uint32

	// FaceCount is the number of "f" records read, before triangulation.
	FaceCount int

	Warnings []Warning
}

// TriangleCount returns the number of triangles in Indices.
func (o *OBJ) TriangleCount() int {
	return len(o.Indices) / 3
}

// faceRef is one face-vertex reference, 0-based; -1 means absent.
type faceRef struct {
	p, t, n int
}

type objParser struct {
	opts OBJOptions
	obj  *OBJ
	line int
	face []int
}

// ParseOBJ parses an OBJ stream. Per-line problems are recorded as warnings;
// only a read failure returns an error.
func ParseOBJ(r io.Reader, opts OBJOptions) (*OBJ, error) {
	p := &objParser{
		opts: opts,
		obj:  &OBJ{},
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSourceUnavailable, p.line+1, err)
		}
		if len(line) > 0 {
			p.line++
			p.parseLine(strings.TrimSpace(line))
		}
		if err == io.EOF {
			break
		}
	}

	p.dropOutOfRange()
	p.alignAttributes()

	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

func (p *objParser) parseLine(line string) {
	if line == "" || line[0] == '#' {
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		p.obj.Positions = append(p.obj.Positions, p.readVec3(fields))
	case "vn":
		p.obj.Normals = append(p.obj.Normals, p.readVec3(fields))
	case "vt":
		if p.opts.LoadTexCoords {
			p.obj.TexCoords = append(p.obj.TexCoords, p.readVec2(fields))
		}
	case "f":
		p.parseFace(fields[1:])
	}
}

// readFloats parses the first n fields after the keyword. Missing,
// malformed or non-finite components read as zero so the record keeps its
// index.
func (p *objParser) readFloats(fields []string, n int) []float32 {
	out := make([]float32, n)
	bad := len(fields)-1 < n
	for i := 0; i < n && i+1 < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		v := float32(f)
		if err != nil || math32.IsNaN(v) || math32.IsInf(v, 0) {
			bad = true
			continue
		}
		out[i] = v
	}
	if bad {
		p.warn(WarnMalformedRecord, "%q record needs %d finite numeric components", fields[0], n)
	}
	return out
}

func (p *objParser) readVec3(fields []string) math.Vec3 {
	f := p.readFloats(fields, 3)
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}
}

func (p *objParser) readVec2(fields []string) math.Vec2 {
	f := p.readFloats(fields, 2)
	return math.Vec2{X: f[0], Y: f[1]}
}

// parseFace resolves every reference of one "f" record and triangulates it
// as a fan anchored at the first reference.
func (p *objParser) parseFace(tokens []string) {
	p.obj.FaceCount++
	p.face = p.face[:0]

	for _, tok := range tokens {
		ref := p.parseRef(tok)
		if ref.p < 0 {
			p.warn(WarnMissingPosition, "face vertex %q has no position index", tok)
			continue
		}
		p.face = append(p.face, ref.p)

		if p.opts.LoadTexCoords && ref.t >= 0 && ref.t != ref.p {
			p.warn(WarnIndexMismatch, "texture index %d differs from position index %d", ref.t+1, ref.p+1)
		}
		if ref.n >= 0 && ref.n != ref.p {
			p.warn(WarnIndexMismatch, "normal index %d differs from position index %d", ref.n+1, ref.p+1)
		}
	}

	if len(p.face) < 3 {
		p.warn(WarnDegenerateFace, "face has %d usable vertices, need 3", len(p.face))
		return
	}

	v0 := uint32(p.face[0])
	for i := 2; i < len(p.face); i++ {
		p.obj.Indices = append(p.obj.Indices, v0, uint32(p.face[i-1]), uint32(p.face[i]))
	}
}

// parseRef splits p, p/t, p//n or p/t/n.
func (p *objParser) parseRef(tok string) faceRef {
	ref := faceRef{p: -1, t: -1, n: -1}
	parts := strings.SplitN(tok, "/", 3)

	ref.p = resolveIndex(parts[0], len(p.obj.Positions))
	if len(parts) > 1 {
		ref.t = resolveIndex(parts[1], len(p.obj.TexCoords))
	}
	if len(parts) > 2 {
		ref.n = resolveIndex(parts[2], len(p.obj.Normals))
	}
	return ref
}

// maxIndex is the largest 0-based index a uint32 index buffer can hold.
const maxIndex = 1<<32 - 1

// resolveIndex converts a 1-based OBJ index to 0-based. Negative values are
// relative to count, the number of records of that kind read so far.
// Returns -1 for empty, zero or malformed input and for indices that do not
// fit the uint32 index buffer.
func resolveIndex(s string, count int) int {
	if s == "" {
		return -1
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || i == 0 {
		return -1
	}
	if i < 0 {
		i += int64(count)
	} else {
		i--
	}
	if i < 0 || i > maxIndex {
		return -1
	}
	return int(i)
}

// dropOutOfRange removes triangles that reference positions never defined.
func (p *objParser) dropOutOfRange() {
	n := uint32(len(p.obj.Positions))
	kept := p.obj.Indices[:0]
	for i := 0; i+2 < len(p.obj.Indices); i += 3 {
		a, b, c := p.obj.Indices[i], p.obj.Indices[i+1], p.obj.Indices[i+2]
		if a >= n || b >= n || c >= n {
			p.obj.Warnings = append(p.obj.Warnings, Warning{
				Kind:    WarnIndexOutOfRange,
				Message: fmt.Sprintf("triangle (%d, %d, %d) references a vertex beyond %d positions", a+1, b+1, c+1, n),
			})
			continue
		}
		kept = append(kept, a, b, c)
	}
	p.obj.Indices = kept
}

// alignAttributes pads or truncates non-empty normal and texcoord lists to
// the position count so every list shares one index space.
func (p *objParser) alignAttributes() {
	n := len(p.obj.Positions)
	if l := len(p.obj.Normals); l > 0 && l != n {
		p.obj.Warnings = append(p.obj.Warnings, Warning{
			Kind:    WarnAttributeCount,
			Message: fmt.Sprintf("%d normals for %d positions", l, n),
		})
		p.obj.Normals = resize(p.obj.Normals, n)
	}
	if l := len(p.obj.TexCoords); l > 0 && l != n {
		p.obj.Warnings = append(p.obj.Warnings, Warning{
			Kind:    WarnAttributeCount,
			Message: fmt.Sprintf("%d texture coordinates for %d positions", l, n),
		})
		p.obj.TexCoords = resize(p.obj.TexCoords, n)
	}
}

func resize[T any](s []T, n int) []T {
	if len(s) >= n {
		return s[:n]
	}
	return append(s, make([]T, n-len(s))...)
}

func (p *objParser) warn(kind WarningKind, format string, args ...any) {
	p.obj.Warnings = append(p.obj.Warnings, Warning{
		Line:    p.line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}
