// objtool is a CLI utility for inspecting and converting OBJ meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/internal/logger"
	"github.com/Faultbox/vbomesh/pkg/export"
	"github.com/Faultbox/vbomesh/pkg/formats"
	"github.com/Faultbox/vbomesh/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "warnings", "warn":
		cmdWarnings(args)
	case "export", "x":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ mesh utility

Usage:
  objtool <command> [options]

Commands:
  info [options] <file.obj>               Show mesh statistics
  warnings [options] <file.obj>           List parse and processing warnings
  export [options] <file.obj> <out.glb>   Convert to binary glTF

Options (all commands):
  -texcoords   Load texture coordinates
  -tangents    Generate tangents (implies -texcoords)
  -recenter    Center the bounding box at the origin
  -v           Verbose logging

Examples:
  objtool info model.obj
  objtool warnings -texcoords model.obj
  objtool export -tangents -recenter model.obj model.glb`)
}

// meshFlags registers the pipeline flags shared by every command.
type meshFlags struct {
	texcoords *bool
	tangents  *bool
	recenter  *bool
	verbose   *bool
}

func newMeshFlags(fs *flag.FlagSet) *meshFlags {
	return &meshFlags{
		texcoords: fs.Bool("texcoords", false, "Load texture coordinates"),
		tangents:  fs.Bool("tangents", false, "Generate tangents (implies -texcoords)"),
		recenter:  fs.Bool("recenter", false, "Center the bounding box at the origin"),
		verbose:   fs.Bool("v", false, "Verbose logging"),
	}
}

func (f *meshFlags) options() mesh.Options {
	level := "warn"
	if *f.verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	return mesh.Options{
		Recenter:         *f.recenter,
		LoadTexCoords:    *f.texcoords || *f.tangents,
		GenerateTangents: *f.tangents,
		Logger:           logger.Named("mesh"),
	}
}

func load(path string, opts mesh.Options) *mesh.Mesh {
	m, err := mesh.LoadFile(path, opts)
	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	mf := newMeshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info [options] <file.obj>")
		os.Exit(1)
	}

	opts := mf.options()
	defer logger.Sync()
	m := load(fs.Arg(0), opts)

	s := m.Summary()
	size := m.Bounds.Size()

	fmt.Printf("Mesh:      %s\n", m.Source)
	fmt.Printf("Vertices:  %d\n", s.Vertices)
	fmt.Printf("Faces:     %d\n", s.Faces)
	fmt.Printf("Triangles: %d\n", s.Triangles)
	fmt.Printf("TexCoords: %s\n", yesNo(m.HasTexCoords()))
	fmt.Printf("Tangents:  %s\n", yesNo(m.HasTangents()))
	fmt.Printf("Bounds:    (%.4g, %.4g, %.4g) - (%.4g, %.4g, %.4g)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Printf("Size:      %.4g x %.4g x %.4g\n", size.X, size.Y, size.Z)
	if opts.Recenter {
		fmt.Printf("Offset:    (%.4g, %.4g, %.4g)\n", m.Center.X, m.Center.Y, m.Center.Z)
	}

	if len(m.Warnings) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Warnings by kind:")

	counts := formats.CountWarnings(m.Warnings)
	kinds := make([]formats.WarningKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return counts[kinds[i]] > counts[kinds[j]]
	})
	for _, k := range kinds {
		fmt.Printf("  %-18s %d\n", k, counts[k])
	}
}

func cmdWarnings(args []string) {
	fs := flag.NewFlagSet("warnings", flag.ExitOnError)
	mf := newMeshFlags(fs)
	limit := fs.Int("n", 0, "Limit output to N warnings (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool warnings [options] <file.obj>")
		os.Exit(1)
	}

	opts := mf.options()
	defer logger.Sync()
	m := load(fs.Arg(0), opts)

	for i, w := range m.Warnings {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... and %d more\n", len(m.Warnings)-*limit)
			break
		}
		fmt.Println(w)
	}

	if len(m.Warnings) == 0 {
		fmt.Println("No warnings")
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	mf := newMeshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool export [options] <file.obj> <out.glb>")
		os.Exit(1)
	}

	opts := mf.options()
	defer logger.Sync()
	m := load(fs.Arg(0), opts)

	out := fs.Arg(1)
	if err := export.WriteGLBFile(out, m); err != nil {
		logger.Error("export failed", zap.String("output", out), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Exported %s: %d vertices, %d triangles\n", out, m.VertexCount(), m.TriangleCount())
}
