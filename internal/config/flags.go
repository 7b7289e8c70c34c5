package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log", "", "Write logs to this file as well")
	flagRecenter  = flag.Bool("recenter", false, "Center the mesh bounding box at the origin")
	flagTexcoords = flag.Bool("texcoords", false, "Load texture coordinates")
	flagTangents  = flag.Bool("tangents", false, "Generate tangents (needs texture coordinates)")
	flagNoWatch   = flag.Bool("nowatch", false, "Do not reload the mesh when the file changes")
	flagWireframe = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagRecenter {
		cfg.Mesh.Recenter = true
	}
	if *flagTexcoords {
		cfg.Mesh.LoadTexCoords = true
	}
	if *flagTangents {
		cfg.Mesh.LoadTexCoords = true
		cfg.Mesh.GenerateTangents = true
	}
	if *flagNoWatch {
		cfg.Watch.Enabled = false
	}
	if *flagWireframe {
		cfg.Viewer.Wireframe = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
