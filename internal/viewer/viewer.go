// Package viewer implements the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/internal/config"
	"github.com/Faultbox/vbomesh/internal/engine/camera"
	"github.com/Faultbox/vbomesh/internal/engine/debug"
	"github.com/Faultbox/vbomesh/internal/engine/input"
	"github.com/Faultbox/vbomesh/internal/engine/renderer"
	"github.com/Faultbox/vbomesh/internal/engine/window"
	"github.com/Faultbox/vbomesh/internal/logger"
	"github.com/Faultbox/vbomesh/internal/watch"
	"github.com/Faultbox/vbomesh/pkg/mesh"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	path    string
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	watcher  *watch.Watcher

	mesh   *mesh.Mesh
	gpu    *renderer.GPUMesh
	bounds *renderer.LineMesh

	showBounds  bool
	screenshots *debug.Screenshots
}

// New opens a window and loads the mesh at path.
func New(cfg *config.Config, path string) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		path:   path,
		log:    logger.Named("viewer"),
		input:  input.New(),
		camera: camera.NewOrbitCamera(),

		screenshots: debug.NewScreenshots("screenshots", "vbomesh"),
	}
	v.camera.FOV = cfg.Viewer.FOV

	v.log.Info("initializing viewer",
		zap.String("mesh", path),
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	// Load before opening a window so a bad path fails fast
	m, err := mesh.LoadFile(path, cfg.MeshOptions(logger.Named("mesh")))
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      windowTitle(path, m),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: cfg.Viewer.Background,
		Wireframe:  cfg.Viewer.Wireframe,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.show(m); err != nil {
		v.Close()
		return nil, err
	}
	v.camera.FitToBounds(m.Bounds)

	if cfg.Watch.Enabled {
		debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
		v.watcher, err = watch.New(path, debounce, logger.Named("watch"))
		if err != nil {
			// Viewing still works without hot reload
			v.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	v.log.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the main render loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	v.gpu.Destroy()
	v.bounds.Destroy()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		v.renderer.Resize(v.window.DrawableSize())

	case input.EventMouseMove:
		if e.Dragging() {
			v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(e.Wheel)

	case input.EventKeyDown:
		switch keyAction(e.Key) {
		case actionQuit:
			v.running = false
		case actionWireframe:
			v.renderer.SetWireframe(!v.renderer.Wireframe())
		case actionNormals:
			v.renderer.SetMode(renderer.ShadeNormals.Toggle(v.renderer.Mode()))
		case actionTangents:
			if !v.mesh.HasTangents() {
				v.log.Info("mesh has no tangents, load with -tangents")
				return
			}
			v.renderer.SetMode(renderer.ShadeTangents.Toggle(v.renderer.Mode()))
		case actionTexCoords:
			v.renderer.SetMode(renderer.ShadeTexCoords.Toggle(v.renderer.Mode()))
		case actionReload:
			v.reload()
		case actionFrame:
			v.camera.FitToBounds(v.mesh.Bounds)
		case actionBounds:
			v.showBounds = !v.showBounds
		case actionScreenshot:
			v.screenshot()
		}
	}
}

// update pans with the arrow keys and picks up file changes.
func (v *Viewer) update(dt float64) {
	keys := sdl.GetKeyboardState()
	var forward, right float32
	if keys[sdl.SCANCODE_UP] != 0 {
		forward++
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		forward--
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		right++
	}
	if keys[sdl.SCANCODE_LEFT] != 0 {
		right--
	}
	if forward != 0 || right != 0 {
		scale := float32(dt * 60)
		v.camera.HandleMovement(forward*scale, right*scale, 0)
	}

	if v.watcher == nil {
		return
	}
	select {
	case _, ok := <-v.watcher.Reloads():
		if ok {
			v.reload()
		}
	default:
	}
}

func (v *Viewer) render() {
	view := v.camera.ViewMatrix()
	projection := v.camera.ProjectionMatrix(v.renderer.Aspect())

	v.renderer.Begin()
	v.renderer.Draw(v.gpu, view, projection)
	if v.showBounds {
		v.renderer.DrawLines(v.bounds, view, projection, mgl32.Vec3{1, 0.85, 0.2})
	}
}

func (v *Viewer) screenshot() {
	// Capture what is on screen now, not a half-drawn back buffer
	v.render()
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.Save(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// reload reads the mesh again. On failure the current mesh stays on screen.
func (v *Viewer) reload() {
	m, err := mesh.LoadFile(v.path, v.config.MeshOptions(logger.Named("mesh")))
	if err != nil {
		v.log.Error("reload failed", zap.Error(err))
		return
	}
	if err := v.show(m); err != nil {
		v.log.Error("upload failed", zap.Error(err))
		return
	}
	v.window.SetTitle(windowTitle(v.path, m))
	v.log.Info("mesh reloaded", m.Summary().Fields()...)
}

// show uploads m and replaces the displayed mesh.
func (v *Viewer) show(m *mesh.Mesh) error {
	gpu, err := v.renderer.Upload(m)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", v.path, err)
	}
	v.gpu.Destroy()
	v.gpu = gpu
	v.mesh = m

	v.bounds.Destroy()
	v.bounds = v.renderer.UploadLines(debug.BoundsLines(m.Bounds, debug.PaddingFor(m.Bounds)))

	if v.renderer.Mode() == renderer.ShadeTangents && !m.HasTangents() {
		v.renderer.SetMode(renderer.ShadeLit)
	}
	return nil
}

func windowTitle(path string, m *mesh.Mesh) string {
	return fmt.Sprintf("%s - %d vertices, %d triangles", filepath.Base(path), m.VertexCount(), m.TriangleCount())
}
