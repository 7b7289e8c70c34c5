// Package renderer uploads packed meshes to OpenGL and draws them.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/internal/engine/shader"
	"github.com/Faultbox/vbomesh/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	Wireframe  bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.MeshProgram
	mode    ShadeMode
	log     *zap.Logger

	lightDir mgl32.Vec3
	color    mgl32.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		lightDir: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
		color:    mgl32.Vec3{0.8, 0.8, 0.78},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	var err error
	r.program, err = shader.CompileMesh()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		gl.DeleteProgram(r.program.ID)
		r.program = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Wireframe reports whether polygons are drawn as lines.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// SetWireframe toggles line rendering.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	r.log.Debug("wireframe", zap.Bool("enabled", on))
}

// Mode returns the current shading mode.
func (r *Renderer) Mode() ShadeMode {
	return r.mode
}

// SetMode switches the shading mode.
func (r *Renderer) SetMode(m ShadeMode) {
	r.mode = m
	r.log.Debug("shading mode", zap.Stringer("mode", m))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders a mesh with the given camera matrices.
func (r *Renderer) Draw(m *GPUMesh, view, projection mgl32.Mat4) {
	if m == nil || m.indexCount == 0 {
		return
	}

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.use(view, projection, r.mode, r.color)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// use binds the mesh program and sets every uniform.
func (r *Renderer) use(view, projection mgl32.Mat4, mode ShadeMode, color mgl32.Vec3) {
	model := mgl32.Ident4()
	p := r.program
	gl.UseProgram(p.ID)
	gl.UniformMatrix4fv(p.Model, 1, false, &model[0])
	gl.UniformMatrix4fv(p.View, 1, false, &view[0])
	gl.UniformMatrix4fv(p.Projection, 1, false, &projection[0])
	gl.Uniform1i(p.Mode, int32(mode))
	gl.Uniform3fv(p.LightDir, 1, &r.lightDir[0])
	gl.Uniform3fv(p.Color, 1, &color[0])
}

// ReadPixels returns the current framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
