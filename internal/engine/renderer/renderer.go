// Package renderer draws the viewer's debug geometry with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/engine/debug"
	"github.com/Faultbox/townview/internal/engine/shader"
	"github.com/Faultbox/townview/internal/logger"
)

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vertexColor;

void main() {
	gl_Position = uProjection * uView * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	lineProgram *shader.Program
	locView     int32
	locProj     int32

	lineVAO uint32
	lineVBO uint32
	// Bytes allocated in lineVBO
	lineCap int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
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
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.lineProgram, err = shader.Compile(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}
	if r.locView, err = r.lineProgram.Uniform("uView"); err != nil {
		r.lineProgram.Delete()
		return nil, err
	}
	if r.locProj, err = r.lineProgram.Uniform("uProjection"); err != nil {
		r.lineProgram.Delete()
		return nil, err
	}

	r.createLineBuffers()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
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

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines uploads the line list and draws it with the given camera.
func (r *Renderer) DrawLines(lines *debug.Lines, view, proj mgl32.Mat4) {
	data := lines.Data()
	if len(data) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(data) * 4
	if size > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
		r.lineCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.lineProgram.Use()
	shader.SetMat4(r.locView, view)
	shader.SetMat4(r.locProj, proj)

	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(lines.VertexCount()))
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// createLineBuffers sets up the VAO for position + color vertices.
func (r *Renderer) createLineBuffers() {
	stride := int32(debug.FloatsPerVertex * 4)

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("line buffers created",
		zap.Uint32("vao", r.lineVAO),
		zap.Uint32("vbo", r.lineVBO),
	)
}
