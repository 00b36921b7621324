// Package renderertest provides a GL-free renderer backend that records
// every call, for tests of code built on the renderer.
package renderertest

import (
	"fmt"

	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type Backend struct {
	Calls    []string
	Uniforms map[metadata.ShaderUniform]math.Mat4
	Draws    []metadata.GeometryRenderData

	// Live resource counts.
	Streams  int
	Textures int
	Shaders  int

	BeginErr   error
	EndErr     error
	ShaderErr  error
	TextureErr error

	nextHandle uint32
}

func New() *Backend {
	return &Backend{Uniforms: make(map[metadata.ShaderUniform]math.Mat4)}
}

// Reset forgets the recorded calls and draws.
func (b *Backend) Reset() {
	b.Calls = nil
	b.Draws = nil
}

func (b *Backend) record(format string, args ...interface{}) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) handle() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.record("init %s %dx%d", appName, appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	b.record("shutdown")
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.record("resized %dx%d", width, height)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	b.record("begin")
	return b.BeginErr
}

func (b *Backend) EndFrame(deltaTime float64) error {
	b.record("end")
	return b.EndErr
}

func (b *Backend) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	if b.TextureErr != nil {
		return b.TextureErr
	}
	texture.InternalData = b.handle()
	texture.Generation++
	b.Textures++
	b.record("texture %s", texture.Name)
	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) {
	if texture.InternalData == nil {
		return
	}
	texture.InternalData = nil
	b.Textures--
	b.record("texture destroy %s", texture.Name)
}

func (b *Backend) VertexStreamCreate(stream *metadata.VertexStream) error {
	stream.InternalData = b.handle()
	b.Streams++
	b.record("stream %s", stream.Name)
	return nil
}

func (b *Backend) VertexStreamDestroy(stream *metadata.VertexStream) {
	if stream.InternalData == nil {
		return
	}
	stream.InternalData = nil
	b.Streams--
	b.record("stream destroy %s", stream.Name)
}

func (b *Backend) ShaderCreate(shader *metadata.Shader) error {
	if b.ShaderErr != nil {
		return b.ShaderErr
	}
	shader.InternalData = b.handle()
	b.Shaders++
	b.record("shader %s", shader.Name)
	return nil
}

func (b *Backend) ShaderDestroy(shader *metadata.Shader) {
	if shader.InternalData == nil {
		return
	}
	shader.InternalData = nil
	b.Shaders--
	b.record("shader destroy %s", shader.Name)
}

func (b *Backend) ShaderUse(shader *metadata.Shader) error {
	b.record("use %s", shader.Name)
	return nil
}

func (b *Backend) SetUniformMat4(shader *metadata.Shader, uniform metadata.ShaderUniform, value math.Mat4) error {
	b.Uniforms[uniform] = value
	b.record("uniform %s", uniform.Name())
	return nil
}

func (b *Backend) SetUniformSampler(shader *metadata.Shader, uniform metadata.ShaderUniform, unit int32) error {
	b.record("sampler %s %d", uniform.Name(), unit)
	return nil
}

// DrawGeometry records a copy of data, model matrix included.
func (b *Backend) DrawGeometry(data *metadata.GeometryRenderData) {
	b.Draws = append(b.Draws, *data)
	b.record("draw %s %d", data.Geometry.Name, data.Geometry.VertexCount)
}
