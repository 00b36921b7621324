package renderer

import (
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture)
	VertexStreamCreate(stream *metadata.VertexStream) error
	VertexStreamDestroy(stream *metadata.VertexStream)
	ShaderCreate(shader *metadata.Shader) error
	ShaderDestroy(shader *metadata.Shader)
	ShaderUse(shader *metadata.Shader) error
	SetUniformMat4(shader *metadata.Shader, uniform metadata.ShaderUniform, value math.Mat4) error
	SetUniformSampler(shader *metadata.Shader, uniform metadata.ShaderUniform, unit int32) error
	DrawGeometry(data *metadata.GeometryRenderData)
}
