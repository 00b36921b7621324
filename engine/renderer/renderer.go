package renderer

import (
	"fmt"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

// Renderer is the frontend every system talks to. It owns the active shader
// and the camera matrices and forwards the rest to the backend.
type Renderer struct {
	backend RendererBackend

	activeShader *metadata.Shader
	projection   math.Mat4
	view         math.Mat4
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend:    backend,
		projection: math.NewMat4Identity(),
		view:       math.NewMat4Identity(),
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	r.activeShader = nil
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	return r.backend.EndFrame(deltaTime)
}

// DrawFrame clears the target, draws every geometry of the packet in order
// and presents the result.
func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	for i := range renderPacket.Geometries {
		data := &renderPacket.Geometries[i]
		if r.activeShader != nil {
			if err := r.backend.SetUniformMat4(r.activeShader, metadata.ShaderUniformModel, data.Model); err != nil {
				core.LogWarn("failed to upload model matrix for %s: %s", data.Geometry.Name, err)
			}
		}
		r.backend.DrawGeometry(data)
	}

	if err := r.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func (r *Renderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	return r.backend.TextureCreate(pixels, texture)
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) {
	r.backend.TextureDestroy(texture)
}

// CreateGeometry uploads the vertex streams of geometry. Streams shared with
// a geometry created earlier are uploaded only once.
func (r *Renderer) CreateGeometry(geometry *metadata.Geometry) error {
	if geometry.Positions == nil || geometry.Texcoords == nil {
		return fmt.Errorf("geometry %s is missing a vertex stream", geometry.Name)
	}
	if geometry.Positions.VertexCount() != geometry.VertexCount || geometry.Texcoords.VertexCount() != geometry.VertexCount {
		return fmt.Errorf("geometry %s expects %d vertices, streams hold %d positions and %d texcoords",
			geometry.Name, geometry.VertexCount, geometry.Positions.VertexCount(), geometry.Texcoords.VertexCount())
	}
	for _, stream := range []*metadata.VertexStream{geometry.Positions, geometry.Texcoords} {
		if stream.InternalData != nil {
			continue
		}
		if err := r.backend.VertexStreamCreate(stream); err != nil {
			return err
		}
	}
	return nil
}

// DestroyGeometry releases the vertex streams of geometry. Destroying a
// stream twice is a no-op.
func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry.Positions != nil && geometry.Positions.InternalData != nil {
		r.backend.VertexStreamDestroy(geometry.Positions)
	}
	if geometry.Texcoords != nil && geometry.Texcoords.InternalData != nil {
		r.backend.VertexStreamDestroy(geometry.Texcoords)
	}
}

func (r *Renderer) ShaderCreate(shader *metadata.Shader) error {
	if err := r.backend.ShaderCreate(shader); err != nil {
		return err
	}
	shader.State = metadata.SHADER_STATE_INITIALIZED
	return nil
}

func (r *Renderer) ShaderDestroy(shader *metadata.Shader) {
	if r.activeShader == shader {
		r.activeShader = nil
	}
	r.backend.ShaderDestroy(shader)
	shader.State = metadata.SHADER_STATE_NOT_CREATED
}

// ShaderUse binds shader for the next draws and uploads the camera matrices
// and the diffuse sampler unit.
func (r *Renderer) ShaderUse(shader *metadata.Shader) error {
	if shader.State != metadata.SHADER_STATE_INITIALIZED {
		return fmt.Errorf("shader %s is not initialized: %w", shader.Name, core.ErrNotInitialized)
	}
	if err := r.backend.ShaderUse(shader); err != nil {
		return err
	}
	r.activeShader = shader
	if err := r.backend.SetUniformSampler(shader, metadata.ShaderUniformDiffuse, 0); err != nil {
		return err
	}
	return r.uploadCamera()
}

// SetCamera stores the projection and view matrices and uploads them to the
// active shader, if any.
func (r *Renderer) SetCamera(projection, view math.Mat4) error {
	r.projection = projection
	r.view = view
	if r.activeShader == nil {
		return nil
	}
	return r.uploadCamera()
}

func (r *Renderer) ActiveShader() *metadata.Shader {
	return r.activeShader
}

func (r *Renderer) uploadCamera() error {
	if err := r.backend.SetUniformMat4(r.activeShader, metadata.ShaderUniformProjection, r.projection); err != nil {
		return err
	}
	return r.backend.SetUniformMat4(r.activeShader, metadata.ShaderUniformView, r.view)
}
