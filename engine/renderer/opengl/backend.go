package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/platform"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

// clearColour is the night sky behind the sprites.
var clearColour = [4]float32{0.1, 0.0, 0.3, 1.0}

type OpenGLRenderer struct {
	platform    *platform.Platform
	FrameNumber uint64

	vao           uint32
	currentShader *metadata.Shader

	framebufferWidth        uint32
	framebufferHeight       uint32
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32
}

func New(p *platform.Platform) *OpenGLRenderer {
	return &OpenGLRenderer{
		platform: p,
	}
}

// Initialize loads the GL function pointers of the current context and sets
// the fixed pipeline state. The platform window must already be current.
func (r *OpenGLRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("%s running on OpenGL %s (%s)", appName,
		gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	r.framebufferWidth, r.framebufferHeight = appWidth, appHeight
	if r.platform != nil {
		if w, h := r.platform.FramebufferSize(); w != 0 && h != 0 {
			r.framebufferWidth, r.framebufferHeight = w, h
		}
	}

	gl.ClearColor(clearColour[0], clearColour[1], clearColour[2], clearColour[3])
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(r.framebufferWidth), int32(r.framebufferHeight))

	// A core profile refuses to draw without a bound vertex array.
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	if err := checkError("initialize"); err != nil {
		return err
	}
	core.LogInfo("OpenGL renderer initialized successfully.")
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	if r.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.currentShader = nil
	core.LogInfo("OpenGL renderer shut down.")
	return nil
}

// Resized records the new framebuffer size. The viewport follows on the next
// BeginFrame.
func (r *OpenGLRenderer) Resized(width, height uint32) error {
	r.cachedFramebufferWidth = width
	r.cachedFramebufferHeight = height
	core.LogDebug("OpenGL renderer resized: w/h: %d/%d", width, height)
	return nil
}

func (r *OpenGLRenderer) BeginFrame(deltaTime float64) error {
	if r.cachedFramebufferWidth != 0 && r.cachedFramebufferHeight != 0 {
		r.framebufferWidth = r.cachedFramebufferWidth
		r.framebufferHeight = r.cachedFramebufferHeight
		r.cachedFramebufferWidth = 0
		r.cachedFramebufferHeight = 0
		gl.Viewport(0, 0, int32(r.framebufferWidth), int32(r.framebufferHeight))
	}
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

func (r *OpenGLRenderer) EndFrame(deltaTime float64) error {
	if r.platform != nil {
		r.platform.SwapBuffers()
	}
	r.FrameNumber++
	return checkError("end frame")
}

func (r *OpenGLRenderer) ShaderUse(shader *metadata.Shader) error {
	internal, ok := shader.InternalData.(*glShader)
	if !ok || internal == nil {
		return fmt.Errorf("shader %s has no program: %w", shader.Name, core.ErrNotInitialized)
	}
	gl.UseProgram(internal.program)
	r.currentShader = shader
	return nil
}

func (r *OpenGLRenderer) SetUniformMat4(shader *metadata.Shader, uniform metadata.ShaderUniform, value math.Mat4) error {
	location, err := r.uniformLocation(shader, uniform)
	if err != nil || location < 0 {
		return err
	}
	// Data is already column major.
	gl.UniformMatrix4fv(location, 1, false, &value.Data[0])
	return nil
}

func (r *OpenGLRenderer) SetUniformSampler(shader *metadata.Shader, uniform metadata.ShaderUniform, unit int32) error {
	location, err := r.uniformLocation(shader, uniform)
	if err != nil || location < 0 {
		return err
	}
	gl.Uniform1i(location, unit)
	return nil
}

// DrawGeometry binds the geometry streams to the attributes of the current
// shader, binds the texture to unit 0 and draws the vertices as triangles.
func (r *OpenGLRenderer) DrawGeometry(data *metadata.GeometryRenderData) {
	if r.currentShader == nil {
		return
	}
	program := r.currentShader.InternalData.(*glShader)

	bindStream(data.Geometry.Positions, program.position)
	bindStream(data.Geometry.Texcoords, program.texcoord)

	gl.ActiveTexture(gl.TEXTURE0)
	if data.Texture != nil {
		if t, ok := data.Texture.InternalData.(*glTexture); ok {
			gl.BindTexture(gl.TEXTURE_2D, t.handle)
		}
	}

	gl.DrawArrays(gl.TRIANGLES, 0, int32(data.Geometry.VertexCount))
}

func (r *OpenGLRenderer) uniformLocation(shader *metadata.Shader, uniform metadata.ShaderUniform) (int32, error) {
	internal, ok := shader.InternalData.(*glShader)
	if !ok || internal == nil {
		return -1, fmt.Errorf("shader %s has no program: %w", shader.Name, core.ErrNotInitialized)
	}
	if r.currentShader != shader {
		if err := r.ShaderUse(shader); err != nil {
			return -1, err
		}
	}
	return internal.uniforms[uniform], nil
}

func checkError(stage string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x during %s", code, stage)
	}
	return nil
}
