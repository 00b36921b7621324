package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type glShader struct {
	program  uint32
	position uint32
	texcoord uint32
	uniforms map[metadata.ShaderUniform]int32
}

func (r *OpenGLRenderer) ShaderCreate(shader *metadata.Shader) error {
	vertex, err := compileShader(gl.VERTEX_SHADER, shader.VertexSource)
	if err != nil {
		return err
	}
	fragment, err := compileShader(gl.FRAGMENT_SHADER, shader.FragmentSource)
	if err != nil {
		gl.DeleteShader(vertex)
		return err
	}
	program, err := linkProgram(vertex, fragment)
	if err != nil {
		return err
	}

	internal := &glShader{
		program:  program,
		uniforms: make(map[metadata.ShaderUniform]int32),
	}

	position := gl.GetAttribLocation(program, glStr(metadata.ShaderAttributePosition))
	texcoord := gl.GetAttribLocation(program, glStr(metadata.ShaderAttributeTexcoord))
	if position < 0 || texcoord < 0 {
		gl.DeleteProgram(program)
		return fmt.Errorf("shader %s does not declare the %q and %q attributes",
			shader.Name, metadata.ShaderAttributePosition, metadata.ShaderAttributeTexcoord)
	}
	internal.position = uint32(position)
	internal.texcoord = uint32(texcoord)

	for _, u := range metadata.ShaderUniforms() {
		location := gl.GetUniformLocation(program, glStr(u.Name()))
		if location < 0 {
			// Unused uniforms are stripped by the driver; uploads to -1 are skipped.
			core.LogWarn("shader %s: uniform %s not found", shader.Name, u.Name())
		}
		internal.uniforms[u] = location
	}

	shader.InternalData = internal
	core.LogDebug("shader %s linked as program %d", shader.Name, program)
	return nil
}

func (r *OpenGLRenderer) ShaderDestroy(shader *metadata.Shader) {
	internal, ok := shader.InternalData.(*glShader)
	if !ok || internal == nil {
		return
	}
	if r.currentShader == shader {
		gl.UseProgram(0)
		r.currentShader = nil
	}
	gl.DeleteProgram(internal.program)
	shader.InternalData = nil
}

func glStr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

func compileShader(shaderType uint32, src string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &core.ShaderCompileError{Stage: stageName(shaderType), Log: strings.TrimRight(log, "\x00")}
	}
	return shader, nil
}

func linkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	// Mark shaders for deletion when the program is deleted
	for _, s := range shaders {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &core.ShaderCompileError{Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}
	return program, nil
}
