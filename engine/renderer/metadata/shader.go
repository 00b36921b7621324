package metadata

/** @brief Vertex attribute name for the xy position stream. */
const ShaderAttributePosition string = "position"

/** @brief Vertex attribute name for the uv stream. */
const ShaderAttributeTexcoord string = "texCoord"

/**
 * @brief The uniforms every sprite shader exposes.
 */
type ShaderUniform int

const (
	ShaderUniformProjection ShaderUniform = iota
	ShaderUniformView
	ShaderUniformModel
	ShaderUniformDiffuse
)

var shaderUniformNames = map[ShaderUniform]string{
	ShaderUniformProjection: "projectionMatrix",
	ShaderUniformView:       "viewMatrix",
	ShaderUniformModel:      "modelMatrix",
	ShaderUniformDiffuse:    "diffuse",
}

/** @brief Name returns the GLSL identifier of the uniform. */
func (u ShaderUniform) Name() string {
	return shaderUniformNames[u]
}

/** @brief ShaderUniforms lists every uniform a sprite shader must declare. */
func ShaderUniforms() []ShaderUniform {
	return []ShaderUniform{ShaderUniformProjection, ShaderUniformView, ShaderUniformModel, ShaderUniformDiffuse}
}

/**
 * @brief Represents the current state of a given shader.
 */
type ShaderState int

const (
	/** @brief The shader has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The shader is compiled, linked and ready for use.*/
	SHADER_STATE_INITIALIZED
)

/**
 * @brief Configuration for a shader: where its stages live on disk.
 */
type ShaderConfig struct {
	Name         string
	VertexPath   string
	FragmentPath string
}

/**
 * @brief Represents a shader on the frontend.
 */
type Shader struct {
	/** @brief The shader identifier */
	ID uint32

	Name string

	Config *ShaderConfig

	/** @brief The sources the program was built from, kept for reloads. */
	VertexSource   string
	FragmentSource string

	State ShaderState

	/** @brief Backend specific data, e.g. the GL program and locations. */
	InternalData interface{}
}
