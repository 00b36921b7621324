package metadata

/**
 * @brief A flat list of vertex attribute components uploaded once to the GPU.
 * A stream can be referenced by many geometries, e.g. the texture coordinates
 * shared by every quad of the scene.
 */
type VertexStream struct {
	/** @brief The name, used for logging. */
	Name string
	/** @brief The number of components per vertex (2 for xy or uv). */
	ComponentCount uint32
	/** @brief The components, ComponentCount per vertex. */
	Data []float32
	/** @brief Backend specific data, e.g. the GL buffer name. */
	InternalData interface{}
}

/** @brief VertexCount returns the number of vertices held by the stream. */
func (vs *VertexStream) VertexCount() uint32 {
	if vs.ComponentCount == 0 {
		return 0
	}
	return uint32(len(vs.Data)) / vs.ComponentCount
}

/**
 * @brief Represents actual geometry in the world: triangles drawn without
 * an index buffer, every three vertices forming one triangle.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry name. */
	Name string
	/** @brief The number of vertices to draw. */
	VertexCount uint32
	/** @brief Local space positions. */
	Positions *VertexStream
	/** @brief Texture coordinates. */
	Texcoords *VertexStream
}
