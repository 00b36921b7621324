package metadata

import "github.com/spaghettifunk/kiki/engine/math"

/**
 * @brief One draw: a geometry with its texture and model matrix.
 */
type GeometryRenderData struct {
	Model    math.Mat4
	Geometry *Geometry
	Texture  *Texture
}

/**
 * @brief Everything the renderer needs to draw a frame, in draw order.
 */
type RenderPacket struct {
	DeltaTime  float64
	Geometries []GeometryRenderData
}
