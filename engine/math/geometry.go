package math

// QuadVertexCount is the number of vertices of a quad drawn as two
// independent triangles, without an index buffer.
const QuadVertexCount uint32 = 6

// GeometryGenerateQuad returns the corners of the axis aligned rectangle
// [min, max] as two counter-clockwise triangles:
// (min.x, min.y) (max.x, min.y) (max.x, max.y) and
// (min.x, min.y) (max.x, max.y) (min.x, max.y).
func GeometryGenerateQuad(min, max Vec2) []Vec2 {
	return []Vec2{
		{min.X, min.Y}, {max.X, min.Y}, {max.X, max.Y},
		{min.X, min.Y}, {max.X, max.Y}, {min.X, max.Y},
	}
}

// GeometryGenerateQuadTexcoords returns texture coordinates matching the
// vertex order of GeometryGenerateQuad. V grows downwards so images decoded
// top row first are displayed upright.
func GeometryGenerateQuadTexcoords() []Vec2 {
	return GeometryGenerateQuad(Vec2{0, 1}, Vec2{1, 0})
}
