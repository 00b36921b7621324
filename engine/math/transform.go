package math

// The helpers below compose a transform onto an existing matrix the same way
// glm::scale, glm::rotate and glm::translate do: the new transform is applied
// to vertices before the transform already accumulated in the matrix. Calling
// them every frame accumulates the effect.

// Scale composes a non-uniform scale onto mt.
func (mt Mat4) Scale(scale Vec3) Mat4 {
	return NewMat4Scale(scale).Mul(mt)
}

// Rotate composes a rotation of angleRadians around axis onto mt.
func (mt Mat4) Rotate(angleRadians float32, axis Vec3) Mat4 {
	return NewMat4AxisAngle(axis, angleRadians).Mul(mt)
}

// Translate composes a translation onto mt.
func (mt Mat4) Translate(translation Vec3) Mat4 {
	return NewMat4Translation(translation).Mul(mt)
}

// Translation returns the translation column of mt.
func (mt Mat4) Translation() Vec3 {
	return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]}
}

// RotationZ returns the angle of rotation around Z encoded in the upper-left
// 2x2 block of mt, in (-PI, PI]. Uniform scaling does not affect the result.
func (mt Mat4) RotationZ() float32 {
	return katan2(mt.Data[1], mt.Data[0])
}
