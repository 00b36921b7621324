package components

import (
	"github.com/spaghettifunk/kiki/engine/math"
)

/**
 * @brief An orthographic camera looking down the negative z axis.
 * The projection is fixed at creation; only the position moves the view.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4

	left, right, bottom, top, nearClip, farClip float32
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewOrthographicCamera(left, right, bottom, top, nearClip, farClip float32) *Camera {
	camera := &Camera{
		left:     left,
		right:    right,
		bottom:   bottom,
		top:      top,
		nearClip: nearClip,
		farClip:  farClip,
	}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3Zero()
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4Translation(math.NewVec3(-c.Position.X, -c.Position.Y, -c.Position.Z))
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) GetProjection() math.Mat4 {
	return math.NewMat4Orthographic(c.left, c.right, c.bottom, c.top, c.nearClip, c.farClip)
}
