package systems

import (
	"fmt"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/components"
)

type CameraSystem struct {
	Config  *CameraSystemConfig
	Cameras map[string]*components.Camera
	// A default, non-registered camera that always exists as a fallback.
	// It shows clip space as is.
	DefaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		Cameras:       make(map[string]*components.Camera, config.MaxCameraCount),
		DefaultCamera: components.NewOrthographicCamera(-1, 1, -1, 1, -1, 1),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.Cameras = make(map[string]*components.Camera)
	return nil
}

// Register stores camera under name. Names are unique.
func (cs *CameraSystem) Register(name string, camera *components.Camera) error {
	if name == components.DEFAULT_CAMERA_NAME {
		return fmt.Errorf("camera name %q is reserved", name)
	}
	if _, ok := cs.Cameras[name]; ok {
		return fmt.Errorf("camera %s already registered", name)
	}
	if len(cs.Cameras) >= int(cs.Config.MaxCameraCount) {
		return fmt.Errorf("camera system cannot hold more than %d cameras", cs.Config.MaxCameraCount)
	}
	cs.Cameras[name] = camera
	return nil
}

// Acquire returns the camera registered as name.
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	c, ok := cs.Cameras[name]
	if !ok {
		return nil, fmt.Errorf("camera %s: %w", name, core.ErrAssetNotFound)
	}
	return c, nil
}

func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}
