package systems

import (
	"github.com/spaghettifunk/kiki/engine/assets"
	"github.com/spaghettifunk/kiki/engine/renderer"
)

type SystemManagerConfig struct {
	JobWorkers       int
	MaxTextureCount  uint32
	MaxShaderCount   uint16
	MaxGeometryCount uint32
	Camera           CameraSystemConfig
}

type SystemManager struct {
	CameraSystem   *CameraSystem
	GeometrySystem *GeometrySystem
	JobSystem      *JobSystem
	ShaderSystem   *ShaderSystem
	TextureSystem  *TextureSystem
}

func NewSystemManager(config *SystemManagerConfig, am *assets.AssetManager, r *renderer.Renderer) (*SystemManager, error) {
	js, err := NewJobSystem(config.JobWorkers, config.JobWorkers)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&config.Camera)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: config.MaxTextureCount,
	}, js, am, r)
	if err != nil {
		return nil, err
	}
	ssys, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: config.MaxShaderCount,
	}, am, r)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: config.MaxGeometryCount,
	}, r)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:   cs,
		JobSystem:      js,
		TextureSystem:  ts,
		ShaderSystem:   ssys,
		GeometrySystem: gs,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.ShaderSystem.Initialize()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
