package nightsky

import (
	"github.com/spaghettifunk/kiki/engine"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type NightSky struct {
	*engine.Game

	scene    *Scene
	animator *Animator
}

func New(config *engine.ApplicationConfig) *NightSky {
	scene := NewScene()
	ns := &NightSky{
		Game: &engine.Game{
			ApplicationConfig: config,
		},
		scene:    scene,
		animator: NewAnimator(scene),
	}
	ns.State = &ns.animator.State

	ns.FnInitialize = ns.Initialize
	ns.FnUpdate = ns.Update
	ns.FnRender = ns.Render
	ns.FnOnResize = ns.OnResize
	ns.FnShutdown = ns.Shutdown

	return ns
}

// Initialize loads the sprites and points the renderer at the scene camera.
func (ns *NightSky) Initialize() error {
	core.LogInfo("setting up the night sky...")

	if err := ns.SystemManager.CameraSystem.Register(CameraName, ns.scene.Camera); err != nil {
		return err
	}
	if err := ns.Renderer.SetCamera(ns.scene.Camera.GetProjection(), ns.scene.Camera.GetView()); err != nil {
		return err
	}

	if err := ns.scene.Load(ns.SystemManager.GeometrySystem, ns.SystemManager.TextureSystem); err != nil {
		return err
	}
	for _, e := range ns.scene.Entities {
		core.LogDebug("entity %s (%s) ready", e.Name, e.ID)
	}
	return nil
}

func (ns *NightSky) Update(elapsedTime, deltaTime float64) error {
	ns.animator.Update(float32(elapsedTime))
	return nil
}

func (ns *NightSky) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	ns.scene.BuildPacket(packet)
	return nil
}

// OnResize keeps the projection as is; the sprites stretch with the window.
func (ns *NightSky) OnResize(width, height uint32) error {
	core.LogDebug("night sky resized to %dx%d", width, height)
	return nil
}

// Shutdown has nothing to release; the systems own every GPU resource.
func (ns *NightSky) Shutdown() error {
	core.LogInfo("good night, kiki")
	return nil
}

func (ns *NightSky) Scene() *Scene {
	return ns.scene
}

func (ns *NightSky) Animator() *Animator {
	return ns.animator
}
