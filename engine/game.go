package engine

import (
	"github.com/spaghettifunk/kiki/engine/renderer"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
	"github.com/spaghettifunk/kiki/engine/systems"
)

// Game holds the callbacks the engine drives. SystemManager and Renderer are
// set by the engine before FnInitialize runs.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	Renderer          *renderer.Renderer
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error

// Update receives the seconds since the loop started and since the last frame.
type Update func(elapsedTime, deltaTime float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
