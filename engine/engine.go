package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spaghettifunk/kiki/engine/assets"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/platform"
	"github.com/spaghettifunk/kiki/engine/renderer"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
	"github.com/spaghettifunk/kiki/engine/renderer/opengl"
	"github.com/spaghettifunk/kiki/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// BUILTIN_SHADER_NAME_SPRITE names the shader every sprite is drawn with.
const BUILTIN_SHADER_NAME_SPRITE string = "Shader.Builtin.Sprite"

// Platform is the window layer the engine drives.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32, vsync bool) error
	Shutdown() error
	PumpMessages() bool
	Sleep(ms float64)
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      Platform
	renderer      *renderer.Renderer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
	packet        metadata.RenderPacket

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates an engine rendering with OpenGL into a glfw window.
func New(g *Game) (*Engine, error) {
	p := platform.New()
	return NewWithBackend(g, p, opengl.New(p))
}

// NewWithBackend creates an engine on an arbitrary platform and renderer backend.
func NewWithBackend(g *Game, p Platform, backend renderer.RendererBackend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game has no application config")
	}
	if g.FnInitialize == nil || g.FnUpdate == nil || g.FnRender == nil {
		return nil, fmt.Errorf("game must provide initialize, update and render functions")
	}

	r := renderer.New(backend)
	am := assets.NewAssetManager()
	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		JobWorkers:       g.ApplicationConfig.JobWorkers,
		MaxTextureCount:  64,
		MaxShaderCount:   8,
		MaxGeometryCount: 64,
		Camera: systems.CameraSystemConfig{
			MaxCameraCount: 4,
		},
	}, am, r)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		platform:      p,
		renderer:      r,
		assetManager:  am,
		systemManager: sm,
		isRunning:     false,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	level, err := core.ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight, config.VSync); err != nil {
		return err
	}

	if err := e.renderer.Initialize(config.Name, config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	// initialize subsystems
	if err := e.assetManager.Initialize(config.AssetDir); err != nil {
		return err
	}
	if config.WatchAssets {
		if err := e.assetManager.Watch(); err != nil {
			core.LogWarn("asset watcher disabled: %s", err)
		}
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if _, err := e.systemManager.ShaderSystem.CreateShader(&metadata.ShaderConfig{
		Name:         BUILTIN_SHADER_NAME_SPRITE,
		VertexPath:   config.VertexShader,
		FragmentPath: config.FragmentShader,
	}); err != nil {
		return err
	}
	if err := e.systemManager.ShaderSystem.UseShader(BUILTIN_SHADER_NAME_SPRITE); err != nil {
		return err
	}

	e.gameInstance.SystemManager = e.systemManager
	e.gameInstance.Renderer = e.renderer

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	e.isRunning = true
	return nil
}

// Run drives the frame loop until a quit is requested. A quit raised while
// pumping messages still lets the current frame update and render.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var lastMetricsLog float64 = 0

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}
		// Events posted from other goroutines, e.g. signals or the asset watcher.
		core.EventDispatchPending()

		if e.isSuspended {
			if e.isRunning {
				e.platform.Sleep(10)
			}
			continue
		}

		frameStartTime := time.Now()

		// Update clock and get delta time.
		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)

		if err := e.gameInstance.FnUpdate(currentTime, delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		e.packet.DeltaTime = delta
		e.packet.Geometries = e.packet.Geometries[:0]

		// Call the game's render routine.
		if err := e.gameInstance.FnRender(&e.packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		if err := e.renderer.DrawFrame(&e.packet); err != nil {
			e.isRunning = false
			return err
		}

		e.metrics.Update(time.Since(frameStartTime).Seconds())
		if interval := e.gameInstance.ApplicationConfig.MetricsLogInterval; interval > 0 && currentTime-lastMetricsLog >= interval {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("FPS: %.1f, frame time: %.3fms", fps, frameTime)
			lastMetricsLog = currentTime
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate()

		// Update last time
		e.lastTime = currentTime
	}

	e.clock.Stop()
	return nil
}

// Shutdown releases every subsystem in reverse order of creation. Only the
// first call does anything; later calls return the same result.
func (e *Engine) Shutdown() error {
	e.shutdownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		e.isRunning = false

		var errs []error
		if e.gameInstance.FnShutdown != nil {
			errs = append(errs, e.gameInstance.FnShutdown())
		}
		errs = append(errs,
			e.systemManager.Shutdown(),
			e.assetManager.Shutdown(),
			e.renderer.Shutdown(),
			core.EventSystemShutdown(),
			core.InputShutdown(),
			e.platform.Shutdown(),
		)
		e.shutdownErr = errors.Join(errs...)
		if e.shutdownErr != nil {
			core.LogWarn("shutdown finished with errors: %s", e.shutdownErr)
		}
	})
	return e.shutdownErr
}

// Stage returns the current stage of the engine.
func (e *Engine) Stage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
		}
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	keyCode := ke.KeyCode

	if context.Type == core.EVENT_CODE_KEY_PRESSED {
		if keyCode == core.KEY_ESCAPE {
			// NOTE: Technically firing an event to itself, but there may be other listeners.
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_APPLICATION_QUIT,
			})
			// Block anything else from processing this.
			return
		}
		core.LogDebug("key 0x%02x pressed in window.", uint16(keyCode))
	} else if context.Type == core.EVENT_CODE_KEY_RELEASED {
		core.LogDebug("key 0x%02x released in window.", uint16(keyCode))
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
