package engine

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
	"github.com/spaghettifunk/kiki/engine/renderer/renderertest"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// fakePlatform runs onPump on every PumpMessages call, numbered from 1.
type fakePlatform struct {
	pumps    int
	onPump   func(n int)
	started  bool
	shutdown int
}

func (p *fakePlatform) Startup(applicationName string, x, y, width, height uint32, vsync bool) error {
	p.started = true
	return nil
}

func (p *fakePlatform) Shutdown() error {
	p.shutdown++
	return nil
}

func (p *fakePlatform) PumpMessages() bool {
	p.pumps++
	if p.onPump != nil {
		p.onPump(p.pumps)
	}
	return true
}

func (p *fakePlatform) Sleep(ms float64) {}

type counters struct {
	initialized int
	updates     int
	renders     int
	elapsed     []float64
}

func testConfig(t *testing.T) *ApplicationConfig {
	t.Helper()
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "shaders"), 0o755)
	os.WriteFile(filepath.Join(dir, "shaders", "vertex_textured.glsl"), []byte("vertex"), 0o644)
	os.WriteFile(filepath.Join(dir, "shaders", "fragment_textured.glsl"), []byte("fragment"), 0o644)

	config := DefaultApplicationConfig()
	config.AssetDir = dir
	config.LogLevel = "error"
	return config
}

func newTestEngine(t *testing.T, config *ApplicationConfig, p *fakePlatform) (*Engine, *renderertest.Backend, *counters) {
	t.Helper()
	c := &counters{}
	g := &Game{
		ApplicationConfig: config,
		FnInitialize: func() error {
			c.initialized++
			return nil
		},
		FnUpdate: func(elapsedTime, deltaTime float64) error {
			c.updates++
			c.elapsed = append(c.elapsed, elapsedTime)
			return nil
		},
		FnRender: func(packet *metadata.RenderPacket, deltaTime float64) error {
			c.renders++
			return nil
		},
	}
	backend := renderertest.New()
	e, err := NewWithBackend(g, p, backend)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() { e.Shutdown() })
	return e, backend, c
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestQuitDuringPumpFinishesTheFrame(t *testing.T) {
	p := &fakePlatform{}
	p.onPump = func(n int) {
		if n == 3 {
			// What the window close callback does.
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
	}
	e, backend, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if p.pumps != 3 {
		t.Errorf("expected 3 pumps, got %d", p.pumps)
	}
	if c.updates != 3 || c.renders != 3 {
		t.Errorf("expected 3 updates and renders, got %d and %d", c.updates, c.renders)
	}
	if got := countCalls(backend.Calls, "end"); got != 3 {
		t.Errorf("expected 3 presented frames, got %d", got)
	}
}

func TestPostedQuitIsDispatchedAfterPump(t *testing.T) {
	p := &fakePlatform{}
	p.onPump = func(n int) {
		if n == 2 {
			// What the signal handler does from its own goroutine.
			core.EventPost(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
	}
	e, _, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if p.pumps != 2 || c.updates != 2 {
		t.Errorf("expected 2 pumps and 2 updates, got %d and %d", p.pumps, c.updates)
	}
}

func TestEscapeQuits(t *testing.T) {
	p := &fakePlatform{}
	p.onPump = func(n int) {
		if n == 1 {
			core.InputProcessKey(core.KEY_ESCAPE, true)
		}
	}
	e, _, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.updates != 1 {
		t.Errorf("expected 1 update, got %d", c.updates)
	}
}

func TestElapsedTimeIsMonotonic(t *testing.T) {
	p := &fakePlatform{}
	p.onPump = func(n int) {
		if n == 5 {
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
	}
	e, _, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	e.Run()

	for i := 1; i < len(c.elapsed); i++ {
		if c.elapsed[i] < c.elapsed[i-1] {
			t.Fatalf("expected monotonic elapsed time, got %v", c.elapsed)
		}
	}
}

func TestInitializeUsesSpriteShader(t *testing.T) {
	p := &fakePlatform{}
	e, backend, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !p.started || c.initialized != 1 {
		t.Error("expected platform and game to be initialized")
	}
	if e.Stage() != EngineStageInitialized {
		t.Errorf("expected initialized stage, got %d", e.Stage())
	}
	if e.renderer.ActiveShader() == nil || e.renderer.ActiveShader().Name != BUILTIN_SHADER_NAME_SPRITE {
		t.Error("expected the sprite shader to be active")
	}
	if backend.Shaders != 1 {
		t.Errorf("expected one program, got %d", backend.Shaders)
	}
	if e.gameInstance.SystemManager == nil || e.gameInstance.Renderer == nil {
		t.Error("expected the game to receive the systems and renderer")
	}
}

func TestInitializeFailsOnMissingShader(t *testing.T) {
	config := testConfig(t)
	config.VertexShader = "shaders/missing.glsl"
	e, _, c := newTestEngine(t, config, &fakePlatform{})

	err := e.Initialize()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected missing shader error, got %v", err)
	}
	if c.initialized != 0 {
		t.Error("expected the game not to be initialized")
	}
	if err := e.Run(); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("expected run to refuse, got %v", err)
	}
}

func TestGameErrorsStopTheLoop(t *testing.T) {
	p := &fakePlatform{}
	e, _, _ := newTestEngine(t, testConfig(t), p)
	boom := errors.New("boom")
	e.gameInstance.FnUpdate = func(elapsedTime, deltaTime float64) error { return boom }
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := e.Run(); !errors.Is(err, boom) {
		t.Fatalf("expected update error, got %v", err)
	}
	if p.pumps != 1 {
		t.Errorf("expected the loop to stop after 1 pump, got %d", p.pumps)
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	p := &fakePlatform{}
	e, _, _ := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	first := e.Shutdown()
	second := e.Shutdown()
	if first != nil || second != nil {
		t.Fatalf("expected clean shutdowns, got %v and %v", first, second)
	}
	if p.shutdown != 1 {
		t.Errorf("expected platform shut down once, got %d", p.shutdown)
	}
	if e.Stage() != EngineStageShuttingDown {
		t.Errorf("expected shutting down stage, got %d", e.Stage())
	}
}

func TestResizeSuspendsOnMinimize(t *testing.T) {
	p := &fakePlatform{}
	p.onPump = func(n int) {
		switch n {
		case 1:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 0, WindowHeight: 0}})
		case 3:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 800, WindowHeight: 600}})
		case 4:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
	}
	e, backend, c := newTestEngine(t, testConfig(t), p)
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	e.Run()

	if c.updates != 2 {
		t.Errorf("expected updates only while visible, got %d", c.updates)
	}
	if w, h := e.GetFramebufferSize(); w != 800 || h != 600 {
		t.Errorf("expected 800x600, got %dx%d", w, h)
	}
	if countCalls(backend.Calls, "resized 800x600") != 1 {
		t.Errorf("expected the renderer to be resized, got %v", backend.Calls)
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		`name = "night"`,
		`width = 100000`,
		`height = 300`,
		`log_level = "debug"`,
		`watch_assets = true`,
		`metrics_log_interval = -3.0`,
	}, "\n")
	os.WriteFile(path, []byte(content), 0o644)

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.Name != "night" || !config.WatchAssets || config.LogLevel != "debug" {
		t.Errorf("expected values from the file, got %+v", config)
	}
	if config.StartWidth != maxWindowWidth || config.StartHeight != 300 {
		t.Errorf("expected clamped width, got %dx%d", config.StartWidth, config.StartHeight)
	}
	if config.MetricsLogInterval != 0 {
		t.Errorf("expected clamped metrics interval, got %f", config.MetricsLogInterval)
	}
	if config.VertexShader != DefaultApplicationConfig().VertexShader {
		t.Errorf("expected default vertex shader, got %s", config.VertexShader)
	}
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if config.Name != "kiki!" || config.StartWidth != 640 || config.StartHeight != 480 {
		t.Errorf("expected default window, got %+v", config)
	}
}

func TestLoadApplicationConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("colour = \"red\"\n"), 0o644)
	if _, err := LoadApplicationConfig(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadApplicationConfigRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("log_level = \"loud\"\n"), 0o644)
	if _, err := LoadApplicationConfig(path); err == nil {
		t.Fatal("expected bad log level to be rejected")
	}
}
