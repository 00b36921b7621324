package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// writeAssets lays out a small assets directory: a 2x2 png with a red top row
// and a blue bottom row, plus one shader.
func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "shaders"), 0o755); err != nil {
		t.Fatal(err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 128}
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, red)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, blue)

	f, err := os.Create(filepath.Join(dir, "textures", "moon.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "shaders", "vertex_textured.glsl"), []byte("#version 330 core\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "textures", "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newManager(t *testing.T) *AssetManager {
	t.Helper()
	am := NewAssetManager()
	if err := am.Initialize(writeAssets(t)); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { am.Shutdown() })
	return am
}

func TestInitializeIndexesKnownAssets(t *testing.T) {
	am := newManager(t)

	got := am.Assets()
	if len(got) != 3 {
		t.Fatalf("expected 3 indexed assets, got %d: %v", len(got), got)
	}
	info, ok := am.Lookup("shaders/vertex_textured.glsl")
	if !ok {
		t.Fatal("expected shader to be indexed")
	}
	if info.Type != metadata.ResourceTypeShader {
		t.Errorf("expected shader type, got %s", info.Type)
	}
	if _, ok := am.Lookup("README"); ok {
		t.Error("expected unknown file types to be skipped")
	}
}

func TestInitializeMissingDirectory(t *testing.T) {
	am := NewAssetManager()
	err := am.Initialize(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadImage(t *testing.T) {
	am := newManager(t)

	res, err := am.LoadAsset("textures/moon.png", metadata.ResourceTypeImage, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data, ok := res.Data.(*metadata.ImageResourceData)
	if !ok {
		t.Fatalf("expected *ImageResourceData, got %T", res.Data)
	}
	if data.Width != 2 || data.Height != 2 || data.ChannelCount != 4 {
		t.Fatalf("expected 2x2x4, got %dx%dx%d", data.Width, data.Height, data.ChannelCount)
	}
	if len(data.Pixels) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(data.Pixels))
	}
	// First pixel is red, last pixel is straight-alpha blue.
	if data.Pixels[0] != 255 || data.Pixels[3] != 255 {
		t.Errorf("expected opaque red first pixel, got %v", data.Pixels[0:4])
	}
	if data.Pixels[14] != 255 || data.Pixels[15] != 128 {
		t.Errorf("expected half transparent blue last pixel, got %v", data.Pixels[12:16])
	}

	info, _ := am.Lookup("textures/moon.png")
	if info.LastLoaded.IsZero() {
		t.Error("expected load time to be recorded")
	}
}

func TestLoadImageFlipY(t *testing.T) {
	am := newManager(t)

	res, err := am.LoadAsset("textures/moon.png", metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data := res.Data.(*metadata.ImageResourceData)
	if data.Pixels[2] != 255 || data.Pixels[0] != 0 {
		t.Errorf("expected blue first row after flip, got %v", data.Pixels[0:4])
	}
}

func TestLoadMissingImage(t *testing.T) {
	am := newManager(t)

	_, err := am.LoadAsset("textures/kiki.png", metadata.ResourceTypeImage, nil)
	var loadErr *core.AssetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *AssetLoadError, got %T (%v)", err, err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected missing file error, got %v", err)
	}
	if loadErr.Path != am.Resolve("textures/kiki.png") {
		t.Errorf("expected path %s, got %s", am.Resolve("textures/kiki.png"), loadErr.Path)
	}
}

func TestLoadCorruptImage(t *testing.T) {
	am := newManager(t)

	_, err := am.LoadAsset("textures/broken.png", metadata.ResourceTypeImage, nil)
	var loadErr *core.AssetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *AssetLoadError, got %T (%v)", err, err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("expected a decode error, not a missing file")
	}
}

func TestLoadShader(t *testing.T) {
	am := newManager(t)

	res, err := am.LoadAsset("shaders/vertex_textured.glsl", metadata.ResourceTypeShader, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src, ok := res.Data.(string); !ok || src != "#version 330 core\n" {
		t.Errorf("expected shader source, got %#v", res.Data)
	}
	if err := am.UnloadAsset(res, metadata.ResourceTypeShader); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if res.Data != nil {
		t.Error("expected data to be released")
	}
}

func TestLoadUnknownType(t *testing.T) {
	am := newManager(t)

	_, err := am.LoadAsset("README", metadata.ResourceTypeNone, nil)
	if !errors.Is(err, core.ErrUnknownResourceType) {
		t.Fatalf("expected ErrUnknownResourceType, got %v", err)
	}
}

func TestWatchRequiresInitialize(t *testing.T) {
	am := NewAssetManager()
	if err := am.Watch(); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestWatchPostsShaderChanges(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system already initialized")
	}
	defer core.EventSystemShutdown()

	var changed []string
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, func(context core.EventContext) {
		changed = append(changed, context.Data.(*core.AssetEvent).Path)
	})

	am := newManager(t)
	if err := am.Watch(); err != nil {
		t.Fatalf("watch: %v", err)
	}

	path := am.Resolve("shaders/vertex_textured.glsl")
	if err := os.WriteFile(path, []byte("#version 330 core\n// edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(changed) == 0 && time.Now().Before(deadline) {
		core.EventDispatchPending()
		time.Sleep(10 * time.Millisecond)
	}
	if len(changed) == 0 {
		t.Fatal("expected an asset changed event")
	}
	if changed[0] != path {
		t.Errorf("expected %s, got %s", path, changed[0])
	}
}
