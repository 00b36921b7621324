package renderer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
	"github.com/spaghettifunk/kiki/engine/renderer/renderertest"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func quad(name string, texcoords *metadata.VertexStream) *metadata.Geometry {
	positions := math.GeometryGenerateQuad(math.NewVec2(-1, -1), math.NewVec2(1, 1))
	return &metadata.Geometry{
		Name:        name,
		VertexCount: math.QuadVertexCount,
		Positions:   &metadata.VertexStream{Name: name, ComponentCount: 2, Data: math.FlattenVec2(positions)},
		Texcoords:   texcoords,
	}
}

func sharedTexcoords() *metadata.VertexStream {
	return &metadata.VertexStream{
		Name:           "texcoords",
		ComponentCount: 2,
		Data:           math.FlattenVec2(math.GeometryGenerateQuadTexcoords()),
	}
}

func readyShader(t *testing.T, r *Renderer) *metadata.Shader {
	t.Helper()
	shader := &metadata.Shader{Name: "sprite"}
	if err := r.ShaderCreate(shader); err != nil {
		t.Fatalf("shader create: %v", err)
	}
	if err := r.ShaderUse(shader); err != nil {
		t.Fatalf("shader use: %v", err)
	}
	return shader
}

func TestCreateGeometryUploadsSharedStreamOnce(t *testing.T) {
	backend := renderertest.New()
	r := New(backend)
	tc := sharedTexcoords()

	for _, name := range []string{"moon", "star1", "kiki"} {
		if err := r.CreateGeometry(quad(name, tc)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if backend.Streams != 4 {
		t.Errorf("expected 3 position streams and 1 texcoord stream, got %d streams", backend.Streams)
	}
}

func TestCreateGeometryRejectsMismatchedStreams(t *testing.T) {
	r := New(renderertest.New())
	g := quad("moon", sharedTexcoords())
	g.Texcoords.Data = g.Texcoords.Data[:4]

	if err := r.CreateGeometry(g); err == nil {
		t.Fatal("expected an error for short texcoord stream")
	}
}

func TestDestroyGeometryIsIdempotentForSharedStreams(t *testing.T) {
	backend := renderertest.New()
	r := New(backend)
	tc := sharedTexcoords()
	a, b := quad("a", tc), quad("b", tc)
	r.CreateGeometry(a)
	r.CreateGeometry(b)

	r.DestroyGeometry(a)
	r.DestroyGeometry(b)
	if backend.Streams != 0 {
		t.Errorf("expected every stream released once, got %d left", backend.Streams)
	}
}

func TestShaderUseUploadsCamera(t *testing.T) {
	backend := renderertest.New()
	r := New(backend)
	projection := math.NewMat4Orthographic(-5, 5, -3.75, 3.75, -1, 1)
	if err := r.SetCamera(projection, math.NewMat4Identity()); err != nil {
		t.Fatalf("set camera: %v", err)
	}
	if len(backend.Calls) != 0 {
		t.Fatalf("expected no upload without an active shader, got %v", backend.Calls)
	}

	readyShader(t, r)

	if !backend.Uniforms[metadata.ShaderUniformProjection].Compare(projection, 0) {
		t.Errorf("expected projection to be uploaded")
	}
	if !backend.Uniforms[metadata.ShaderUniformView].Compare(math.NewMat4Identity(), 0) {
		t.Errorf("expected identity view to be uploaded")
	}
}

func TestShaderUseRequiresCreatedShader(t *testing.T) {
	r := New(renderertest.New())
	err := r.ShaderUse(&metadata.Shader{Name: "sprite"})
	if !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestDrawFrameOrder(t *testing.T) {
	backend := renderertest.New()
	r := New(backend)
	readyShader(t, r)
	backend.Reset()

	tc := sharedTexcoords()
	names := []string{"moon", "star1", "star2", "star3", "kiki"}
	packet := &metadata.RenderPacket{}
	for i, name := range names {
		g := quad(name, tc)
		r.CreateGeometry(g)
		model := math.NewMat4Identity().Translate(math.NewVec3(float32(i), 0, 0))
		packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{Model: model, Geometry: g})
	}
	backend.Reset()

	if err := r.DrawFrame(packet); err != nil {
		t.Fatalf("draw frame: %v", err)
	}

	expected := []string{"begin"}
	for _, name := range names {
		expected = append(expected, "uniform modelMatrix", fmt.Sprintf("draw %s 6", name))
	}
	expected = append(expected, "end")
	if len(backend.Calls) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, backend.Calls)
	}
	for i := range expected {
		if backend.Calls[i] != expected[i] {
			t.Errorf("call %d: expected %q, got %q", i, expected[i], backend.Calls[i])
		}
	}
	for _, d := range backend.Draws {
		if d.Geometry.Texcoords != tc {
			t.Errorf("expected %s to draw with the shared texcoord stream", d.Geometry.Name)
		}
	}
	last := backend.Uniforms[metadata.ShaderUniformModel]
	if last.Translation().X != 4 {
		t.Errorf("expected last model matrix to be kiki's, got translation %v", last.Translation())
	}
}

func TestDrawFrameStopsOnBeginError(t *testing.T) {
	backend := renderertest.New()
	backend.BeginErr = errors.New("context lost")
	r := New(backend)

	packet := &metadata.RenderPacket{Geometries: []metadata.GeometryRenderData{{Geometry: quad("moon", sharedTexcoords())}}}
	if err := r.DrawFrame(packet); err == nil {
		t.Fatal("expected begin frame error")
	}
	if len(backend.Draws) != 0 {
		t.Errorf("expected no draws, got %d", len(backend.Draws))
	}
}

func TestDrawFrameReturnsEndError(t *testing.T) {
	backend := renderertest.New()
	backend.EndErr = errors.New("swap failed")
	r := New(backend)

	if err := r.DrawFrame(&metadata.RenderPacket{}); !errors.Is(err, backend.EndErr) {
		t.Fatalf("expected end frame error, got %v", err)
	}
}

func TestShaderDestroyClearsActiveShader(t *testing.T) {
	r := New(renderertest.New())
	shader := readyShader(t, r)

	r.ShaderDestroy(shader)
	if r.ActiveShader() != nil {
		t.Error("expected no active shader")
	}
	if shader.State != metadata.SHADER_STATE_NOT_CREATED {
		t.Errorf("expected shader state reset, got %d", shader.State)
	}
}
