package systems

import (
	"fmt"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type GeometrySystemConfig struct {
	/**
	 * @brief NOTE: Should be significantly greater than the number of static meshes because
	 * the there can and will be more than one of these per mesh.
	 * Take other systems into account as well.
	 */
	MaxGeometryCount uint32
}

type GeometrySystem struct {
	Config *GeometrySystemConfig
	// Array of registered geometries.
	RegisteredGeometries []*metadata.Geometry

	ids      *core.Identifiers
	renderer *renderer.Renderer
}

func NewGeometrySystem(config *GeometrySystemConfig, r *renderer.Renderer) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:               config,
		RegisteredGeometries: make([]*metadata.Geometry, 0, config.MaxGeometryCount),
		ids:                  core.NewIdentifiers(int(config.MaxGeometryCount)),
		renderer:             r,
	}, nil
}

func (gs *GeometrySystem) Shutdown() error {
	for _, g := range gs.RegisteredGeometries {
		gs.renderer.DestroyGeometry(g)
		gs.ids.Release(g.ID)
		g.ID = metadata.InvalidID
	}
	gs.RegisteredGeometries = gs.RegisteredGeometries[:0]
	return nil
}

// NewVertexStream2D flattens vertices into a stream of two components per
// vertex. The stream is uploaded lazily by the first geometry using it.
func NewVertexStream2D(name string, vertices []math.Vec2) *metadata.VertexStream {
	return &metadata.VertexStream{
		Name:           name,
		ComponentCount: 2,
		Data:           math.FlattenVec2(vertices),
	}
}

// Acquire registers a geometry with its own position stream and the given,
// possibly shared, texcoord stream, and uploads both.
func (gs *GeometrySystem) Acquire(name string, positions []math.Vec2, texcoords *metadata.VertexStream) (*metadata.Geometry, error) {
	if uint32(len(gs.RegisteredGeometries)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("unable to obtain free slot for geometry %s. Adjust configuration to allow more space", name)
		core.LogError(err.Error())
		return nil, err
	}
	geometry := &metadata.Geometry{
		ID:          metadata.InvalidID,
		Name:        name,
		VertexCount: uint32(len(positions)),
		Positions:   NewVertexStream2D(name+".positions", positions),
		Texcoords:   texcoords,
	}
	if err := gs.renderer.CreateGeometry(geometry); err != nil {
		core.LogError("failed to create geometry %s: %s", name, err)
		return nil, err
	}
	geometry.ID = gs.ids.Acquire(geometry)
	gs.RegisteredGeometries = append(gs.RegisteredGeometries, geometry)
	return geometry, nil
}

// AcquireQuad registers the two triangle quad spanning min to max.
func (gs *GeometrySystem) AcquireQuad(name string, min, max math.Vec2, texcoords *metadata.VertexStream) (*metadata.Geometry, error) {
	return gs.Acquire(name, math.GeometryGenerateQuad(min, max), texcoords)
}
