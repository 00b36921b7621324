package nightsky

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/kiki/engine/math"
	"github.com/spaghettifunk/kiki/engine/renderer/components"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
	"github.com/spaghettifunk/kiki/engine/systems"
)

const (
	TextureKiki  = "textures/kiki.png"
	TextureMoon  = "textures/moon.png"
	TextureStars = "textures/starss.png"

	CameraName = "nightsky"
)

// Visible world rectangle. 10 by 7.5 units keeps the 4:3 window undistorted.
const (
	viewLeft   float32 = -5
	viewRight  float32 = 5
	viewBottom float32 = -3.75
	viewTop    float32 = 3.75
	viewNear   float32 = -1
	viewFar    float32 = 1
)

// Entity is one textured quad of the scene.
type Entity struct {
	ID       uuid.UUID
	Name     string
	Geometry *metadata.Geometry
	Texture  *metadata.Texture
	// Shared by every star.
	Model *math.Mat4

	min, max    math.Vec2
	texturePath string
}

// Scene holds the entities in draw order and the matrices the animator
// mutates.
type Scene struct {
	Moon  *Entity
	Stars [3]*Entity
	Kiki  *Entity
	// Draw order: moon, stars, kiki on top.
	Entities []*Entity

	MoonModel math.Mat4
	StarModel math.Mat4
	KikiModel math.Mat4

	Texcoords *metadata.VertexStream
	Camera    *components.Camera

	textures []*metadata.Texture
}

func newEntity(name string, min, max math.Vec2, texturePath string, model *math.Mat4) *Entity {
	return &Entity{
		ID:          uuid.New(),
		Name:        name,
		Model:       model,
		min:         min,
		max:         max,
		texturePath: texturePath,
	}
}

// NewScene lays out the sprites with identity transforms. Nothing touches
// the GPU until Load.
func NewScene() *Scene {
	s := &Scene{
		MoonModel: math.NewMat4Identity(),
		StarModel: math.NewMat4Identity(),
		KikiModel: math.NewMat4Identity(),
		Texcoords: systems.NewVertexStream2D("texcoords", math.GeometryGenerateQuadTexcoords()),
		Camera:    components.NewOrthographicCamera(viewLeft, viewRight, viewBottom, viewTop, viewNear, viewFar),
	}
	s.Moon = newEntity("moon", math.NewVec2(-1, -1), math.NewVec2(1, 1), TextureMoon, &s.MoonModel)
	s.Stars[0] = newEntity("star1", math.NewVec2(2, 1), math.NewVec2(3, 2), TextureStars, &s.StarModel)
	s.Stars[1] = newEntity("star2", math.NewVec2(-3, 1), math.NewVec2(-2, 2), TextureStars, &s.StarModel)
	s.Stars[2] = newEntity("star3", math.NewVec2(-0.5, -2.5), math.NewVec2(0.5, -1.5), TextureStars, &s.StarModel)
	s.Kiki = newEntity("kiki", math.NewVec2(4, -0.5), math.NewVec2(5, 0.5), TextureKiki, &s.KikiModel)

	s.Entities = []*Entity{s.Moon, s.Stars[0], s.Stars[1], s.Stars[2], s.Kiki}
	return s
}

// Load uploads the quads and decodes the textures. Any missing or corrupt
// image fails the whole load.
func (s *Scene) Load(gs *systems.GeometrySystem, ts *systems.TextureSystem) error {
	for _, e := range s.Entities {
		g, err := gs.AcquireQuad(e.Name, e.min, e.max, s.Texcoords)
		if err != nil {
			return err
		}
		e.Geometry = g
	}

	// Each star decodes the sheet on its own, as three separate textures.
	paths := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		paths[i] = e.texturePath
	}
	textures, err := ts.LoadAll(paths)
	if err != nil {
		return err
	}
	for i, e := range s.Entities {
		e.Texture = textures[i]
	}
	s.textures = textures

	// The third star is bound with the second star's texture. Both hold the
	// same pixels.
	s.Stars[2].Texture = s.Stars[1].Texture
	return nil
}

// Textures returns every texture the scene loaded, bound or not.
func (s *Scene) Textures() []*metadata.Texture {
	return s.textures
}

// BuildPacket appends one draw per entity, in draw order, with a snapshot of
// its model matrix.
func (s *Scene) BuildPacket(packet *metadata.RenderPacket) {
	for _, e := range s.Entities {
		packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{
			Model:    *e.Model,
			Geometry: e.Geometry,
			Texture:  e.Texture,
		})
	}
}
