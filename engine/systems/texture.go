package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/kiki/engine/assets"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type TextureSystem struct {
	Config *TextureSystemConfig
	// Registered textures, indexed by texture id.
	RegisteredTextures []*metadata.Texture

	ids *core.Identifiers
	// sub systems
	jobSystem    *JobSystem
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
}

func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, am *assets.AssetManager, r *renderer.Renderer) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:             config,
		RegisteredTextures: make([]*metadata.Texture, 0, config.MaxTextureCount),
		ids:                core.NewIdentifiers(int(config.MaxTextureCount)),
		jobSystem:          js,
		assetManager:       am,
		renderer:           r,
	}, nil
}

func (ts *TextureSystem) Shutdown() error {
	// Destroy all loaded textures.
	for _, t := range ts.RegisteredTextures {
		if t != nil {
			ts.destroy(t)
		}
	}
	ts.RegisteredTextures = ts.RegisteredTextures[:0]
	return nil
}

// Load decodes the image at path, relative to the assets directory, and
// uploads it with linear filtering. Nothing is uploaded on failure.
func (ts *TextureSystem) Load(path string) (*metadata.Texture, error) {
	res, err := ts.decode(path)
	if err != nil {
		return nil, err
	}
	return ts.upload(path, res)
}

// LoadAll decodes every path on the job system and uploads the results in
// order on the calling goroutine. The first failure, in path order, is
// returned and nothing is uploaded.
func (ts *TextureSystem) LoadAll(paths []string) ([]*metadata.Texture, error) {
	resources := make([]*metadata.Resource, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		ts.jobSystem.Submit(JobTask{
			Name: "texture load " + path,
			OnStart: func() (interface{}, error) {
				return ts.decode(path)
			},
			OnComplete: func(result interface{}) {
				resources[i] = result.(*metadata.Resource)
				wg.Done()
			},
			OnFailure: func(err error) {
				errs[i] = err
				wg.Done()
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	textures := make([]*metadata.Texture, 0, len(paths))
	for i, res := range resources {
		t, err := ts.upload(paths[i], res)
		if err != nil {
			for _, loaded := range textures {
				ts.Destroy(loaded)
			}
			return nil, err
		}
		textures = append(textures, t)
	}
	return textures, nil
}

// Get returns the texture registered under id.
func (ts *TextureSystem) Get(id uint32) (*metadata.Texture, bool) {
	t, ok := ts.ids.Owner(id).(*metadata.Texture)
	return t, ok
}

func (ts *TextureSystem) Destroy(texture *metadata.Texture) {
	for i, t := range ts.RegisteredTextures {
		if t == texture {
			ts.RegisteredTextures = append(ts.RegisteredTextures[:i], ts.RegisteredTextures[i+1:]...)
			break
		}
	}
	ts.destroy(texture)
}

func (ts *TextureSystem) destroy(texture *metadata.Texture) {
	ts.renderer.TextureDestroy(texture)
	if texture.ID != metadata.InvalidID {
		if err := ts.ids.Release(texture.ID); err != nil {
			core.LogWarn(err.Error())
		}
	}
	texture.ID = metadata.InvalidID
	texture.Generation = metadata.InvalidID
}

func (ts *TextureSystem) decode(path string) (*metadata.Resource, error) {
	return ts.assetManager.LoadAsset(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: false})
}

func (ts *TextureSystem) upload(path string, res *metadata.Resource) (*metadata.Texture, error) {
	defer ts.assetManager.UnloadAsset(res, metadata.ResourceTypeImage)

	if uint32(len(ts.RegisteredTextures)) >= ts.Config.MaxTextureCount {
		return nil, fmt.Errorf("texture system cannot hold more than %d textures", ts.Config.MaxTextureCount)
	}

	data := res.Data.(*metadata.ImageResourceData)
	texture := &metadata.Texture{
		ID:            metadata.InvalidID,
		TextureType:   metadata.TextureType2d,
		Name:          path,
		Width:         data.Width,
		Height:        data.Height,
		ChannelCount:  data.ChannelCount,
		FilterMinify:  metadata.TextureFilterModeLinear,
		FilterMagnify: metadata.TextureFilterModeLinear,
		Repeat:        metadata.TextureRepeatClampToEdge,
	}
	if err := ts.renderer.TextureCreate(data.Pixels, texture); err != nil {
		return nil, &core.AssetLoadError{Path: res.FullPath, Err: err}
	}
	texture.ID = ts.ids.Acquire(texture)
	ts.RegisteredTextures = append(ts.RegisteredTextures, texture)

	core.LogDebug("texture %s loaded (%dx%d, id %d)", path, texture.Width, texture.Height, texture.ID)
	return texture, nil
}
