package systems

import (
	"fmt"

	"github.com/spaghettifunk/kiki/engine/assets"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held in the system. */
	MaxShaderCount uint16
}

/**
 * @brief Compiles shader programs from source files and keeps them in sync
 * with the files on disk when the asset watcher is running.
 */
type ShaderSystem struct {
	Config *ShaderSystemConfig
	// A lookup table for shader name->shader.
	shaders map[string]*metadata.Shader

	ids          *core.Identifiers
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
}

func NewShaderSystem(config *ShaderSystemConfig, am *assets.AssetManager, r *renderer.Renderer) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("func NewShaderSystem config.MaxShaderCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:       config,
		shaders:      make(map[string]*metadata.Shader, config.MaxShaderCount),
		ids:          core.NewIdentifiers(int(config.MaxShaderCount)),
		assetManager: am,
		renderer:     r,
	}, nil
}

// Initialize subscribes the system to asset changes.
func (shaderSystem *ShaderSystem) Initialize() error {
	if !core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, shaderSystem.onAssetChanged) {
		return fmt.Errorf("shader system: failed to register for asset changes: %w", core.ErrNotInitialized)
	}
	return nil
}

func (shaderSystem *ShaderSystem) Shutdown() error {
	for name, s := range shaderSystem.shaders {
		shaderSystem.shaderDestroy(s)
		delete(shaderSystem.shaders, name)
	}
	return nil
}

// CreateShader loads the stages named by config and links them into a
// program.
func (shaderSystem *ShaderSystem) CreateShader(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	if _, exists := shaderSystem.shaders[config.Name]; exists {
		return nil, fmt.Errorf("shader %s already exists", config.Name)
	}
	if len(shaderSystem.shaders) >= int(shaderSystem.Config.MaxShaderCount) {
		return nil, fmt.Errorf("shader system cannot hold more than %d shaders", shaderSystem.Config.MaxShaderCount)
	}

	shader := &metadata.Shader{
		ID:     metadata.InvalidID,
		Name:   config.Name,
		Config: config,
		State:  metadata.SHADER_STATE_NOT_CREATED,
	}
	if err := shaderSystem.loadSources(shader); err != nil {
		return nil, err
	}
	if err := shaderSystem.renderer.ShaderCreate(shader); err != nil {
		core.LogError("shader %s: %s", config.Name, err)
		return nil, err
	}
	shader.ID = shaderSystem.ids.Acquire(shader)
	shaderSystem.shaders[config.Name] = shader
	return shader, nil
}

func (shaderSystem *ShaderSystem) GetShader(shaderName string) (*metadata.Shader, error) {
	s, ok := shaderSystem.shaders[shaderName]
	if !ok {
		return nil, fmt.Errorf("shader %s: %w", shaderName, core.ErrAssetNotFound)
	}
	return s, nil
}

func (shaderSystem *ShaderSystem) UseShader(shaderName string) error {
	s, err := shaderSystem.GetShader(shaderName)
	if err != nil {
		return err
	}
	return shaderSystem.renderer.ShaderUse(s)
}

// Reload rebuilds shader from its source files. On failure the previous
// program stays in use.
func (shaderSystem *ShaderSystem) Reload(shader *metadata.Shader) error {
	next := &metadata.Shader{
		ID:     shader.ID,
		Name:   shader.Name,
		Config: shader.Config,
	}
	if err := shaderSystem.loadSources(next); err != nil {
		return err
	}
	if err := shaderSystem.renderer.ShaderCreate(next); err != nil {
		return err
	}

	wasActive := shaderSystem.renderer.ActiveShader() == shader
	shaderSystem.renderer.ShaderDestroy(shader)

	shader.VertexSource = next.VertexSource
	shader.FragmentSource = next.FragmentSource
	shader.InternalData = next.InternalData
	shader.State = next.State

	if wasActive {
		return shaderSystem.renderer.ShaderUse(shader)
	}
	return nil
}

func (shaderSystem *ShaderSystem) onAssetChanged(context core.EventContext) {
	event, ok := context.Data.(*core.AssetEvent)
	if !ok {
		return
	}
	for _, s := range shaderSystem.shaders {
		if shaderSystem.assetManager.Resolve(s.Config.VertexPath) != event.Path &&
			shaderSystem.assetManager.Resolve(s.Config.FragmentPath) != event.Path {
			continue
		}
		if err := shaderSystem.Reload(s); err != nil {
			core.LogError("shader %s reload failed, keeping the previous program: %s", s.Name, err)
			continue
		}
		core.LogInfo("shader %s reloaded", s.Name)
	}
}

func (shaderSystem *ShaderSystem) loadSources(shader *metadata.Shader) error {
	vertex, err := shaderSystem.assetManager.LoadAsset(shader.Config.VertexPath, metadata.ResourceTypeShader, nil)
	if err != nil {
		return err
	}
	fragment, err := shaderSystem.assetManager.LoadAsset(shader.Config.FragmentPath, metadata.ResourceTypeShader, nil)
	if err != nil {
		return err
	}
	shader.VertexSource = vertex.Data.(string)
	shader.FragmentSource = fragment.Data.(string)
	return nil
}

func (shaderSystem *ShaderSystem) shaderDestroy(shader *metadata.Shader) {
	shaderSystem.renderer.ShaderDestroy(shader)
	if shader.ID != metadata.InvalidID {
		shaderSystem.ids.Release(shader.ID)
	}
	shader.ID = metadata.InvalidID
}
