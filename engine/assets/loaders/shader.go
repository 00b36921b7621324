package loaders

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

// ShaderLoader reads GLSL source text. Compilation happens in the backend.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.AssetLoadError{Path: path, Err: err}
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
