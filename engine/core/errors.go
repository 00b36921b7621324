package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized      = errors.New("subsystem not initialized")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrUnknownResourceType = errors.New("unknown resource type")
)

// AssetLoadError reports an asset that could not be read or decoded.
// Err is kept so callers can tell a missing file (fs.ErrNotExist) from a
// corrupt one.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("failed to load asset %q: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// ShaderCompileError carries the driver info log of a failed compile or link.
type ShaderCompileError struct {
	Stage string
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader failed: %s", e.Stage, e.Log)
}
