package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/kiki/engine/assets/loaders"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	basePath string
	assets   map[string]AssetInfo
	loaders  map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
	fsnotify  *fsnotify.Watcher
}

func NewAssetManager() *AssetManager {
	return &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		done:    make(chan struct{}),
	}
}

// Initialize indexes every known asset below assetsDir and registers the
// default loaders.
func (am *AssetManager) Initialize(assetsDir string) error {
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("assets directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("assets directory %s is not a directory", abs)
	}
	am.basePath = abs

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	if err := am.walk(abs, nil); err != nil {
		return err
	}
	core.LogDebug("indexed %d assets in %s", len(am.assets), abs)
	return nil
}

// BasePath returns the absolute assets directory.
func (am *AssetManager) BasePath() string {
	return am.basePath
}

// Resolve turns a path relative to the assets directory into an absolute one.
// Absolute paths are returned unchanged.
func (am *AssetManager) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(am.basePath, filepath.FromSlash(name))
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads name, relative to the assets directory, with the loader
// registered for resourceType.
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type %s: %w", resourceType, core.ErrUnknownResourceType)
	}

	path := am.Resolve(name)
	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource, resourceType metadata.ResourceType) error {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return core.ErrUnknownResourceType
	}
	return loader.Unload(asset)
}

// Lookup returns the index entry of an asset, by name or absolute path.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.Resolve(name)]
	return info, ok
}

// Assets returns every indexed asset sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	am.mutex.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Watch starts watching the assets directory. Changes to indexed files are
// posted as EVENT_CODE_ASSET_CHANGED and dispatched on the main thread.
func (am *AssetManager) Watch() error {
	if am.basePath == "" {
		return core.ErrNotInitialized
	}
	if am.fsnotify != nil {
		return errors.New("asset watcher already running")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = w
	if err := am.walk(am.basePath, w); err != nil {
		w.Close()
		am.fsnotify = nil
		return err
	}
	go am.start(w)
	core.LogInfo("watching %s for changes", am.basePath)
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.closeOnce.Do(func() {
		close(am.done)
	})
	return nil
}

func (am *AssetManager) start(w *fsnotify.Watcher) {
	defer w.Close()
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.walk(e.Name, w); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					core.EventPost(core.EventContext{
						Type: core.EVENT_CODE_ASSET_CHANGED,
						Data: &core.AssetEvent{Path: e.Name},
					})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

// walk indexes every known file below root and, when w is not nil, adds each
// directory to the watch list.
func (am *AssetManager) walk(root string, w *fsnotify.Watcher) error {
	return filepath.Walk(root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if w != nil {
				return w.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. Returns true if the file is
// a known asset type.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return false
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".glsl", ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}
