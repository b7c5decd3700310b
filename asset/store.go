// Package asset provides access to the on-disk scene and HDRI stores and a
// fetcher that populates the HDRI store from the Poly Haven API.
//
// Both stores are plain directories keyed by identifier: a scene id is a
// .blend filename, an HDRI name is a subdirectory holding resolution
// suffixed image files plus an asset metadata JSON document.
package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const sceneExt = ".blend"

// SceneStore lists and resolves scene asset files.
type SceneStore struct {
	dir string
}

// NewSceneStore opens the store rooted at dir. The directory must exist.
func NewSceneStore(dir string) (*SceneStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset: scene store %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset: scene store %s is not a directory", dir)
	}
	return &SceneStore{dir: dir}, nil
}

// IDs returns all scene ids in sorted order. Sorting matters: the listing
// seeds sampling pools, so its order is part of reproducibility.
func (s *SceneStore) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("asset: listing scene store %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), sceneExt) {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Path resolves a scene id to its asset file, verifying existence.
func (s *SceneStore) Path(id string) (string, error) {
	path := filepath.Join(s.dir, id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("asset: scene %q not found in store: %w", id, err)
	}
	return path, nil
}

// HDRIStore lists and resolves HDRI environment maps.
type HDRIStore struct {
	dir string
}

// NewHDRIStore opens the store rooted at dir. The directory must exist.
func NewHDRIStore(dir string) (*HDRIStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset: hdri store %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset: hdri store %s is not a directory", dir)
	}
	return &HDRIStore{dir: dir}, nil
}

// Names returns all HDRI names in sorted order.
func (h *HDRIStore) Names() ([]string, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("asset: listing hdri store %s: %w", h.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Path resolves an HDRI to the file at the requested resolution, e.g.
// Path("kiara_1_dawn", "2k", ".exr") -> <dir>/kiara_1_dawn/kiara_1_dawn_2k.exr.
func (h *HDRIStore) Path(name, resolution, ext string) (string, error) {
	folder := filepath.Join(h.dir, name)
	if _, err := os.Stat(folder); err != nil {
		return "", fmt.Errorf("asset: hdri %q not found in store: %w", name, err)
	}
	path := filepath.Join(folder, fmt.Sprintf("%s_%s%s", name, resolution, ext))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("asset: hdri %q has no %s%s file: %w", name, resolution, ext, err)
	}
	return path, nil
}

// MetadataPath returns the asset metadata JSON location for an HDRI.
func (h *HDRIStore) MetadataPath(name string) string {
	return filepath.Join(h.dir, name, fmt.Sprintf("%s_asset_metadata.json", name))
}
