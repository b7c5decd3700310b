package dataset

import (
	"os"
	"sort"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/log"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/render"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/sig"
)

var logger = log.New("dataset")

// Strategy selects how cache misses are handed to the render backend.
type Strategy int

const (
	// Individual issues one backend invocation per output path. Simpler
	// and finer-grained for resumption, at the cost of reloading scenes.
	Individual Strategy = iota

	// GroupByScene issues one invocation per scene, letting the host
	// amortize the scene load across every pending render for it.
	GroupByScene
)

// renderMissing renders every vector whose output path does not exist yet.
// Requests are deduplicated by path, grouped by scene, and issued in
// sorted scene order so runs are deterministic. A group failure aborts the
// whole call; completed paths survive on disk for the re-run to skip.
func renderMissing(vectors []sig.ImageImageVector, dataRoot string, backend render.Backend, strategy Strategy) error {
	seen := make(map[string]bool)
	byScene := make(map[string][]render.ImageUnit)
	for _, v := range vectors {
		path := v.RenderPath(dataRoot)
		if seen[path] || fileExists(path) {
			continue
		}
		seen[path] = true
		byScene[v.Scene.ID] = append(byScene[v.Scene.ID], render.ImageUnit{Vector: v, OutputPath: path})
	}
	if len(byScene) == 0 {
		return nil
	}

	sceneIDs := make([]string, 0, len(byScene))
	for id := range byScene {
		sceneIDs = append(sceneIDs, id)
	}
	sort.Strings(sceneIDs)

	for _, sceneID := range sceneIDs {
		// Another worker may have produced some outputs since the first
		// scan; existence is success, not a conflict.
		units := stillMissing(byScene[sceneID])
		if len(units) == 0 {
			continue
		}
		switch strategy {
		case GroupByScene:
			logger.Infof("rendering %d image(s) for scene %s in one host invocation", len(units), sceneID)
			if err := backend.RenderImageBatch(sceneID, units); err != nil {
				return err
			}
		default:
			for _, unit := range units {
				if fileExists(unit.OutputPath) {
					continue
				}
				logger.Infof("rendering %s", unit.OutputPath)
				if err := backend.RenderImage(unit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func stillMissing(units []render.ImageUnit) []render.ImageUnit {
	out := units[:0]
	for _, u := range units {
		if !fileExists(u.OutputPath) {
			out = append(out, u)
		}
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
