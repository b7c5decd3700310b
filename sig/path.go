package sig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

// Render output paths are pure functions of a vector's field values. Path
// existence is the render cache: re-runs recompute the same path and skip
// work that is already on disk. Changing any format below invalidates
// every previously generated dataset, so treat them as frozen.

// RenderPath returns the output image path for an image-image render under
// dataRoot.
func (v ImageImageVector) RenderPath(dataRoot string) string {
	return filepath.Join(
		dataRoot, "renders", v.HDRI.Name,
		fmt.Sprintf("hdri-offset_%s_camera_%d_%s.png",
			formatRotation(v.HDRI.ZRotation), v.Camera.Seed, sceneToken(v.Scene)),
	)
}

// RenderPath returns the output image path for a light-setup render under
// dataRoot.
func (v LightSetupVector) RenderPath(dataRoot string) string {
	return filepath.Join(
		dataRoot, "renders", "light-setup", sceneToken(v.Scene),
		fmt.Sprintf("key_%s_fill_%s_rim_%s_camera_%d_content_%d.png",
			lightToken(v.Key), lightToken(v.Fill), lightToken(v.Rim),
			v.Camera.Seed, v.Content.Seed),
	)
}

// formatRotation renders a rotation with the shortest exact decimal form,
// so equal field values always produce byte-identical paths.
func formatRotation(deg float64) string {
	return strconv.FormatFloat(deg, 'g', -1, 64)
}

// sceneToken strips the asset extension; the id stays unique without it
// and the path reads better.
func sceneToken(s attr.SceneID) string {
	return strings.TrimSuffix(s.ID, filepath.Ext(s.ID))
}

func lightToken(l attr.VirtualLight) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-%s-%s", l.Size, l.Direction, l.Intensity, l.Color))
}
