package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

func TestRenderPathIsPure(t *testing.T) {
	a := ImageImageVector{
		HDRI:   attr.HDRIName{Name: "kiara_1_dawn", ZRotation: 135},
		Scene:  attr.SceneID{ID: "city_park.blend"},
		Camera: attr.CameraSeed{Seed: 31337},
	}
	b := ImageImageVector{
		HDRI:   attr.HDRIName{Name: "kiara_1_dawn", ZRotation: 135},
		Scene:  attr.SceneID{ID: "city_park.blend"},
		Camera: attr.CameraSeed{Seed: 31337},
	}

	assert.Equal(t, a.RenderPath("/data"), b.RenderPath("/data"))
}

func TestRenderPathFormatIsFrozen(t *testing.T) {
	v := ImageImageVector{
		HDRI:   attr.HDRIName{Name: "kiara_1_dawn", ZRotation: 135},
		Scene:  attr.SceneID{ID: "city_park.blend"},
		Camera: attr.CameraSeed{Seed: 31337},
	}

	// Existing datasets are keyed by this exact layout.
	assert.Equal(t,
		"/data/renders/kiara_1_dawn/hdri-offset_135_camera_31337_city_park.png",
		v.RenderPath("/data"))
}

func TestRenderPathSeparatesVariants(t *testing.T) {
	base := ImageImageVector{
		HDRI:   attr.HDRIName{Name: "dusk", ZRotation: 10},
		Scene:  attr.SceneID{ID: "park.blend"},
		Camera: attr.CameraSeed{Seed: 1},
	}
	rotated := base
	rotated.HDRI.ZRotation = 20

	assert.NotEqual(t, base.RenderPath("/data"), rotated.RenderPath("/data"))
}

func TestLightSetupPathEncodesAllLights(t *testing.T) {
	v := LightSetupVector{
		Key:     attr.VirtualLight{Size: attr.SizeLarge, Direction: attr.DirFront, Intensity: attr.IntensityHigh, Color: attr.ColorWarm},
		Fill:    attr.VirtualLight{Size: attr.SizeSmall, Direction: attr.DirLeft, Intensity: attr.IntensityLow, Color: attr.ColorNeutral},
		Rim:     attr.VirtualLight{Size: attr.SizeMedium, Direction: attr.DirBack, Intensity: attr.IntensityMedium, Color: attr.ColorCool},
		Scene:   attr.SceneID{ID: "studio.blend"},
		Camera:  attr.CameraSeed{Seed: 9},
		Content: attr.ContentSeed{Seed: 4},
	}

	assert.Equal(t,
		"/data/renders/light-setup/studio/key_large-front-high-warm_fill_small-left-low-neutral_rim_medium-back-medium-cool_camera_9_content_4.png",
		v.RenderPath("/data"))
}
