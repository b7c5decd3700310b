// Package render is the boundary to the external 3D host process. It
// serializes signature-vector payloads, spawns the host once per request
// (or once per shared-scene batch), and reports hard failures verbatim.
package render

import (
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/sig"
)

// ImageUnit is one pending image-image render: the vector that defines it
// and the path the host must write.
type ImageUnit struct {
	Vector     sig.ImageImageVector
	OutputPath string
}

// LightSetupUnit is one pending three-point-light render.
type LightSetupUnit struct {
	Vector     sig.LightSetupVector
	OutputPath string
}

// Backend runs render requests against the host process. Implementations
// are synchronous: each call blocks until the host exits. A non-nil error
// means the whole request failed; callers recover by re-running and
// relying on output-path existence to skip completed work.
type Backend interface {
	// RenderImage renders a single image-image unit.
	RenderImage(unit ImageUnit) error

	// RenderImageBatch renders several units that share one scene, so the
	// host loads the scene once. All units must reference sceneID.
	RenderImageBatch(sceneID string, units []ImageUnit) error

	// RenderLightSetup configures the virtual lights from the vector and
	// renders a single frame.
	RenderLightSetup(unit LightSetupUnit) error
}
