// Package sig defines signature vectors: the immutable tuples of variant
// (lighting) and invariant (content identity) attribute values that
// uniquely identify one renderable dataset example, the factory that
// samples them, and the deterministic output paths derived from them.
package sig

import (
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

// Vector is the common surface of all task signature vectors. Concrete
// vectors are plain value types with named fields; the tuple views exist
// for code that treats attributes positionally (the factory and the
// payload codec). Vectors are never mutated after construction.
type Vector interface {
	VariantAttrs() []attr.Value
	InvariantAttrs() []attr.Value
}

// ImageImageVector identifies one render of the image-image contrastive
// task: a scene and camera lit by a rotated HDRI.
type ImageImageVector struct {
	HDRI   attr.HDRIName
	Scene  attr.SceneID
	Camera attr.CameraSeed
}

func (v ImageImageVector) VariantAttrs() []attr.Value {
	return []attr.Value{v.HDRI}
}

func (v ImageImageVector) InvariantAttrs() []attr.Value {
	return []attr.Value{v.Scene, v.Camera}
}

// ContentEquals reports whether both vectors identify the same content,
// i.e. their invariant tuples match. Content-equal vectors may only differ
// in lighting.
func (v ImageImageVector) ContentEquals(o ImageImageVector) bool {
	return v.Scene == o.Scene && v.Camera == o.Camera
}

// LightSetupVector identifies one render of the image-text-instruct task:
// a scene, camera and content seed lit by a synthetic three-point setup.
type LightSetupVector struct {
	Key     attr.VirtualLight
	Fill    attr.VirtualLight
	Rim     attr.VirtualLight
	Scene   attr.SceneID
	Camera  attr.CameraSeed
	Content attr.ContentSeed
}

func (v LightSetupVector) VariantAttrs() []attr.Value {
	return []attr.Value{v.Key, v.Fill, v.Rim}
}

func (v LightSetupVector) InvariantAttrs() []attr.Value {
	return []attr.Value{v.Scene, v.Camera, v.Content}
}

func (v LightSetupVector) ContentEquals(o LightSetupVector) bool {
	return v.Scene == o.Scene && v.Camera == o.Camera && v.Content == o.Content
}
