// Package attr models the sampleable attributes that make up a signature
// vector: enum-valued lighting properties, identifier records for scene
// content, and the seeded distributions used to draw them.
package attr

import "math/rand"

// Value is a concrete attribute value carried by a signature vector.
type Value interface {
	attrValue()
}

// Invariant marks values that identify content which must stay constant
// across a comparison group (scene, camera, content seed).
type Invariant interface {
	Value
	invariantAttr()
}

// Variant marks values that describe the lighting dimension being varied
// for contrastive supervision (HDRI, virtual lights).
type Variant interface {
	Value
	variantAttr()
}

// Sampler draws one attribute value from the supplied generator. All
// randomness flows through rng; a sampler must never consult any other
// source so that a fixed seed replays the exact value sequence.
type Sampler interface {
	Sample(rng *rand.Rand) (Value, error)
}
