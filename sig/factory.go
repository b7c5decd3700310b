package sig

import (
	"fmt"
	"math/rand"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

// Slot declares one attribute position of a factory. A free slot is
// re-sampled on every Sample call; a fixed slot is sampled exactly once at
// factory construction and shared by every vector the factory produces.
type Slot struct {
	Sampler attr.Sampler
	Free    bool
}

type boundSlot struct {
	sampler attr.Sampler
	free    bool
	fixed   attr.Value
}

// Factory produces values of T (a signature vector, or a tuple of paired
// vectors) from sampled attribute slots. Variant slots always precede
// invariant slots, and within each group slots are consumed in declaration
// order against the single generator. That ordering is the reproducibility
// contract: two factories built from the same generator state and slot
// spec emit identical sequences, so it must not be reordered casually.
type Factory[T any] struct {
	variant   []boundSlot
	invariant []boundSlot
	rng       *rand.Rand
	build     func(variant, invariant []attr.Value) (T, error)
}

// NewFactory binds the slot spec to rng, sampling every fixed slot
// immediately (variant slots first). If no slot is free, every Sample call
// returns an identical vector; callers rendering a fixed configuration
// should special-case a single draw rather than looping.
func NewFactory[T any](
	rng *rand.Rand,
	variant []Slot,
	invariant []Slot,
	build func(variant, invariant []attr.Value) (T, error),
) (*Factory[T], error) {
	f := &Factory[T]{rng: rng, build: build}
	var err error
	if f.variant, err = bindSlots(variant, rng); err != nil {
		return nil, fmt.Errorf("sig: variant %w", err)
	}
	if f.invariant, err = bindSlots(invariant, rng); err != nil {
		return nil, fmt.Errorf("sig: invariant %w", err)
	}
	return f, nil
}

func bindSlots(slots []Slot, rng *rand.Rand) ([]boundSlot, error) {
	bound := make([]boundSlot, len(slots))
	for i, s := range slots {
		bound[i] = boundSlot{sampler: s.Sampler, free: s.Free}
		if !s.Free {
			v, err := s.Sampler.Sample(rng)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			bound[i].fixed = v
		}
	}
	return bound, nil
}

// Sample produces the next vector: fixed slots are copied, free slots are
// re-sampled in ascending slot order, variant before invariant.
func (f *Factory[T]) Sample() (T, error) {
	var zero T
	variant, err := resolveSlots(f.variant, f.rng)
	if err != nil {
		return zero, fmt.Errorf("sig: variant %w", err)
	}
	invariant, err := resolveSlots(f.invariant, f.rng)
	if err != nil {
		return zero, fmt.Errorf("sig: invariant %w", err)
	}
	return f.build(variant, invariant)
}

func resolveSlots(slots []boundSlot, rng *rand.Rand) ([]attr.Value, error) {
	values := make([]attr.Value, len(slots))
	for i, s := range slots {
		if !s.free {
			values[i] = s.fixed
			continue
		}
		v, err := s.sampler.Sample(rng)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}
