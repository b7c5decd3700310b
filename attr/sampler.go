package attr

import (
	"errors"
	"fmt"
	"math/rand"
)

// Camera seeds are drawn from [0, maxCameraSeed]. The bound is part of the
// reproducibility contract; widening it changes every sampled sequence.
const maxCameraSeed = 1_000_000

// Rotations are integer degrees in [0, 360] inclusive.
const maxRotationDegrees = 360

// SceneIDSampler draws a scene identifier uniformly from a fixed pool
// (typically the scene store listing, sorted).
type SceneIDSampler struct {
	IDs []string
}

func (s SceneIDSampler) Sample(rng *rand.Rand) (Value, error) {
	if len(s.IDs) == 0 {
		return nil, errors.New("attr: no scene ids available to sample")
	}
	return SceneID{ID: s.IDs[rng.Intn(len(s.IDs))]}, nil
}

// CameraSeedSampler draws a camera placement seed.
type CameraSeedSampler struct{}

func (CameraSeedSampler) Sample(rng *rand.Rand) (Value, error) {
	return CameraSeed{Seed: uint64(rng.Int63n(maxCameraSeed + 1))}, nil
}

// ContentSeedSampler draws a content variation seed.
type ContentSeedSampler struct{}

func (ContentSeedSampler) Sample(rng *rand.Rand) (Value, error) {
	return ContentSeed{Seed: uint64(rng.Int63n(maxCameraSeed + 1))}, nil
}

// HDRISampler draws an HDRI name uniformly (with replacement) from a fixed
// pool, plus an integer rotation offset.
type HDRISampler struct {
	Names []string
}

func (s HDRISampler) Sample(rng *rand.Rand) (Value, error) {
	if len(s.Names) == 0 {
		return nil, errors.New("attr: no HDRI names available to sample")
	}
	name := s.Names[rng.Intn(len(s.Names))]
	rot := float64(rng.Intn(maxRotationDegrees + 1))
	return HDRIName{Name: name, ZRotation: rot}, nil
}

// HDRIDeal deals HDRI names without replacement from a seeded permutation
// of the pool. Within one batch no two draws share a name, which keeps
// positive pairs from collapsing into duplicates.
type HDRIDeal struct {
	order []string
	next  int
}

// NewHDRIDeal permutes the pool using rng. The permutation consumes the
// generator once up front; subsequent deals only consume it for the
// per-draw rotation offset.
func NewHDRIDeal(names []string, rng *rand.Rand) *HDRIDeal {
	order := make([]string, len(names))
	copy(order, names)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &HDRIDeal{order: order}
}

func (d *HDRIDeal) Sample(rng *rand.Rand) (Value, error) {
	if d.next >= len(d.order) {
		return nil, fmt.Errorf("attr: HDRI pool exhausted after %d draws", len(d.order))
	}
	name := d.order[d.next]
	d.next++
	rot := float64(rng.Intn(maxRotationDegrees + 1))
	return HDRIName{Name: name, ZRotation: rot}, nil
}

// Remaining reports how many names are still undealt.
func (d *HDRIDeal) Remaining() int {
	return len(d.order) - d.next
}

// VirtualLightSampler draws a VirtualLight by sampling each field from its
// own distribution, in declaration order: size, direction, intensity,
// color. The order is load-bearing for seed reproducibility.
type VirtualLightSampler struct {
	Size      Dist[LightSize]
	Direction Dist[LightDirection]
	Intensity Dist[LightIntensity]
	Color     Dist[BlackbodyLightColor]
}

// NewVirtualLightSampler builds a sampler with the given importance
// weights, keyed first by attribute name (light_size, light_direction,
// light_intensity, light_color) and then by member name. Missing entries
// sample uniformly.
func NewVirtualLightSampler(weights map[string]map[string]float64) (*VirtualLightSampler, error) {
	size, err := NewDist(LightSizes)
	if err != nil {
		return nil, err
	}
	dir, err := NewDist(LightDirections)
	if err != nil {
		return nil, err
	}
	intensity, err := NewDist(LightIntensities)
	if err != nil {
		return nil, err
	}
	color, err := NewDist(BlackbodyLightColors)
	if err != nil {
		return nil, err
	}
	if size, err = size.WithWeights(weights["light_size"]); err != nil {
		return nil, fmt.Errorf("light_size: %w", err)
	}
	if dir, err = dir.WithWeights(weights["light_direction"]); err != nil {
		return nil, fmt.Errorf("light_direction: %w", err)
	}
	if intensity, err = intensity.WithWeights(weights["light_intensity"]); err != nil {
		return nil, fmt.Errorf("light_intensity: %w", err)
	}
	if color, err = color.WithWeights(weights["light_color"]); err != nil {
		return nil, fmt.Errorf("light_color: %w", err)
	}
	return &VirtualLightSampler{Size: size, Direction: dir, Intensity: intensity, Color: color}, nil
}

func (s *VirtualLightSampler) Sample(rng *rand.Rand) (Value, error) {
	return VirtualLight{
		Size:      s.Size.Sample(rng),
		Direction: s.Direction.Sample(rng),
		Intensity: s.Intensity.Sample(rng),
		Color:     s.Color.Sample(rng),
	}, nil
}
