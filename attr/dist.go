package attr

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidWeights indicates an importance-weight set that cannot define a
// distribution (negative entries or all-zero mass).
var ErrInvalidWeights = errors.New("attr: invalid sampling weights")

// Dist is a discrete distribution over the members of an enum attribute.
// With no weights attached every member is equally likely. Weights may be
// partial; members not present in the map default to 1.0.
type Dist[E fmt.Stringer] struct {
	members []E
	weights []float64
	total   float64
}

// NewDist builds a uniform distribution over members.
func NewDist[E fmt.Stringer](members []E) (Dist[E], error) {
	if len(members) == 0 {
		return Dist[E]{}, errors.New("attr: cannot build a distribution over zero members")
	}
	out := make([]E, len(members))
	copy(out, members)
	return Dist[E]{members: out}, nil
}

// WithWeights returns a copy of d with importance weights aligned to member
// order. A silent default here would corrupt dataset label semantics, so
// violating inputs are rejected rather than patched up.
func (d Dist[E]) WithWeights(weights map[string]float64) (Dist[E], error) {
	if len(weights) == 0 {
		return d, nil
	}
	aligned := make([]float64, len(d.members))
	total := 0.0
	seen := make(map[string]bool, len(weights))
	for i, m := range d.members {
		w, ok := weights[m.String()]
		if !ok {
			w = 1.0
		} else {
			seen[m.String()] = true
		}
		if w < 0 {
			return Dist[E]{}, fmt.Errorf("%w: weight for %s must be non-negative, got %v", ErrInvalidWeights, m, w)
		}
		aligned[i] = w
		total += w
	}
	for name := range weights {
		if !seen[name] {
			return Dist[E]{}, fmt.Errorf("%w: %q is not a member of this attribute", ErrInvalidWeights, name)
		}
	}
	if total == 0 {
		return Dist[E]{}, fmt.Errorf("%w: all sampling weights are zero", ErrInvalidWeights)
	}
	d.weights = aligned
	d.total = total
	return d, nil
}

// Sample draws one member. Deterministic given the state of rng.
func (d Dist[E]) Sample(rng *rand.Rand) E {
	if d.weights == nil {
		return d.members[rng.Intn(len(d.members))]
	}
	x := rng.Float64() * d.total
	for i, w := range d.weights {
		x -= w
		if w > 0 && x < 0 {
			return d.members[i]
		}
	}
	// Float roundoff can exhaust x without selecting; fall back to the last
	// member carrying mass.
	for i := len(d.weights) - 1; i >= 0; i-- {
		if d.weights[i] > 0 {
			return d.members[i]
		}
	}
	return d.members[len(d.members)-1]
}

// Members returns the member list in sampling order.
func (d Dist[E]) Members() []E {
	out := make([]E, len(d.members))
	copy(out, d.members)
	return out
}
