package sig

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

func imageImageBuild(variant, invariant []attr.Value) (ImageImageVector, error) {
	return ImageImageVector{
		HDRI:   variant[0].(attr.HDRIName),
		Scene:  invariant[0].(attr.SceneID),
		Camera: invariant[1].(attr.CameraSeed),
	}, nil
}

func newTestFactory(t *testing.T, seed int64, hdriFree, sceneFree bool) *Factory[ImageImageVector] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	f, err := NewFactory(
		rng,
		[]Slot{
			{Sampler: attr.HDRISampler{Names: []string{"dawn", "dusk", "noon"}}, Free: hdriFree},
		},
		[]Slot{
			{Sampler: attr.SceneIDSampler{IDs: []string{"park.blend", "city.blend"}}, Free: sceneFree},
			{Sampler: attr.CameraSeedSampler{}},
		},
		imageImageBuild,
	)
	require.NoError(t, err)
	return f
}

func TestFactorySequencesAreSeedReproducible(t *testing.T) {
	a := newTestFactory(t, 1234, true, true)
	b := newTestFactory(t, 1234, true, true)

	for i := 0; i < 50; i++ {
		va, err := a.Sample()
		require.NoError(t, err)
		vb, err := b.Sample()
		require.NoError(t, err)
		assert.Equal(t, va, vb, "draw %d diverged", i)
	}
}

func TestFactoryFixedSlotsAreSampledOnce(t *testing.T) {
	f := newTestFactory(t, 7, true, false)

	first, err := f.Sample()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		v, err := f.Sample()
		require.NoError(t, err)
		assert.Equal(t, first.Scene, v.Scene, "fixed scene slot changed between draws")
		assert.Equal(t, first.Camera, v.Camera, "fixed camera slot changed between draws")
	}
}

func TestFactoryFreeSlotsResample(t *testing.T) {
	f := newTestFactory(t, 11, true, true)

	hdris := map[string]bool{}
	for i := 0; i < 50; i++ {
		v, err := f.Sample()
		require.NoError(t, err)
		hdris[v.HDRI.Name] = true
	}
	assert.Greater(t, len(hdris), 1, "free HDRI slot never varied")
}

func TestFactoryWithNoFreeSlotsRepeatsOneVector(t *testing.T) {
	f := newTestFactory(t, 3, false, false)

	first, err := f.Sample()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		v, err := f.Sample()
		require.NoError(t, err)
		assert.Equal(t, first, v)
	}
}
