package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

func newLightSetupLoader(t *testing.T, numScenes int) (*LightSetupLoader, *fakeBackend) {
	t.Helper()
	base, backend := newTestLoader(t, numScenes, 1)
	lights, err := attr.NewVirtualLightSampler(nil)
	require.NoError(t, err)
	return &LightSetupLoader{
		Scenes:   base.Scenes,
		Lights:   lights,
		DataRoot: base.DataRoot,
		Backend:  backend,
	}, backend
}

func TestLightSetupBatchFixesSceneAndSeeds(t *testing.T) {
	loader, _ := newLightSetupLoader(t, 4)
	rng := rand.New(rand.NewSource(17))

	vectors, err := loader.BatchOfSignatureVectors(rng, 16)
	require.NoError(t, err)
	require.Len(t, vectors, 16)

	setups := map[string]bool{}
	for _, v := range vectors {
		assert.Equal(t, vectors[0].Scene, v.Scene)
		assert.Equal(t, vectors[0].Camera, v.Camera)
		assert.Equal(t, vectors[0].Content, v.Content)
		setups[v.RenderPath("/")] = true
	}
	// The free light slots should produce variety across a batch this size.
	assert.Greater(t, len(setups), 1, "every light setup in the batch was identical")
}

func TestLightSetupBatchIsSeedReproducible(t *testing.T) {
	loader, _ := newLightSetupLoader(t, 4)

	a, err := loader.BatchOfSignatureVectors(rand.New(rand.NewSource(23)), 8)
	require.NoError(t, err)
	b, err := loader.BatchOfSignatureVectors(rand.New(rand.NewSource(23)), 8)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLightSetupRenderingSkipsCachedItems(t *testing.T) {
	loader, backend := newLightSetupLoader(t, 2)
	rng := rand.New(rand.NewSource(31))

	vectors, err := loader.BatchOfSignatureVectors(rng, 6)
	require.NoError(t, err)

	first, err := loader.BatchOfImages(vectors)
	require.NoError(t, err)
	require.Len(t, first, 6)

	callsAfterFirst := backend.singleCalls
	second, err := loader.BatchOfImages(vectors)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, backend.singleCalls)
}

func TestLightSetupRejectsNonPositiveBatch(t *testing.T) {
	loader, _ := newLightSetupLoader(t, 2)
	_, err := loader.BatchOfSignatureVectors(rand.New(rand.NewSource(1)), 0)
	assert.Error(t, err)
}
