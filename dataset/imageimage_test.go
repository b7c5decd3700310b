package dataset

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/render"
)

// fakeBackend records invocations and writes the requested output files,
// standing in for the external host process.
type fakeBackend struct {
	singleCalls int
	batchCalls  int
	failWith    error
}

func (f *fakeBackend) RenderImage(unit render.ImageUnit) error {
	f.singleCalls++
	if f.failWith != nil {
		return f.failWith
	}
	return writeOutput(unit.OutputPath)
}

func (f *fakeBackend) RenderImageBatch(sceneID string, units []render.ImageUnit) error {
	f.batchCalls++
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range units {
		if u.Vector.Scene.ID != sceneID {
			return fmt.Errorf("unit for scene %q in batch for %q", u.Vector.Scene.ID, sceneID)
		}
		if err := writeOutput(u.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) RenderLightSetup(unit render.LightSetupUnit) error {
	f.singleCalls++
	if f.failWith != nil {
		return f.failWith
	}
	return writeOutput(unit.OutputPath)
}

func writeOutput(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("png"), 0o644)
}

func newTestLoader(t *testing.T, numScenes, numHDRIs int) (*ImageImageLoader, *fakeBackend) {
	t.Helper()
	root := t.TempDir()

	scenesDir := filepath.Join(root, "scenes")
	require.NoError(t, os.MkdirAll(scenesDir, 0o755))
	for i := 0; i < numScenes; i++ {
		path := filepath.Join(scenesDir, fmt.Sprintf("scene_%02d.blend", i))
		require.NoError(t, os.WriteFile(path, []byte("blend"), 0o644))
	}

	hdriDir := filepath.Join(root, "hdri")
	for i := 0; i < numHDRIs; i++ {
		require.NoError(t, os.MkdirAll(filepath.Join(hdriDir, fmt.Sprintf("hdri_%02d", i)), 0o755))
	}

	scenes, err := asset.NewSceneStore(scenesDir)
	require.NoError(t, err)
	hdris, err := asset.NewHDRIStore(hdriDir)
	require.NoError(t, err)

	backend := &fakeBackend{}
	return &ImageImageLoader{
		Scenes:   scenes,
		HDRIs:    hdris,
		DataRoot: root,
		Backend:  backend,
	}, backend
}

func TestBatchPairingStructure(t *testing.T) {
	loader, _ := newTestLoader(t, 4, 12)
	rng := rand.New(rand.NewSource(21))

	pairs, err := loader.BatchOfSignatureVectors(rng, 8)
	require.NoError(t, err)
	require.Len(t, pairs, 8)

	hdris := map[string]bool{}
	for _, p := range pairs {
		// Each pair shares its HDRI and rotation across left and right.
		assert.Equal(t, p.Left.HDRI, p.Right.HDRI)

		// Left and right scene+camera are batch-fixed.
		assert.True(t, p.Left.ContentEquals(pairs[0].Left))
		assert.True(t, p.Right.ContentEquals(pairs[0].Right))

		// HDRI names never repeat within a batch.
		assert.False(t, hdris[p.Left.HDRI.Name], "HDRI %q used by two pairs", p.Left.HDRI.Name)
		hdris[p.Left.HDRI.Name] = true
	}
}

func TestBatchIsSeedReproducible(t *testing.T) {
	loader, _ := newTestLoader(t, 4, 12)

	a, err := loader.BatchOfSignatureVectors(rand.New(rand.NewSource(5)), 6)
	require.NoError(t, err)
	b, err := loader.BatchOfSignatureVectors(rand.New(rand.NewSource(5)), 6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBatchSizeBoundedByHDRIPool(t *testing.T) {
	loader, _ := newTestLoader(t, 2, 3)
	rng := rand.New(rand.NewSource(1))

	_, err := loader.BatchOfSignatureVectors(rng, 4)
	assert.Error(t, err)
}

func TestRenderingIsIdempotent(t *testing.T) {
	loader, backend := newTestLoader(t, 3, 10)
	rng := rand.New(rand.NewSource(13))

	pairs, err := loader.BatchOfSignatureVectors(rng, 5)
	require.NoError(t, err)

	first, err := loader.BatchOfImages(pairs, Individual)
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Positive(t, backend.singleCalls)

	// Second resolution of the same pairs must be pure cache hits.
	callsAfterFirst := backend.singleCalls
	second, err := loader.BatchOfImages(pairs, Individual)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, backend.singleCalls, "cache hit still invoked the backend")
}

func TestStrategiesProduceIdenticalPaths(t *testing.T) {
	grouped, groupedBackend := newTestLoader(t, 3, 10)
	individual, individualBackend := newTestLoader(t, 3, 10)

	pairsGrouped, err := grouped.BatchOfSignatureVectors(rand.New(rand.NewSource(8)), 6)
	require.NoError(t, err)
	pairsIndividual, err := individual.BatchOfSignatureVectors(rand.New(rand.NewSource(8)), 6)
	require.NoError(t, err)

	groupedPaths, err := grouped.BatchOfImages(pairsGrouped, GroupByScene)
	require.NoError(t, err)
	individualPaths, err := individual.BatchOfImages(pairsIndividual, Individual)
	require.NoError(t, err)

	// Roots differ per TempDir; compare relative to each root.
	rel := func(paths [][2]string, root string) [][2]string {
		out := make([][2]string, len(paths))
		for i, p := range paths {
			l, err := filepath.Rel(root, p[0])
			require.NoError(t, err)
			r, err := filepath.Rel(root, p[1])
			require.NoError(t, err)
			out[i] = [2]string{l, r}
		}
		return out
	}
	assert.Equal(t, rel(groupedPaths, grouped.DataRoot), rel(individualPaths, individual.DataRoot))

	// Grouping by scene batches per scene; the individual strategy never
	// touches the batch entry point.
	assert.Positive(t, groupedBackend.batchCalls)
	assert.Zero(t, groupedBackend.singleCalls)
	assert.Zero(t, individualBackend.batchCalls)
	assert.Positive(t, individualBackend.singleCalls)
}

func TestBatchFailureIsHard(t *testing.T) {
	loader, backend := newTestLoader(t, 3, 10)
	backend.failWith = fmt.Errorf("host exploded")
	rng := rand.New(rand.NewSource(2))

	pairs, err := loader.BatchOfSignatureVectors(rng, 4)
	require.NoError(t, err)

	_, err = loader.BatchOfImages(pairs, GroupByScene)
	assert.ErrorContains(t, err, "host exploded")
}
