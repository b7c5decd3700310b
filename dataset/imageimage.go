// Package dataset assembles task batches: it samples signature vectors
// with the pairing structure each training task needs, resolves them to
// render paths, and hands cache misses to the render backend grouped to
// amortize scene loads.
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/render"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/sig"
)

// Pair is one positive example of the image-image task: two renders that
// share an HDRI and rotation but differ in scene and camera.
type Pair struct {
	Left  sig.ImageImageVector
	Right sig.ImageImageVector
}

// ImageImageLoader builds batches for the image-image contrastive task.
type ImageImageLoader struct {
	Scenes   *asset.SceneStore
	HDRIs    *asset.HDRIStore
	DataRoot string
	Backend  render.Backend
}

// BatchOfSignatureVectors samples batchSize left/right pairs.
//
// Pairing policy: one left scene+camera and one right scene+camera are
// fixed for the whole batch (a single positive-pair structure per batch,
// not one per item), while each item draws its own HDRI and rotation. HDRI
// names are dealt without replacement so no two pairs in a batch share an
// environment, which would create duplicate positives.
//
// All randomness flows through rng in a fixed order: the HDRI deal
// permutation, then the four fixed invariant slots (left scene, left
// camera, right scene, right camera), then one HDRI rotation per item.
// Reordering any of these draws breaks seed reproducibility.
func (l *ImageImageLoader) BatchOfSignatureVectors(rng *rand.Rand, batchSize int) ([]Pair, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("dataset: batch size must be positive, got %d", batchSize)
	}
	sceneIDs, err := l.Scenes.IDs()
	if err != nil {
		return nil, err
	}
	if len(sceneIDs) == 0 {
		return nil, fmt.Errorf("dataset: scene store is empty")
	}
	hdriNames, err := l.HDRIs.Names()
	if err != nil {
		return nil, err
	}
	if batchSize > len(hdriNames) {
		return nil, fmt.Errorf("dataset: batch size %d exceeds the %d available HDRIs (names are sampled without replacement)", batchSize, len(hdriNames))
	}

	deal := attr.NewHDRIDeal(hdriNames, rng)
	factory, err := sig.NewFactory(
		rng,
		[]sig.Slot{
			{Sampler: deal, Free: true},
		},
		[]sig.Slot{
			{Sampler: attr.SceneIDSampler{IDs: sceneIDs}},
			{Sampler: attr.CameraSeedSampler{}},
			{Sampler: attr.SceneIDSampler{IDs: sceneIDs}},
			{Sampler: attr.CameraSeedSampler{}},
		},
		buildPair,
	)
	if err != nil {
		return nil, err
	}

	pairs := make([]Pair, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		pair, err := factory.Sample()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// buildPair assembles a Pair from the factory's slot values: the shared
// HDRI, then left scene, left camera, right scene, right camera.
func buildPair(variant, invariant []attr.Value) (Pair, error) {
	hdri, ok := variant[0].(attr.HDRIName)
	if !ok {
		return Pair{}, fmt.Errorf("dataset: variant slot 0 is %T, want HDRIName", variant[0])
	}
	leftScene, ok := invariant[0].(attr.SceneID)
	if !ok {
		return Pair{}, fmt.Errorf("dataset: invariant slot 0 is %T, want SceneID", invariant[0])
	}
	leftCamera, ok := invariant[1].(attr.CameraSeed)
	if !ok {
		return Pair{}, fmt.Errorf("dataset: invariant slot 1 is %T, want CameraSeed", invariant[1])
	}
	rightScene, ok := invariant[2].(attr.SceneID)
	if !ok {
		return Pair{}, fmt.Errorf("dataset: invariant slot 2 is %T, want SceneID", invariant[2])
	}
	rightCamera, ok := invariant[3].(attr.CameraSeed)
	if !ok {
		return Pair{}, fmt.Errorf("dataset: invariant slot 3 is %T, want CameraSeed", invariant[3])
	}
	return Pair{
		Left:  sig.ImageImageVector{HDRI: hdri, Scene: leftScene, Camera: leftCamera},
		Right: sig.ImageImageVector{HDRI: hdri, Scene: rightScene, Camera: rightCamera},
	}, nil
}

// BatchOfImages resolves every pair to its (left, right) image paths,
// rendering whatever is not yet on disk. The returned path lists are
// identical for both grouping strategies and follow the request order.
func (l *ImageImageLoader) BatchOfImages(pairs []Pair, strategy Strategy) ([][2]string, error) {
	vectors := make([]sig.ImageImageVector, 0, len(pairs)*2)
	for _, p := range pairs {
		vectors = append(vectors, p.Left, p.Right)
	}

	if err := renderMissing(vectors, l.DataRoot, l.Backend, strategy); err != nil {
		return nil, err
	}

	out := make([][2]string, len(pairs))
	for i, p := range pairs {
		out[i] = [2]string{p.Left.RenderPath(l.DataRoot), p.Right.RenderPath(l.DataRoot)}
	}
	return out, nil
}
