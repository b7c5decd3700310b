package dataset

import (
	"fmt"
	"math/rand"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/render"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/sig"
)

// LightSetupLoader builds batches for the image-text-instruct task: one
// scene, camera and content seed fixed per batch, with a fresh three-point
// virtual light setup sampled per item.
type LightSetupLoader struct {
	Scenes   *asset.SceneStore
	Lights   *attr.VirtualLightSampler
	DataRoot string
	Backend  render.Backend
}

// BatchOfSignatureVectors samples batchSize light setups over a batch-fixed
// scene, camera and content seed. The key, fill and rim lights are free
// slots, re-sampled per item in that order.
func (l *LightSetupLoader) BatchOfSignatureVectors(rng *rand.Rand, batchSize int) ([]sig.LightSetupVector, error) {
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

	factory, err := sig.NewFactory(
		rng,
		[]sig.Slot{
			{Sampler: l.Lights, Free: true},
			{Sampler: l.Lights, Free: true},
			{Sampler: l.Lights, Free: true},
		},
		[]sig.Slot{
			{Sampler: attr.SceneIDSampler{IDs: sceneIDs}},
			{Sampler: attr.CameraSeedSampler{}},
			{Sampler: attr.ContentSeedSampler{}},
		},
		buildLightSetup,
	)
	if err != nil {
		return nil, err
	}

	vectors := make([]sig.LightSetupVector, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		v, err := factory.Sample()
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func buildLightSetup(variant, invariant []attr.Value) (sig.LightSetupVector, error) {
	var zero sig.LightSetupVector
	key, ok := variant[0].(attr.VirtualLight)
	if !ok {
		return zero, fmt.Errorf("dataset: variant slot 0 is %T, want VirtualLight", variant[0])
	}
	fill, ok := variant[1].(attr.VirtualLight)
	if !ok {
		return zero, fmt.Errorf("dataset: variant slot 1 is %T, want VirtualLight", variant[1])
	}
	rim, ok := variant[2].(attr.VirtualLight)
	if !ok {
		return zero, fmt.Errorf("dataset: variant slot 2 is %T, want VirtualLight", variant[2])
	}
	scene, ok := invariant[0].(attr.SceneID)
	if !ok {
		return zero, fmt.Errorf("dataset: invariant slot 0 is %T, want SceneID", invariant[0])
	}
	camera, ok := invariant[1].(attr.CameraSeed)
	if !ok {
		return zero, fmt.Errorf("dataset: invariant slot 1 is %T, want CameraSeed", invariant[1])
	}
	content, ok := invariant[2].(attr.ContentSeed)
	if !ok {
		return zero, fmt.Errorf("dataset: invariant slot 2 is %T, want ContentSeed", invariant[2])
	}
	return sig.LightSetupVector{
		Key: key, Fill: fill, Rim: rim,
		Scene: scene, Camera: camera, Content: content,
	}, nil
}

// BatchOfImages resolves each vector to its image path, rendering cache
// misses one host invocation at a time. The light-setup mode has no batch
// form; every item reconfigures the light rig anyway, so there is no
// shared context to amortize beyond the scene file itself.
func (l *LightSetupLoader) BatchOfImages(vectors []sig.LightSetupVector) ([]string, error) {
	paths := make([]string, len(vectors))
	for i, v := range vectors {
		path := v.RenderPath(l.DataRoot)
		paths[i] = path
		if fileExists(path) {
			continue
		}
		logger.Infof("rendering light setup %s", path)
		if err := l.Backend.RenderLightSetup(render.LightSetupUnit{Vector: v, OutputPath: path}); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
