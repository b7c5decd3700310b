package cmd

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/config"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/dataset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/render"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/shard"
)

// generation ties together the pieces every generate subcommand needs.
type generation struct {
	cfg        *config.Config
	scenes     *asset.SceneStore
	hdris      *asset.HDRIStore
	backend    render.Backend
	shardIndex int
	shardCount int
	baseSeed   int64
	batchSize  int
	iterations int
	csvPath    string
}

func newGeneration(ctx *cli.Context) (*generation, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	index, count, err := shard.Choose(ctx.Int("shard-index"), ctx.Int("shard-count"))
	if err != nil {
		return nil, err
	}
	scenes, err := asset.NewSceneStore(cfg.ScenesDir)
	if err != nil {
		return nil, err
	}
	hdris, err := asset.NewHDRIStore(cfg.HDRIDir)
	if err != nil {
		return nil, err
	}
	return &generation{
		cfg:        cfg,
		scenes:     scenes,
		hdris:      hdris,
		backend:    render.NewBlender(cfg.BlenderPath, ctx.String("script"), scenes),
		shardIndex: index,
		shardCount: count,
		baseSeed:   ctx.Int64("seed"),
		batchSize:  ctx.Int("batch-size"),
		iterations: ctx.Int("iterations"),
		csvPath:    ctx.String("progress-csv"),
	}, nil
}

// forEachIteration walks this shard's slice of the iteration task list.
// Every worker derives the identical task list and per-iteration seed, so
// shard membership is the only thing that differs between workers and a
// re-run after a crash re-derives exactly the same work.
func (g *generation) forEachIteration(do func(iteration int, rng *rand.Rand) (rendered int, err error)) error {
	tasks := make([]string, g.iterations)
	indexOf := make(map[string]int, g.iterations)
	for i := range tasks {
		tasks[i] = fmt.Sprintf("iteration-%06d", i)
		indexOf[tasks[i]] = i
	}

	it := shard.NewTaskIterator(g.shardIndex, g.shardCount, tasks, nil)
	for {
		task, ok := it.Next()
		if !ok {
			break
		}
		i := indexOf[task]
		rng := rand.New(rand.NewSource(g.baseSeed + int64(i)))
		rendered, err := do(i, rng)
		if err != nil {
			return fmt.Errorf("%s: %w", task, err)
		}
		if g.csvPath != "" {
			row := []string{
				task,
				strconv.Itoa(g.shardIndex),
				strconv.Itoa(rendered),
				time.Now().UTC().Format(time.RFC3339),
			}
			if err := shard.AppendCSVRow(g.csvPath, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateImageImage drives the image-image contrastive task: one batch of
// left/right pairs per iteration.
func GenerateImageImage(ctx *cli.Context) error {
	setupLogging(ctx)

	g, err := newGeneration(ctx)
	if err != nil {
		return err
	}
	loader := &dataset.ImageImageLoader{
		Scenes:   g.scenes,
		HDRIs:    g.hdris,
		DataRoot: g.cfg.DataPath,
		Backend:  g.backend,
	}
	strategy := dataset.Individual
	if ctx.Bool("group-by-scene") {
		strategy = dataset.GroupByScene
	}

	logger.Noticef("generating %d image-image batch(es) of size %d as shard %d/%d",
		g.iterations, g.batchSize, g.shardIndex, g.shardCount)

	err = g.forEachIteration(func(iteration int, rng *rand.Rand) (int, error) {
		pairs, err := loader.BatchOfSignatureVectors(rng, g.batchSize)
		if err != nil {
			return 0, err
		}
		paths, err := loader.BatchOfImages(pairs, strategy)
		if err != nil {
			return 0, err
		}
		logger.Infof("iteration %d: %d pair(s) resolved", iteration, len(paths))
		return len(paths) * 2, nil
	})
	if err != nil {
		return err
	}

	logger.Noticef("shard %d/%d finished", g.shardIndex, g.shardCount)
	return nil
}

// GenerateLightSetup drives the image-text-instruct task: procedural
// three-point light setups over a batch-fixed scene and camera.
func GenerateLightSetup(ctx *cli.Context) error {
	setupLogging(ctx)

	g, err := newGeneration(ctx)
	if err != nil {
		return err
	}
	lights, err := attr.NewVirtualLightSampler(g.cfg.Weights)
	if err != nil {
		return err
	}
	loader := &dataset.LightSetupLoader{
		Scenes:   g.scenes,
		Lights:   lights,
		DataRoot: g.cfg.DataPath,
		Backend:  g.backend,
	}

	logger.Noticef("generating %d light-setup batch(es) of size %d as shard %d/%d",
		g.iterations, g.batchSize, g.shardIndex, g.shardCount)

	err = g.forEachIteration(func(iteration int, rng *rand.Rand) (int, error) {
		vectors, err := loader.BatchOfSignatureVectors(rng, g.batchSize)
		if err != nil {
			return 0, err
		}
		paths, err := loader.BatchOfImages(vectors)
		if err != nil {
			return 0, err
		}
		logger.Infof("iteration %d: %d image(s) resolved", iteration, len(paths))
		return len(paths), nil
	})
	if err != nil {
		return err
	}

	logger.Noticef("shard %d/%d finished", g.shardIndex, g.shardCount)
	return nil
}

// GenerateFlags are shared by the generate subcommands.
func GenerateFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "batch-size",
			Value: 8,
			Usage: "examples (pairs) per batch",
		},
		cli.IntFlag{
			Name:  "iterations",
			Value: 10,
			Usage: "number of batches to generate",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 0,
			Usage: "base seed; iteration i samples with seed+i",
		},
		cli.IntFlag{
			Name:  "shard-index",
			Value: -1,
			Usage: "zero-based shard index (requires shard-count)",
		},
		cli.IntFlag{
			Name:  "shard-count",
			Value: 0,
			Usage: "total shards; omit both shard flags to use scheduler env",
		},
		cli.BoolFlag{
			Name:  "group-by-scene",
			Usage: "render all pending work for a scene in one host invocation",
		},
		cli.StringFlag{
			Name:  "progress-csv",
			Usage: "append per-iteration progress rows to this shared CSV",
		},
		cli.StringFlag{
			Name:  "script",
			Value: "render_host.py",
			Usage: "host-side entry script executed inside the 3D tool",
		},
	}
}
