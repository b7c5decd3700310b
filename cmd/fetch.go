package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/config"
)

// FetchHDRIs downloads the given Poly Haven assets (ids or /a/<id> URLs)
// into the HDRI store.
func FetchHDRIs(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing Poly Haven asset ids or URLs")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := asset.NewHDRIStore(cfg.HDRIDir)
	if err != nil {
		return err
	}

	ids := make([]string, ctx.NArg())
	for i := range ids {
		ids[i] = asset.AssetID(ctx.Args().Get(i))
	}

	fetcher := asset.NewFetcher(store)
	logger.Noticef("fetching %d HDRI(s) at %s into %s", len(ids), ctx.String("resolution"), cfg.HDRIDir)
	if err := fetcher.FetchAll(ids, ctx.String("resolution"), "."+ctx.String("format")); err != nil {
		return err
	}
	logger.Noticef("done")
	return nil
}

// FetchFlags configure the HDRI fetch subcommand.
func FetchFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "resolution",
			Value: "2k",
			Usage: "preferred HDRI resolution (falls back to the closest available)",
		},
		cli.StringFlag{
			Name:  "format",
			Value: "exr",
			Usage: "HDRI file format: exr or hdr",
		},
	}
}
