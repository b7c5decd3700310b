package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lightgen"
	app.Usage = "generate labeled image datasets for contrastive lighting models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "generate",
			Usage: "generate dataset examples by rendering sampled lighting conditions",
			Subcommands: []cli.Command{
				{
					Name:  "image-image",
					Usage: "render left/right pairs sharing an HDRI but differing in scene and camera",
					Description: `
Sample batches of signature vectors for the image-image contrastive task
and render any that are not already on disk. Work is sharded across
workers either via --shard-index/--shard-count or the scheduler's array
job environment, and re-running is safe: existing output files are never
re-rendered.`,
					Flags:  cmd.GenerateFlags(),
					Action: cmd.GenerateImageImage,
				},
				{
					Name:   "light-setup",
					Usage:  "render procedural three-point virtual light setups",
					Flags:  cmd.GenerateFlags(),
					Action: cmd.GenerateLightSetup,
				},
			},
		},
		{
			Name:  "assets",
			Usage: "inspect the scene and HDRI stores",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list scenes and HDRIs with their lighting tags",
					Action: cmd.ListAssets,
				},
			},
		},
		{
			Name:  "fetch",
			Usage: "download assets into the local stores",
			Subcommands: []cli.Command{
				{
					Name:      "hdri",
					Usage:     "download HDRIs and metadata from Poly Haven",
					ArgsUsage: "asset_id_or_url ...",
					Flags:     cmd.FetchFlags(),
					Action:    cmd.FetchHDRIs,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
