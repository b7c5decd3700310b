package cmd

import (
	"github.com/urfave/cli"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/log"
)

var logger = log.New("lightgen")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
