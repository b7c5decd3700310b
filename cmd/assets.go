package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/config"
)

// ListAssets prints the scene and HDRI stores as a table, including the
// lighting-condition tags parsed from each HDRI's metadata.
func ListAssets(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	scenes, err := asset.NewSceneStore(cfg.ScenesDir)
	if err != nil {
		return err
	}
	hdris, err := asset.NewHDRIStore(cfg.HDRIDir)
	if err != nil {
		return err
	}

	sceneIDs, err := scenes.IDs()
	if err != nil {
		return err
	}
	hdriNames, err := hdris.Names()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Tags"})
	for _, id := range sceneIDs {
		table.Append([]string{"Scene", id, ""})
	}
	for _, name := range hdriNames {
		table.Append([]string{"HDRI", name, hdriTags(hdris, name)})
	}
	table.Render()

	logger.Noticef("asset stores under %s:\n%s", cfg.DataPath, buf.String())
	return nil
}

func hdriTags(store *asset.HDRIStore, name string) string {
	props, err := store.Properties(name)
	if err != nil {
		logger.Warningf("%v", err)
		return "-"
	}
	tags := props.IndoorOutdoor.String() + ", " + props.NaturalArtificial.String() +
		", contrast " + props.ContrastLevel.String()
	if props.TimeOfDay != nil {
		tags += ", " + props.TimeOfDay.String()
	}
	return tags
}
