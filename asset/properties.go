package asset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

// Properties are the lighting-condition tags of one HDRI, parsed from the
// Poly Haven category metadata. TimeOfDay is nil for indoor captures; the
// tag is only meaningful outdoors.
type Properties struct {
	TimeOfDay         *attr.TimeOfDay
	IndoorOutdoor     attr.IndoorOutdoor
	NaturalArtificial attr.NaturalArtificial
	ContrastLevel     attr.ContrastLevel
}

// Category strings as they appear in Poly Haven metadata. Some assets are
// tagged with both natural and artificial light; the last tag listed wins.
var categoryTimeOfDay = map[string]attr.TimeOfDay{
	"sunrise-sunset":    attr.SunriseSunset,
	"morning-afternoon": attr.MorningAfternoon,
	"midday":            attr.Midday,
	"night":             attr.Night,
}

var categoryContrast = map[string]attr.ContrastLevel{
	"low contrast":    attr.ContrastLow,
	"medium contrast": attr.ContrastMedium,
	"high contrast":   attr.ContrastHigh,
}

type metadataDoc struct {
	Info struct {
		Categories []string `json:"categories"`
	} `json:"info"`
}

// Properties parses the lighting tags of one HDRI from its metadata file.
// Missing required tags are configuration errors: an untagged HDRI cannot
// be labeled, and a silent default would corrupt the dataset.
func (h *HDRIStore) Properties(name string) (*Properties, error) {
	raw, err := os.ReadFile(h.MetadataPath(name))
	if err != nil {
		return nil, fmt.Errorf("asset: reading metadata for hdri %q: %w", name, err)
	}
	var doc metadataDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("asset: parsing metadata for hdri %q: %w", name, err)
	}
	return propertiesFromCategories(name, doc.Info.Categories)
}

func propertiesFromCategories(name string, categories []string) (*Properties, error) {
	var (
		props        Properties
		haveInOut    bool
		haveNatArt   bool
		haveContrast bool
	)
	for _, c := range categories {
		switch c {
		case "indoor":
			props.IndoorOutdoor = attr.Indoor
			haveInOut = true
		case "outdoor":
			props.IndoorOutdoor = attr.Outdoor
			haveInOut = true
		case "natural light":
			props.NaturalArtificial = attr.Natural
			haveNatArt = true
		case "artificial light":
			props.NaturalArtificial = attr.Artificial
			haveNatArt = true
		default:
			if tod, ok := categoryTimeOfDay[c]; ok {
				t := tod
				props.TimeOfDay = &t
			} else if lvl, ok := categoryContrast[c]; ok {
				props.ContrastLevel = lvl
				haveContrast = true
			}
		}
	}
	if !haveInOut || !haveNatArt || !haveContrast {
		return nil, fmt.Errorf("asset: hdri %q metadata is missing required category tags", name)
	}
	// Outdoor captures must carry a time of day; indoor ones need not.
	if props.IndoorOutdoor == attr.Outdoor && props.TimeOfDay == nil {
		return nil, fmt.Errorf("asset: outdoor hdri %q metadata is missing a time-of-day tag", name)
	}
	return &props, nil
}
