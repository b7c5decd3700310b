package render

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/attr"
)

// Payloads cross a process boundary to the host script, so they use a
// stable JSON encoding rather than anything language-specific. Small
// payloads travel inline as a base64 argument; bulk payloads go through a
// scoped temp file whose lifetime is exactly the host invocation.

// inlinePayloadLimit bounds the encoded argument size. Anything larger is
// written to a temp file to stay clear of OS argv limits.
const inlinePayloadLimit = 16 * 1024

type imagePayloadItem struct {
	HDRIName     string  `json:"hdri_name"`
	HDRIRotation float64 `json:"hdri_z_rotation_offset"`
	SceneID      string  `json:"scene_id"`
	CameraSeed   uint64  `json:"camera_seed"`
	OutputPath   string  `json:"output_path"`
}

type lightPayloadItem struct {
	Key         lightFields `json:"key_light"`
	Fill        lightFields `json:"fill_light"`
	Rim         lightFields `json:"rim_light"`
	SceneID     string      `json:"scene_id"`
	CameraSeed  uint64      `json:"camera_seed"`
	ContentSeed uint64      `json:"content_seed"`
	OutputPath  string      `json:"output_path"`
}

type lightFields struct {
	Size      string `json:"size"`
	Direction string `json:"direction"`
	Intensity string `json:"intensity"`
	Color     string `json:"color"`
}

// EncodeImageUnits serializes image-image units for the host.
func EncodeImageUnits(units []ImageUnit) ([]byte, error) {
	items := make([]imagePayloadItem, len(units))
	for i, u := range units {
		items[i] = imagePayloadItem{
			HDRIName:     u.Vector.HDRI.Name,
			HDRIRotation: u.Vector.HDRI.ZRotation,
			SceneID:      u.Vector.Scene.ID,
			CameraSeed:   u.Vector.Camera.Seed,
			OutputPath:   u.OutputPath,
		}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("render: encoding payload: %w", err)
	}
	return raw, nil
}

// EncodeLightSetupUnit serializes a light-setup unit for the host.
func EncodeLightSetupUnit(unit LightSetupUnit) ([]byte, error) {
	item := lightPayloadItem{
		Key:         lightFieldsOf(unit.Vector.Key),
		Fill:        lightFieldsOf(unit.Vector.Fill),
		Rim:         lightFieldsOf(unit.Vector.Rim),
		SceneID:     unit.Vector.Scene.ID,
		CameraSeed:  unit.Vector.Camera.Seed,
		ContentSeed: unit.Vector.Content.Seed,
		OutputPath:  unit.OutputPath,
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("render: encoding payload: %w", err)
	}
	return raw, nil
}

func lightFieldsOf(l attr.VirtualLight) lightFields {
	return lightFields{
		Size:      l.Size.String(),
		Direction: l.Direction.String(),
		Intensity: l.Intensity.String(),
		Color:     l.Color.String(),
	}
}

// EncodeInline returns the argv-safe form of a payload.
func EncodeInline(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// WriteTempPayload writes payload to a temp file and returns its path with
// a cleanup func. The caller must invoke cleanup on every exit path of the
// host invocation; a payload file that was already removed is only worth a
// warning, so cleanup never fails.
func WriteTempPayload(payload []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "render_payload_*.json")
	if err != nil {
		return "", nil, fmt.Errorf("render: creating payload file: %w", err)
	}
	path := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("render: writing payload file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("render: closing payload file %s: %w", path, err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warningf("could not remove payload file %s: %v", path, err)
		} else if os.IsNotExist(err) {
			logger.Warningf("payload file %s was already removed", path)
		}
	}
	return path, cleanup, nil
}
