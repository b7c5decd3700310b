package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/asset"
	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/log"
)

var logger = log.New("render")

// Host log lines carrying this marker are echoed through our logger; the
// rest of the host's stdout chatter is dropped.
const hostLogMarker = "[render-manager]"

// Render modes understood by the host-side entry script.
const (
	modeImageImage      = "image-image"
	modeImageImageBatch = "image-image-batch"
	modeLightSetup      = "image-text-instruct"
)

// Blender invokes the Blender host process once per request. Invocations
// are synchronous and carry no timeout: a hung host hangs the worker, an
// accepted risk preferred over silently abandoning a half-written render.
type Blender struct {
	// BlenderPath is the host executable.
	BlenderPath string

	// ScriptPath is the host-side entry script executed via --python.
	ScriptPath string

	// Scenes resolves scene ids to .blend files passed positionally.
	Scenes *asset.SceneStore

	// Headless adds --background. Always true in production; tests and
	// debugging may want a window.
	Headless bool
}

// NewBlender builds a backend with the standard headless configuration.
func NewBlender(blenderPath, scriptPath string, scenes *asset.SceneStore) *Blender {
	return &Blender{
		BlenderPath: blenderPath,
		ScriptPath:  scriptPath,
		Scenes:      scenes,
		Headless:    true,
	}
}

// RenderImage renders one image-image unit.
func (b *Blender) RenderImage(unit ImageUnit) error {
	payload, err := EncodeImageUnits([]ImageUnit{unit})
	if err != nil {
		return err
	}
	if err := b.run(unit.Vector.Scene.ID, modeImageImage, payload); err != nil {
		return err
	}
	return verifyOutputs(unit.OutputPath)
}

// RenderImageBatch renders units sharing one scene in a single host
// invocation, amortizing the scene load. Failure is batch-wide: no
// per-unit bookkeeping, the caller re-runs and cache hits skip the rest.
func (b *Blender) RenderImageBatch(sceneID string, units []ImageUnit) error {
	if len(units) == 0 {
		return nil
	}
	for _, u := range units {
		if u.Vector.Scene.ID != sceneID {
			return fmt.Errorf("render: unit for scene %q in batch for scene %q", u.Vector.Scene.ID, sceneID)
		}
	}
	payload, err := EncodeImageUnits(units)
	if err != nil {
		return err
	}
	if err := b.run(sceneID, modeImageImageBatch, payload); err != nil {
		return err
	}
	paths := make([]string, len(units))
	for i, u := range units {
		paths[i] = u.OutputPath
	}
	return verifyOutputs(paths...)
}

// RenderLightSetup configures the three-point lights and renders a frame.
func (b *Blender) RenderLightSetup(unit LightSetupUnit) error {
	payload, err := EncodeLightSetupUnit(unit)
	if err != nil {
		return err
	}
	if err := b.run(unit.Vector.Scene.ID, modeLightSetup, payload); err != nil {
		return err
	}
	return verifyOutputs(unit.OutputPath)
}

func (b *Blender) run(sceneID, mode string, payload []byte) error {
	scenePath, err := b.Scenes.Path(sceneID)
	if err != nil {
		return err
	}

	args := []string{scenePath}
	if b.Headless {
		args = append(args, "--background")
	}
	args = append(args, "--python", b.ScriptPath, "--", "--mode", mode)

	inline := EncodeInline(payload)
	cleanup := func() {}
	if len(inline) <= inlinePayloadLimit {
		args = append(args, "--payload", inline)
	} else {
		path, rm, err := WriteTempPayload(payload)
		if err != nil {
			return err
		}
		args = append(args, "--payload-file", path)
		cleanup = rm
	}
	defer cleanup()

	cmd := exec.Command(b.BlenderPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("render: opening stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("render: opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("render: starting %s: %w", b.BlenderPath, err)
	}

	// Drain both pipes on dedicated goroutines so neither side of the
	// host can deadlock on a full pipe buffer, and join the drains before
	// judging the exit status.
	var wg sync.WaitGroup
	var stderrBuf bytes.Buffer
	wg.Add(2)
	go func() {
		defer wg.Done()
		echoHostLog(stdout)
	}()
	go func() {
		defer wg.Done()
		io.Copy(&stderrBuf, stderr)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("render: %s %s exited with %v: %s",
			b.BlenderPath, mode, err, strings.TrimSpace(stderrBuf.String()))
	}
	if stderrBuf.Len() > 0 {
		logger.Warningf("host stderr: %s", strings.TrimSpace(stderrBuf.String()))
	}
	return nil
}

// echoHostLog surfaces marked host log lines through our logger.
func echoHostLog(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, hostLogMarker) {
			logger.Info(line)
		}
	}
}

// verifyOutputs enforces the exit contract: success means a zero exit code
// and the requested files on disk.
func verifyOutputs(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("render: host exited cleanly but output %s is missing: %w", p, err)
		}
	}
	return nil
}
