package asset

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Fetcher downloads HDRIs plus their metadata from the Poly Haven JSON API
// into the store layout the HDRIStore expects. HTML scraping is disallowed
// by Poly Haven's terms; only the documented endpoints are used.
type Fetcher struct {
	BaseURL string
	Client  *http.Client
	Store   *HDRIStore

	// Delay between asset downloads, to stay polite with the API.
	Delay time.Duration
}

// Resolution keys in ascending order, used for graceful fallback when the
// requested resolution is unavailable.
var resolutionOrder = []string{"1k", "2k", "4k", "8k", "16k", "20k", "24k", "29k", "30k"}

// NewFetcher builds a fetcher against the public Poly Haven API.
func NewFetcher(store *HDRIStore) *Fetcher {
	return &Fetcher{
		BaseURL: "https://api.polyhaven.com",
		Client:  &http.Client{Timeout: 30 * time.Second},
		Store:   store,
		Delay:   time.Second,
	}
}

// AssetID accepts either a full https://polyhaven.com/a/<id> URL or a raw
// asset id and returns the id.
func AssetID(urlOrID string) string {
	clean := strings.TrimRight(strings.TrimSpace(urlOrID), "/")
	if idx := strings.LastIndex(clean, "/a/"); idx >= 0 {
		return clean[idx+len("/a/"):]
	}
	if strings.HasPrefix(clean, "http") {
		return clean[strings.LastIndex(clean, "/")+1:]
	}
	return clean
}

type fileEntry struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
	MD5  string `json:"md5"`
}

// Fetch downloads one HDRI at the requested resolution and format
// (".exr" or ".hdr") along with its metadata document.
func (f *Fetcher) Fetch(assetID, resolution, ext string) error {
	info, err := f.getJSON("/info/" + assetID)
	if err != nil {
		return err
	}

	var files struct {
		HDRI map[string]map[string]fileEntry `json:"hdri"`
	}
	rawFiles, err := f.getJSON("/files/" + assetID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rawFiles, &files); err != nil {
		return fmt.Errorf("asset: parsing files listing for %q: %w", assetID, err)
	}
	if len(files.HDRI) == 0 {
		return fmt.Errorf("asset: %q has no hdri files listed", assetID)
	}

	res := chooseResolution(files.HDRI, resolution)
	format := strings.TrimPrefix(ext, ".")
	entry, ok := files.HDRI[res][format]
	if !ok {
		return fmt.Errorf("asset: %q has no %s file at resolution %s", assetID, format, res)
	}

	folder := filepath.Join(f.Store.dir, assetID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("asset: creating hdri folder for %q: %w", assetID, err)
	}

	// Wrap the raw info document the way the store's Properties parser
	// expects it.
	meta, err := json.MarshalIndent(map[string]json.RawMessage{"info": info}, "", "  ")
	if err != nil {
		return fmt.Errorf("asset: encoding metadata for %q: %w", assetID, err)
	}
	if err := os.WriteFile(f.Store.MetadataPath(assetID), meta, 0o644); err != nil {
		return fmt.Errorf("asset: writing metadata for %q: %w", assetID, err)
	}

	dest := filepath.Join(folder, fmt.Sprintf("%s_%s%s", assetID, res, ext))
	if err := f.download(entry.URL, dest); err != nil {
		return fmt.Errorf("asset: downloading hdri %q: %w", assetID, err)
	}
	return nil
}

// FetchAll downloads a list of assets with the configured delay between
// them.
func (f *Fetcher) FetchAll(assetIDs []string, resolution, ext string) error {
	for i, id := range assetIDs {
		if i > 0 && f.Delay > 0 {
			time.Sleep(f.Delay)
		}
		if err := f.Fetch(id, resolution, ext); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) getJSON(path string) (json.RawMessage, error) {
	url := f.BaseURL + path
	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("asset: could not fetch '%s': %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("asset: could not fetch '%s': status %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("asset: reading '%s': %w", url, err)
	}
	return json.RawMessage(raw), nil
}

func (f *Fetcher) download(url, dest string) error {
	resp, err := f.Client.Get(url)
	if err != nil {
		return fmt.Errorf("could not fetch '%s': %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("could not fetch '%s': status %d", url, resp.StatusCode)
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// chooseResolution returns desired if present, otherwise the available
// resolution closest to it in the standard ordering.
func chooseResolution(available map[string]map[string]fileEntry, desired string) string {
	if _, ok := available[desired]; ok {
		return desired
	}
	var present []string
	for _, r := range resolutionOrder {
		if _, ok := available[r]; ok {
			present = append(present, r)
		}
	}
	if len(present) == 0 {
		// Non-standard keys only; pick the lexicographically last so the
		// choice is still deterministic.
		for r := range available {
			present = append(present, r)
		}
		sort.Strings(present)
	}
	desiredIdx := indexOf(resolutionOrder, desired)
	if desiredIdx < 0 {
		return present[len(present)-1]
	}
	best := present[0]
	bestDist := len(resolutionOrder)
	for _, r := range present {
		d := indexOf(resolutionOrder, r) - desiredIdx
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

func indexOf(list []string, v string) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
