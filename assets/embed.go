// Package assets resolves and decodes board background images: the maps
// compiled into the binary, local files and http(s) URLs.
package assets

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Embedded background maps for the board.
//
//go:embed maps/*.png
var embeddedMaps embed.FS

// DefaultMap names the embedded map used when no background is configured.
const DefaultMap = "default"

// MapScheme prefixes references to embedded maps, e.g. "map:default".
const MapScheme = "map:"

// MaxDownload caps how many bytes are read from a background URL.
const MaxDownload = 32 << 20

// MaxPixels caps the width*height of a background before it is decoded.
const MaxPixels = 64 << 20

// ErrMapNotFound is returned for a map: reference with no embedded map.
var ErrMapNotFound = errors.New("embedded map not found")

// ErrTooLarge is returned when an image header declares more than MaxPixels.
var ErrTooLarge = errors.New("image too large")

var (
	loadMapsOnce sync.Once
	loadMapsErr  error

	mapData = map[string][]byte{}
)

func loadMaps() {
	entries, err := fs.ReadDir(embeddedMaps, "maps")
	if err != nil {
		loadMapsErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		data, err := embeddedMaps.ReadFile(path.Join("maps", name))
		if err != nil {
			loadMapsErr = err
			return
		}
		mapData[strings.TrimSuffix(name, path.Ext(name))] = data
	}
}

func ensureMaps() error {
	loadMapsOnce.Do(loadMaps)
	return loadMapsErr
}

// MapNames lists the maps embedded in the binary.
func MapNames() []string {
	if err := ensureMaps(); err != nil {
		return nil
	}
	names := make([]string, 0, len(mapData))
	for name := range mapData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MapImage decodes an embedded map by name.
func MapImage(name string) (image.Image, error) {
	if err := ensureMaps(); err != nil {
		return nil, err
	}
	data, ok := mapData[name]
	if !ok {
		return nil, fmt.Errorf("map %q: %w", name, ErrMapNotFound)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP image. The header is
// checked against MaxPixels before any pixel data is decoded.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("decode %s %dx%d: %w", format, cfg.Width, cfg.Height, ErrTooLarge)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: image is empty", format)
	}
	return img, nil
}

// Loader fetches backgrounds. The zero value uses http.DefaultClient.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{Client: &http.Client{Timeout: timeout}}
}

// Open resolves ref and decodes the image it names. An empty ref selects the
// default embedded map; "map:name" selects another embedded map; http and
// https URLs are downloaded; anything else is read as a file path.
func (l *Loader) Open(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return MapImage(DefaultMap)
	case strings.HasPrefix(ref, MapScheme):
		return MapImage(strings.TrimPrefix(ref, MapScheme))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.fetch(ctx, ref)
	default:
		return openFile(ref)
	}
}

func openFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open background: %w", err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("background request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch background: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch background %s: %s", url, resp.Status)
	}
	img, err := Decode(io.LimitReader(resp.Body, MaxDownload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return img, nil
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Ref   string
	Image image.Image
	Err   error
}

// Load runs Open in a goroutine and delivers exactly one Result to deliver,
// unless ctx is cancelled first.
func (l *Loader) Load(ctx context.Context, ref string, deliver func(Result)) {
	go func() {
		img, err := l.Open(ctx, ref)
		if ctx.Err() != nil {
			return
		}
		deliver(Result{Ref: ref, Image: img, Err: err})
	}()
}
