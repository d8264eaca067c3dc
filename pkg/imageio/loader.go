package imageio

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"
	"strings"

	// Register the decoders the loader accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

// IsURL reports whether the source reference is an HTTP or HTTPS location
// rather than a local file path.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// LoadRaw resolves a source reference, either a local file path or an
// HTTP(S) URL, into its raw encoded bytes. Remote references are refused
// unless network access is enabled. Callers hash these bytes for cache keys
// before decoding.
func LoadRaw(ctx context.Context, ref string, network bool) ([]byte, error) {
	if err := errors.ValidateSourceRef(ref); err != nil {
		return nil, err
	}

	if IsURL(ref) {
		if !network {
			return nil, errors.New(errors.ErrCodeNetwork,
				"network access disabled, cannot fetch %q", ref)
		}
		return Fetch(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %q not found", ref)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open image %q", ref)
	}
	return data, nil
}

// Load resolves a source reference into a decoded pixel grid.
func Load(ctx context.Context, ref string, network bool) (grid.Grid, error) {
	data, err := LoadRaw(ctx, ref, network)
	if err != nil {
		return nil, err
	}
	g, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode image %q", ref)
	}
	return g, nil
}

// Decode reads one image from r into a pixel grid.
func Decode(r io.Reader) (grid.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode image")
	}
	return grid.FromImage(img), nil
}

// EncodePNG encodes the grid as PNG bytes, the wire format of the HTTP API
// and the payload stored in result caches.
func EncodePNG(g grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, g.ToNRGBA(), imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Save encodes the grid to path; the format follows the file extension.
// Only the extensions accepted by ValidateOutputPath are supported.
func Save(g grid.Grid, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := imaging.Save(g.ToNRGBA(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "save image %q", path)
	}
	return nil
}

// FileSource reloads a grid from a local file, satisfying the engine's
// Source contract for strategies that re-read the original image.
type FileSource struct {
	Path string
}

func (s FileSource) Reload(ctx context.Context) (grid.Grid, error) {
	return Load(ctx, s.Path, false)
}

// URLSource reloads a grid over HTTP.
type URLSource struct {
	URL string
}

func (s URLSource) Reload(ctx context.Context) (grid.Grid, error) {
	return Load(ctx, s.URL, true)
}

// GridSource serves an in-memory grid; callers that already hold the decoded
// original (the API server, tests) use it to satisfy the Source contract
// without touching I/O again.
type GridSource struct {
	Grid grid.Grid
}

func (s GridSource) Reload(context.Context) (grid.Grid, error) {
	if s.Grid.Empty() {
		return nil, errors.New(errors.ErrCodeEffectPrecondition, "grid source is empty")
	}
	return s.Grid.Clone(), nil
}

// Reloader re-reads original image content on demand. It matches the engine's
// Source contract structurally.
type Reloader interface {
	Reload(ctx context.Context) (grid.Grid, error)
}

// NewSource picks the source implementation matching the reference kind.
func NewSource(ref string, network bool) (Reloader, error) {
	if err := errors.ValidateSourceRef(ref); err != nil {
		return nil, err
	}
	if IsURL(ref) {
		if !network {
			return nil, errors.New(errors.ErrCodeNetwork,
				"network access disabled, cannot fetch %q", ref)
		}
		return URLSource{URL: ref}, nil
	}
	return FileSource{Path: ref}, nil
}
