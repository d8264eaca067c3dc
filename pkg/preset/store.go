package preset

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// Store persists user presets.
type Store interface {
	// Get fetches a preset by name, failing with PRESET_NOT_FOUND.
	Get(ctx context.Context, name string) (Preset, error)

	// List returns all stored presets sorted by name.
	List(ctx context.Context) ([]Preset, error)

	// Save validates and stores a preset, replacing any previous version.
	Save(ctx context.Context, p Preset) error

	// Delete removes a preset. Deleting an absent preset is not an error.
	Delete(ctx context.Context, name string) error
}

// DirStore keeps one TOML file per preset in a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates a TOML-file preset store rooted at dir.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create preset directory %q", dir)
	}
	return &DirStore{dir: dir}, nil
}

// DefaultDir returns the conventional preset location under the user config
// directory.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "pixelsort", "presets")
}

func (s *DirStore) path(name string) string {
	return filepath.Join(s.dir, name+".toml")
}

func (s *DirStore) Get(ctx context.Context, name string) (Preset, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return Preset{}, err
	}

	var p Preset
	if _, err := toml.DecodeFile(s.path(name), &p); err != nil {
		if os.IsNotExist(err) {
			return Preset{}, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
		}
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset %q", name)
	}
	return p, nil
}

func (s *DirStore) List(ctx context.Context) ([]Preset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list presets in %q", s.dir)
	}

	var presets []Preset
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		var p Preset
		if _, err := toml.DecodeFile(filepath.Join(s.dir, e.Name()), &p); err != nil {
			// Skip unreadable files rather than failing the whole listing.
			continue
		}
		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

func (s *DirStore) Save(ctx context.Context, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	f, err := os.Create(s.path(p.Name))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write preset %q", p.Name)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "encode preset %q", p.Name)
	}
	return nil
}

func (s *DirStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*DirStore)(nil)
