package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// FileStore persists runs as JSON files, one per run, for CLI history.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed run store rooted at dir, creating it if
// needed. An empty dir selects the default location under the user cache
// directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "pixelsort", "runs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create run directory %q", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *FileStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read run %s", id)
	}

	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode run %s", id)
	}
	return &r, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Run, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list runs in %q", s.dir)
	}

	var runs []*Run
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var r Run
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		runs = append(runs, &r)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (s *FileStore) Put(ctx context.Context, r *Run) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode run %s", r.ID)
	}
	return os.WriteFile(s.path(r.ID), data, 0644)
}

func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*FileStore)(nil)
