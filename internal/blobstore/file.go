package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var safeID = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// FileStore persists each payload as a single id-named file under a profile
// directory. There is no eviction: the directory grows for the lifetime of
// the profile unless Sweep is run.
type FileStore struct {
	dir string
}

// NewFileStore creates the images directory under the profile dir if needed.
func NewFileStore(profileDir string) (*FileStore, error) {
	dir := filepath.Join(profileDir, "images")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating image store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	if !safeID.MatchString(id) {
		return "", fmt.Errorf("invalid image id %q", id)
	}
	return filepath.Join(s.dir, id), nil
}

func (s *FileStore) Put(ctx context.Context, id string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(id)
	if err != nil {
		return err
	}
	return os.WriteFile(p, payload, 0o600)
}

func (s *FileStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := s.path(id)
	if err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && safeID.MatchString(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}
