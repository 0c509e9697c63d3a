package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemStore implements Store on a local directory. Keys map to
// relative file paths under the root.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates (if needed) the root directory and returns a
// store over it.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem blob root required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FilesystemStore{root: root}, nil
}

// Driver returns the blob driver identifier
func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }

// path resolves a key inside the root, rejecting traversal outside it
func (s *FilesystemStore) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key required")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put stores a new blob; errors if the key exists
func (s *FilesystemStore) Put(_ context.Context, key string, r io.Reader, _ PutOptions) (Info, error) {
	p, err := s.path(key)
	if err != nil {
		return Info{}, err
	}
	if _, err := os.Stat(p); err == nil {
		return Info{}, fmt.Errorf("blob %s already exists", key)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return Info{}, fmt.Errorf("create blob dirs: %w", err)
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return Info{}, fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return Info{}, fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return Info{}, fmt.Errorf("close blob: %w", err)
	}
	return s.stat(key, p)
}

// Get returns blob metadata and an open reader
func (s *FilesystemStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return Info{}, nil, err
	}
	info, err := s.stat(key, p)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return Info{}, nil, fmt.Errorf("open blob: %w", err)
	}
	return info, f, nil
}

// List returns all blobs under the root matching prefix, sorted by key
func (s *FilesystemStore) List(_ context.Context, prefix string) ([]Info, error) {
	var infos []Info
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.stat(key, p)
		if err != nil {
			return err
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Delete removes the blob, returning true if it existed
func (s *FilesystemStore) Delete(_ context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete blob: %w", err)
	}
	return true, nil
}

func (s *FilesystemStore) stat(key, p string) (Info, error) {
	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, fmt.Errorf("blob %s not found", key)
		}
		return Info{}, fmt.Errorf("stat blob: %w", err)
	}
	return Info{
		Key:          key,
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(p)),
		LastModified: st.ModTime().UTC(),
	}, nil
}
