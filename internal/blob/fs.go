package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// Filesystem keeps objects as plain files under a root directory.
type Filesystem struct {
	root    string
	baseURL string
}

func NewFilesystem(root, baseURL string) (*Filesystem, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root, baseURL: baseURL}, nil
}

func (s *Filesystem) Driver() Driver { return DriverFilesystem }

func (s *Filesystem) URL(key string) string { return publicURL(s.baseURL, key) }

func (s *Filesystem) pathFor(key string) (string, string, error) {
	k, err := SanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	return k, filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put writes through a temp file renamed into place.
func (s *Filesystem) Put(_ context.Context, key string, r io.Reader, contentType string) (Info, error) {
	k, p, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Info{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return Info{}, err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return Info{}, err
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(p))
	}
	return Info{Key: k, Size: size, ContentType: contentType, URL: s.URL(k), LastModified: fi.ModTime().UTC()}, nil
}

func (s *Filesystem) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	k, p, err := s.pathFor(key)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, nil, ErrNotFound
	}
	if err != nil {
		return Info{}, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Info{}, nil, err
	}
	info := Info{
		Key:          k,
		Size:         fi.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(p)),
		URL:          s.URL(k),
		LastModified: fi.ModTime().UTC(),
	}
	return info, f, nil
}

func (s *Filesystem) Delete(_ context.Context, key string) error {
	_, p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
