package localstore

// Package localstore provides a local-disk FileStore for uploaded images
// and documents. Files are stored under uuid-based names and served from
// a static route.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed upload extensions; anything else is rejected before writing.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// Store implements ports.FileStore on the local filesystem.
type Store struct {
	dir        string
	publicPath string
}

// Options configures the local file store.
type Options struct {
	// Dir is the directory files are written to; created if absent.
	Dir string
	// PublicPath is the URL prefix files are served from (e.g. "/uploads").
	PublicPath string
}

// New constructs a Store, creating the target directory if needed.
func New(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	publicPath := strings.TrimSuffix(opts.PublicPath, "/")
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &Store{dir: opts.Dir, publicPath: publicPath}, nil
}

// Save writes content under a uuid-based name keeping the original
// extension, and returns the generated object name.
func (s *Store) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, copyErr := io.Copy(f, content); copyErr != nil {
		closeErr := f.Close()
		removeErr := os.Remove(path)
		return "", errors.Join(fmt.Errorf("write upload file: %w", copyErr), closeErr, removeErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return "", fmt.Errorf("close upload file: %w", closeErr)
	}

	return name, nil
}

// PublicURL resolves an object name to its serving path.
func (s *Store) PublicURL(name string) string {
	return s.publicPath + "/" + name
}

// Dir returns the backing directory, for wiring the static file route.
func (s *Store) Dir() string {
	return s.dir
}
