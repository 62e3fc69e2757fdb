package fs

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // gif decoder
	_ "image/jpeg" // jpeg decoder
	_ "image/png"  // png decoder
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/imagestore"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"  // bmp decoder
	_ "golang.org/x/image/tiff" // tiff decoder
	_ "golang.org/x/image/webp" // webp decoder
)

const subdir = "whiskeys"

// ImageStore keeps uploaded images as files under <dir>/whiskeys.
// Stored names are relative to dir, e.g. "whiskeys/<uuid>.jpeg".
type ImageStore struct {
	dir       string
	urlPrefix string
	maxPixels int64
	mu        sync.Mutex
}

func New(cfg config.Images) (*ImageStore, error) {
	if cfg.Dir == "" {
		return nil, errors.New("image dir cannot be empty") //nolint:goerr113
	}

	if err := os.MkdirAll(filepath.Join(cfg.Dir, subdir), 0o755); err != nil { //nolint:gomnd
		return nil, fmt.Errorf("mkdir error: %w", err)
	}

	prefix := cfg.URLPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &ImageStore{
		dir:       cfg.Dir,
		urlPrefix: prefix,
		maxPixels: cfg.MaxPixels,
	}, nil
}

// Detect reports the image format of data or imagestore.ErrNotImage.
// data must decode completely and stay within the pixel limit; a zero
// limit disables the size check.
func (s *ImageStore) Detect(data []byte) (string, error) {
	if len(data) == 0 {
		return "", imagestore.ErrNotImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return "", imagestore.ErrNotImage
	}

	if s.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > s.maxPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", imagestore.ErrNotImage, cfg.Width, cfg.Height, s.maxPixels)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %w", imagestore.ErrNotImage, err)
	}

	return format, nil
}

// Save writes data under a fresh name and returns it. The file appears
// only once it is completely written.
func (s *ImageStore) Save(data []byte, format string) (string, error) {
	name := path.Join(subdir, uuid.NewString()+"."+format)

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Join(s.dir, subdir), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp error: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return "", fmt.Errorf("write error: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return "", fmt.Errorf("close error: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		os.Remove(tmp.Name())

		return "", fmt.Errorf("rename error: %w", err)
	}

	return name, nil
}

func (s *ImageStore) Delete(name string) error {
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove error: %w", err)
	}

	return nil
}

// URL returns the public address of a stored image, "" for no image.
func (s *ImageStore) URL(name string) string {
	if name == "" {
		return ""
	}

	return s.urlPrefix + name
}

func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name))
}

// Dir is the root the stored names are relative to.
func (s *ImageStore) Dir() string {
	return s.dir
}
