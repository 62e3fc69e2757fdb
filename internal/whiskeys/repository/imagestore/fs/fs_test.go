package fs_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/imagestore"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/imagestore/fs"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestImageStore(t *testing.T) {
	s, err := fs.New(config.Images{Dir: t.TempDir(), URLPrefix: "/media"})
	require.NoError(t, err)

	data := pngBytes(t)

	format, err := s.Detect(data)
	require.NoError(t, err)
	require.Equal(t, "png", format)

	name, err := s.Save(data, format)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "whiskeys/"))
	require.True(t, strings.HasSuffix(name, ".png"))
	require.Equal(t, "/media/"+name, s.URL(name))
	require.Equal(t, "", s.URL(""))

	stored, err := os.ReadFile(s.Path(name))
	require.NoError(t, err)
	require.Equal(t, data, stored)

	require.NoError(t, s.Delete(name))
	_, err = os.Stat(s.Path(name))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(name))
	require.NoError(t, s.Delete(""))
}

func TestDetectRejectsNonImages(t *testing.T) {
	s, err := fs.New(config.Images{Dir: t.TempDir(), URLPrefix: "/media/"})
	require.NoError(t, err)

	large := image.NewRGBA(image.Rect(0, 0, 64, 64))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, large))

	// signature and IHDR only: the header parses, the pixels are missing.
	truncated := buf.Bytes()[:33]

	for _, data := range [][]byte{nil, []byte("notimage"), pngBytes(t)[:20], truncated} {
		_, err := s.Detect(data)
		require.True(t, errors.Is(err, imagestore.ErrNotImage))
	}
}

func TestDetectPixelLimit(t *testing.T) {
	s, err := fs.New(config.Images{Dir: t.TempDir(), URLPrefix: "/media/", MaxPixels: 50})
	require.NoError(t, err)

	_, err = s.Detect(pngBytes(t))
	require.True(t, errors.Is(err, imagestore.ErrNotImage))

	s, err = fs.New(config.Images{Dir: t.TempDir(), URLPrefix: "/media/", MaxPixels: 100})
	require.NoError(t, err)

	format, err := s.Detect(pngBytes(t))
	require.NoError(t, err)
	require.Equal(t, "png", format)
}
