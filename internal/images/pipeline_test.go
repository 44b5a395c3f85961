package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

func testUploadsConfig(dir string) config.UploadsConfig {
	return config.UploadsConfig{
		Dir:             dir,
		MediumMaxWidth:  800,
		MediumMaxHeight: 600,
		MediumQuality:   85,
		ThumbMaxWidth:   200,
		ThumbMaxHeight:  200,
		ThumbQuality:    80,
	}
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func pngWithAlphaBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 200, B: 30, A: uint8(x % 256)})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestResolveLayoutCreatesRenditionDirs(t *testing.T) {
	root := t.TempDir()
	productID := uuid.New()

	layout, err := ResolveLayout(root, productID)
	require.NoError(t, err)

	for _, dir := range []string{layout.OriginalDir, layout.MediumDir, layout.ThumbnailDir} {
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}

	// resolving again is a no-op
	again, err := ResolveLayout(root, productID)
	require.NoError(t, err)
	assert.Equal(t, layout, again)
}

func TestProcessDownscalesWithinBounds(t *testing.T) {
	root := t.TempDir()
	processor := NewProcessor(testUploadsConfig(root), nil)
	raw := jpegBytes(t, 1600, 1200)

	meta, err := processor.Process(context.Background(), raw, "factory-floor.JPG", uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(len(raw)), meta.Size)
	assert.Equal(t, ".jpg", filepath.Ext(meta.ImageName))
	assert.Equal(t, filepath.Base(meta.OriginalPath), meta.ImageName)
	assert.Equal(t, filepath.Base(meta.MediumPath), meta.ImageName)
	assert.Equal(t, filepath.Base(meta.ThumbnailPath), meta.ImageName)

	original, err := os.ReadFile(meta.OriginalPath)
	require.NoError(t, err)
	assert.Equal(t, raw, original, "original must be stored verbatim")

	assert.Equal(t, meta.OriginalPath, filepath.Join(root, filepath.FromSlash(meta.RelativePath)),
		"relative path must resolve against the upload root")

	mw, mh := decodeDims(t, meta.MediumPath)
	assert.Equal(t, 800, mw)
	assert.Equal(t, 600, mh)

	tw, th := decodeDims(t, meta.ThumbnailPath)
	assert.Equal(t, 200, tw)
	assert.Equal(t, 150, th)
}

func TestProcessNeverUpscales(t *testing.T) {
	root := t.TempDir()
	processor := NewProcessor(testUploadsConfig(root), nil)
	raw := jpegBytes(t, 100, 80)

	meta, err := processor.Process(context.Background(), raw, "tiny.jpg", uuid.New())
	require.NoError(t, err)

	mw, mh := decodeDims(t, meta.MediumPath)
	assert.Equal(t, 100, mw)
	assert.Equal(t, 80, mh)
}

func TestProcessFlattensAlphaForJPEGTarget(t *testing.T) {
	root := t.TempDir()
	processor := NewProcessor(testUploadsConfig(root), nil)
	raw := pngWithAlphaBytes(t, 400, 300)

	meta, err := processor.Process(context.Background(), raw, "translucent.png", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(meta.ImageName))

	mw, mh := decodeDims(t, meta.MediumPath)
	assert.Equal(t, 400, mw)
	assert.Equal(t, 300, mh)
}

func TestProcessBadBytesLeavesNoFiles(t *testing.T) {
	root := t.TempDir()
	processor := NewProcessor(testUploadsConfig(root), nil)
	productID := uuid.New()

	_, err := processor.Process(context.Background(), []byte("definitely not an image"), "broken.jpg", productID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDecode, typed.Code())

	layout, err := ResolveLayout(root, productID)
	require.NoError(t, err)
	for _, dir := range []string{layout.OriginalDir, layout.MediumDir, layout.ThumbnailDir} {
		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries, "no files should remain in %s", dir)
	}
}
