package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
)

// Meta describes the stored renditions of one processed upload. RelativePath
// locates the original rendition relative to the upload root, in slash form,
// so callers can persist it independently of where the root is mounted.
type Meta struct {
	ImageName     string
	OriginalPath  string
	MediumPath    string
	ThumbnailPath string
	RelativePath  string
	Size          int64
}

// Processor turns raw upload bytes into the original/medium/thumbnail
// renditions on disk. Derivatives keep the source encoding so every rendition
// shares the same file name across its sibling directories.
type Processor struct {
	root string
	logg *logger.Logger

	mediumWidth   int
	mediumHeight  int
	mediumQuality int
	thumbWidth    int
	thumbHeight   int
	thumbQuality  int
}

// NewProcessor builds a processor rooted at the configured upload directory.
func NewProcessor(cfg config.UploadsConfig, logg *logger.Logger) *Processor {
	return &Processor{
		root:          cfg.Dir,
		logg:          logg,
		mediumWidth:   cfg.MediumMaxWidth,
		mediumHeight:  cfg.MediumMaxHeight,
		mediumQuality: cfg.MediumQuality,
		thumbWidth:    cfg.ThumbMaxWidth,
		thumbHeight:   cfg.ThumbMaxHeight,
		thumbQuality:  cfg.ThumbQuality,
	}
}

// Process stores the original bytes verbatim, then derives the bounded medium
// and thumbnail renditions. Bad image bytes yield a decode error and leave no
// files behind; the caller is expected to have screened content types already.
func (p *Processor) Process(ctx context.Context, raw []byte, filename string, productID uuid.UUID) (*Meta, error) {
	layout, err := ResolveLayout(p.root, productID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	meta := &Meta{
		ImageName:     name,
		OriginalPath:  filepath.Join(layout.OriginalDir, name),
		MediumPath:    filepath.Join(layout.MediumDir, name),
		ThumbnailPath: filepath.Join(layout.ThumbnailDir, name),
		RelativePath:  path.Join("products", productID.String(), renditionOriginal, name),
		Size:          int64(len(raw)),
	}

	if err := os.WriteFile(meta.OriginalPath, raw, 0o644); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeIO, err, "writing original image")
	}

	img, err := decodeImage(raw, ext)
	if err != nil {
		_ = os.Remove(meta.OriginalPath)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decoding image")
	}

	img = flattenOpaque(img)

	medium := imaging.Fit(img, p.mediumWidth, p.mediumHeight, imaging.Lanczos)
	if err := encodeImage(meta.MediumPath, medium, ext, p.mediumQuality); err != nil {
		p.cleanup(meta)
		return nil, err
	}

	thumb := imaging.Fit(img, p.thumbWidth, p.thumbHeight, imaging.Lanczos)
	if err := encodeImage(meta.ThumbnailPath, thumb, ext, p.thumbQuality); err != nil {
		p.cleanup(meta)
		return nil, err
	}

	if p.logg != nil {
		p.logg.Debug(p.logg.WithField(ctx, "image_name", name), "image renditions stored")
	}

	return meta, nil
}

func (p *Processor) cleanup(meta *Meta) {
	for _, path := range []string{meta.OriginalPath, meta.MediumPath, meta.ThumbnailPath} {
		_ = os.Remove(path)
	}
}

func decodeImage(raw []byte, ext string) (image.Image, error) {
	if ext == ".webp" {
		return webp.Decode(bytes.NewReader(raw), &decoder.Options{})
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

func encodeImage(path string, img image.Image, ext string, quality int) error {
	switch ext {
	case ".webp":
		return encodeWebP(path, img, quality)
	case ".png":
		if err := imaging.Save(img, path); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeIO, err, "encoding png rendition")
		}
		return nil
	default:
		if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeIO, err, "encoding jpeg rendition")
		}
		return nil
	}
}

func encodeWebP(path string, img image.Image, quality int) error {
	out, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "creating webp rendition")
	}
	defer out.Close()

	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building webp encoder options")
	}
	if err := webp.Encode(out, img, opts); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "encoding webp rendition")
	}
	return nil
}

// flattenOpaque composites transparent or palette images onto a white
// background so lossy derivative encodings never carry alpha.
func flattenOpaque(img image.Image) image.Image {
	type opaquer interface {
		Opaque() bool
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}
