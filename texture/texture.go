// Package texture provides image assets decoded to RGBA pixels.
package texture

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/errors"
)

// Decoder turns an image file into RGBA pixels.
type Decoder interface {
	Decode(path string) (*image.RGBA, error)
}

// ImageDecoder decodes through the registered image codecs. PNG and
// JPEG are linked in; blank-import further codecs to widen the set.
type ImageDecoder struct{}

// NewImageDecoder returns the codec-backed decoder.
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{}
}

func (d *ImageDecoder) Decode(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.OpDecode, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.DecodeFailed("texture", path, err)
	}
	return toRGBA(img), nil
}

// toRGBA normalizes any decoded image to 8-bit RGBA, the layout
// uploads expect.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// Texture is a named image held as RGBA pixels. A refresh replaces the
// whole image, so consumers re-read Image after each tick rather than
// caching the pointer.
type Texture struct {
	asset.Base

	dec Decoder
	img *image.RGBA
}

// New assembles a texture asset from decoded pixels.
func New(name string, res asset.Resource, dec Decoder, img *image.RGBA) *Texture {
	return &Texture{
		Base: asset.NewBase(name, res),
		dec:  dec,
		img:  img,
	}
}

// Image returns the current pixels.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

// Width returns the pixel width, 0 after release.
func (t *Texture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

// Height returns the pixel height, 0 after release.
func (t *Texture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

// Refresh re-decodes the backing file in place. On failure the
// previous pixels stay current.
func (t *Texture) Refresh() error {
	res := t.Resource()
	if res.Builtin() {
		return nil
	}
	img, err := t.dec.Decode(res.Path())
	if err != nil {
		return errors.Wrap(errors.OpRefresh, errors.KindDecodeFailed, err, "re-decoding image")
	}
	t.img = img
	return nil
}

// Release drops the pixel data.
func (t *Texture) Release() {
	t.img = nil
}
