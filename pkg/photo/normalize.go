package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// jpegQuality is the re-encode target for normalized uploads. High enough
// that the refacing model sees no visible artifacts.
const jpegQuality = 90

// Normalize decodes an uploaded photo, applies the EXIF orientation to the
// pixel data and re-encodes it as a baseline JPEG. The encoder writes no
// EXIF block, so the orientation tag is gone from the output. Downstream
// models are orientation-naive, so this must run before any AI call.
func Normalize(data []byte) ([]byte, error) {
	orientation := ReadOrientation(data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	upright := ApplyOrientation(img, orientation)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, upright, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}

// ReadOrientation extracts the EXIF orientation value, returning 1 (upright)
// when the image has no EXIF block or no orientation tag.
func ReadOrientation(data []byte) int {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	value, err := tag.Int(0)
	if err != nil || value < 1 || value > 8 {
		return 1
	}
	return value
}

// ApplyOrientation maps the 8 standard EXIF orientation values onto pixel
// transforms that bring the image upright.
func ApplyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// stored rotated 90° CCW, undo with a 90° CW rotation
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
