package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

var (
	cA = color.NRGBA{R: 255, A: 255}          // red
	cB = color.NRGBA{G: 255, A: 255}          // green
	cC = color.NRGBA{B: 255, A: 255}          // blue
	cD = color.NRGBA{R: 255, G: 255, A: 255}  // yellow
)

// quad builds the 2x2 probe image A B / C D.
func quad() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, cA)
	img.SetNRGBA(1, 0, cB)
	img.SetNRGBA(0, 1, cC)
	img.SetNRGBA(1, 1, cD)
	return img
}

func pixelsOf(img image.Image) [4]color.NRGBA {
	var out [4]color.NRGBA
	b := img.Bounds()
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			out[idx] = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
			idx++
		}
	}
	return out
}

func TestApplyOrientationAllValues(t *testing.T) {
	cases := []struct {
		orientation int
		want        [4]color.NRGBA // row-major after correction
	}{
		{1, [4]color.NRGBA{cA, cB, cC, cD}},
		{2, [4]color.NRGBA{cB, cA, cD, cC}}, // mirrored horizontally
		{3, [4]color.NRGBA{cD, cC, cB, cA}}, // upside down
		{4, [4]color.NRGBA{cC, cD, cA, cB}}, // mirrored vertically
		{5, [4]color.NRGBA{cA, cC, cB, cD}}, // transposed
		{6, [4]color.NRGBA{cC, cA, cD, cB}}, // stored 90° CCW
		{7, [4]color.NRGBA{cD, cB, cC, cA}}, // transversed
		{8, [4]color.NRGBA{cB, cD, cA, cC}}, // stored 90° CW
	}

	for _, tc := range cases {
		got := pixelsOf(ApplyOrientation(quad(), tc.orientation))
		if got != tc.want {
			t.Errorf("orientation %d: got %v, want %v", tc.orientation, got, tc.want)
		}
	}
}

func TestApplyOrientationOutOfRangePassthrough(t *testing.T) {
	for _, orientation := range []int{0, 9, -1} {
		got := pixelsOf(ApplyOrientation(quad(), orientation))
		if got != [4]color.NRGBA{cA, cB, cC, cD} {
			t.Errorf("orientation %d should be identity, got %v", orientation, got)
		}
	}
}

func TestReadOrientationNoEXIF(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, quad(), nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if got := ReadOrientation(buf.Bytes()); got != 1 {
		t.Errorf("expected upright default, got %d", got)
	}
	if got := ReadOrientation([]byte("not an image")); got != 1 {
		t.Errorf("garbage input should default upright, got %d", got)
	}
}

func TestNormalizeReencodesJPEG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if b := decoded.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("dimensions changed: %v", b)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte{0x00, 0x01, 0x02}); err == nil {
		t.Error("expected decode error")
	}
}
