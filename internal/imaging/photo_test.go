package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodedJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{200, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodedPNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestNormalizeSmallJPEG(t *testing.T) {
	p, err := NormalizePhoto(encodedJPEG(120, 80))
	if err != nil {
		t.Fatalf("NormalizePhoto: %v", err)
	}
	if p.MIME != "image/jpeg" || p.Width != 120 || p.Height != 80 {
		t.Errorf("unexpected photo %s %dx%d", p.MIME, p.Width, p.Height)
	}
}

func TestNormalizeDownscalesWide(t *testing.T) {
	p, err := NormalizePhoto(encodedJPEG(2048, 1024))
	if err != nil {
		t.Fatalf("NormalizePhoto: %v", err)
	}
	if p.Width != 1024 || p.Height != 512 {
		t.Errorf("expected 1024x512, got %dx%d", p.Width, p.Height)
	}

	img, err := jpeg.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 1024 {
		t.Errorf("encoded width %d", img.Bounds().Dx())
	}
}

func TestNormalizeFlattensTransparentPNG(t *testing.T) {
	p, err := NormalizePhoto(encodedPNG(10, 2000))
	if err != nil {
		t.Fatalf("NormalizePhoto: %v", err)
	}
	if p.MIME != "image/jpeg" || p.Height != 1024 || p.Width != 5 {
		t.Errorf("unexpected photo %s %dx%d", p.MIME, p.Width, p.Height)
	}

	img, _ := jpeg.Decode(bytes.NewReader(p.Data))
	r, g, b, _ := img.At(2, 500).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("expected white background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestNormalizeRejects(t *testing.T) {
	if _, err := NormalizePhoto([]byte("GIF89a not really")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if _, err := NormalizePhoto(make([]byte, MaxUploadBytes+1)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	// Valid JPEG magic but truncated body.
	if _, err := NormalizePhoto([]byte{0xff, 0xd8, 0xff, 0xe0, 0, 0}); err == nil {
		t.Error("expected decode error")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct{ w, h, wantW, wantH int }{
		{100, 100, 100, 100},
		{3000, 1500, 1024, 512},
		{1500, 3000, 512, 1024},
		{5000, 2, 1024, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, 1024)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitWithin(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
