package output

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	return img
}

func TestSaveImagePNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "render.png")
	img := testImage(5, 3)

	if err := SaveImage(path, img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen %s: %v", path, err)
	}
	if loaded.Bounds().Dx() != 5 || loaded.Bounds().Dy() != 3 {
		t.Fatalf("loaded image is %v, want 5x3", loaded.Bounds())
	}
	// PNG is lossless
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			got := color.RGBAModel.Convert(loaded.At(x, y)).(color.RGBA)
			if got != img.RGBAAt(x, y) {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, img.RGBAAt(x, y))
			}
		}
	}
}

func TestSaveImagePPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.PPM")
	if err := SaveImage(path, testImage(1, 1)); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if expected := "P3\n1 1\n255\n0 0 128\n"; string(data) != expected {
		t.Errorf("got %q, want %q", string(data), expected)
	}
}

func TestSaveImageUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.webp")
	err := SaveImage(path, testImage(1, 1))
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "render.webp") {
		t.Errorf("error should name the file, got %q", err.Error())
	}
}

func TestEncodeBytes(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
	}{
		{"render.png", []byte("\x89PNG")},
		{"render.jpg", []byte{0xFF, 0xD8}},
		{"render.ppm", []byte("P3\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeBytes(tt.name, testImage(4, 4))
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			if !bytes.HasPrefix(data, tt.prefix) {
				t.Errorf("encoded data starts with %q, want %q", data[:min(len(data), 4)], tt.prefix)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"a.png", "image/png"},
		{"a.JPG", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.ppm", "image/x-portable-pixmap"},
		{"a.gif", "image/gif"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentType(tt.name); got != tt.expected {
				t.Errorf("ContentType(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}
