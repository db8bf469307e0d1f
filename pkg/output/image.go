package output

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// JPEGQuality is used for every JPEG written by this package
const JPEGQuality = 95

// SaveImage writes img to path. The format follows the extension: .ppm is
// written as plain-text PPM, everything else goes through imaging
// (.png, .jpg, .jpeg, .gif, .tif, .bmp). Parent directories are created.
func SaveImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if isPPM(path) {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := writePPMAndClose(file, img); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		return nil
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the format implied by name's extension
func Encode(w io.Writer, name string, img image.Image) error {
	if isPPM(name) {
		return WritePPM(w, img)
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", name, err)
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(JPEGQuality))
}

// EncodeBytes is Encode into a byte slice
func EncodeBytes(name string, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, name, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type for name's extension
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}

// writePPMAndClose writes img to wc and closes it, reporting the first error
func writePPMAndClose(wc io.WriteCloser, img image.Image) error {
	if err := WritePPM(wc, img); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close PPM output: %w", err)
	}
	return nil
}

func isPPM(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".ppm")
}
