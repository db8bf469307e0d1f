package output

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail downsizes img to maxWidth pixels wide, keeping the aspect ratio.
// Images already narrower than maxWidth, or maxWidth 0, are returned as is.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}

// ThumbnailPath derives the thumbnail file name for path: render.png becomes
// render_thumb<width>.png
func ThumbnailPath(path string, maxWidth uint) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_thumb%d%s", strings.TrimSuffix(path, ext), maxWidth, ext)
}
