package rtclient

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// SaveFramebuffer writes resX*resY*3 RGB bytes (pixels) to path, selecting
// the encoding by extension: BMP by default, PNG for ".png", and the raw
// bytes verbatim for ".raw".
func SaveFramebuffer(path string, resX, resY int, pixels []byte) error {
	if len(pixels) != resX*resY*3 {
		return fmt.Errorf("rtclient: expected %d framebuffer bytes, got %d", resX*resY*3, len(pixels))
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".raw" {
		return os.WriteFile(path, pixels, 0o644)
	}

	img := image.NewNRGBA(image.Rect(0, 0, resX, resY))
	for y := 0; y < resY; y++ {
		for x := 0; x < resX; x++ {
			off := (y*resX + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{R: pixels[off], G: pixels[off+1], B: pixels[off+2], A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rtclient: %s", err.Error())
	}
	defer f.Close()

	switch ext {
	case ".png":
		return png.Encode(f, img)
	default:
		return bmp.Encode(f, img)
	}
}
