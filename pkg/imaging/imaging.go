package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

// DetectMIME sniffs the content type from the leading bytes.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// Thumbnail decodes data and re-encodes it as a JPEG whose longest side is at
// most maxDimension pixels. Aspect ratio is preserved and small images are
// never upscaled.
func Thumbnail(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(width, height, maxDimension int) (int, int) {
	longest := max(width, height)
	if longest <= maxDimension || longest == 0 {
		return width, height
	}
	w := max(1, width*maxDimension/longest)
	h := max(1, height*maxDimension/longest)
	return w, h
}

var extensionsByMIME = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
}

// ExtensionMatches reports whether fileName carries an extension registered
// for the sniffed MIME type. Unknown types never match.
func ExtensionMatches(fileName, sniffedMIME string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ext != "" && slices.Contains(extensionsByMIME[sniffedMIME], ext)
}
