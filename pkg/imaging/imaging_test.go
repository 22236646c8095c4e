package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetectMIME(t *testing.T) {
	t.Run("Should detect png content", func(t *testing.T) {
		assert.Equal(t, "image/png", DetectMIME(encodePNG(t, 4, 4)))
	})

	t.Run("Should not report text as an image", func(t *testing.T) {
		assert.NotContains(t, DetectMIME([]byte("just some notes")), "image/")
	})
}

func TestThumbnail(t *testing.T) {
	t.Run("Should shrink the longest side and keep the ratio", func(t *testing.T) {
		out, err := Thumbnail(encodePNG(t, 800, 400), 256, 80)
		require.NoError(t, err)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 256, cfg.Width)
		assert.Equal(t, 128, cfg.Height)
	})

	t.Run("Should not upscale small images", func(t *testing.T) {
		out, err := Thumbnail(encodePNG(t, 40, 60), 256, 80)
		require.NoError(t, err)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Width)
		assert.Equal(t, 60, cfg.Height)
	})

	t.Run("Should fail on content that is not an image", func(t *testing.T) {
		_, err := Thumbnail([]byte("not an image"), 256, 80)
		assert.Error(t, err)
	})
}

func TestExtensionMatches(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mime     string
		want     bool
	}{
		{"png named png", "avatar.PNG", "image/png", true},
		{"jpeg named jpg", "avatar.jpg", "image/jpeg", true},
		{"jpeg named jpeg", "avatar.jpeg", "image/jpeg", true},
		{"png named jpg", "avatar.jpg", "image/png", false},
		{"no extension", "avatar", "image/png", false},
		{"unknown type", "avatar.gif", "image/gif", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionMatches(tt.fileName, tt.mime))
		})
	}
}
