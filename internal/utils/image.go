package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

func IsAllowedImageType(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range AllowedImageTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

// NormalizeImage decodes a car photo, scales it down to at most maxWidth
// pixels wide (keeping aspect ratio) and re-encodes it. PNG stays PNG,
// everything else becomes JPEG.
func NormalizeImage(r io.Reader, filename string, maxWidth uint) (*bytes.Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	if img.Bounds().Dx() > int(maxWidth) {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	buf := &bytes.Buffer{}
	switch format {
	case "png":
		if err := png.Encode(buf, img); err != nil {
			return nil, "", err
		}
		return buf, "image/png", nil
	case "jpeg":
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf, "image/jpeg", nil
	default:
		return nil, "", ErrUnsupportedImageType
	}
}

// ImageContentType maps a stored key back to its MIME type.
func ImageContentType(key string) string {
	if strings.HasSuffix(strings.ToLower(key), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
