package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// Avatars are squared and capped at this edge length.
	AvatarSize  = 512
	JPEGQuality = 85
)

// AvatarProcessor crops the uploaded image to a centered square and scales
// it down to AvatarSize. PNG stays PNG; everything else is re-encoded as
// JPEG.
type AvatarProcessor struct {
	size    int
	quality int
}

func NewAvatarProcessor() *AvatarProcessor {
	return &AvatarProcessor{
		size:    AvatarSize,
		quality: JPEGQuality,
	}
}

func (p *AvatarProcessor) Process(reader io.Reader) (io.Reader, int64, string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, "", fmt.Errorf("reading image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, "", fmt.Errorf("decoding image: %w", err)
	}

	img = imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	contentType := "image/jpeg"

	switch format {
	case "png":
		contentType = "image/png"
		if err := png.Encode(&buf, img); err != nil {
			return nil, 0, "", fmt.Errorf("encoding png: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, 0, "", fmt.Errorf("encoding jpeg: %w", err)
		}
	}

	return bytes.NewReader(buf.Bytes()), int64(buf.Len()), contentType, nil
}
