package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// ImageService post-processes downloaded observation photos. GLOBE
// uploads are phone camera originals, so the service can bound their
// dimensions to save disk space and re-encode them as JPEG for smaller
// files.
//
// Example usage:
//
//	svc := NewImageService()
//
//	photoData, _ := client.Get(ctx, url)
//
//	// Bound to 1000px on the longer side, then convert to JPEG
//	resized, _ := svc.ResizeImage(ctx, photoData, 1000)
//	jpegData, _ := svc.ConvertToJPEG(ctx, resized, 90)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage scales an image down so that neither side exceeds
// maxDimension, keeping the aspect ratio. Images already within the
// bound keep their size but are re-encoded.
//
// The result stays in its source format, so PNG photos remain PNG and
// JPEG photos remain JPEG. Scaling uses the Catmull-Rom kernel.
//
// Example:
//
//	resized, err := svc.ResizeImage(ctx, photoData, 1000)
//	// A 4032x3024 photo becomes 1000x750
//	// An 800x600 photo stays 800x600
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxDimension int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fitWithin shrinks (width, height) to fit a square bound, keeping the
// aspect ratio. Dimensions already within the bound are unchanged.
func fitWithin(width, height, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}
	if width > height {
		return max, height * max / width
	}
	return width * max / height, max
}

// ConvertToJPEG re-encodes an image as JPEG with the given quality
// (1 to 100). PNG uploads shrink considerably; photos that already are
// JPEG come back re-encoded at the requested quality.
//
// Example:
//
//	pngData, _ := client.Get(ctx, url)
//	jpegData, err := svc.ConvertToJPEG(ctx, pngData, 90)
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
