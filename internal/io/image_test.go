package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("could not encode fixture image: %v", err)
	}
	return buf.Bytes()
}

func TestResizeImage(t *testing.T) {
	svc := NewImageService()

	resized, err := svc.ResizeImage(context.Background(), encodePNG(t, 100, 50), 10)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("could not decode resized image: %v", err)
	}
	if format != "png" {
		t.Errorf("resized format = %q, want png", format)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Errorf("resized bounds = %dx%d, want 10x5", img.Bounds().Dx(), img.Bounds().Dy())
	}

	tall, err := svc.ResizeImage(context.Background(), encodePNG(t, 50, 100), 10)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}
	img, _, err = image.Decode(bytes.NewReader(tall))
	if err != nil {
		t.Fatalf("could not decode resized image: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 10 {
		t.Errorf("resized bounds = %dx%d, want 5x10", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeImage_SmallerImageKeepsSize(t *testing.T) {
	svc := NewImageService()

	resized, err := svc.ResizeImage(context.Background(), encodePNG(t, 8, 4), 100)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("could not decode resized image: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("resized bounds = %dx%d, want 8x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeImage_BadData(t *testing.T) {
	if _, err := NewImageService().ResizeImage(context.Background(), []byte("not an image"), 10); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	converted, err := svc.ConvertToJPEG(context.Background(), encodePNG(t, 8, 8), 90)
	if err != nil {
		t.Fatalf("ConvertToJPEG failed: %v", err)
	}

	if _, format, err := image.Decode(bytes.NewReader(converted)); err != nil || format != "jpeg" {
		t.Errorf("converted image decoded as %q (err %v), want jpeg", format, err)
	}
}
