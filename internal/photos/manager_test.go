package photos

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/IGES-Geospatial/globe-observer-go/internal/config"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
)

func testSettings() *config.Settings {
	settings := config.DefaultSettings()
	settings.MaxConcurrentDownloads = 2
	settings.DownloadMaxRetries = 2
	settings.DownloadRetryCooldown = 0
	return settings
}

func TestDownloadPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2021/01/05/101/original.jpg":
			w.Write([]byte("photo-a"))
		case "/2021/01/05/102/original.jpg":
			w.Write([]byte("photo-b"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	targets := []model.Target{
		{URL: srv.URL + "/2021/01/05/101/original.jpg", Directory: dir, Filename: "a.png"},
		{URL: srv.URL + "/2021/01/05/102/original.jpg", Directory: dir, Filename: "b.png"},
	}

	var mu sync.Mutex
	var events []ProgressEvent
	manager := NewManager(testSettings(), func(event ProgressEvent) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	})

	if err := manager.DownloadPhotos(context.Background(), targets); err != nil {
		t.Fatalf("DownloadPhotos failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("could not read downloaded photo: %v", err)
	}
	if string(data) != "photo-a" {
		t.Errorf("photo content = %q, want photo-a", data)
	}

	downloaded, skipped, failed := manager.Stats()
	if downloaded != 2 || skipped != 0 || failed != 0 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 0, 0)", downloaded, skipped, failed)
	}

	mu.Lock()
	last := events[len(events)-1]
	mu.Unlock()
	if last.Level != LevelSuccess {
		t.Errorf("final event level = %d, want LevelSuccess", last.Level)
	}
	if last.Completed != 2 || last.Total != 2 {
		t.Errorf("final event counts = %d/%d, want 2/2", last.Completed, last.Total)
	}

	// A second run finds the photos on disk and skips them.
	if err := manager.DownloadPhotos(context.Background(), targets); err != nil {
		t.Fatalf("DownloadPhotos failed: %v", err)
	}
	downloaded, skipped, failed = manager.Stats()
	if downloaded != 0 || skipped != 2 || failed != 0 {
		t.Errorf("Stats() = (%d, %d, %d), want (0, 2, 0)", downloaded, skipped, failed)
	}
}

func TestDownloadPhotos_FailuresDoNotAbort(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.jpg" {
			atomic.AddInt32(&attempts, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	settings := testSettings()
	settings.DownloadMaxRetries = 3

	manager := NewManager(settings, nil)
	targets := []model.Target{
		{URL: srv.URL + "/broken.jpg", Directory: dir, Filename: "broken.png"},
		{URL: srv.URL + "/fine.jpg", Directory: dir, Filename: "fine.png"},
	}
	if err := manager.DownloadPhotos(context.Background(), targets); err != nil {
		t.Fatalf("DownloadPhotos failed: %v", err)
	}

	downloaded, _, failed := manager.Stats()
	if downloaded != 1 || failed != 1 {
		t.Errorf("Stats() = %d downloaded, %d failed, want 1 and 1", downloaded, failed)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("broken photo was attempted %d times, want 3", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.png")); !os.IsNotExist(err) {
		t.Error("failed download should not leave a file behind")
	}
}

func TestDownloadPhotos_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	manager := NewManager(testSettings(), nil)
	targets := []model.Target{
		{URL: srv.URL + "/a.jpg", Directory: t.TempDir(), Filename: "a.png"},
	}
	if err := manager.DownloadPhotos(ctx, targets); !errors.Is(err, context.Canceled) {
		t.Errorf("DownloadPhotos returned %v, want context.Canceled", err)
	}
}

func TestDownloadPhotos_ConvertsToJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("could not encode fixture image: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	dir := t.TempDir()
	settings := testSettings()
	settings.ConvertPhotosToJPEG = true
	settings.JPEGQuality = 90

	manager := NewManager(settings, nil)
	targets := []model.Target{
		{URL: srv.URL + "/photo", Directory: dir, Filename: "photo.png"},
	}
	if err := manager.DownloadPhotos(context.Background(), targets); err != nil {
		t.Fatalf("DownloadPhotos failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
	if err != nil {
		t.Fatalf("could not read converted photo: %v", err)
	}
	if _, format, err := image.Decode(bytes.NewReader(data)); err != nil || format != "jpeg" {
		t.Errorf("converted photo decoded as %q (err %v), want jpeg", format, err)
	}
}
