package photos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IGES-Geospatial/globe-observer-go/internal/config"
	"github.com/IGES-Geospatial/globe-observer-go/internal/http"
	ioutils "github.com/IGES-Geospatial/globe-observer-go/internal/io"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Completed counts targets that have been resolved (downloaded,
	// skipped or failed) out of Total scheduled.
	Completed int32
	Total     int32
}

// Manager coordinates photo downloads.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	imageService *ioutils.ImageService

	totalFiles      int32
	completedFiles  int32
	downloadedFiles int32
	skippedFiles    int32
	failedFiles     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(settings.UserAgent, settings.HTTPTimeout()),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// DownloadPhotos downloads all targets, at most
// settings.MaxConcurrentDownloads at a time. Photos that fail after every
// retry are reported through progress events and counted, but do not
// abort the run; the returned error is non-nil only when the context is
// cancelled or a destination directory cannot be created.
func (m *Manager) DownloadPhotos(ctx context.Context, targets []model.Target) error {
	atomic.StoreInt32(&m.totalFiles, int32(len(targets)))
	atomic.StoreInt32(&m.completedFiles, 0)
	atomic.StoreInt32(&m.downloadedFiles, 0)
	atomic.StoreInt32(&m.skippedFiles, 0)
	atomic.StoreInt32(&m.failedFiles, 0)

	created := make(map[string]bool)
	for _, target := range targets {
		if created[target.Directory] {
			continue
		}
		if err := ioutils.EnsureDir(target.Directory); err != nil {
			return fmt.Errorf("could not create photo directory: %w", err)
		}
		created[target.Directory] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	limit := m.settings.MaxConcurrentDownloads
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			skipped, err := m.downloadPhoto(ctx, target)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			atomic.AddInt32(&m.completedFiles, 1)
			switch {
			case err != nil:
				atomic.AddInt32(&m.failedFiles, 1)
				m.progress(m.event(fmt.Sprintf("Error downloading %s: %v", target.Filename, err), LevelError))
			case skipped:
				atomic.AddInt32(&m.skippedFiles, 1)
				m.progress(m.event(fmt.Sprintf("Skipping existing: %s", target.Filename), LevelVerbose))
			default:
				atomic.AddInt32(&m.downloadedFiles, 1)
				m.progress(m.event(fmt.Sprintf("Downloaded: %s", target.Filename), LevelVerbose))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	downloaded, skipped, failed := m.Stats()
	if failed > 0 {
		m.progress(m.event(fmt.Sprintf("Finished: %d downloaded, %d skipped, %d failed", downloaded, skipped, failed), LevelWarning))
	} else {
		m.progress(m.event(fmt.Sprintf("Successfully downloaded %d photos (%d skipped)", downloaded, skipped), LevelSuccess))
	}
	return nil
}

// GetProgress returns how many targets have been resolved so far.
func (m *Manager) GetProgress() (completed, total int32) {
	return atomic.LoadInt32(&m.completedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Stats returns the download counters: photos written to disk, photos
// skipped because they already existed, and photos that failed after all
// retries.
func (m *Manager) Stats() (downloaded, skipped, failed int32) {
	return atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.skippedFiles),
		atomic.LoadInt32(&m.failedFiles)
}

func (m *Manager) downloadPhoto(ctx context.Context, target model.Target) (skipped bool, err error) {
	path := m.destinationPath(target)

	if m.settings.SkipExistingPhotos {
		if _, statErr := os.Stat(path); statErr == nil {
			return true, nil
		}
	}

	retries := m.settings.DownloadMaxRetries
	if retries < 1 {
		retries = 1
	}
	for tries := 0; tries < retries; tries++ {
		err = m.fetchPhoto(ctx, target, path)
		if err == nil {
			return false, nil
		}
		if ctx.Err() != nil || tries+1 == retries {
			break
		}
		m.progress(m.event(fmt.Sprintf("Retry %d/%d for %s", tries+1, retries, target.Filename), LevelWarning))
		m.waitForRetry(ctx, tries)
	}
	return false, err
}

// fetchPhoto performs one download attempt. Photos that need no
// post-processing are streamed straight to disk.
func (m *Manager) fetchPhoto(ctx context.Context, target model.Target, path string) error {
	if !m.settings.ResizePhotos && !m.settings.ConvertPhotosToJPEG {
		return m.httpClient.DownloadFile(ctx, target.URL, path)
	}

	data, err := m.httpClient.Get(ctx, target.URL)
	if err != nil {
		return err
	}

	if m.settings.ResizePhotos {
		resized, err := m.imageService.ResizeImage(ctx, data, m.settings.MaxPhotoDimension)
		if err != nil {
			m.progress(m.event(fmt.Sprintf("Could not resize %s: %v", target.Filename, err), LevelWarning))
		} else {
			data = resized
		}
	}

	if m.settings.ConvertPhotosToJPEG {
		converted, err := m.imageService.ConvertToJPEG(ctx, data, m.settings.JPEGQuality)
		if err != nil {
			m.progress(m.event(fmt.Sprintf("Could not convert %s: %v", target.Filename, err), LevelWarning))
		} else {
			data = converted
		}
	}

	return ioutils.WriteFile(ctx, path, data)
}

// destinationPath is the target path, adjusted when photos are converted
// to JPEG.
func (m *Manager) destinationPath(target model.Target) string {
	path := target.Path()
	if m.settings.ConvertPhotosToJPEG {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	}
	return path
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * float64(tries+1)
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) event(message string, level ProgressLevel) ProgressEvent {
	return ProgressEvent{
		Message:   message,
		Level:     level,
		Completed: atomic.LoadInt32(&m.completedFiles),
		Total:     atomic.LoadInt32(&m.totalFiles),
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
