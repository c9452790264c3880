// Package downloader copies a configured list of remote objects to the local
// filesystem, one object at a time.
package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"s3fetch/internal/models"
	"s3fetch/internal/s3client"
	"s3fetch/pkg/utils"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Fetcher is the part of s3client.Fetcher the downloader needs.
type Fetcher interface {
	URL(key string) string
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type Downloader struct {
	fetcher Fetcher
	root    string
	bucket  string
	sugar   *zap.SugaredLogger
}

// New returns a Downloader writing below root. Local paths of the mappings are
// joined to root as given.
func New(fetcher Fetcher, bucket, root string, sugar *zap.SugaredLogger) *Downloader {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}
	return &Downloader{
		fetcher: fetcher,
		root:    root,
		bucket:  bucket,
		sugar:   sugar,
	}
}

// Run processes files in order. A failed item is recorded and logged and the
// batch moves on, so Run always returns a result covering every mapping.
func (d *Downloader) Run(ctx context.Context, files []models.FileMapping) *models.DownloadResult {
	startTime := time.Now()
	result := &models.DownloadResult{
		BucketName: d.bucket,
		RootDir:    d.root,
		Items:      make([]models.DownloadItem, 0, len(files)),
	}

	var errs error
	for _, file := range files {
		item, err := d.download(ctx, file)
		result.Items = append(result.Items, item)
		if err != nil {
			d.sugar.Errorf("failed to download %s: %v", file.RemoteKey, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file.RemoteKey, err))
			result.Failed++
			continue
		}
		d.sugar.Infof("saved %s to %s (%s)", file.LocalPath, item.FullPath, utils.FormatBytes(item.BytesWritten))
		result.Succeeded++
		result.TotalSizeBytes += item.BytesWritten
	}

	result.TotalFiles = len(result.Items)
	result.TotalSizeHuman = utils.FormatBytes(result.TotalSizeBytes)
	result.OperationTime = utils.FormatTime(startTime)
	result.DownloadDuration = time.Since(startTime).String()
	result.SetErr(errs)

	if result.Failed > 0 {
		d.sugar.Warnf("download finished: %d of %d files failed", result.Failed, result.TotalFiles)
	} else {
		d.sugar.Infof("download finished: all %d files saved (%s)", result.TotalFiles, result.TotalSizeHuman)
	}
	return result
}

func (d *Downloader) download(ctx context.Context, file models.FileMapping) (models.DownloadItem, error) {
	item := models.DownloadItem{
		RemoteKey: file.RemoteKey,
		LocalPath: file.LocalPath,
		FullPath:  filepath.Join(d.root, file.LocalPath),
		URL:       d.fetcher.URL(file.RemoteKey),
	}

	d.sugar.Debugf("fetching %s", item.URL)
	body, err := d.fetcher.Fetch(ctx, file.RemoteKey)
	if err != nil {
		item.Status = models.StatusFetchFailed
		item.HTTPStatus = s3client.HTTPStatus(err)
		item.Error = err.Error()
		return item, err
	}

	if err := writeFile(item.FullPath, body); err != nil {
		item.Status = models.StatusWriteFailed
		item.Error = err.Error()
		return item, err
	}

	item.Status = models.StatusDone
	item.BytesWritten = int64(len(body))
	return item, nil
}

// writeFile replaces path with body, creating missing parent directories.
func writeFile(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
