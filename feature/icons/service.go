package icons

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"library-compare/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Prefix is the folder holding cached icons in the bucket.
const Prefix = "icons/"

// maxIconBytes caps a single download.
const maxIconBytes = 5 << 20

var (
	// ErrInvalidURL is returned for anything but an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid icon url")
	// ErrDownload wraps failures fetching the icon upstream.
	ErrDownload = errors.New("icon download failed")
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Icon is a cached image ready to be streamed. The caller closes Body.
type Icon struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
	// Cached is false when the icon was downloaded by this call.
	Cached bool
}

// SizeReport summarizes the icon folder.
type SizeReport struct {
	Count int    `json:"count"`
	Bytes int64  `json:"bytes"`
	Human string `json:"human"`
}

// Service caches game artwork in object storage.
type Service struct {
	client storage.Client
	bucket string
	http   *http.Client
	logger *zap.Logger
	sf     singleflight.Group
}

// NewService creates a new icon service. A nil httpClient uses http.DefaultClient.
func NewService(client storage.Client, bucket string, httpClient *http.Client, logger *zap.Logger) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		client: client,
		bucket: bucket,
		http:   httpClient,
		logger: logger,
	}
}

// Key returns the object key of the icon at rawURL: icons/<md5(url)><ext>.
func Key(rawURL string) string {
	return fmt.Sprintf("%s%x%s", Prefix, md5.Sum([]byte(rawURL)), extension(rawURL))
}

// extension returns the image extension of the URL path, defaulting to .jpg.
func extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == ".jpeg" {
		return ".jpg"
	}
	if _, ok := contentTypes[ext]; ok {
		return ext
	}
	return ".jpg"
}

// GetOrDownload returns the stored icon for rawURL, downloading and storing it first when missing.
func (s *Service) GetOrDownload(ctx context.Context, rawURL string) (*Icon, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	key := Key(rawURL)
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		body, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to read icon %s: %w", key, err)
		}
		return &Icon{Key: key, ContentType: info.ContentType, Size: info.Size, Body: body, Cached: true}, nil
	}
	if !storage.IsNotFound(err) {
		return nil, fmt.Errorf("failed to stat icon %s: %w", key, err)
	}

	// The download is shared with concurrent callers and outlives the first one.
	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.download(context.WithoutCancel(ctx), rawURL, key)
	})
	if err != nil {
		return nil, err
	}
	icon := v.(downloaded)
	return &Icon{
		Key:         key,
		ContentType: icon.contentType,
		Size:        int64(len(icon.data)),
		Body:        io.NopCloser(bytes.NewReader(icon.data)),
	}, nil
}

type downloaded struct {
	data        []byte
	contentType string
}

func (s *Service) download(ctx context.Context, rawURL, key string) (downloaded, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return downloaded{}, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return downloaded{}, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return downloaded{}, fmt.Errorf("%w: %s returned %d", ErrDownload, rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes+1))
	if err != nil {
		return downloaded{}, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if len(data) > maxIconBytes {
		return downloaded{}, fmt.Errorf("%w: icon larger than %s", ErrDownload, humanize.IBytes(maxIconBytes))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = contentTypes[extension(rawURL)]
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		// The icon is still served, it just is not cached.
		s.logger.Warn("Failed to store icon", zap.String("key", key), zap.Error(err))
	} else {
		s.logger.Debug("Stored icon", zap.String("key", key), zap.Int("bytes", len(data)))
	}

	return downloaded{data: data, contentType: contentType}, nil
}

// Size reports the number and total size of cached icons.
func (s *Service) Size(ctx context.Context) (SizeReport, error) {
	var report SizeReport
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}) {
		if obj.Err != nil {
			return SizeReport{}, fmt.Errorf("failed to list icons: %w", obj.Err)
		}
		report.Count++
		report.Bytes += obj.Size
	}
	report.Human = humanize.Bytes(uint64(report.Bytes))
	return report, nil
}

// Clear removes every cached icon and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list icons: %w", obj.Err)
		}
		objects = append(objects, obj)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- obj
	}
	close(objectsCh)

	var failed []string
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}

	removed := len(objects) - len(failed)
	s.logger.Info("Cleared icons", zap.Int("removed", removed), zap.Int("failed", len(failed)))
	if len(failed) > 0 {
		return removed, fmt.Errorf("batch delete had %d errors: %v", len(failed), failed)
	}
	return removed, nil
}
