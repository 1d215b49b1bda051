package icons

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"library-compare/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func notFound() error {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
}

func newImageServer(t *testing.T) (*httptest.Server, *int) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch r.URL.Path {
		case "/header.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(pngBytes)
		case "/capsule.webp":
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte("webp"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ext  string
	}{
		{"Jpg", "https://cdn.example.com/a/header.jpg", ".jpg"},
		{"Jpeg", "https://cdn.example.com/a/header.JPEG", ".jpg"},
		{"Png", "https://cdn.example.com/icon.png?t=1", ".png"},
		{"Gif", "https://cdn.example.com/icon.gif", ".gif"},
		{"Webp", "https://cdn.example.com/icon.webp", ".webp"},
		{"Svg", "https://cdn.example.com/logo.svg", ".svg"},
		{"Unknown", "https://cdn.example.com/icon.bmp", ".jpg"},
		{"NoExtension", "https://cdn.example.com/icon", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := Key(tt.url)
			assert.True(t, strings.HasPrefix(key, Prefix))
			assert.True(t, strings.HasSuffix(key, tt.ext))
			assert.Len(t, key, len(Prefix)+32+len(tt.ext))
		})
	}

	assert.Equal(t, Key("https://a/b.png"), Key("https://a/b.png"))
	assert.NotEqual(t, Key("https://a/b.png"), Key("https://a/c.png"))
}

func TestGetOrDownload_Cached(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "bucket", nil, zap.NewNop())
	url := "https://cdn.example.com/header.png"
	key := Key(url)

	client.On("StatObject", mock.Anything, "bucket", key, mock.Anything).
		Return(minio.ObjectInfo{Key: key, Size: 3, ContentType: "image/png"}, nil)
	client.On("GetObject", mock.Anything, "bucket", key, mock.Anything).
		Return(io.NopCloser(strings.NewReader("png")), nil)

	icon, err := svc.GetOrDownload(context.Background(), url)
	require.NoError(t, err)
	defer icon.Body.Close()

	assert.True(t, icon.Cached)
	assert.Equal(t, "image/png", icon.ContentType)
	assert.Equal(t, int64(3), icon.Size)
	data, _ := io.ReadAll(icon.Body)
	assert.Equal(t, "png", string(data))
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrDownload_Downloads(t *testing.T) {
	srv, hits := newImageServer(t)
	client := new(mocks.Client)
	svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
	url := srv.URL + "/header.png"
	key := Key(url)

	client.On("StatObject", mock.Anything, "bucket", key, mock.Anything).Return(minio.ObjectInfo{}, notFound())
	client.On("PutObject", mock.Anything, "bucket", key, mock.Anything, int64(len(pngBytes)),
		minio.PutObjectOptions{ContentType: "image/png"}).Return(minio.UploadInfo{}, nil)

	icon, err := svc.GetOrDownload(context.Background(), url)
	require.NoError(t, err)

	assert.False(t, icon.Cached)
	assert.Equal(t, "image/png", icon.ContentType)
	data, _ := io.ReadAll(icon.Body)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, 1, *hits)
	client.AssertExpectations(t)
}

func TestGetOrDownload_SurvivesCallerCancel(t *testing.T) {
	srv, hits := newImageServer(t)
	client := new(mocks.Client)
	svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
	url := srv.URL + "/header.png"
	key := Key(url)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The caller goes away once the lookup has missed.
	client.On("StatObject", mock.Anything, "bucket", key, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(minio.ObjectInfo{}, notFound())
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	client.On("PutObject", live, "bucket", key, mock.Anything, int64(len(pngBytes)),
		minio.PutObjectOptions{ContentType: "image/png"}).Return(minio.UploadInfo{}, nil)

	icon, err := svc.GetOrDownload(ctx, url)
	require.NoError(t, err)
	require.Error(t, ctx.Err())

	data, _ := io.ReadAll(icon.Body)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, 1, *hits)
	client.AssertExpectations(t)
}

func TestGetOrDownload_ContentTypeFromExtension(t *testing.T) {
	srv, _ := newImageServer(t)
	client := new(mocks.Client)
	svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
	url := srv.URL + "/capsule.webp"

	client.On("StatObject", mock.Anything, "bucket", Key(url), mock.Anything).Return(minio.ObjectInfo{}, notFound())
	client.On("PutObject", mock.Anything, "bucket", Key(url), mock.Anything, int64(4),
		minio.PutObjectOptions{ContentType: "image/webp"}).Return(minio.UploadInfo{}, nil)

	icon, err := svc.GetOrDownload(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", icon.ContentType)
}

func TestGetOrDownload_StoreFailureStillServes(t *testing.T) {
	srv, _ := newImageServer(t)
	client := new(mocks.Client)
	svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
	url := srv.URL + "/header.png"

	client.On("StatObject", mock.Anything, "bucket", Key(url), mock.Anything).Return(minio.ObjectInfo{}, notFound())
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket full"))

	icon, err := svc.GetOrDownload(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, int64(len(pngBytes)), icon.Size)
}

func TestGetOrDownload_Errors(t *testing.T) {
	srv, _ := newImageServer(t)

	t.Run("InvalidURL", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "bucket", nil, zap.NewNop())
		for _, url := range []string{"", "not a url", "ftp://host/a.png", "/relative.png"} {
			_, err := svc.GetOrDownload(context.Background(), url)
			assert.ErrorIs(t, err, ErrInvalidURL, url)
		}
	})

	t.Run("UpstreamMissing", func(t *testing.T) {
		client := new(mocks.Client)
		svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
		url := srv.URL + "/missing.png"
		client.On("StatObject", mock.Anything, "bucket", Key(url), mock.Anything).Return(minio.ObjectInfo{}, notFound())

		_, err := svc.GetOrDownload(context.Background(), url)
		assert.ErrorIs(t, err, ErrDownload)
	})

	t.Run("StatFailure", func(t *testing.T) {
		client := new(mocks.Client)
		svc := NewService(client, "bucket", srv.Client(), zap.NewNop())
		client.On("StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("connection refused"))

		_, err := svc.GetOrDownload(context.Background(), srv.URL+"/header.png")
		assert.ErrorContains(t, err, "failed to stat icon")
		assert.NotErrorIs(t, err, ErrDownload)
	})
}

func objectChannel(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, obj := range objs {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestSize(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "bucket", nil, zap.NewNop())
	client.On("ListObjects", mock.Anything, "bucket", minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}).
		Return(objectChannel(
			minio.ObjectInfo{Key: "icons/a.png", Size: 1500},
			minio.ObjectInfo{Key: "icons/b.jpg", Size: 500},
		))

	report, err := svc.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SizeReport{Count: 2, Bytes: 2000, Human: "2.0 kB"}, report)
}

func TestSize_ListError(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "bucket", nil, zap.NewNop())
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
		Return(objectChannel(minio.ObjectInfo{Err: errors.New("access denied")}))

	_, err := svc.Size(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestClear(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "bucket", nil, zap.NewNop())
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
		Return(objectChannel(minio.ObjectInfo{Key: "icons/a.png"}, minio.ObjectInfo{Key: "icons/b.png"}))

	errCh := make(chan minio.RemoveObjectError, 1)
	errCh <- minio.RemoveObjectError{ObjectName: "icons/b.png", Err: errors.New("locked")}
	close(errCh)
	client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errCh))

	removed, err := svc.Clear(context.Background())
	assert.Equal(t, 1, removed)
	assert.ErrorContains(t, err, "icons/b.png")
}

func TestClear_Empty(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "bucket", nil, zap.NewNop())
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(objectChannel())

	removed, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
