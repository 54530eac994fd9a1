package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type fakeSigner struct {
	baseURL string
}

func (f *fakeSigner) SignPut(_ context.Context, objectName string) (string, error) {
	return f.baseURL + "/" + objectName + "?X-Amz-Signature=abc123", nil
}

type recordedPut struct {
	path        string
	contentType string
	body        string
}

func newUploadFixture(t *testing.T, handler http.HandlerFunc) (*Orchestrator, *draftstore.Store, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	drafts := draftstore.NewStore(client, zap.NewNop(), time.Hour)

	o := NewOrchestrator(&fakeSigner{baseURL: server.URL}, drafts, zap.NewNop())
	o.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return o, drafts, server
}

func stagedPhotos() map[string][]media.File {
	return map[string][]media.File{
		"Exterior": {
			{Name: "front.jpg", Size: 4, ContentType: "image/jpeg", Data: []byte("abcd")},
			{Name: "rear.jpg", Size: 4, ContentType: "image/jpeg", Data: []byte("efgh")},
		},
		"Odometer": {
			{Name: "dial.png", Size: 2, ContentType: "image/png", Data: []byte("xy")},
		},
	}
}

func TestUploadAllFailsFastWithNothingStaged(t *testing.T) {
	o, _, _ := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := o.UploadAll(context.Background(), "s1", reference.CategoryCar, map[string][]media.File{})
	assert.ErrorIs(t, err, xerrors.ErrNoFiles)
}

func TestUploadAllSuccessPersistsPhotoSection(t *testing.T) {
	var mu sync.Mutex
	puts := []recordedPut{}

	o, drafts, server := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		puts = append(puts, recordedPut{
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	results, err := o.UploadAll(context.Background(), "s1", reference.CategoryCar, stagedPhotos())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.OK())
		// Public address is the signed URL minus its signature query.
		assert.True(t, strings.HasPrefix(r.URL, server.URL+"/listings/car/"))
		assert.NotContains(t, r.URL, "?")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, puts, 3)
	bodies := map[string]string{}
	for _, p := range puts {
		bodies[p.path] = p.body
	}
	assert.Equal(t, "abcd", bodies["/listings/car/Exterior/1700000000000_front.jpg"])
	assert.Equal(t, "efgh", bodies["/listings/car/Exterior/1700000000000_rear.jpg"])
	assert.Equal(t, "xy", bodies["/listings/car/Odometer/1700000000000_dial.png"])

	photos, err := drafts.Photos(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"front.jpg", "rear.jpg"}, photos.Names["Exterior"])
	assert.Equal(t, []string{"dial.png"}, photos.Names["Odometer"])
	assert.Len(t, photos.URLs["Exterior"], 2)
}

func TestUploadAllSetsContentTypePerFile(t *testing.T) {
	var mu sync.Mutex
	types := map[string]string{}

	o, _, _ := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		types[r.URL.Path] = r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	staged := map[string][]media.File{
		media.VideoBucket: {
			{Name: "walk.mp4", Size: 3, ContentType: "video/mp4", Data: []byte("vid")},
		},
	}
	_, err := o.UploadAll(context.Background(), "s1", reference.CategoryCar, staged)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "video/mp4", types["/listings/car/Walkaround/1700000000000_walk.mp4"])
}

func TestUploadAllPartialFailureReportsPerFileAndSkipsPersist(t *testing.T) {
	o, drafts, _ := newUploadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/Odometer/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	results, err := o.UploadAll(context.Background(), "s1", reference.CategoryCar, stagedPhotos())
	require.Error(t, err)
	require.Len(t, results, 3)

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			assert.Equal(t, "dial.png", r.Name)
			assert.Contains(t, r.Error, "status 500")
		}
	}
	assert.Equal(t, 1, failed)

	// A partial batch never writes the photo section.
	photos, perr := drafts.Photos(context.Background(), "s1")
	require.NoError(t, perr)
	assert.Empty(t, photos.Names)
	assert.Empty(t, photos.URLs)
}

func TestObjectFilenameSanitizesUnsafeCharacters(t *testing.T) {
	o := &Orchestrator{now: func() time.Time { return time.UnixMilli(42) }}

	assert.Equal(t, "42_my_photo_1_.jpg", o.objectFilename("my photo (1).jpg"))
	assert.Equal(t, "42_plain.png", o.objectFilename("plain.png"))
}

func TestPublicURLStripsSignature(t *testing.T) {
	assert.Equal(t, "http://s/o.jpg", publicURL("http://s/o.jpg?X-Amz-Signature=zzz"))
	assert.Equal(t, "http://s/o.jpg", publicURL("http://s/o.jpg"))
}
