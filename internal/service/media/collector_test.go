package media

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

func jpeg(name string) media.File {
	return media.File{Name: name, Size: 1 << 20, ContentType: "image/jpeg"}
}

func TestAddFilesChecksTypeBeforeSize(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	// Wrong type AND oversized: the type rule fires first.
	_, rejected, err := c.AddFiles("Exterior", []media.File{
		{Name: "clip.gif", Size: 50 << 20, ContentType: "image/gif"},
	})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "unsupported file type image/gif", rejected[0].Reason)
	assert.Zero(t, c.Count())
}

func TestAddFilesRejectsOversizedImage(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	accepted, rejected, err := c.AddFiles("Exterior", []media.File{
		{Name: "huge.jpg", Size: 6 << 20, ContentType: "image/jpeg"},
		{Name: "ok.png", Size: 5 << 20, ContentType: "image/png"},
	})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, "huge.jpg", rejected[0].Name)
	assert.Equal(t, "file exceeds 5 MB limit", rejected[0].Reason)
}

func TestAddFilesBucketCapacityCountsTheBatch(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	files := make([]media.File, 11)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("photo_%d.jpg", i))
	}

	accepted, rejected, err := c.AddFiles("Exterior", files)
	require.NoError(t, err)
	assert.Len(t, accepted, 10)
	require.Len(t, rejected, 1)
	assert.Equal(t, "photo_10.jpg", rejected[0].Name)
	assert.Equal(t, "bucket is full (max 10)", rejected[0].Reason)
	assert.Equal(t, 10, c.Count())
}

func TestVideoBucketHoldsOneFile(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	accepted, rejected, err := c.AddFiles(media.VideoBucket, []media.File{
		{Name: "walk1.mp4", Size: 20 << 20, ContentType: "video/mp4"},
		{Name: "walk2.webm", Size: 10 << 20, ContentType: "video/webm"},
	})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, "bucket is full (max 1)", rejected[0].Reason)
}

func TestVideoBucketRejectsImages(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	_, rejected, err := c.AddFiles(media.VideoBucket, []media.File{jpeg("not_a_video.jpg")})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "unsupported file type image/jpeg", rejected[0].Reason)
}

func TestAddFilesUnknownBucket(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	_, _, err := c.AddFiles("Dashboard", []media.File{jpeg("a.jpg")})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestRemoveFile(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	_, _, err := c.AddFiles("Interior", []media.File{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")})
	require.NoError(t, err)

	require.NoError(t, c.RemoveFile("Interior", 1))

	files := c.Files("Interior")
	require.Len(t, files, 2)
	assert.Equal(t, "a.jpg", files[0].Name)
	assert.Equal(t, "c.jpg", files[1].Name)

	assert.ErrorIs(t, c.RemoveFile("Interior", 5), xerrors.ErrInvalidInput)
	assert.ErrorIs(t, c.RemoveFile("Interior", -1), xerrors.ErrInvalidInput)
	assert.ErrorIs(t, c.RemoveFile("Dashboard", 0), xerrors.ErrInvalidInput)
}

func TestSwitchCategoryDiscardsStagedFiles(t *testing.T) {
	c := NewCollector(reference.CategoryCar)

	_, _, err := c.AddFiles("Exterior", []media.File{jpeg("a.jpg")})
	require.NoError(t, err)
	require.Equal(t, 1, c.Count())

	c.SwitchCategory(reference.CategoryBike)

	assert.Zero(t, c.Count())
	assert.Equal(t, reference.CategoryBike, c.Category())

	// Car buckets no longer exist; bike buckets do.
	_, _, err = c.AddFiles("Exterior", []media.File{jpeg("a.jpg")})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	accepted, _, err := c.AddFiles("Front", []media.File{jpeg("a.jpg")})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

func TestRegistryHandsOutOneCollectorPerSession(t *testing.T) {
	r := NewRegistry()

	c1 := r.Get("s1", reference.CategoryCar)
	c2 := r.Get("s1", reference.CategoryBike)
	assert.Same(t, c1, c2)
	assert.Equal(t, reference.CategoryCar, c2.Category())

	_, ok := r.Lookup("s2")
	assert.False(t, ok)

	r.Drop("s1")
	_, ok = r.Lookup("s1")
	assert.False(t, ok)
}
