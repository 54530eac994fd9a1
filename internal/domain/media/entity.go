package media

// internal/domain/media/entity.go

import "vahanbazaar-service/internal/domain/reference"

// Bucket kind controls which validation rules apply.
type BucketKind string

const (
	KindImage BucketKind = "image"
	KindVideo BucketKind = "video"
)

// Per-file and per-bucket limits.
const (
	MaxImageFiles = 10
	MaxImageBytes = 5 << 20
	MaxVideoFiles = 1
	MaxVideoBytes = 30 << 20
	VideoBucket   = "Walkaround"
)

// File is an in-memory staged file. Contents live only for the lifetime of
// the draft session; they are uploaded, never persisted locally.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// Rejection pairs a filename with the first validation rule it failed.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult is the per-file outcome of one batch upload.
type UploadResult struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the file reached storage and has a public address.
func (r UploadResult) OK() bool { return r.Error == "" }

var (
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
	}
	videoTypes = map[string]bool{
		"video/mp4":       true,
		"video/webm":      true,
		"video/ogg":       true,
		"video/quicktime": true,
	}

	carBuckets  = []string{"Exterior", "Interior", "Tyres", "Features", "Defects", "Odometer", VideoBucket}
	bikeBuckets = []string{"Front", "Rear", "Left", "Right", "Defects", "Odometer", VideoBucket}
)

// BucketsFor returns the bucket name set for a category, video bucket last.
func BucketsFor(category reference.VehicleCategory) []string {
	if category == reference.CategoryBike {
		return append([]string(nil), bikeBuckets...)
	}
	return append([]string(nil), carBuckets...)
}

// KindOf returns the bucket kind for a bucket name.
func KindOf(bucket string) BucketKind {
	if bucket == VideoBucket {
		return KindVideo
	}
	return KindImage
}

// AllowedType reports whether the content type is accepted for the kind.
func AllowedType(kind BucketKind, contentType string) bool {
	if kind == KindVideo {
		return videoTypes[contentType]
	}
	return imageTypes[contentType]
}

// MaxBytes returns the per-file size cap for the kind.
func MaxBytes(kind BucketKind) int64 {
	if kind == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

// MaxFiles returns the per-bucket count cap for the kind.
func MaxFiles(kind BucketKind) int {
	if kind == KindVideo {
		return MaxVideoFiles
	}
	return MaxImageFiles
}
