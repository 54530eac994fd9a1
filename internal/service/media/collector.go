// internal/service/media/collector.go
package media

import (
	"fmt"
	"sync"

	"vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

// Collector stages the files for one draft session, grouped into the
// category's photo buckets plus the walkaround video slot. File bytes live
// in memory only; nothing here touches storage.
type Collector struct {
	mu       sync.Mutex
	category reference.VehicleCategory
	buckets  map[string][]media.File
}

func NewCollector(category reference.VehicleCategory) *Collector {
	c := &Collector{}
	c.reset(category)
	return c
}

func (c *Collector) reset(category reference.VehicleCategory) {
	c.category = category
	c.buckets = make(map[string][]media.File)
	for _, name := range media.BucketsFor(category) {
		c.buckets[name] = []media.File{}
	}
}

// Category returns the category whose bucket set is active.
func (c *Collector) Category() reference.VehicleCategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// Buckets returns the active bucket names, video bucket last.
func (c *Collector) Buckets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return media.BucketsFor(c.category)
}

// AddFiles validates and stages a batch into one bucket. Each file is
// checked in order: content type, then size, then bucket capacity; the
// first failing rule names the rejection reason. Accepted files are staged
// even when siblings in the same batch are rejected.
func (c *Collector) AddFiles(bucket string, files []media.File) (accepted []media.File, rejected []media.Rejection, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	staged, ok := c.buckets[bucket]
	if !ok {
		return nil, nil, xerrors.ErrInvalidInput
	}

	kind := media.KindOf(bucket)
	accepted = []media.File{}
	rejected = []media.Rejection{}

	for _, f := range files {
		if !media.AllowedType(kind, f.ContentType) {
			rejected = append(rejected, media.Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("unsupported file type %s", f.ContentType),
			})
			continue
		}
		if f.Size > media.MaxBytes(kind) {
			rejected = append(rejected, media.Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("file exceeds %d MB limit", media.MaxBytes(kind)>>20),
			})
			continue
		}
		if len(staged) >= media.MaxFiles(kind) {
			rejected = append(rejected, media.Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("bucket is full (max %d)", media.MaxFiles(kind)),
			})
			continue
		}
		staged = append(staged, f)
		accepted = append(accepted, f)
	}

	c.buckets[bucket] = staged
	return accepted, rejected, nil
}

// RemoveFile drops the staged file at index from a bucket.
func (c *Collector) RemoveFile(bucket string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staged, ok := c.buckets[bucket]
	if !ok || index < 0 || index >= len(staged) {
		return xerrors.ErrInvalidInput
	}
	c.buckets[bucket] = append(staged[:index], staged[index+1:]...)
	return nil
}

// Files returns a copy of one bucket's staged files.
func (c *Collector) Files(bucket string) []media.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]media.File(nil), c.buckets[bucket]...)
}

// All returns a copy of every staged bucket.
func (c *Collector) All() map[string][]media.File {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string][]media.File, len(c.buckets))
	for name, files := range c.buckets {
		out[name] = append([]media.File(nil), files...)
	}
	return out
}

// Count returns the total number of staged files across buckets.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, files := range c.buckets {
		n += len(files)
	}
	return n
}

// SwitchCategory discards everything staged and re-derives the bucket set
// for the new category.
func (c *Collector) SwitchCategory(category reference.VehicleCategory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(category)
}

// Registry hands out one collector per draft session.
type Registry struct {
	mu         sync.Mutex
	collectors map[string]*Collector
}

func NewRegistry() *Registry {
	return &Registry{collectors: make(map[string]*Collector)}
}

// Get returns the session's collector, creating it for the category when
// the session has none yet.
func (r *Registry) Get(sessionID string, category reference.VehicleCategory) *Collector {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collectors[sessionID]
	if !ok {
		c = NewCollector(category)
		r.collectors[sessionID] = c
	}
	return c
}

// Lookup returns the session's collector without creating one.
func (r *Registry) Lookup(sessionID string) (*Collector, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collectors[sessionID]
	return c, ok
}

// Drop releases a session's staged files.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.collectors, sessionID)
}
