// internal/service/upload/orchestrator.go
package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Orchestrator pushes a session's staged files to object storage. Every
// file in the batch is launched at once and awaited collectively; a started
// transfer is never cancelled by a sibling's failure.
type Orchestrator struct {
	signer DestinationSigner
	client *http.Client
	drafts *draftstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewOrchestrator(signer DestinationSigner, drafts *draftstore.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		signer: signer,
		client: http.DefaultClient,
		drafts: drafts,
		logger: logger,
		now:    time.Now,
	}
}

// UploadAll transfers every staged file for the session. It fails fast with
// ErrNoFiles when nothing is staged. Each file yields its own result; the
// filename/URL maps are persisted to the draft only when every file
// succeeded, so a partial batch never leaves a half-written photo section.
func (o *Orchestrator) UploadAll(ctx context.Context, sessionID string, category reference.VehicleCategory, staged map[string][]media.File) ([]media.UploadResult, error) {
	type item struct {
		bucket string
		file   media.File
	}

	items := []item{}
	for _, bucket := range media.BucketsFor(category) {
		for _, f := range staged[bucket] {
			items = append(items, item{bucket: bucket, file: f})
		}
	}
	if len(items) == 0 {
		return nil, xerrors.ErrNoFiles
	}

	results := make([]media.UploadResult, len(items))
	g := new(errgroup.Group)

	for i, it := range items {
		i, it := i, it
		results[i] = media.UploadResult{Bucket: it.bucket, Name: it.file.Name}

		g.Go(func() error {
			url, err := o.transfer(ctx, category, it.bucket, it.file)
			if err != nil {
				o.logger.Error("upload failed",
					zap.String("session_id", sessionID),
					zap.String("bucket", it.bucket),
					zap.String("file", it.file.Name),
					zap.Error(err),
				)
				results[i].Error = err.Error()
				return err
			}
			results[i].URL = url
			return nil
		})
	}

	uploadErr := g.Wait()
	if uploadErr != nil {
		return results, fmt.Errorf("upload batch failed: %w", uploadErr)
	}

	names := map[string][]string{}
	urls := map[string][]string{}
	for _, r := range results {
		names[r.Bucket] = append(names[r.Bucket], r.Name)
		urls[r.Bucket] = append(urls[r.Bucket], r.URL)
	}

	section := draft.PhotoSection{Names: names, URLs: urls}
	if err := o.drafts.SetPhotos(ctx, sessionID, section); err != nil {
		return results, err
	}

	o.logger.Info("upload batch complete",
		zap.String("session_id", sessionID),
		zap.Int("files", len(items)),
	)
	return results, nil
}

// transfer uploads one file: sign a destination, PUT the bytes with the
// file's content type, and derive the public address by dropping the
// signature query string.
func (o *Orchestrator) transfer(ctx context.Context, category reference.VehicleCategory, bucket string, f media.File) (string, error) {
	objectName := fmt.Sprintf("listings/%s/%s/%s", category, bucket, o.objectFilename(f.Name))

	signedURL, err := o.signer.SignPut(ctx, objectName)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(f.Data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", f.ContentType)
	req.ContentLength = f.Size

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload of %s rejected with status %d", f.Name, resp.StatusCode)
	}

	return publicURL(signedURL), nil
}

// objectFilename prefixes a millisecond timestamp and strips anything that
// is unsafe in an object key.
func (o *Orchestrator) objectFilename(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "_")
	return fmt.Sprintf("%d_%s", o.now().UnixMilli(), safe)
}

func publicURL(signedURL string) string {
	if i := strings.IndexByte(signedURL, '?'); i >= 0 {
		return signedURL[:i]
	}
	return signedURL
}
