package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/storage/minio"
)

const orphanGracePeriod = 24 * time.Hour

type orphanObjectStore interface {
	ListObjects(ctx context.Context) ([]minio.ObjectInfo, error)
	Remove(ctx context.Context, key string) error
	KeyFromURL(publicURL string) string
}

type referencedURLSource interface {
	ListReferencedURLs(ctx context.Context) ([]string, error)
}

// StorageOrphanCleanupJobParams configure the orphaned-object sweep.
type StorageOrphanCleanupJobParams struct {
	Logger      *logger.Logger
	Store       orphanObjectStore
	References  referencedURLSource
	GracePeriod time.Duration
}

// NewStorageOrphanCleanupJob builds the job that deletes stored objects no
// database row points at anymore. Objects younger than the grace period are
// skipped so in-flight uploads (presigned PUTs in particular) survive the
// sweep.
func NewStorageOrphanCleanupJob(params StorageOrphanCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if params.References == nil {
		return nil, fmt.Errorf("reference source required")
	}
	grace := params.GracePeriod
	if grace <= 0 {
		grace = orphanGracePeriod
	}
	return &storageOrphanCleanupJob{
		logg:  params.Logger,
		store: params.Store,
		refs:  params.References,
		grace: grace,
		now:   time.Now,
	}, nil
}

type storageOrphanCleanupJob struct {
	logg  *logger.Logger
	store orphanObjectStore
	refs  referencedURLSource
	grace time.Duration
	now   func() time.Time
}

func (j *storageOrphanCleanupJob) Name() string { return "storage-orphan-cleanup" }

func (j *storageOrphanCleanupJob) Run(ctx context.Context) error {
	urls, err := j.refs.ListReferencedURLs(ctx)
	if err != nil {
		return fmt.Errorf("list referenced urls: %w", err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if key := j.store.KeyFromURL(url); key != "" {
			referenced[key] = struct{}{}
		}
	}

	objects, err := j.store.ListObjects(ctx)
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	cutoff := j.now().Add(-j.grace)
	var removed, skipped, failed int
	for _, object := range objects {
		if _, ok := referenced[object.Key]; ok {
			continue
		}
		if object.LastModified.After(cutoff) {
			skipped++
			continue
		}
		if err := j.store.Remove(ctx, object.Key); err != nil {
			failed++
			keyCtx := j.logg.WithField(ctx, "key", object.Key)
			j.logg.Error(keyCtx, "failed to remove orphaned object", err)
			continue
		}
		removed++
	}

	summary := j.logg.WithField(ctx, "removed", removed)
	summary = j.logg.WithField(summary, "skipped_recent", skipped)
	summary = j.logg.WithField(summary, "failed", failed)
	j.logg.Info(summary, "storage orphan sweep complete")

	if failed > 0 {
		return fmt.Errorf("failed to remove %d orphaned objects", failed)
	}
	return nil
}
