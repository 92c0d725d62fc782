package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/storage/minio"
)

type stubOrphanStore struct {
	objects   []minio.ObjectInfo
	removed   []string
	removeErr error
}

func (s *stubOrphanStore) ListObjects(ctx context.Context) ([]minio.ObjectInfo, error) {
	return s.objects, nil
}

func (s *stubOrphanStore) Remove(ctx context.Context, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubOrphanStore) KeyFromURL(publicURL string) string {
	const marker = "/house/"
	i := strings.Index(publicURL, marker)
	if i < 0 {
		return ""
	}
	return publicURL[i+len(marker):]
}

type stubURLSource struct {
	urls []string
	err  error
}

func (s *stubURLSource) ListReferencedURLs(ctx context.Context) ([]string, error) {
	return s.urls, s.err
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test"})
}

func TestOrphanSweepRemovesUnreferencedObjects(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	store := &stubOrphanStore{objects: []minio.ObjectInfo{
		{Key: "media/kept.jpg", LastModified: old},
		{Key: "media/orphan.jpg", LastModified: old},
	}}
	refs := &stubURLSource{urls: []string{"https://cdn.example/house/media/kept.jpg"}}

	job, err := NewStorageOrphanCleanupJob(StorageOrphanCleanupJobParams{
		Logger:     newTestLogger(),
		Store:      store,
		References: refs,
	})
	if err != nil {
		t.Fatalf("NewStorageOrphanCleanupJob: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != "media/orphan.jpg" {
		t.Fatalf("removed = %v", store.removed)
	}
}

func TestOrphanSweepSkipsRecentObjects(t *testing.T) {
	store := &stubOrphanStore{objects: []minio.ObjectInfo{
		{Key: "media/in-flight.jpg", LastModified: time.Now().Add(-time.Minute)},
	}}
	job, _ := NewStorageOrphanCleanupJob(StorageOrphanCleanupJobParams{
		Logger:     newTestLogger(),
		Store:      store,
		References: &stubURLSource{},
	})

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.removed) != 0 {
		t.Fatalf("removed = %v, want none", store.removed)
	}
}

func TestOrphanSweepReportsRemovalFailures(t *testing.T) {
	store := &stubOrphanStore{
		objects: []minio.ObjectInfo{
			{Key: "media/orphan.jpg", LastModified: time.Now().Add(-48 * time.Hour)},
		},
		removeErr: errors.New("storage unavailable"),
	}
	job, _ := NewStorageOrphanCleanupJob(StorageOrphanCleanupJobParams{
		Logger:     newTestLogger(),
		Store:      store,
		References: &stubURLSource{},
	})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error when removals fail")
	}
}

func TestOrphanSweepAbortsWhenReferencesUnavailable(t *testing.T) {
	store := &stubOrphanStore{objects: []minio.ObjectInfo{
		{Key: "media/orphan.jpg", LastModified: time.Now().Add(-48 * time.Hour)},
	}}
	job, _ := NewStorageOrphanCleanupJob(StorageOrphanCleanupJobParams{
		Logger:     newTestLogger(),
		Store:      store,
		References: &stubURLSource{err: errors.New("db down")},
	})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error when reference listing fails")
	}
	if len(store.removed) != 0 {
		t.Fatal("objects were removed despite missing references")
	}
}
