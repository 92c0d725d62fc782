package minio

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

type fakeStore struct {
	bucketExists bool
	existsErr    error
	madeBucket   bool
	putKeys      []string
	putTypes     []string
	presignKeys  []string
	removedKeys  []string
	objects      []minio.ObjectInfo
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.bucketExists, nil
}

func (f *fakeStore) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	f.madeBucket = true
	f.bucketExists = true
	return nil
}

func (f *fakeStore) PutObject(ctx context.Context, bucket, object string, reader *bytes.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putKeys = append(f.putKeys, object)
	f.putTypes = append(f.putTypes, opts.ContentType)
	return minio.UploadInfo{Key: object, Size: size}, nil
}

func (f *fakeStore) PresignedPutObject(ctx context.Context, bucket, object string, expires time.Duration) (*url.URL, error) {
	f.presignKeys = append(f.presignKeys, object)
	return url.Parse("http://minio.local/" + bucket + "/" + object + "?X-Amz-Signature=abc")
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	f.removedKeys = append(f.removedKeys, object)
	return nil
}

func (f *fakeStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(f.objects))
	for _, obj := range f.objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func newTestClient(store *fakeStore) *Client {
	return &Client{
		store:        store,
		bucket:       "edsu-media",
		publicURL:    "http://cdn.local",
		imgproxyURL:  "http://imgproxy.local",
		probeTimeout: time.Second,
		presignTTL:   300 * time.Second,
		now:          func() time.Time { return time.UnixMilli(1700000000000) },
		newID:        func() string { return "fixed-uuid" },
	}
}

func TestObjectKeyFormat(t *testing.T) {
	client := newTestClient(&fakeStore{bucketExists: true})

	if got := client.ObjectKey("media", "photo.png"); got != "media/1700000000000-fixed-uuid-photo.png" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.ObjectKey("", ""); got != "uploads/1700000000000-fixed-uuid-file" {
		t.Fatalf("unexpected defaulted key %q", got)
	}
}

func TestUploadCreatesMissingBucket(t *testing.T) {
	store := &fakeStore{bucketExists: false}
	client := newTestClient(store)

	res, err := client.Upload(context.Background(), "media", "photo.png", "image/png", []byte("bytes"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !store.madeBucket {
		t.Fatal("expected bucket to be created")
	}
	if len(store.putKeys) != 1 || store.putKeys[0] != res.Key {
		t.Fatalf("unexpected put keys %v", store.putKeys)
	}
	if store.putTypes[0] != "image/png" {
		t.Fatalf("unexpected content type %q", store.putTypes[0])
	}
	wantURL := "http://cdn.local/edsu-media/" + res.Key
	if res.URL != wantURL {
		t.Fatalf("url = %q, want %q", res.URL, wantURL)
	}
	if res.ThumbnailURL != res.URL {
		t.Fatalf("upload thumbnail should equal url, got %q", res.ThumbnailURL)
	}
}

func TestUploadDefaultsContentType(t *testing.T) {
	store := &fakeStore{bucketExists: true}
	client := newTestClient(store)

	if _, err := client.Upload(context.Background(), "media", "blob", "", []byte("x")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if store.putTypes[0] != "application/octet-stream" {
		t.Fatalf("unexpected fallback content type %q", store.putTypes[0])
	}
}

func TestPresignPutSkipsBucketProbe(t *testing.T) {
	store := &fakeStore{existsErr: errors.New("probe should not run")}
	client := newTestClient(store)

	res, err := client.PresignPut(context.Background(), "media", "clip.mp4", 0)
	if err != nil {
		t.Fatalf("presign failed: %v", err)
	}
	if !strings.Contains(res.UploadURL, "X-Amz-Signature") {
		t.Fatalf("expected signed upload url, got %q", res.UploadURL)
	}
	if len(store.presignKeys) != 1 || store.presignKeys[0] != res.Key {
		t.Fatalf("unexpected presign keys %v", store.presignKeys)
	}
	wantThumb := "http://imgproxy.local/insecure/plain/" + url.QueryEscape(res.URL)
	if res.ThumbnailURL != wantThumb {
		t.Fatalf("thumbnail = %q, want %q", res.ThumbnailURL, wantThumb)
	}
}

func TestThumbnailURLWithoutImgproxy(t *testing.T) {
	client := newTestClient(&fakeStore{bucketExists: true})
	client.imgproxyURL = ""

	if got := client.ThumbnailURL("http://cdn.local/edsu-media/a.png"); got != "http://cdn.local/edsu-media/a.png" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestKeyFromURL(t *testing.T) {
	client := newTestClient(&fakeStore{bucketExists: true})

	if got := client.KeyFromURL("http://cdn.local/edsu-media/media/1-2-a.png"); got != "media/1-2-a.png" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.KeyFromURL("http://elsewhere.example/other/a.png"); got != "" {
		t.Fatalf("expected empty key for foreign url, got %q", got)
	}
}

func TestListObjects(t *testing.T) {
	store := &fakeStore{
		bucketExists: true,
		objects: []minio.ObjectInfo{
			{Key: "media/a.png", LastModified: time.UnixMilli(1000)},
			{Key: "uploads/b.pdf", LastModified: time.UnixMilli(2000)},
		},
	}
	client := newTestClient(store)

	out, err := client.ListObjects(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 2 || out[0].Key != "media/a.png" || out[1].Key != "uploads/b.pdf" {
		t.Fatalf("unexpected listing %v", out)
	}
}

func TestRemoveRequiresKey(t *testing.T) {
	store := &fakeStore{bucketExists: true}
	client := newTestClient(store)

	if err := client.Remove(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
	if err := client.Remove(context.Background(), "media/a.png"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(store.removedKeys) != 1 || store.removedKeys[0] != "media/a.png" {
		t.Fatalf("unexpected removed keys %v", store.removedKeys)
	}
}
