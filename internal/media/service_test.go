package media

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

type stubMediaRepo struct {
	rows        map[uuid.UUID]*RowWithArtist
	err         error
	heroIDs     []uuid.UUID
	heroCalled  bool
	deletedIDs  []uuid.UUID
	updatedRows []*models.Media
}

func newStubMediaRepo(rows ...*RowWithArtist) *stubMediaRepo {
	repo := &stubMediaRepo{rows: map[uuid.UUID]*RowWithArtist{}}
	for _, row := range rows {
		repo.rows[row.ID] = row
	}
	return repo
}

func (s *stubMediaRepo) List(ctx context.Context) ([]RowWithArtist, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []RowWithArtist
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*RowWithArtist, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *row
	return &cpy, nil
}

func (s *stubMediaRepo) Create(ctx context.Context, m *models.Media) error {
	if s.err != nil {
		return s.err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.rows[m.ID] = &RowWithArtist{Media: *m}
	return nil
}

func (s *stubMediaRepo) Update(ctx context.Context, m *models.Media) error {
	if s.err != nil {
		return s.err
	}
	s.updatedRows = append(s.updatedRows, m)
	s.rows[m.ID] = &RowWithArtist{Media: *m}
	return nil
}

func (s *stubMediaRepo) ReplaceHero(ctx context.Context, ids []uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.heroCalled = true
	s.heroIDs = ids
	return nil
}

func (s *stubMediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

type stubRemover struct {
	keys []string
	err  error
}

func (s *stubRemover) KeyFromURL(publicURL string) string {
	const marker = "/edsu-media/"
	idx := len(publicURL)
	for i := 0; i+len(marker) <= len(publicURL); i++ {
		if publicURL[i:i+len(marker)] == marker {
			idx = i + len(marker)
			break
		}
	}
	if idx >= len(publicURL) {
		return ""
	}
	return publicURL[idx:]
}

func (s *stubRemover) Remove(ctx context.Context, key string) error {
	s.keys = append(s.keys, key)
	return s.err
}

func strPtr(v string) *string { return &v }

func baseRow() *RowWithArtist {
	artistID := uuid.New()
	return &RowWithArtist{
		Media: models.Media{
			ID:           uuid.New(),
			Title:        strPtr("Untitled"),
			Type:         enums.MediaTypeImage,
			URL:          "http://cdn.local/edsu-media/media/1-a.png",
			ThumbnailURL: "http://cdn.local/edsu-media/media/1-a.png",
			ArtistID:     &artistID,
		},
		ArtistName: strPtr("A. Painter"),
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetByIDMapsArtist(t *testing.T) {
	row := baseRow()
	svc, err := NewService(newStubMediaRepo(row), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetByID(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("get media: %v", err)
	}
	if dto.Artist == nil || dto.Artist.ID != *row.ArtistID {
		t.Fatalf("expected artist ref, got %v", dto.Artist)
	}
	if dto.Artist.Name == nil || *dto.Artist.Name != "A. Painter" {
		t.Fatalf("expected artist name, got %v", dto.Artist.Name)
	}
	if dto.Placeholders == nil {
		t.Fatal("placeholders must never be nil")
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceCreateRequiresURLs(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), nil)

	_, err := svc.Create(context.Background(), CreateMediaInput{URL: "http://x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateDefaultsType(t *testing.T) {
	repo := newStubMediaRepo()
	svc, _ := NewService(repo, nil)

	dto, err := svc.Create(context.Background(), CreateMediaInput{
		URL:          "http://x/a.png",
		ThumbnailURL: "http://x/a-thumb.png",
	})
	if err != nil {
		t.Fatalf("create media: %v", err)
	}
	if dto.Type != enums.MediaTypeImage {
		t.Fatalf("expected image default, got %s", dto.Type)
	}
	if dto.IsHero {
		t.Fatal("hero must default to false")
	}
}

func TestServiceUpdateClearsArtistOnExplicitNull(t *testing.T) {
	row := baseRow()
	repo := newStubMediaRepo(row)
	svc, _ := NewService(repo, nil)

	dto, err := svc.Update(context.Background(), row.ID, UpdateMediaInput{
		ArtistID: types.NullableUUID{Valid: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update media: %v", err)
	}
	if dto.Artist != nil {
		t.Fatalf("expected artist cleared, got %v", dto.Artist)
	}
}

func TestServiceUpdateKeepsArtistWhenAbsent(t *testing.T) {
	row := baseRow()
	repo := newStubMediaRepo(row)
	svc, _ := NewService(repo, nil)

	dto, err := svc.Update(context.Background(), row.ID, UpdateMediaInput{
		Title: strPtr("Renamed"),
	})
	if err != nil {
		t.Fatalf("update media: %v", err)
	}
	if dto.Artist == nil || dto.Artist.ID != *row.ArtistID {
		t.Fatalf("artist link must survive absent field, got %v", dto.Artist)
	}
	if dto.Title == nil || *dto.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %v", dto.Title)
	}
}

func TestServiceSetHeroDelegates(t *testing.T) {
	repo := newStubMediaRepo()
	svc, _ := NewService(repo, nil)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	if err := svc.SetHero(context.Background(), ids); err != nil {
		t.Fatalf("set hero: %v", err)
	}
	if !repo.heroCalled || len(repo.heroIDs) != 2 {
		t.Fatalf("expected hero replacement with 2 ids, got %v", repo.heroIDs)
	}
}

func TestServiceDeleteRemovesStoredObject(t *testing.T) {
	row := baseRow()
	repo := newStubMediaRepo(row)
	remover := &stubRemover{}
	svc, _ := NewService(repo, remover)

	if err := svc.Delete(context.Background(), row.ID); err != nil {
		t.Fatalf("delete media: %v", err)
	}
	if len(repo.deletedIDs) != 1 {
		t.Fatalf("expected row deleted, got %v", repo.deletedIDs)
	}
	if len(remover.keys) != 1 || remover.keys[0] != "media/1-a.png" {
		t.Fatalf("expected object removal, got %v", remover.keys)
	}
}

func TestServiceDeleteIgnoresStorageFailure(t *testing.T) {
	row := baseRow()
	repo := newStubMediaRepo(row)
	remover := &stubRemover{err: errors.New("bucket offline")}
	svc, _ := NewService(repo, remover)

	if err := svc.Delete(context.Background(), row.ID); err != nil {
		t.Fatalf("delete must not fail on storage errors: %v", err)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), nil)

	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}
