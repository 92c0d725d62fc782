package artists

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

type stubArtistRepo struct {
	rows       map[uuid.UUID]*RowWithPhoto
	takenNames map[string]uuid.UUID
	err        error
	deleted    []uuid.UUID
}

func newStubArtistRepo(rows ...*RowWithPhoto) *stubArtistRepo {
	repo := &stubArtistRepo{
		rows:       map[uuid.UUID]*RowWithPhoto{},
		takenNames: map[string]uuid.UUID{},
	}
	for _, row := range rows {
		repo.rows[row.ID] = row
		repo.takenNames[row.Name] = row.ID
	}
	return repo
}

func (s *stubArtistRepo) List(ctx context.Context) ([]RowWithPhoto, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []RowWithPhoto
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubArtistRepo) FindByID(ctx context.Context, id uuid.UUID) (*RowWithPhoto, error) {
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

func (s *stubArtistRepo) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	owner, ok := s.takenNames[name]
	if !ok {
		return false, nil
	}
	if excludeID != nil && owner == *excludeID {
		return false, nil
	}
	return true, nil
}

func (s *stubArtistRepo) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	s.rows[artist.ID] = &RowWithPhoto{Artist: *artist}
	s.takenNames[artist.Name] = artist.ID
	return nil
}

func (s *stubArtistRepo) Update(ctx context.Context, artist *models.Artist) error {
	s.rows[artist.ID] = &RowWithPhoto{Artist: *artist}
	return nil
}

func (s *stubArtistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubArtworksRepo struct {
	rows  []media.RowWithArtist
	count int64
	err   error
}

func (s *stubArtworksRepo) ListByArtistIDs(ctx context.Context, ids []uuid.UUID) ([]media.RowWithArtist, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubArtworksRepo) CountByArtist(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func strPtr(v string) *string { return &v }

func TestServiceListGroupsArtworks(t *testing.T) {
	artist := &RowWithPhoto{Artist: models.Artist{ID: uuid.New(), Name: "B. Sculptor"}}
	artworks := &stubArtworksRepo{rows: []media.RowWithArtist{
		{Media: models.Media{ID: uuid.New(), URL: "u1", ThumbnailURL: "t1", ArtistID: &artist.ID}},
		{Media: models.Media{ID: uuid.New(), URL: "u2", ThumbnailURL: "t2", ArtistID: &artist.ID}},
	}}
	svc, err := NewService(newStubArtistRepo(artist), artworks)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list artists: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(dtos))
	}
	if len(dtos[0].Artworks) != 2 {
		t.Fatalf("expected 2 artworks, got %d", len(dtos[0].Artworks))
	}
}

func TestServiceGetByIDIncludesPhoto(t *testing.T) {
	photoID := uuid.New()
	artist := &RowWithPhoto{
		Artist:         models.Artist{ID: uuid.New(), Name: "C. Painter", PhotoMediaID: &photoID},
		PhotoURL:       strPtr("http://cdn/photo.png"),
		PhotoThumbnail: strPtr("http://cdn/photo-thumb.png"),
	}
	svc, _ := NewService(newStubArtistRepo(artist), &stubArtworksRepo{})

	dto, err := svc.GetByID(context.Background(), artist.ID)
	if err != nil {
		t.Fatalf("get artist: %v", err)
	}
	if dto.Photo == nil || dto.Photo.ID != photoID {
		t.Fatalf("expected photo ref, got %v", dto.Photo)
	}
	if dto.Artworks == nil {
		t.Fatal("artworks must never be nil")
	}
}

func TestServiceCreateRejectsDuplicateName(t *testing.T) {
	existing := &RowWithPhoto{Artist: models.Artist{ID: uuid.New(), Name: "Taken"}}
	svc, _ := NewService(newStubArtistRepo(existing), &stubArtworksRepo{})

	_, err := svc.Create(context.Background(), CreateArtistInput{Name: "Taken"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc, _ := NewService(newStubArtistRepo(), &stubArtworksRepo{})

	_, err := svc.Create(context.Background(), CreateArtistInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateAllowsKeepingOwnName(t *testing.T) {
	artist := &RowWithPhoto{Artist: models.Artist{ID: uuid.New(), Name: "Same Name"}}
	svc, _ := NewService(newStubArtistRepo(artist), &stubArtworksRepo{})

	dto, err := svc.Update(context.Background(), artist.ID, UpdateArtistInput{Name: strPtr("Same Name")})
	if err != nil {
		t.Fatalf("update artist: %v", err)
	}
	if dto.Name != "Same Name" {
		t.Fatalf("unexpected name %q", dto.Name)
	}
}

func TestServiceUpdateClearsPhotoOnExplicitNull(t *testing.T) {
	photoID := uuid.New()
	artist := &RowWithPhoto{
		Artist:   models.Artist{ID: uuid.New(), Name: "D. Weaver", PhotoMediaID: &photoID},
		PhotoURL: strPtr("http://cdn/p.png"),
	}
	svc, _ := NewService(newStubArtistRepo(artist), &stubArtworksRepo{})

	dto, err := svc.Update(context.Background(), artist.ID, UpdateArtistInput{
		PhotoMediaID: types.NullableUUID{Valid: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update artist: %v", err)
	}
	if dto.Photo != nil {
		t.Fatalf("expected photo cleared, got %v", dto.Photo)
	}
}

func TestServiceDeleteGuardsReferencedArtists(t *testing.T) {
	artist := &RowWithPhoto{Artist: models.Artist{ID: uuid.New(), Name: "E. Carver"}}
	svc, _ := NewService(newStubArtistRepo(artist), &stubArtworksRepo{count: 3})

	err := svc.Delete(context.Background(), artist.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteSucceedsWithoutArtworks(t *testing.T) {
	artist := &RowWithPhoto{Artist: models.Artist{ID: uuid.New(), Name: "F. Etcher"}}
	repo := newStubArtistRepo(artist)
	svc, _ := NewService(repo, &stubArtworksRepo{count: 0})

	if err := svc.Delete(context.Background(), artist.ID); err != nil {
		t.Fatalf("delete artist: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected deletion, got %v", repo.deleted)
	}
}
