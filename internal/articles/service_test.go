package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type stubArticleRepo struct {
	rows          map[uuid.UUID]*RowWithJoins
	inline        map[uuid.UUID][]InlineMediaRow
	err           error
	createErrs    []error
	createCalls   int
	replacedMedia map[uuid.UUID]*[]uuid.UUID
	deletedIDs    []uuid.UUID
}

func newStubArticleRepo(rows ...*RowWithJoins) *stubArticleRepo {
	repo := &stubArticleRepo{
		rows:          map[uuid.UUID]*RowWithJoins{},
		inline:        map[uuid.UUID][]InlineMediaRow{},
		replacedMedia: map[uuid.UUID]*[]uuid.UUID{},
	}
	for _, row := range rows {
		repo.rows[row.ID] = row
	}
	return repo
}

func (s *stubArticleRepo) List(ctx context.Context) ([]RowWithJoins, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []RowWithJoins
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubArticleRepo) FindByID(ctx context.Context, id uuid.UUID) (*RowWithJoins, error) {
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

func (s *stubArticleRepo) ListInlineMedia(ctx context.Context, articleIDs []uuid.UUID) ([]InlineMediaRow, error) {
	var out []InlineMediaRow
	for _, id := range articleIDs {
		out = append(out, s.inline[id]...)
	}
	return out, nil
}

func (s *stubArticleRepo) ListSlugsLike(ctx context.Context, base string, excludeID *uuid.UUID) ([]string, error) {
	var slugs []string
	for _, row := range s.rows {
		if excludeID != nil && row.ID == *excludeID {
			continue
		}
		if len(row.Slug) >= len(base) && row.Slug[:len(base)] == base {
			slugs = append(slugs, row.Slug)
		}
	}
	return slugs, nil
}

func (s *stubArticleRepo) Create(ctx context.Context, article *models.Article, mediaIDs []uuid.UUID) error {
	s.createCalls++
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	s.rows[article.ID] = &RowWithJoins{Article: *article}
	return nil
}

func (s *stubArticleRepo) Update(ctx context.Context, article *models.Article, mediaIDs *[]uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.rows[article.ID] = &RowWithJoins{Article: *article}
	s.replacedMedia[article.ID] = mediaIDs
	return nil
}

func (s *stubArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestCreateArticleGeneratesSlug(t *testing.T) {
	repo := newStubArticleRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateArticleInput{
		Title:   "Opening Night: A Retrospective",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Slug != "opening-night-a-retrospective" {
		t.Fatalf("slug = %q", dto.Slug)
	}
	if dto.Media == nil || len(dto.Media) != 0 {
		t.Fatalf("expected empty media slice, got %#v", dto.Media)
	}
}

func TestCreateArticleSuffixesTakenSlug(t *testing.T) {
	existing := &RowWithJoins{Article: models.Article{ID: uuid.New(), Title: "Show", Slug: "show", Content: "x"}}
	repo := newStubArticleRepo(existing)
	svc, _ := NewService(repo)

	dto, err := svc.Create(context.Background(), CreateArticleInput{Title: "Show", Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Slug != "show-2" {
		t.Fatalf("slug = %q, want show-2", dto.Slug)
	}
}

func TestCreateArticleRequiresTitleAndContent(t *testing.T) {
	repo := newStubArticleRepo()
	svc, _ := NewService(repo)

	for _, input := range []CreateArticleInput{
		{Title: "", Content: "body"},
		{Title: "Title", Content: "   "},
	} {
		_, err := svc.Create(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}
}

func TestCreateArticleRetriesOnSlugCollision(t *testing.T) {
	repo := newStubArticleRepo()
	repo.createErrs = []error{errors.New(`duplicate key value violates unique constraint "articles_slug_key"`)}
	svc, _ := NewService(repo)

	dto, err := svc.Create(context.Background(), CreateArticleInput{Title: "Race", Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.createCalls != 2 {
		t.Fatalf("create calls = %d, want 2", repo.createCalls)
	}
	if dto.Slug != "race" {
		t.Fatalf("slug = %q", dto.Slug)
	}
}

func TestCreateArticleDoesNotRetryOtherErrors(t *testing.T) {
	repo := newStubArticleRepo()
	repo.createErrs = []error{errors.New("connection refused")}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CreateArticleInput{Title: "Race", Content: "body"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", repo.createCalls)
	}
}

func TestUpdateArticleRegeneratesSlugOnlyWhenTitleChanges(t *testing.T) {
	id := uuid.New()
	repo := newStubArticleRepo(&RowWithJoins{
		Article: models.Article{ID: id, Title: "Old Title", Slug: "old-title", Content: "body"},
	})
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), id, UpdateArticleInput{Content: strPtr("new body")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.Slug != "old-title" {
		t.Fatalf("slug changed without a title change: %q", dto.Slug)
	}

	dto, err = svc.Update(context.Background(), id, UpdateArticleInput{Title: strPtr("New Title")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.Slug != "new-title" {
		t.Fatalf("slug = %q, want new-title", dto.Slug)
	}
}

func TestUpdateArticleKeepsOwnSlugForSameTitle(t *testing.T) {
	id := uuid.New()
	repo := newStubArticleRepo(&RowWithJoins{
		Article: models.Article{ID: id, Title: "Show", Slug: "show", Content: "body"},
	})
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), id, UpdateArticleInput{Title: strPtr("Show")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.Slug != "show" {
		t.Fatalf("slug = %q, want show", dto.Slug)
	}
}

func TestUpdateArticleReplacesInlineMedia(t *testing.T) {
	id := uuid.New()
	repo := newStubArticleRepo(&RowWithJoins{
		Article: models.Article{ID: id, Title: "Show", Slug: "show", Content: "body"},
	})
	svc, _ := NewService(repo)

	mediaIDs := []uuid.UUID{uuid.New(), uuid.New()}
	if _, err := svc.Update(context.Background(), id, UpdateArticleInput{MediaIDs: &mediaIDs}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	replaced := repo.replacedMedia[id]
	if replaced == nil || len(*replaced) != 2 {
		t.Fatalf("inline media not replaced: %v", replaced)
	}

	if _, err := svc.Update(context.Background(), id, UpdateArticleInput{Content: strPtr("x")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.replacedMedia[id] != nil {
		t.Fatal("inline media replaced without MediaIDs in input")
	}
}

func TestUpdateArticleNotFound(t *testing.T) {
	repo := newStubArticleRepo()
	svc, _ := NewService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateArticleInput{Title: strPtr("x")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetArticleResolvesCoverAndAuthor(t *testing.T) {
	id := uuid.New()
	legacy := "https://legacy.example/cover.jpg"
	repo := newStubArticleRepo(&RowWithJoins{
		Article:        models.Article{ID: id, Title: "Show", Slug: "show", Content: "body", CoverImageURL: &legacy},
		AuthorUsername: strPtr("curator"),
		CoverThumb:     strPtr("https://img.example/thumb.jpg"),
	})
	mediaID := uuid.New()
	repo.inline[id] = []InlineMediaRow{{
		RowWithArtist: media.RowWithArtist{Media: models.Media{ID: mediaID, URL: "https://img.example/a.jpg"}},
		ArticleID:     id,
	}}
	svc, _ := NewService(repo)

	dto, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if dto.CoverImage == nil || *dto.CoverImage != "https://img.example/thumb.jpg" {
		t.Fatalf("cover = %v, want thumbnail", dto.CoverImage)
	}
	if dto.Author == nil || dto.Author.Username != "curator" {
		t.Fatalf("author = %+v", dto.Author)
	}
	if len(dto.Media) != 1 || dto.Media[0].ID != mediaID {
		t.Fatalf("media = %+v", dto.Media)
	}
}

func TestGetArticleFallsBackToLegacyCover(t *testing.T) {
	id := uuid.New()
	legacy := "https://legacy.example/cover.jpg"
	repo := newStubArticleRepo(&RowWithJoins{
		Article: models.Article{ID: id, Title: "Show", Slug: "show", Content: "body", CoverImageURL: &legacy},
	})
	svc, _ := NewService(repo)

	dto, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if dto.CoverImage == nil || *dto.CoverImage != legacy {
		t.Fatalf("cover = %v, want legacy url", dto.CoverImage)
	}
}

func TestDeleteArticleNotFound(t *testing.T) {
	repo := newStubArticleRepo()
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
