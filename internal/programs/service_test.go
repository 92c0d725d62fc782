package programs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/articles"
	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type stubProgramRepo struct {
	programs map[uuid.UUID]*models.Program
	media    []ProgramMediaRow
	artworks []ProgramMediaRow
	articles []ProgramArticleRow

	mediaQueries    int
	artworkQueries  int
	articleQueries  int
	lastCreateLinks LinkLists
	lastUpdateLinks LinkLists
}

func newStubProgramRepo(programs ...*models.Program) *stubProgramRepo {
	repo := &stubProgramRepo{programs: map[uuid.UUID]*models.Program{}}
	for _, p := range programs {
		repo.programs[p.ID] = p
	}
	return repo
}

func (s *stubProgramRepo) List(ctx context.Context) ([]models.Program, error) {
	var out []models.Program
	for _, p := range s.programs {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProgramRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	p, ok := s.programs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *p
	return &cpy, nil
}

func (s *stubProgramRepo) Create(ctx context.Context, program *models.Program, links LinkLists) error {
	if program.ID == uuid.Nil {
		program.ID = uuid.New()
	}
	s.programs[program.ID] = program
	s.lastCreateLinks = links
	return nil
}

func (s *stubProgramRepo) Update(ctx context.Context, program *models.Program, links LinkLists) error {
	s.programs[program.ID] = program
	s.lastUpdateLinks = links
	return nil
}

func (s *stubProgramRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.programs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.programs, id)
	return nil
}

func (s *stubProgramRepo) ListProgramMedia(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error) {
	s.mediaQueries++
	return filterMediaRows(s.media, programIDs), nil
}

func (s *stubProgramRepo) ListProgramArtworks(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error) {
	s.artworkQueries++
	return filterMediaRows(s.artworks, programIDs), nil
}

func (s *stubProgramRepo) ListProgramArticles(ctx context.Context, programIDs []uuid.UUID) ([]ProgramArticleRow, error) {
	s.articleQueries++
	var out []ProgramArticleRow
	for _, row := range s.articles {
		for _, id := range programIDs {
			if row.LinkProgramID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func filterMediaRows(rows []ProgramMediaRow, programIDs []uuid.UUID) []ProgramMediaRow {
	var out []ProgramMediaRow
	for _, row := range rows {
		for _, id := range programIDs {
			if row.ProgramID == id {
				out = append(out, row)
			}
		}
	}
	return out
}

type stubInlineLoader struct {
	rows    []articles.InlineMediaRow
	queries int
}

func (s *stubInlineLoader) ListInlineMedia(ctx context.Context, articleIDs []uuid.UUID) ([]articles.InlineMediaRow, error) {
	s.queries++
	var out []articles.InlineMediaRow
	for _, row := range s.rows {
		for _, id := range articleIDs {
			if row.ArticleID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func seedProgram(title string, start, end time.Time) *models.Program {
	return &models.Program{ID: uuid.New(), Title: title, StartDate: start, EndDate: end}
}

func mediaRow(programID uuid.UUID, url string) ProgramMediaRow {
	return ProgramMediaRow{
		RowWithArtist: media.RowWithArtist{Media: models.Media{ID: uuid.New(), URL: url, ThumbnailURL: url}},
		ProgramID:     programID,
	}
}

func TestListAttachesRelatedEntitiesInFixedQueries(t *testing.T) {
	now := time.Now()
	p1 := seedProgram("Summer Show", now, now.AddDate(0, 1, 0))
	p2 := seedProgram("Winter Salon", now, now.AddDate(0, 2, 0))
	repo := newStubProgramRepo(p1, p2)

	repo.media = []ProgramMediaRow{mediaRow(p1.ID, "https://img.example/install-1.jpg")}
	repo.artworks = []ProgramMediaRow{
		mediaRow(p1.ID, "https://img.example/work-1.jpg"),
		mediaRow(p2.ID, "https://img.example/work-2.jpg"),
	}

	articleID := uuid.New()
	repo.articles = []ProgramArticleRow{{
		RowWithJoins:  articles.RowWithJoins{Article: models.Article{ID: articleID, Title: "Review", Slug: "review", Content: "x"}},
		LinkProgramID: p1.ID,
	}}
	inline := &stubInlineLoader{rows: []articles.InlineMediaRow{{
		RowWithArtist: media.RowWithArtist{Media: models.Media{ID: uuid.New(), URL: "https://img.example/inline.jpg"}},
		ArticleID:     articleID,
	}}}

	svc, err := NewService(repo, inline)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("len = %d, want 2", len(dtos))
	}
	if repo.mediaQueries != 1 || repo.artworkQueries != 1 || repo.articleQueries != 1 || inline.queries != 1 {
		t.Fatalf("query counts = %d/%d/%d/%d, want one each",
			repo.mediaQueries, repo.artworkQueries, repo.articleQueries, inline.queries)
	}

	byID := map[uuid.UUID]ProgramDTO{}
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}
	got1, got2 := byID[p1.ID], byID[p2.ID]
	if len(got1.Media) != 1 || len(got1.Artworks) != 1 || len(got1.Articles) != 1 {
		t.Fatalf("program 1 attachments = %d/%d/%d", len(got1.Media), len(got1.Artworks), len(got1.Articles))
	}
	if len(got1.Articles[0].Media) != 1 {
		t.Fatalf("article inline media = %d, want 1", len(got1.Articles[0].Media))
	}
	if len(got2.Media) != 0 || len(got2.Artworks) != 1 || len(got2.Articles) != 0 {
		t.Fatalf("program 2 attachments = %d/%d/%d", len(got2.Media), len(got2.Artworks), len(got2.Articles))
	}
	if got2.Media == nil || got2.Articles == nil {
		t.Fatal("empty attachment slices must not be nil")
	}
}

func TestListWithNoProgramsSkipsAttachmentQueries(t *testing.T) {
	repo := newStubProgramRepo()
	inline := &stubInlineLoader{}
	svc, _ := NewService(repo, inline)

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if dtos == nil || len(dtos) != 0 {
		t.Fatalf("expected empty slice, got %#v", dtos)
	}
	if repo.mediaQueries != 0 || inline.queries != 0 {
		t.Fatal("attachment queries ran for an empty batch")
	}
}

func TestCreateProgramValidatesDates(t *testing.T) {
	repo := newStubProgramRepo()
	svc, _ := NewService(repo, &stubInlineLoader{})

	now := time.Now()
	_, err := svc.Create(context.Background(), CreateProgramInput{
		Title:     "Backwards",
		StartDate: now,
		EndDate:   now.AddDate(0, 0, -1),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateProgramLinksAllLists(t *testing.T) {
	repo := newStubProgramRepo()
	svc, _ := NewService(repo, &stubInlineLoader{})

	now := time.Now()
	mediaIDs := []uuid.UUID{uuid.New()}
	artworkIDs := []uuid.UUID{uuid.New(), uuid.New()}
	_, err := svc.Create(context.Background(), CreateProgramInput{
		Title:      "Opening",
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
		MediaIDs:   mediaIDs,
		ArtworkIDs: artworkIDs,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	links := repo.lastCreateLinks
	if links.MediaIDs == nil || len(*links.MediaIDs) != 1 {
		t.Fatalf("media links = %v", links.MediaIDs)
	}
	if links.ArtworkIDs == nil || len(*links.ArtworkIDs) != 2 {
		t.Fatalf("artwork links = %v", links.ArtworkIDs)
	}
	if links.ArticleIDs == nil || len(*links.ArticleIDs) != 0 {
		t.Fatalf("article links = %v", links.ArticleIDs)
	}
}

func TestUpdateProgramReplacesOnlySuppliedLists(t *testing.T) {
	now := time.Now()
	p := seedProgram("Show", now, now.AddDate(0, 1, 0))
	repo := newStubProgramRepo(p)
	svc, _ := NewService(repo, &stubInlineLoader{})

	artworkIDs := []uuid.UUID{uuid.New()}
	_, err := svc.Update(context.Background(), p.ID, UpdateProgramInput{ArtworkIDs: &artworkIDs})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	links := repo.lastUpdateLinks
	if links.ArtworkIDs == nil || len(*links.ArtworkIDs) != 1 {
		t.Fatalf("artwork links = %v", links.ArtworkIDs)
	}
	if links.MediaIDs != nil || links.ArticleIDs != nil {
		t.Fatal("unsupplied link lists must stay untouched")
	}
}

func TestUpdateProgramValidatesMergedDates(t *testing.T) {
	now := time.Now()
	p := seedProgram("Show", now, now.AddDate(0, 1, 0))
	repo := newStubProgramRepo(p)
	svc, _ := NewService(repo, &stubInlineLoader{})

	badEnd := now.AddDate(0, 0, -1)
	_, err := svc.Update(context.Background(), p.ID, UpdateProgramInput{EndDate: &badEnd})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProgramNotFound(t *testing.T) {
	repo := newStubProgramRepo()
	svc, _ := NewService(repo, &stubInlineLoader{})

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
