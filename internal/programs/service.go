package programs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/articles"
	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type programRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Program, error)
	Create(ctx context.Context, program *models.Program, links LinkLists) error
	Update(ctx context.Context, program *models.Program, links LinkLists) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListProgramMedia(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error)
	ListProgramArtworks(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error)
	ListProgramArticles(ctx context.Context, programIDs []uuid.UUID) ([]ProgramArticleRow, error)
}

// articleMediaLoader resolves inline media for a batch of articles. The
// articles repository implements it.
type articleMediaLoader interface {
	ListInlineMedia(ctx context.Context, articleIDs []uuid.UUID) ([]articles.InlineMediaRow, error)
}

// Service exposes program operations.
type Service interface {
	List(ctx context.Context) ([]ProgramDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProgramDTO, error)
	Create(ctx context.Context, input CreateProgramInput) (*ProgramDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProgramInput) (*ProgramDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         programRepository
	articleMedia articleMediaLoader
}

// NewService builds a program service.
func NewService(repo programRepository, articleMedia articleMediaLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("program repository required")
	}
	if articleMedia == nil {
		return nil, fmt.Errorf("article media loader required")
	}
	return &service{repo: repo, articleMedia: articleMedia}, nil
}

func (s *service) List(ctx context.Context) ([]ProgramDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list programs")
	}
	return s.attach(ctx, rows)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProgramDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program")
	}
	dtos, err := s.attach(ctx, []models.Program{*row})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *service) Create(ctx context.Context, input CreateProgramInput) (*ProgramDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "startDate and endDate are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not be before startDate")
	}

	program := &models.Program{
		Title:       title,
		Description: cloneStringPtr(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	links := LinkLists{
		MediaIDs:   &input.MediaIDs,
		ArtworkIDs: &input.ArtworkIDs,
		ArticleIDs: &input.ArticleIDs,
	}
	if err := s.repo.Create(ctx, program, links); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create program")
	}
	return s.GetByID(ctx, program.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProgramInput) (*ProgramDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program")
	}
	program := *row

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		program.Title = title
	}
	if input.Description != nil {
		program.Description = cloneStringPtr(input.Description)
	}
	if input.StartDate != nil {
		program.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		program.EndDate = *input.EndDate
	}
	if program.EndDate.Before(program.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not be before startDate")
	}

	links := LinkLists{
		MediaIDs:   input.MediaIDs,
		ArtworkIDs: input.ArtworkIDs,
		ArticleIDs: input.ArticleIDs,
	}
	if err := s.repo.Update(ctx, &program, links); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update program")
	}
	return s.GetByID(ctx, program.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete program")
	}
	return nil
}

// attach resolves every program's media, artworks and articles with a fixed
// number of queries regardless of how many programs are in the batch.
func (s *service) attach(ctx context.Context, rows []models.Program) ([]ProgramDTO, error) {
	if len(rows) == 0 {
		return []ProgramDTO{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	mediaRows, err := s.repo.ListProgramMedia(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program media")
	}
	artworkRows, err := s.repo.ListProgramArtworks(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program artworks")
	}
	articleRows, err := s.repo.ListProgramArticles(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program articles")
	}

	articleIDs := make([]uuid.UUID, 0, len(articleRows))
	for i := range articleRows {
		articleIDs = append(articleIDs, articleRows[i].ID)
	}
	inlineRows, err := s.articleMedia.ListInlineMedia(ctx, articleIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article media")
	}
	inlineByArticle := make(map[uuid.UUID][]media.MediaDTO, len(articleIDs))
	for i := range inlineRows {
		inlineByArticle[inlineRows[i].ArticleID] = append(inlineByArticle[inlineRows[i].ArticleID], *media.FromRow(&inlineRows[i].RowWithArtist))
	}

	mediaByProgram := make(map[uuid.UUID][]media.MediaDTO)
	for i := range mediaRows {
		mediaByProgram[mediaRows[i].ProgramID] = append(mediaByProgram[mediaRows[i].ProgramID], *media.FromRow(&mediaRows[i].RowWithArtist))
	}
	artworksByProgram := make(map[uuid.UUID][]media.MediaDTO)
	for i := range artworkRows {
		artworksByProgram[artworkRows[i].ProgramID] = append(artworksByProgram[artworkRows[i].ProgramID], *media.FromRow(&artworkRows[i].RowWithArtist))
	}
	articlesByProgram := make(map[uuid.UUID][]articles.ArticleDTO)
	for i := range articleRows {
		row := &articleRows[i]
		articlesByProgram[row.LinkProgramID] = append(articlesByProgram[row.LinkProgramID], *articles.FromRow(&row.RowWithJoins, inlineByArticle[row.ID]))
	}

	dtos := make([]ProgramDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i], Attachments{
			Media:    mediaByProgram[rows[i].ID],
			Artworks: artworksByProgram[rows[i].ID],
			Articles: articlesByProgram[rows[i].ID],
		}))
	}
	return dtos, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
