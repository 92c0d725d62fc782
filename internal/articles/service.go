package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type articleRepository interface {
	List(ctx context.Context) ([]RowWithJoins, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RowWithJoins, error)
	ListInlineMedia(ctx context.Context, articleIDs []uuid.UUID) ([]InlineMediaRow, error)
	ListSlugsLike(ctx context.Context, base string, excludeID *uuid.UUID) ([]string, error)
	Create(ctx context.Context, article *models.Article, mediaIDs []uuid.UUID) error
	Update(ctx context.Context, article *models.Article, mediaIDs *[]uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes article operations.
type Service interface {
	List(ctx context.Context) ([]ArticleDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ArticleDTO, error)
	Create(ctx context.Context, input CreateArticleInput) (*ArticleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo articleRepository
}

// NewService builds an article service.
func NewService(repo articleRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("article repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]ArticleDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	inlineByArticle, err := s.loadInlineMedia(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]ArticleDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromRow(&rows[i], inlineByArticle[rows[i].ID]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ArticleDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article")
	}

	inlineByArticle, err := s.loadInlineMedia(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	return FromRow(row, inlineByArticle[row.ID]), nil
}

func (s *service) Create(ctx context.Context, input CreateArticleInput) (*ArticleDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and content are required")
	}

	article := &models.Article{
		Title:         title,
		Content:       input.Content,
		Excerpt:       cloneStringPtr(input.Excerpt),
		CoverMediaID:  cloneUUIDPtr(input.CoverMediaID),
		CoverImageURL: cloneStringPtr(input.CoverImageURL),
		AuthorID:      cloneUUIDPtr(input.AuthorID),
		ProgramID:     cloneUUIDPtr(input.ProgramID),
	}

	slug, err := s.nextSlug(ctx, title, nil)
	if err != nil {
		return nil, err
	}
	article.Slug = slug

	if err := s.repo.Create(ctx, article, input.MediaIDs); err != nil {
		// A concurrent insert can claim the slug between the availability
		// check and the write; regenerate once and retry.
		if !db.IsUniqueViolation(err, "articles_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
		}
		article.ID = uuid.Nil
		if article.Slug, err = s.nextSlug(ctx, title, nil); err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, article, input.MediaIDs); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
		}
	}
	return s.GetByID(ctx, article.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article")
	}
	article := row.Article

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		article.Title = title
		if article.Slug, err = s.nextSlug(ctx, title, &article.ID); err != nil {
			return nil, err
		}
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "content cannot be empty")
		}
		article.Content = *input.Content
	}
	if input.Excerpt != nil {
		article.Excerpt = cloneStringPtr(input.Excerpt)
	}
	if input.CoverMediaID != nil {
		article.CoverMediaID = cloneUUIDPtr(input.CoverMediaID)
	}
	if input.CoverImageURL != nil {
		article.CoverImageURL = cloneStringPtr(input.CoverImageURL)
	}
	if input.ProgramID != nil {
		article.ProgramID = cloneUUIDPtr(input.ProgramID)
	}

	if err := s.repo.Update(ctx, &article, input.MediaIDs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update article")
	}
	return s.GetByID(ctx, article.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete article")
	}
	return nil
}

func (s *service) nextSlug(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title must contain at least one letter or digit")
	}
	taken, err := s.repo.ListSlugsLike(ctx, base, excludeID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug availability")
	}
	return NextAvailableSlug(base, taken), nil
}

func (s *service) loadInlineMedia(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID][]media.MediaDTO, error) {
	rows, err := s.repo.ListInlineMedia(ctx, articleIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article media")
	}
	grouped := make(map[uuid.UUID][]media.MediaDTO, len(articleIDs))
	for i := range rows {
		grouped[rows[i].ArticleID] = append(grouped[rows[i].ArticleID], *media.FromRow(&rows[i].RowWithArtist))
	}
	return grouped, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneUUIDPtr(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
