package beem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type bookRepository interface {
	List(ctx context.Context) ([]RowWithMedia, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RowWithMedia, error)
	Create(ctx context.Context, book *models.BeEm) error
	Update(ctx context.Context, book *models.BeEm) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes BE-EM catalog operations.
type Service interface {
	List(ctx context.Context) ([]BookDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookDTO, error)
	Create(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo bookRepository
}

// NewService builds a BE-EM catalog service.
func NewService(repo bookRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("book repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]BookDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	dtos := make([]BookDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromRow(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*BookDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	return FromRow(row), nil
}

func (s *service) Create(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	book := &models.BeEm{
		Title:       title,
		Year:        cloneIntPtr(input.Year),
		Author:      cloneStringPtr(input.Author),
		Description: cloneStringPtr(input.Description),
		MediaID:     cloneUUIDPtr(input.MediaID),
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create book")
	}
	return s.GetByID(ctx, book.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	book := row.BeEm

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		book.Title = title
	}
	if input.Year != nil {
		book.Year = cloneIntPtr(input.Year)
	}
	if input.Author != nil {
		book.Author = cloneStringPtr(input.Author)
	}
	if input.Description != nil {
		book.Description = cloneStringPtr(input.Description)
	}
	if input.MediaID.Valid {
		book.MediaID = input.MediaID.Clone().Value
	}

	if err := s.repo.Update(ctx, &book); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update book")
	}
	return s.GetByID(ctx, book.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete book")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneIntPtr(value *int) *int {
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
