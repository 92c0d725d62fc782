package cron

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormURLSource collects every object URL the catalog tables still point at:
// media, ui_media and media_tbyt rows, both main and thumbnail columns.
type GormURLSource struct {
	db *gorm.DB
}

// NewGormURLSource binds the reference query to a GORM DB.
func NewGormURLSource(db *gorm.DB) (*GormURLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	return &GormURLSource{db: db}, nil
}

// ListReferencedURLs returns the distinct non-null URLs across all tables.
func (s *GormURLSource) ListReferencedURLs(ctx context.Context) ([]string, error) {
	const query = `
		SELECT url FROM media
		UNION
		SELECT thumbnail_url FROM media WHERE thumbnail_url IS NOT NULL
		UNION
		SELECT url FROM ui_media
		UNION
		SELECT thumbnail_url FROM ui_media WHERE thumbnail_url IS NOT NULL
		UNION
		SELECT url FROM media_tbyt
		UNION
		SELECT thumbnail_url FROM media_tbyt WHERE thumbnail_url IS NOT NULL`

	var urls []string
	if err := s.db.WithContext(ctx).Raw(query).Scan(&urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}
