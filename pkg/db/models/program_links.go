package models

import "github.com/google/uuid"

// ProgramMedia links documentation media (installation shots, posters) to a program.
type ProgramMedia struct {
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;primaryKey"`
	MediaID   uuid.UUID `gorm:"column:media_id;type:uuid;primaryKey"`
}

func (ProgramMedia) TableName() string { return "program_media" }

// ProgramArtwork links exhibited artworks to a program.
type ProgramArtwork struct {
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;primaryKey"`
	MediaID   uuid.UUID `gorm:"column:media_id;type:uuid;primaryKey"`
}

func (ProgramArtwork) TableName() string { return "program_artworks" }

// ProgramArticle links editorial coverage to a program.
type ProgramArticle struct {
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;primaryKey"`
	ArticleID uuid.UUID `gorm:"column:article_id;type:uuid;primaryKey"`
}

func (ProgramArticle) TableName() string { return "program_articles" }
