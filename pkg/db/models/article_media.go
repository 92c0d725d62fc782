package models

import "github.com/google/uuid"

// ArticleMedia links inline media to an article body.
type ArticleMedia struct {
	ArticleID uuid.UUID `gorm:"column:article_id;type:uuid;primaryKey"`
	MediaID   uuid.UUID `gorm:"column:media_id;type:uuid;primaryKey"`
}

func (ArticleMedia) TableName() string { return "articles_media" }
