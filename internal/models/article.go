package models

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID uuid.UUID `db:"id" json:"id"`

	Title       string `db:"title" json:"title"`
	Content     string `db:"content" json:"content"`
	IsPublished bool   `db:"is_published" json:"is_published"`

	UserID uuid.UUID `db:"user_id" json:"user_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
