package handlers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/database"
	"blog-backend/internal/models"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &database.DB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func errNoRows() error {
	return sql.ErrNoRows
}

func userRow(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "profile_image_url", "role", "created_at", "is_active",
	}).AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.ProfileImageURL, u.Role, u.CreatedAt, u.IsActive)
}

func articleRow(a models.Article) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "content", "is_published", "user_id", "created_at", "updated_at",
	}).AddRow(a.ID, a.Title, a.Content, a.IsPublished, a.UserID, a.CreatedAt, a.UpdatedAt)
}

func testUser(role models.UserRole) models.User {
	return models.User{
		ID:              uuid.New(),
		Username:        "alice",
		Email:           "a@x.com",
		PasswordHash:    "$2a$10$unused",
		ProfileImageURL: "default.png",
		Role:            role,
		CreatedAt:       time.Now(),
		IsActive:        true,
	}
}

func testArticle(ownerID uuid.UUID, published bool) models.Article {
	return models.Article{
		ID:          uuid.New(),
		Title:       "T",
		Content:     "C",
		IsPublished: published,
		UserID:      ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
