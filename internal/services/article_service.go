package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/models"
)

const articleColumns = "id, title, content, is_published, user_id, created_at, updated_at"

type ArticleService struct {
	db *database.DB
}

func NewArticleService(db *database.DB) *ArticleService {
	return &ArticleService{db: db}
}

// ListArticles returns what the viewer is allowed to see: everything for
// admins, published plus their own for authenticated users, published
// only for anonymous callers.
func (s *ArticleService) ListArticles(viewer *models.User) ([]models.Article, error) {
	query := "select " + articleColumns + " from articles"
	var args []interface{}

	switch {
	case viewer == nil:
		query += " where is_published = true"
	case viewer.IsAdmin():
		// no filter
	default:
		query += " where is_published = true or user_id = $1"
		args = append(args, viewer.ID)
	}
	query += " order by created_at desc"

	articles := []models.Article{}
	if err := s.db.Select(&articles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// GetArticleByID returns the row regardless of published state; callers
// decide visibility.
func (s *ArticleService) GetArticleByID(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	query := "select " + articleColumns + " from articles where id = $1"

	if err := s.db.Get(&article, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) CreateArticle(title, content string, userID uuid.UUID) (*models.Article, error) {
	var article models.Article
	query := `
		insert into articles (title, content, user_id)
		values ($1, $2, $3)
		returning ` + articleColumns

	if err := s.db.Get(&article, query, title, content, userID); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return &article, nil
}

// UpdateArticle applies the provided fields only and bumps updated_at.
func (s *ArticleService) UpdateArticle(id uuid.UUID, req *dto.UpdateArticleRequest) (*models.Article, error) {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.IsPublished != nil {
		add("is_published", *req.IsPublished)
	}

	if len(sets) == 0 {
		return s.GetArticleByID(id)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		"update articles set %s where id = $%d returning %s",
		strings.Join(sets, ", "), len(args), articleColumns,
	)

	var article models.Article
	if err := s.db.Get(&article, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) TogglePublish(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	query := "update articles set is_published = not is_published, updated_at = now() where id = $1 returning " + articleColumns

	if err := s.db.Get(&article, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to toggle publish: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) DeleteArticle(id uuid.UUID) error {
	res, err := s.db.Exec("delete from articles where id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if rows == 0 {
		return ErrArticleNotFound
	}
	return nil
}
