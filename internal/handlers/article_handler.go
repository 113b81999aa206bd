package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/middleware"
	"blog-backend/internal/models"
	"blog-backend/internal/services"
	"blog-backend/utils/response"
)

type ArticleHandler struct {
	service *services.ArticleService
}

func NewArticleHandler(db *database.DB) *ArticleHandler {
	return &ArticleHandler{
		service: services.NewArticleService(db),
	}
}

func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetUserFromContext(r.Context())

	articles, err := h.service.ListArticles(viewer)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}
	response.JSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	article, err := h.service.GetArticleByID(id)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			response.Error(w, http.StatusNotFound, "Article not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get article")
		return
	}

	// Unpublished drafts read as absent to anyone but the owner or an
	// admin.
	viewer := middleware.GetUserFromContext(r.Context())
	if !article.IsPublished && !middleware.CheckOwnership(article.UserID, viewer) {
		response.Error(w, http.StatusNotFound, "Article not found")
		return
	}
	response.JSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		response.Error(w, http.StatusBadRequest, "title and content are required")
		return
	}

	current := middleware.GetUserFromContext(r.Context())
	article, err := h.service.CreateArticle(req.Title, req.Content, current.ID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to create article")
		return
	}
	response.JSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil && *req.Title == "" {
		response.Error(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.Content != nil && *req.Content == "" {
		response.Error(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	updated, err := h.service.UpdateArticle(article.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			response.Error(w, http.StatusNotFound, "Article not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to update article")
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ArticleHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	updated, err := h.service.TogglePublish(article.ID)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			response.Error(w, http.StatusNotFound, "Article not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to toggle publish")
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteArticle(article.ID); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			response.Error(w, http.StatusNotFound, "Article not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	response.Message(w, http.StatusOK, "Article deleted")
}

// loadOwned fetches the article from the path id and enforces the
// ownership rule for mutations. Writes the error response itself when
// it returns ok=false.
func (h *ArticleHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}

	article, err := h.service.GetArticleByID(id)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			response.Error(w, http.StatusNotFound, "Article not found")
			return nil, false
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get article")
		return nil, false
	}

	current := middleware.GetUserFromContext(r.Context())
	if !middleware.CheckOwnership(article.UserID, current) {
		response.Error(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return article, true
}
