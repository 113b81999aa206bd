package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/middleware"
	"blog-backend/internal/models"
)

func articleRequest(method, path, body string, pathID uuid.UUID, current *models.User) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if pathID != uuid.Nil {
		req.SetPathValue("id", pathID.String())
	}
	if current != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), current))
	}
	return req
}

func TestGetArticlePublishedAnonymous(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)

	article := testArticle(uuid.New(), true)
	mock.ExpectQuery("from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnRows(articleRow(article))

	rec := httptest.NewRecorder()
	h.GetArticle(rec, articleRequest(http.MethodGet, "/api/articles/"+article.ID.String(), "", article.ID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["is_published"])
}

// Drafts read as absent to anonymous callers and strangers, visible to
// the owner and admins.
func TestGetArticleDraftVisibility(t *testing.T) {
	owner := testUser(models.UserRoleUser)
	stranger := testUser(models.UserRoleUser)
	admin := testUser(models.UserRoleAdmin)

	cases := []struct {
		name   string
		viewer *models.User
		status int
	}{
		{"anonymous", nil, http.StatusNotFound},
		{"stranger", &stranger, http.StatusNotFound},
		{"owner", &owner, http.StatusOK},
		{"admin", &admin, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			h := NewArticleHandler(db)

			article := testArticle(owner.ID, false)
			mock.ExpectQuery("from articles where id = \\$1").
				WithArgs(article.ID).
				WillReturnRows(articleRow(article))

			rec := httptest.NewRecorder()
			h.GetArticle(rec, articleRequest(http.MethodGet, "/api/articles/"+article.ID.String(), "", article.ID, tc.viewer))

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestGetArticleBadID(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewArticleHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/articles/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	h.GetArticle(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateArticleValidation(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewArticleHandler(db)
	current := testUser(models.UserRoleUser)

	rec := httptest.NewRecorder()
	h.CreateArticle(rec, articleRequest(http.MethodPost, "/api/articles", `{"title":"T"}`, uuid.Nil, &current))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateArticleOwnedByCaller(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)
	current := testUser(models.UserRoleUser)
	article := testArticle(current.ID, true)

	mock.ExpectQuery("insert into articles").
		WithArgs("T", "C", current.ID).
		WillReturnRows(articleRow(article))

	rec := httptest.NewRecorder()
	h.CreateArticle(rec, articleRequest(http.MethodPost, "/api/articles", `{"title":"T","content":"C"}`, uuid.Nil, &current))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, current.ID.String(), body["user_id"])
	assert.Equal(t, true, body["is_published"])
}

func TestDeleteArticleByStrangerForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)

	owner := testUser(models.UserRoleUser)
	stranger := testUser(models.UserRoleUser)
	article := testArticle(owner.ID, true)

	mock.ExpectQuery("from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnRows(articleRow(article))

	rec := httptest.NewRecorder()
	h.DeleteArticle(rec, articleRequest(http.MethodDelete, "/api/articles/"+article.ID.String(), "", article.ID, &stranger))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Access denied"}`, rec.Body.String())
}

func TestDeleteArticleByAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)

	owner := testUser(models.UserRoleUser)
	admin := testUser(models.UserRoleAdmin)
	article := testArticle(owner.ID, true)

	mock.ExpectQuery("from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnRows(articleRow(article))
	mock.ExpectExec("delete from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	h.DeleteArticle(rec, articleRequest(http.MethodDelete, "/api/articles/"+article.ID.String(), "", article.ID, &admin))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateArticleEmptyTitleRejected(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)

	owner := testUser(models.UserRoleUser)
	article := testArticle(owner.ID, true)

	mock.ExpectQuery("from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnRows(articleRow(article))

	rec := httptest.NewRecorder()
	h.UpdateArticle(rec, articleRequest(http.MethodPut, "/api/articles/"+article.ID.String(), `{"title":""}`, article.ID, &owner))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTogglePublishByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewArticleHandler(db)

	owner := testUser(models.UserRoleUser)
	article := testArticle(owner.ID, true)
	toggled := article
	toggled.IsPublished = false

	mock.ExpectQuery("from articles where id = \\$1").
		WithArgs(article.ID).
		WillReturnRows(articleRow(article))
	mock.ExpectQuery("update articles set is_published = not is_published").
		WithArgs(article.ID).
		WillReturnRows(articleRow(toggled))

	rec := httptest.NewRecorder()
	h.TogglePublish(rec, articleRequest(http.MethodPut, "/api/articles/"+article.ID.String()+"/publish", "", article.ID, &owner))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["is_published"])
}
