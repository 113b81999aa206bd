package dto

type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateArticleRequest carries a partial update, pointer fields meaning
// the same as in UpdateUserRequest.
type UpdateArticleRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}
