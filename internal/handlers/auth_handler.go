package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/services"
	"blog-backend/internal/token"
	"blog-backend/utils/response"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(db *database.DB, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		service: services.NewAuthService(db, tokens),
	}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.service.RegisterUser(&req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			response.Error(w, http.StatusConflict, "Username or email already taken")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signed, err := h.service.LoginUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.Error(w, http.StatusUnauthorized, "User not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "Incorrect password")
		default:
			response.Error(w, http.StatusInternalServerError, "Failed to login user")
		}
		return
	}

	response.JSON(w, http.StatusOK, response.TokenResponse{Token: signed})
}
