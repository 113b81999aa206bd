package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/middleware"
	"blog-backend/internal/models"
	"blog-backend/internal/services"
	"blog-backend/utils/response"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(db *database.DB) *UserHandler {
	return &UserHandler{
		service: services.NewUserService(db),
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var filter services.UserFilter

	if v := r.URL.Query().Get("role"); v != "" {
		role := models.UserRole(v)
		if !role.Valid() {
			response.Error(w, http.StatusBadRequest, "Invalid role")
			return
		}
		filter.Role = &role
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, err := h.service.ListUsers(filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	response.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	current := middleware.GetUserFromContext(r.Context())
	if !middleware.CheckOwnership(id, current) {
		response.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	user, err := h.service.GetActiveUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	current := middleware.GetUserFromContext(r.Context())
	if !middleware.CheckOwnership(id, current) {
		response.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	h.applyUpdate(w, r, id, current)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetUserFromContext(r.Context())
	response.JSON(w, http.StatusOK, current)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetUserFromContext(r.Context())
	h.applyUpdate(w, r, current.ID, current)
}

func (h *UserHandler) applyUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID, current *models.User) {
	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username != nil && *req.Username == "" {
		response.Error(w, http.StatusBadRequest, "username cannot be empty")
		return
	}
	if req.Email != nil && *req.Email == "" {
		response.Error(w, http.StatusBadRequest, "email cannot be empty")
		return
	}
	if req.Password != nil && *req.Password == "" {
		response.Error(w, http.StatusBadRequest, "password cannot be empty")
		return
	}
	if req.Role != nil {
		if !current.IsAdmin() {
			response.Error(w, http.StatusForbidden, "Only admins can change roles")
			return
		}
		if !models.UserRole(*req.Role).Valid() {
			response.Error(w, http.StatusBadRequest, "Invalid role")
			return
		}
	}

	user, err := h.service.UpdateUser(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrDuplicate):
			response.Error(w, http.StatusConflict, "Username or email already taken")
		default:
			response.Error(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role := models.UserRole(req.Role)
	if !role.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.service.UpdateRole(id, role)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) SoftDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	response.Message(w, http.StatusOK, "User deactivated")
}

func (h *UserHandler) HardDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.HardDeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	response.Message(w, http.StatusOK, "User deleted")
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Not found")
		return uuid.Nil, false
	}
	return id, true
}
