package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/models"
)

const userColumns = "id, username, email, password_hash, profile_image_url, role, created_at, is_active"

// UserFilter narrows ListUsers. Nil fields match everything.
type UserFilter struct {
	Role     *models.UserRole
	IsActive *bool
}

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ListUsers(filter UserFilter) ([]models.User, error) {
	query := "select " + userColumns + " from users"
	var conds []string
	var args []interface{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " where " + strings.Join(conds, " and ")
	}
	query += " order by created_at"

	users := []models.User{}
	if err := s.db.Select(&users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetActiveUserByID resolves an id to a live user. Soft-deleted users are
// reported as not found, which is what revokes their outstanding tokens.
func (s *UserService) GetActiveUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	query := "select " + userColumns + " from users where id = $1 and is_active = true"

	if err := s.db.Get(&user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies the provided fields only. Nil fields keep their
// current value; a present empty profile_image_url clears it.
func (s *UserService) UpdateUser(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Username != nil {
		add("username", *req.Username)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Password != nil {
		bytes, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		add("password_hash", string(bytes))
	}
	if req.ProfileImageURL != nil {
		add("profile_image_url", *req.ProfileImageURL)
	}
	if req.Role != nil {
		add("role", models.UserRole(*req.Role))
	}

	if len(sets) == 0 {
		return s.GetActiveUserByID(id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"update users set %s where id = $%d and is_active = true returning %s",
		strings.Join(sets, ", "), len(args), userColumns,
	)

	var user models.User
	if err := s.db.Get(&user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateRole(id uuid.UUID, role models.UserRole) (*models.User, error) {
	var user models.User
	query := "update users set role = $1 where id = $2 and is_active = true returning " + userColumns

	if err := s.db.Get(&user, query, role, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &user, nil
}

// SoftDeleteUser flips the active flag. Deleting an already-inactive
// user reports not found, same as an unknown id.
func (s *UserService) SoftDeleteUser(id uuid.UUID) error {
	res, err := s.db.Exec("update users set is_active = false where id = $1 and is_active = true", id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to soft-delete user: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// HardDeleteUser removes the row. Owned articles go with it via the
// foreign key cascade.
func (s *UserService) HardDeleteUser(id uuid.UUID) error {
	res, err := s.db.Exec("delete from users where id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
