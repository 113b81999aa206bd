package services

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/database"
	"blog-backend/internal/dto"
	"blog-backend/internal/models"
	"blog-backend/internal/token"
)

type AuthService struct {
	db     *database.DB
	tokens *token.Service
}

func NewAuthService(db *database.DB, tokens *token.Service) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// RegisterUser hashes the password and inserts a new user with the
// default role. Username/email collisions surface as ErrDuplicate.
func (s *AuthService) RegisterUser(req *dto.RegisterUserRequest) (*models.User, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	query := `
		insert into users (username, email, password_hash)
		values ($1, $2, $3)
		returning id, username, email, password_hash, profile_image_url, role, created_at, is_active
	`
	if err := s.db.Get(&user, query, req.Username, req.Email, string(bytes)); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &user, nil
}

// LoginUser verifies credentials against the active user with the given
// email and issues a token for them. Unknown email and bad password are
// distinct failures.
func (s *AuthService) LoginUser(req *dto.LoginUserRequest) (string, error) {
	var user models.User
	query := `
		select id, username, email, password_hash, profile_image_url, role, created_at, is_active
		from users where email = $1 and is_active = true
	`
	if err := s.db.Get(&user, query, req.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}
