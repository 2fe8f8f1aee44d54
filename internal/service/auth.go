package service

import (
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/internal/repository"
	"bitwise74/filestore-api/pkg/apperr"
	"bitwise74/filestore-api/pkg/security"
	"bitwise74/filestore-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"slices"
)

var ErrRoleInvalid = apperr.Validation("Invalid role")

type AuthService struct {
	users  *repository.Users
	hasher *security.PasswordHasher
	tokens *security.TokenService
	roles  []string
}

// NewAuthService creates the service. roles lists the roles a user may
// pick when registering.
func NewAuthService(users *repository.Users, hasher *security.PasswordHasher, tokens *security.TokenService, roles []string) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		roles:  roles,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (model.PublicUser, error) {
	if email == "" || password == "" {
		return model.PublicUser{}, validators.ErrCredentialsEmpty
	}

	if err := validators.EmailValidator(email); err != nil {
		return model.PublicUser{}, err
	}

	if err := validators.PasswordValidator(password); err != nil {
		return model.PublicUser{}, err
	}

	if role == "" {
		role = model.DefaultRole
	}

	if !slices.Contains(s.roles, role) {
		return model.PublicUser{}, ErrRoleInvalid
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to check if email is registered, %w", err)
	}

	if taken {
		return model.PublicUser{}, apperr.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to hash password, %w", err)
	}

	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	// Create still reports duplicates if another request won the race
	if err := s.users.Create(ctx, u); err != nil {
		return model.PublicUser{}, err
	}

	return u.Public(), nil
}

// Login checks the credentials and issues a token. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.PublicUser, error) {
	if email == "" || password == "" {
		return "", model.PublicUser{}, validators.ErrCredentialsEmpty
	}

	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", model.PublicUser{}, apperr.ErrInvalidCredentials
		}

		return "", model.PublicUser{}, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("failed to verify password of user %d, %w", u.ID, err)
	}

	if !ok {
		return "", model.PublicUser{}, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(security.Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	})
	if err != nil {
		return "", model.PublicUser{}, fmt.Errorf("failed to sign token, %w", err)
	}

	return token, u.Public(), nil
}
