package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"liveboard/internal/auth"
	"liveboard/internal/model"
	"liveboard/internal/repository"

	"go.uber.org/zap"
)

const MinPasswordLength = 6

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Token string
	User  auth.Identity
}

type AuthService struct {
	users      repository.UserRepositoryInterface
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepositoryInterface, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.Sugar(),
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email must contain @", ErrValidation)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.issue(user)
}

// Verify turns a bearer token into the identity it carries. The store is not
// consulted, so a role change takes effect only after the next login.
func (s *AuthService) Verify(token string) (auth.Identity, error) {
	identity, err := s.tokens.ParseToken(token)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return identity, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	identity := auth.Identity{ID: user.ID, Email: user.Email, Role: user.Role}

	token, err := s.tokens.GenerateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResult{Token: token, User: identity}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
