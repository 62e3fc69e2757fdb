package authservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/jwtauth"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/sessioncache"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/userrepo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

type AuthService struct {
	userRepo Repository
	sessions Sessions
	v        Validator
	cfg      config.Auth
}

type Repository interface {
	CreateUser(context.Context, models.User) (int64, error)
	GetUser(context.Context, string) (models.User, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	GetSession(ctx context.Context, tokenID string) (int64, error)
	DeleteSession(ctx context.Context, tokenID string) error
}

type Validator interface {
	Validate(interface{}) error
}

func New(userRepo Repository, sessions Sessions, v Validator, cfg config.Auth) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		v:        v,
		cfg:      cfg,
	}
}

// CreateUser registers a user and logs them in.
func (as *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := as.v.Validate(req); err != nil {
		return "", err //nolint:wrapcheck
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate from password error: %w", err)
	}

	u := models.User{ //nolint:exhaustruct
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	u.ID, err = as.userRepo.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			return "", models.NewValidationError("username", "A user with that username already exists.")
		}

		return "", fmt.Errorf("create user error: %w", err)
	}

	return as.issue(ctx, u)
}

func (as *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := as.v.Validate(req); err != nil {
		return "", err //nolint:wrapcheck
	}

	u, err := as.userRepo.GetUser(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", fmt.Errorf("get user error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return as.issue(ctx, u)
}

// Authenticate resolves a bearer token to the requester it was issued for.
// Invalid tokens and unknown sessions are reported as models.ErrUnauthorized;
// a failing session store is returned as is.
func (as *AuthService) Authenticate(ctx context.Context, token string) (models.Requester, error) {
	claims, err := jwtauth.ValidateToken(token, as.cfg.Secret)
	if err != nil {
		return models.Requester{}, fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}

	userID, err := as.sessions.GetSession(ctx, claims.Id)
	if errors.Is(err, sessioncache.ErrNotFound) {
		return models.Requester{}, fmt.Errorf("%w: get session error: %w", models.ErrUnauthorized, err)
	}

	if err != nil {
		return models.Requester{}, fmt.Errorf("get session error: %w", err)
	}

	if userID != claims.UserID {
		return models.Requester{}, fmt.Errorf("%w: session belongs to another user", models.ErrUnauthorized)
	}

	return models.Requester{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// Logout revokes token.
func (as *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := jwtauth.ValidateToken(token, as.cfg.Secret)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}

	if err := as.sessions.DeleteSession(ctx, claims.Id); err != nil {
		if errors.Is(err, sessioncache.ErrNotFound) {
			return fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
		}

		return fmt.Errorf("delete session error: %w", err)
	}

	return nil
}

func (as *AuthService) issue(ctx context.Context, u models.User) (string, error) {
	token, claims, err := jwtauth.GetToken(u, as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	if err := as.sessions.CreateSession(ctx, claims.Id, u.ID, as.cfg.TTL); err != nil {
		return "", fmt.Errorf("create session error: %w", err)
	}

	return token, nil
}
