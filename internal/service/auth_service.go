package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/config"
	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// ErrEmailTaken is returned when registering an already-known email.
var ErrEmailTaken = errors.New("email already registered")

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService is the primary security boundary: it verifies credentials,
// issues access/refresh token pairs, rotates refresh tokens and revokes
// tokens through the blacklist.
type AuthService struct {
	users      repository.UserRepository
	teachers   repository.TeacherRepository
	codec      *auth.TokenCodec
	blacklist  *auth.Blacklist
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	TeacherRepo repository.TeacherRepository
	Blacklist   *auth.Blacklist
}

// NewAuthService builds the service. The token codec is derived once here
// from the configured secret.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		teachers:   deps.TeacherRepo,
		codec:      auth.NewTokenCodec(cfg.Auth.JWTSecret, logger),
		blacklist:  deps.Blacklist,
		accessTTL:  cfg.Auth.AccessTokenTTL(),
		refreshTTL: cfg.Auth.RefreshTokenTTL(),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new ACTIVE teacher account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*TokenPair, error) {
	email = domain.NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
		Roles:        []string{domain.RoleTeacher},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	teacher := &domain.Teacher{UserID: user.ID, FullName: fullName}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	return s.issuePair(user)
}

// Login authenticates by email and password. The error for an unknown email
// and for a wrong password is the same one, so callers learn nothing about
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*TokenPair, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, rawPassword); err != nil {
		s.logger.Warn("login rejected", zap.String("email", email))
		return nil, auth.ErrInvalidCredentials
	}

	if user.Status == domain.UserStatusBlocked {
		s.logger.Warn("login attempt on blocked account", zap.String("email", email))
		return nil, auth.ErrAccountBlocked
	}
	if user.Status != domain.UserStatusActive {
		s.logger.Warn("login attempt on disabled account", zap.String("email", email))
		return nil, auth.ErrAccountDisabled
	}

	return s.issuePair(user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh access/refresh pair is issued. A refresh token is single-use; two
// concurrent calls with the same token can both pass the revocation check
// before either records the rotation, which is a known narrow window.
func (s *AuthService) Refresh(ctx context.Context, oldRefreshToken string) (*TokenPair, error) {
	if s.blacklist.Contains(oldRefreshToken) {
		s.logger.Warn("refresh attempted with revoked token")
		return nil, auth.ErrTokenRevoked
	}

	claims, err := s.codec.Decode(oldRefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != auth.TokenKindRefresh || claims.Subject == "" {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, auth.ErrInvalidToken
	}

	// Revoke the old token through its own natural expiry before the new
	// pair goes out.
	if claims.ExpiresAt != nil {
		s.blacklist.Add(oldRefreshToken, claims.ExpiresAt.Time)
	}

	return s.issuePair(user)
}

// Logout revokes whichever tokens the caller presented. Best-effort: a
// garbage token is ignored, and logging out twice is harmless. Never
// returns an error to the caller.
func (s *AuthService) Logout(accessToken, refreshToken string) {
	s.revoke(accessToken)
	s.revoke(refreshToken)
}

// Validate checks a token for the expected kind and resolves its identity.
// Fails closed: any decode failure or blacklist hit is a rejection.
func (s *AuthService) Validate(ctx context.Context, token string, kind auth.TokenKind) (*domain.User, error) {
	if s.blacklist.Contains(token) {
		return nil, auth.ErrTokenRevoked
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind || claims.Subject == "" {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}

// Codec exposes the token codec for callers that need to inspect tokens.
func (s *AuthService) Codec() *auth.TokenCodec {
	return s.codec
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	accessToken, _, err := s.codec.Encode(user.Email, user.Roles, auth.TokenKindAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.codec.Encode(user.Email, user.Roles, auth.TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (s *AuthService) revoke(token string) {
	if token == "" {
		return
	}
	// Decode only to learn the token's expiry; all decode failures are
	// swallowed. An already-expired token gets an entry that Contains
	// evicts on first sight.
	claims, err := s.codec.Decode(token)
	if claims == nil || claims.ExpiresAt == nil {
		return
	}
	if err != nil && !errors.Is(err, auth.ErrTokenExpired) {
		return
	}
	s.blacklist.Add(token, claims.ExpiresAt.Time)
}
