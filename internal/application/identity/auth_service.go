package identity

import (
	"context"
	"time"

	"github.com/agencydesk/backend/internal/domain/identity"
	"github.com/agencydesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SessionClaims carries the validated contents of a session token
type SessionClaims struct {
	UserID    uint
	Name      string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and validates signed session tokens. The token is
// the single source of truth for the session; clients hold it only in the
// auth cookie.
type TokenService interface {
	Issue(user *identity.User) (string, time.Time, error)
	Validate(ctx context.Context, token string) (*SessionClaims, error)
}

// TokenRevoker invalidates issued tokens before their natural expiry
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SignInResult is returned on a successful sign-in
type SignInResult struct {
	Token     string         `json:"-"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *identity.User `json:"user"`
}

// AuthService handles sign-in and sign-out
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenService
	revoker  TokenRevoker
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenService, revoker TokenRevoker, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		logger:   logger,
	}
}

// SignIn verifies the credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("failed sign-in attempt", zap.String("email", email))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("failed to issue session token", zap.Error(err))
		return nil, err
	}

	return &SignInResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// SignOut revokes the presented session token until it would have expired
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		// an invalid token has nothing left to revoke
		return nil
	}
	return s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}
