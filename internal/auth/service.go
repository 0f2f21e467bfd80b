package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/moslemp47/vpnpanel1/internal/user"
	"github.com/moslemp47/vpnpanel1/internal/utils"
)

const minPasswordLength = 6

// TokenPair is the response body shared by signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Service orchestrates the credential store, token issuer, refresh ledger
// and login throttle.
type Service struct {
	users    user.Repository
	ledger   Ledger
	issuer   *TokenIssuer
	throttle *Throttle
}

func NewService(users user.Repository, ledger Ledger, issuer *TokenIssuer, throttle *Throttle) *Service {
	return &Service{
		users:    users,
		ledger:   ledger,
		issuer:   issuer,
		throttle: throttle,
	}
}

// Signup registers a new account and starts its first refresh-token chain.
func (s *Service) Signup(ctx context.Context, email, password string) (*TokenPair, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueTokens(ctx, u.ID)
}

// Login verifies credentials behind the throttle and starts a new,
// independent refresh-token chain. Unknown email and wrong password report
// the same error.
func (s *Service) Login(ctx context.Context, email, password, clientKey string) (*TokenPair, error) {
	if !s.throttle.Allow(clientKey) {
		return nil, ErrTooManyAttempts
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u.ID)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is minted. Replay of an already-rotated or revoked token fails like
// any other invalid token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.issuer.ParseAndValidate(refreshToken)
	if err != nil || claims.Scope != ScopeRefresh || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	rec, err := s.ledger.FindActive(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("ledger lookup: %w", err)
	}
	if rec == nil || !rec.ExpiresAt.After(time.Now()) {
		return nil, ErrInvalidToken
	}

	// Conditional update: the loser of a concurrent replay sees zero rows.
	won, err := s.ledger.RevokeActive(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if !won {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(ctx, rec.UserID)
}

// Logout revokes the presented refresh token's ledger entry. It never fails:
// a malformed, unknown or already-revoked token still means the caller has
// stopped trusting it.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.issuer.ParseAndValidate(refreshToken)
	if err != nil || claims.ID == "" {
		return
	}
	_ = s.ledger.Revoke(ctx, claims.ID)
}

// ResolveIdentity returns the user id carried by a structurally valid
// bearer token. Both access and refresh scope are accepted as identity
// proof, matching the panel's existing policy.
func (s *Service) ResolveIdentity(tokenStr string) (uint, error) {
	claims, err := s.issuer.ParseAndValidate(tokenStr)
	if err != nil {
		return 0, ErrUnauthorized
	}
	if claims.Scope != ScopeAccess && claims.Scope != ScopeRefresh {
		return 0, ErrUnauthorized
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, ErrUnauthorized
	}
	return id, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uint) (*TokenPair, error) {
	access, err := s.issuer.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, jti, err := s.issuer.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	// The ledger row must land before the tokens are handed out; a failed
	// insert fails the whole operation.
	expiresAt := time.Now().Add(s.issuer.RefreshTTL())
	if err := s.ledger.Record(ctx, userID, jti, expiresAt); err != nil {
		return nil, fmt.Errorf("record refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
