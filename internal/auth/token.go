package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

// Claims carried by every token. The refresh jti travels in the registered
// ID claim; access tokens leave it empty.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// UserID decodes the string-encoded subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return uint(id), nil
}

// TokenIssuer mints and verifies signed tokens with a symmetric secret.
// Verification is purely structural; ledger checks belong to the caller.
type TokenIssuer struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret, algorithm string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *TokenIssuer) AccessTTL() time.Duration  { return i.accessTTL }
func (i *TokenIssuer) RefreshTTL() time.Duration { return i.refreshTTL }

// GenerateAccessToken mints a short-lived token with scope "access".
func (i *TokenIssuer) GenerateAccessToken(userID uint) (string, error) {
	return i.sign(userID, ScopeAccess, "", i.accessTTL)
}

// GenerateRefreshToken mints a long-lived token with scope "refresh" and a
// fresh jti, returned alongside the token so it can be recorded.
func (i *TokenIssuer) GenerateRefreshToken(userID uint) (string, string, error) {
	jti := uuid.NewString()
	tok, err := i.sign(userID, ScopeRefresh, jti, i.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return tok, jti, nil
}

func (i *TokenIssuer) sign(userID uint, scope, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(i.method, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseAndValidate checks the signature and the [nbf, exp] window.
func (i *TokenIssuer) ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{i.method.Alg()}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
