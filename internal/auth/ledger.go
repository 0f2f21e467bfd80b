package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Ledger persists outstanding refresh-token identifiers. It is append-only:
// revocation flips a flag, rows are never deleted.
type Ledger interface {
	Record(ctx context.Context, userID uint, jti string, expiresAt time.Time) error
	// FindActive returns the non-revoked record for jti, or nil when there is
	// none. Callers must still check ExpiresAt.
	FindActive(ctx context.Context, jti string) (*RefreshToken, error)
	// Revoke idempotently marks the record revoked. Absent jti is a no-op.
	Revoke(ctx context.Context, jti string) error
	// RevokeActive marks the record revoked only if it is currently active and
	// reports whether this call won the transition. This is the atomic
	// primitive behind rotation: two concurrent refreshes of the same token
	// cannot both see true.
	RevokeActive(ctx context.Context, jti string) (bool, error)
}

type ledgerImpl struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledgerImpl{db: db}
}

func (l *ledgerImpl) Record(ctx context.Context, userID uint, jti string, expiresAt time.Time) error {
	rt := RefreshToken{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	return l.db.WithContext(ctx).Create(&rt).Error
}

func (l *ledgerImpl) FindActive(ctx context.Context, jti string) (*RefreshToken, error) {
	var rt RefreshToken
	err := l.db.WithContext(ctx).Where("jti = ? AND revoked = ?", jti, false).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (l *ledgerImpl) Revoke(ctx context.Context, jti string) error {
	return l.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

func (l *ledgerImpl) RevokeActive(ctx context.Context, jti string) (bool, error) {
	res := l.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("jti = ? AND revoked = ?", jti, false).
		Update("revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
