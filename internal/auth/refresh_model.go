package auth

import "time"

// RefreshToken is one row per issued refresh token. Rows are never deleted;
// Revoked only ever flips false to true.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	JTI       string `gorm:"column:jti;uniqueIndex"`
	ExpiresAt time.Time
	Revoked   bool `gorm:"index"`
	CreatedAt time.Time
}
