package user

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsAdmin      bool      `json:"isAdmin" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}
