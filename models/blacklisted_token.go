package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken keeps a revoked JWT refusable until its natural
// expiry. The cleanup loop drops rows once expires_at passes; the auth
// middleware checks the token column on every request.
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex:idx_blacklisted_tokens_token,length:255;not null"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	User      *User     `gorm:"belongsTo:User"`
}
