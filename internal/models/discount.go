package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is a single-use promotional code issued for a specific
// (user, cart) pair by the abandonment sweep and redeemed at checkout.
// The code format (6 uppercase hex characters) is validated verbatim by
// checkout clients and must stay stable.
type DiscountCode struct {
	BaseModel
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CartID    uuid.UUID `gorm:"type:uuid;index" json:"cart_id"`
	Discount  int       `gorm:"not null" json:"discount"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (d *DiscountCode) Usable(now time.Time) bool {
	return !d.Used && d.ExpiresAt.After(now)
}
