package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrItemRefAmbiguous is returned when a cart item does not reference
// exactly one of product or variant.
var ErrItemRefAmbiguous = errors.New("cart item must reference exactly one of product or variant")

// Cart holds a user's not-yet-checked-out items plus the reminder
// bookkeeping used by the abandonment sweep. ReminderCount only ever
// increases and is capped by the sweep; UpdatedAt is bumped by every cart
// mutation and drives the staleness check.
type Cart struct {
	BaseModel
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User           *User      `json:"user,omitempty"`
	ReminderCount  int        `gorm:"not null;default:0" json:"reminder_count"`
	LastReminderAt *time.Time `json:"last_reminder_at"`
	Items          []CartItem `json:"items,omitempty"`
}

// ItemRefKind discriminates what a cart item points at.
type ItemRefKind string

const (
	RefProduct ItemRefKind = "product"
	RefVariant ItemRefKind = "variant"
)

// ItemRef is a tagged reference to either a product or a variant.
type ItemRef struct {
	Kind ItemRefKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

// CartItem references either a product or a variant, never both. The two
// nullable columns exist for the schema; exclusivity is enforced in
// BeforeSave and callers should go through Ref/SetRef.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID       `gorm:"type:uuid;index" json:"cart_id"`
	ProductID *uuid.UUID      `gorm:"type:uuid" json:"product_id,omitempty"`
	Product   *Product        `json:"product,omitempty"`
	VariantID *uuid.UUID      `gorm:"type:uuid" json:"variant_id,omitempty"`
	Variant   *ProductVariant `json:"variant,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

// SetRef points the item at a product or a variant, clearing the other.
func (i *CartItem) SetRef(ref ItemRef) error {
	switch ref.Kind {
	case RefProduct:
		id := ref.ID
		i.ProductID = &id
		i.VariantID = nil
	case RefVariant:
		id := ref.ID
		i.VariantID = &id
		i.ProductID = nil
	default:
		return ErrItemRefAmbiguous
	}
	return nil
}

// Ref returns the tagged reference for this item.
func (i *CartItem) Ref() (ItemRef, error) {
	switch {
	case i.ProductID != nil && i.VariantID == nil:
		return ItemRef{Kind: RefProduct, ID: *i.ProductID}, nil
	case i.VariantID != nil && i.ProductID == nil:
		return ItemRef{Kind: RefVariant, ID: *i.VariantID}, nil
	}
	return ItemRef{}, ErrItemRefAmbiguous
}

// DisplayName resolves the name shown in reminder emails: variant name,
// falling back to product name, falling back to a placeholder.
func (i *CartItem) DisplayName() string {
	if i.Variant != nil && i.Variant.Name != "" {
		return i.Variant.Name
	}
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return "Unnamed Product"
}

// BeforeSave rejects items that do not reference exactly one of product or
// variant, or that carry a non-positive quantity.
func (i *CartItem) BeforeSave(tx *gorm.DB) error {
	if _, err := i.Ref(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errors.New("cart item quantity must be positive")
	}
	return nil
}
