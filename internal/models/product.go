package models

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Slug             string           `gorm:"uniqueIndex" json:"slug"`
	Name             string           `json:"name"`
	ShortDescription string           `json:"short_description"`
	BasePrice        float64          `json:"base_price"`
	Currency         string           `json:"currency"`
	HeroImage        string           `json:"hero_image"`
	IsActive         bool             `json:"is_active"`
	Variants         []ProductVariant `json:"variants,omitempty"`
}

type ProductVariant struct {
	BaseModel
	ProductID         uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	Currency          string    `json:"currency"`
	InventoryQuantity int       `json:"inventory_quantity"`
	IsActive          bool      `json:"is_active"`
}
