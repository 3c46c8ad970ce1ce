package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/models"
)

// CartHandler manages the authenticated user's cart. Every mutation bumps
// the cart's updated_at, which is what the abandonment sweep reads as the
// staleness clock.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.findOrCreateCart(userID)
	if err != nil {
		return err
	}

	if err := h.db.Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		First(cart, "id = ?", cart.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product or a variant to the cart. Exactly one of
// product_id and variant_id must be provided.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ref, err := parseItemRef(req.ProductID, req.VariantID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	cart, err := h.findOrCreateCart(userID)
	if err != nil {
		return err
	}

	item, err := h.findItemByRef(cart.ID, ref)
	if err != nil {
		return err
	}

	if item != nil {
		item.Quantity += quantity
		if err := h.db.Save(item).Error; err != nil {
			return err
		}
	} else {
		item = &models.CartItem{CartID: cart.ID, Quantity: quantity}
		if err := item.SetRef(ref); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := h.db.Create(item).Error; err != nil {
			return err
		}
	}

	if err := h.touchCart(cart.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// RemoveItem deletes an item from the user's cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var cart models.Cart
	if err := h.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}
		return err
	}

	result := h.db.Delete(&models.CartItem{}, "id = ? AND cart_id = ?", itemID, cart.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}

	if err := h.touchCart(cart.ID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) findOrCreateCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := h.db.First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := h.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (h *CartHandler) findItemByRef(cartID uuid.UUID, ref models.ItemRef) (*models.CartItem, error) {
	query := h.db.Where("cart_id = ?", cartID)
	switch ref.Kind {
	case models.RefProduct:
		query = query.Where("product_id = ?", ref.ID)
	case models.RefVariant:
		query = query.Where("variant_id = ?", ref.ID)
	}

	var item models.CartItem
	err := query.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// touchCart marks the cart as freshly mutated so it drops out of the
// abandonment window again.
func (h *CartHandler) touchCart(cartID uuid.UUID) error {
	return h.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}

func parseItemRef(productID, variantID string) (models.ItemRef, error) {
	if (productID == "") == (variantID == "") {
		return models.ItemRef{}, models.ErrItemRefAmbiguous
	}

	if productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			return models.ItemRef{}, errors.New("invalid product_id")
		}
		return models.ItemRef{Kind: models.RefProduct, ID: id}, nil
	}

	id, err := uuid.Parse(variantID)
	if err != nil {
		return models.ItemRef{}, errors.New("invalid variant_id")
	}
	return models.ItemRef{Kind: models.RefVariant, ID: id}, nil
}
