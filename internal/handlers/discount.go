package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/models"
	"github.com/example/orchid/internal/utils"
)

// DiscountHandler exposes the discount codes issued by the reminder sweep:
// an admin listing plus the validate/redeem touchpoints used by checkout.
type DiscountHandler struct {
	db *gorm.DB
}

// NewDiscountHandler constructs DiscountHandler.
func NewDiscountHandler(db *gorm.DB) *DiscountHandler {
	return &DiscountHandler{db: db}
}

// ListCodes returns discount codes, newest first.
func (h *DiscountHandler) ListCodes(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.DiscountCode{})
	if used := c.Query("used"); used != "" {
		query = query.Where("used = ?", used == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var codes []models.DiscountCode
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&codes).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": codes, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}

// ValidateCode checks whether a code can still be redeemed by the
// authenticated user.
func (h *DiscountHandler) ValidateCode(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	value := strings.ToUpper(c.Params("code"))

	var code models.DiscountCode
	if err := h.db.First(&code, "code = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "discount code not found")
		}
		return err
	}

	if code.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "discount code not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"code":       code.Code,
		"discount":   code.Discount,
		"usable":     code.Usable(time.Now()),
		"expires_at": code.ExpiresAt,
	}})
}

// RedeemCode marks a code as used on behalf of checkout. The guard in the
// WHERE clause makes redemption single-shot even under concurrent requests.
func (h *DiscountHandler) RedeemCode(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	value := strings.ToUpper(c.Params("code"))

	result := h.db.Model(&models.DiscountCode{}).
		Where("code = ? AND user_id = ? AND used = ? AND expires_at > ?", value, userID, false, time.Now()).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "discount code is invalid, expired, or already used")
	}

	return c.JSON(fiber.Map{"success": true, "message": "discount code redeemed"})
}
