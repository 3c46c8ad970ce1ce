package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/models"
)

// GormStore implements Store on top of the application database.
type GormStore struct {
	db *gorm.DB
}

// NewStore constructs a GormStore.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindAbandonedCarts(ctx context.Context, cutoff time.Time, maxReminders int) ([]models.Cart, error) {
	var carts []models.Cart
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = carts.user_id").
		Where("carts.updated_at < ?", cutoff).
		Where("users.is_guest = ?", false).
		Where("carts.reminder_count < ?", maxReminders).
		Where("EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id)").
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

func (s *GormStore) ReminderCount(ctx context.Context, cartID uuid.UUID) (int, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Select("reminder_count").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		return 0, err
	}
	return cart.ReminderCount, nil
}

func (s *GormStore) FindUsableCode(ctx context.Context, userID, cartID uuid.UUID, now time.Time) (*models.DiscountCode, error) {
	var code models.DiscountCode
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND cart_id = ? AND used = ? AND expires_at > ?", userID, cartID, false, now).
		First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *GormStore) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	err := s.db.WithContext(ctx).Create(code).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCodeTaken
	}
	return err
}

func (s *GormStore) MarkReminded(ctx context.Context, cartID uuid.UUID, maxReminders int, at time.Time) (bool, error) {
	// UpdateColumns keeps updated_at untouched: a reminder is not a cart
	// mutation and must not reset the staleness clock.
	result := s.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND reminder_count < ?", cartID, maxReminders).
		UpdateColumns(map[string]interface{}{
			"reminder_count":   gorm.Expr("reminder_count + 1"),
			"last_reminder_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
