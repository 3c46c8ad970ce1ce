package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/orchid/internal/models"
)

// ErrCodeTaken is returned by Store.CreateCode when the generated code
// collides with an existing one; the issuer retries with a fresh code.
var ErrCodeTaken = errors.New("discount code already taken")

// Store is the persistence collaborator of the sweep. All mutations are
// single-record writes scoped to one cart or code.
type Store interface {
	// FindAbandonedCarts returns carts last mutated before cutoff that
	// have at least one item, belong to a non-guest user, and have
	// received fewer than maxReminders reminders. User, Items and their
	// Product/Variant are loaded.
	FindAbandonedCarts(ctx context.Context, cutoff time.Time, maxReminders int) ([]models.Cart, error)

	// ReminderCount reads the current reminder count for a cart. The
	// sweep re-reads it per cart so an overlapping run cannot push a
	// cart past the cap using stale scan results.
	ReminderCount(ctx context.Context, cartID uuid.UUID) (int, error)

	// FindUsableCode returns the unused, unexpired code for the
	// (user, cart) pair, or nil when none exists.
	FindUsableCode(ctx context.Context, userID, cartID uuid.UUID, now time.Time) (*models.DiscountCode, error)

	// CreateCode persists a new discount code. Returns ErrCodeTaken when
	// the code value is already in use.
	CreateCode(ctx context.Context, code *models.DiscountCode) error

	// MarkReminded increments the cart's reminder count and stamps
	// last_reminder_at, but only while the count is below maxReminders.
	// Returns false when the guard rejected the update.
	MarkReminded(ctx context.Context, cartID uuid.UUID, maxReminders int, at time.Time) (bool, error)
}

// Mailer is the mail-sending collaborator.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
