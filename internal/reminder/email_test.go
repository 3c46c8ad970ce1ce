package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/example/orchid/internal/models"
)

func TestRenderReminderEmail(t *testing.T) {
	product := &models.Product{Name: "Velvet Rose"}
	variant := &models.ProductVariant{Name: "Velvet Rose 50ml"}

	items := []models.CartItem{
		{Product: product, Quantity: 1},
		{Variant: variant, Quantity: 2},
		{Quantity: 1}, // no linked record at all
	}
	code := &models.DiscountCode{
		Code:      "A3F4C1",
		Discount:  10,
		ExpiresAt: time.Now().Add(3 * 24 * time.Hour),
	}

	subject, body := RenderReminderEmail(items, code, 3*24*time.Hour)

	if !strings.Contains(subject, "10% OFF") {
		t.Errorf("subject missing discount: %q", subject)
	}

	for _, want := range []string{
		"Velvet Rose",
		"Velvet Rose 50ml",
		"Unnamed Product",
		"A3F4C1",
		"10% OFF",
		"expires in 3 days",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderReminderEmailEscapesNames(t *testing.T) {
	items := []models.CartItem{
		{Product: &models.Product{Name: `<script>alert("x")</script>`}, Quantity: 1},
	}
	code := &models.DiscountCode{Code: "B2D9E0", Discount: 10}

	_, body := RenderReminderEmail(items, code, 24*time.Hour)

	if strings.Contains(body, "<script>") {
		t.Errorf("item name was not escaped")
	}
}

func TestFormatValidity(t *testing.T) {
	cases := []struct {
		ttl  time.Duration
		want string
	}{
		{3 * 24 * time.Hour, "3 days"},
		{24 * time.Hour, "1 day"},
		{12 * time.Hour, "12 hours"},
		{30 * time.Minute, "1 hour"},
	}
	for _, tc := range cases {
		if got := formatValidity(tc.ttl); got != tc.want {
			t.Errorf("formatValidity(%v) = %q, want %q", tc.ttl, got, tc.want)
		}
	}
}
