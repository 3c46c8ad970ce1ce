package reminder

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/example/orchid/internal/models"
)

// RenderReminderEmail builds the subject and HTML body of the abandoned
// cart email: one row per item with its discount, the code prominently
// displayed, and validity copy derived from the same TTL that sets the
// code's expiry.
func RenderReminderEmail(items []models.CartItem, code *models.DiscountCode, ttl time.Duration) (subject, body string) {
	subject = fmt.Sprintf("You have items waiting! Enjoy %d%% OFF on your cart", code.Discount)

	var rows strings.Builder
	for i := range items {
		rows.WriteString(fmt.Sprintf(`<tr>
      <td style="padding:8px 12px;border:1px solid #eee;">%s</td>
      <td style="padding:8px 12px;border:1px solid #eee;text-align:center;color:#388e3c;font-weight:bold;">%d%% OFF</td>
    </tr>`, html.EscapeString(items[i].DisplayName()), code.Discount))
	}

	body = fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#fafafa;padding:32px 24px;border-radius:8px;border:1px solid #eee;">
  <h2 style="color:#222;text-align:center;">Don't miss out! You have items waiting in your cart.</h2>
  <p style="font-size:16px;color:#444;text-align:center;">
    Complete your purchase now and enjoy exclusive discounts on these products:
  </p>
  <table style="width:100%%;border-collapse:collapse;margin:24px 0;">
    <thead>
      <tr>
        <th style="background:#f5f5f5;padding:10px 12px;border:1px solid #eee;text-align:left;">Product</th>
        <th style="background:#f5f5f5;padding:10px 12px;border:1px solid #eee;text-align:center;">Discount</th>
      </tr>
    </thead>
    <tbody>
      %s
    </tbody>
  </table>
  <p style="font-size:16px;color:#222;text-align:center;">
    Use code <b style="font-size:20px;letter-spacing:2px;">%s</b> at checkout.
  </p>
  <p style="font-size:15px;color:#d32f2f;text-align:center;">
    Hurry, your code expires in %s!
  </p>
  <p style="font-size:12px;color:#888;text-align:center;margin-top:32px;">
    If you have already completed your purchase, please ignore this email.
  </p>
</div>`, rows.String(), html.EscapeString(code.Code), formatValidity(ttl))

	return subject, body
}

func formatValidity(ttl time.Duration) string {
	days := int(ttl.Hours() / 24)
	switch {
	case days == 1:
		return "1 day"
	case days > 1:
		return fmt.Sprintf("%d days", days)
	}
	hours := int(ttl.Hours())
	if hours <= 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
