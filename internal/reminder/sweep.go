package reminder

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/orchid/internal/metrics"
	"github.com/example/orchid/internal/models"
)

// ErrNoFreeCode is returned when code generation keeps colliding with
// existing codes. With the default 6-hex-char space this effectively means
// the code table is saturated.
var ErrNoFreeCode = errors.New("could not generate a unique discount code")

const maxCodeAttempts = 10

// Config holds the sweep tunables.
type Config struct {
	Staleness       time.Duration // cart must be untouched this long
	Cap             int           // max reminders per cart
	DiscountPercent int
	CodeLength      int // hex characters, uppercase
	CodeTTL         time.Duration
	SendTimeout     time.Duration
}

// RunStats summarizes the most recent sweep run for the ops surface.
type RunStats struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Candidates int       `json:"candidates"`
	Sent       int       `json:"sent"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// Sweeper runs the abandoned-cart reminder pass: scan candidates, ensure a
// discount code per cart, send the reminder email, then advance the cart's
// reminder bookkeeping. Carts are processed one at a time and a failure on
// one cart never aborts the rest of the run.
type Sweeper struct {
	store  Store
	mailer Mailer
	cfg    Config
	now    func() time.Time

	runMu   sync.Mutex // guards against overlapping runs
	statsMu sync.Mutex
	last    *RunStats
}

// NewSweeper constructs a Sweeper over the given collaborators.
func NewSweeper(store Store, mailer Mailer, cfg Config) *Sweeper {
	if cfg.Cap <= 0 {
		cfg.Cap = 3
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	return &Sweeper{
		store:  store,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// LastRun returns stats for the most recent completed run, or nil.
func (s *Sweeper) LastRun() *RunStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	if s.last == nil {
		return nil
	}
	snapshot := *s.last
	return &snapshot
}

// Run executes one full sweep. A scan failure is fatal to the run; per-cart
// failures are logged and skipped. If a previous run is still in flight the
// call returns immediately without doing anything.
func (s *Sweeper) Run(ctx context.Context) error {
	if !s.runMu.TryLock() {
		log.Println("[Reminder] previous sweep still running, skipping this trigger")
		return nil
	}
	defer s.runMu.Unlock()

	start := s.now()
	metrics.SweepRuns.Inc()

	carts, err := s.store.FindAbandonedCarts(ctx, start.Add(-s.cfg.Staleness), s.cfg.Cap)
	if err != nil {
		metrics.SweepErrors.Inc()
		log.Printf("[Reminder] sweep aborted, scan failed: %v", err)
		return fmt.Errorf("scan abandoned carts: %w", err)
	}

	stats := RunStats{StartedAt: start, Candidates: len(carts)}
	for i := range carts {
		sent, err := s.remind(ctx, &carts[i])
		switch {
		case err != nil:
			stats.Failed++
			metrics.ReminderFailures.Inc()
			log.Printf("[Reminder] cart %s: %v", carts[i].ID, err)
		case sent:
			stats.Sent++
			metrics.RemindersSent.Inc()
		default:
			stats.Skipped++
		}
	}

	stats.FinishedAt = s.now()
	s.statsMu.Lock()
	s.last = &stats
	s.statsMu.Unlock()

	log.Printf("[Reminder] sweep done: %d candidates, %d sent, %d skipped, %d failed",
		stats.Candidates, stats.Sent, stats.Skipped, stats.Failed)
	return nil
}

// remind processes a single candidate cart. It returns (false, nil) when
// the cart turned out to be ineligible on the fresh re-check.
func (s *Sweeper) remind(ctx context.Context, cart *models.Cart) (bool, error) {
	if cart.User == nil || cart.User.Email == "" || cart.User.IsGuest || len(cart.Items) == 0 {
		return false, nil
	}

	// Re-read the count at processing time; the scan result may be stale
	// if another pass touched this cart in the meantime.
	count, err := s.store.ReminderCount(ctx, cart.ID)
	if err != nil {
		return false, fmt.Errorf("read reminder count: %w", err)
	}
	if count >= s.cfg.Cap {
		return false, nil
	}

	code, err := s.issueCode(ctx, cart)
	if err != nil {
		return false, fmt.Errorf("issue discount code: %w", err)
	}

	subject, body := RenderReminderEmail(cart.Items, code, s.cfg.CodeTTL)

	sendCtx := ctx
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}
	if err := s.mailer.Send(sendCtx, cart.User.Email, subject, body); err != nil {
		// Leave reminder_count untouched so the next run retries; a
		// freshly created code stays persisted for reuse.
		return false, fmt.Errorf("send reminder to %s: %w", cart.User.Email, err)
	}

	updated, err := s.store.MarkReminded(ctx, cart.ID, s.cfg.Cap, s.now())
	if err != nil {
		return false, fmt.Errorf("advance reminder state: %w", err)
	}
	if !updated {
		log.Printf("[Reminder] cart %s hit the cap concurrently, state not advanced", cart.ID)
	}

	log.Printf("[Reminder] sent reminder to %s with code %s", cart.User.Email, code.Code)
	return true, nil
}

// issueCode returns the usable code for the cart's (user, cart) pair,
// creating one if none exists. Repeated reminders for the same unconverted
// cart reuse the same code.
func (s *Sweeper) issueCode(ctx context.Context, cart *models.Cart) (*models.DiscountCode, error) {
	now := s.now()

	existing, err := s.store.FindUsableCode(ctx, cart.UserID, cart.ID, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		value, err := generateCode(s.cfg.CodeLength)
		if err != nil {
			return nil, err
		}

		code := &models.DiscountCode{
			Code:      value,
			UserID:    cart.UserID,
			CartID:    cart.ID,
			Discount:  s.cfg.DiscountPercent,
			ExpiresAt: now.Add(s.cfg.CodeTTL),
		}
		err = s.store.CreateCode(ctx, code)
		if err == nil {
			metrics.CodesIssued.Inc()
			return code, nil
		}
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		return nil, err
	}

	return nil, ErrNoFreeCode
}

// generateCode draws random bytes and renders them as an uppercase hex
// string of the requested length, e.g. "A3F4C1".
func generateCode(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:length], nil
}
