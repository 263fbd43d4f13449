// Package reminder implements the background due-detection loop that
// announces reminders at the minute they come due, in the owning
// workspace's timezone.
package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is the scan cadence.
	DefaultInterval = time.Minute

	// DefaultWindow is how far behind "now" a due date may fall and still
	// fire. A delayed tick inside the window does not lose the
	// notification; anything older is considered stale and skipped.
	DefaultWindow = 2 * time.Minute
)

// Notifier is the notification sink: an OS notification plus an audio
// cue in the original client. Delivery is best effort; errors are logged
// and never interrupt the scan.
type Notifier interface {
	Notify(title, body string) error
}

// LogNotifier is a Notifier that writes notifications to the log. It
// stands in wherever no desktop notification channel is attached.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(title, body string) error {
	n.Logger.Info("reminder notification", zap.String("title", title), zap.String("body", body))
	return nil
}

// Config tunes a Detector. Zero values fall back to defaults.
type Config struct {
	Interval time.Duration
	Window   time.Duration
	Clock    func() time.Time
}

// Detector periodically scans for due reminders and fires each one at
// most once. It is an explicitly owned background task: callers start it
// with Start and must tear it down with Stop when the owning process
// shuts down.
type Detector struct {
	repo     repository.ReminderRepository
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration
	window   time.Duration
	clock    func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDetector creates a Detector.
func NewDetector(repo repository.ReminderRepository, notifier Notifier, logger *zap.Logger, cfg Config) *Detector {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Detector{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		interval: cfg.Interval,
		window:   cfg.Window,
		clock:    cfg.Clock,
	}
}

// Start launches the scan loop. Ticks run sequentially on a single
// goroutine, so scans never overlap. Calling Start on a running detector
// is a no-op.
func (d *Detector) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.wg.Add(1)
	go d.run(ctx)
}

// Stop cancels the loop and waits for any in-flight scan to finish.
func (d *Detector) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	d.wg.Wait()
}

func (d *Detector) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.Scan(d.clock())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Scan(d.clock())
		}
	}
}

// Scan evaluates all active reminders once. A reminder fires when its due
// time has passed but is still inside the tolerance window, and it has
// not been announced before. Every failure is logged and swallowed; one
// bad reminder never blocks the rest of the scan.
func (d *Detector) Scan(now time.Time) {
	due, err := d.repo.ListDue(now, d.window)
	if err != nil {
		d.logger.Error("failed to load due reminders", zap.Error(err))
		return
	}

	for i := range due {
		d.fire(&due[i])
	}
}

func (d *Detector) fire(r *models.Reminder) {
	// Claim the reminder before notifying so a second detector instance
	// scanning the same store cannot announce it again.
	if err := d.repo.MarkNotified(r.ID, d.clock()); err != nil {
		if !errors.Is(err, repository.ErrAlreadyNotified) {
			d.logger.Error("failed to mark reminder notified",
				zap.Uint64("reminder_id", r.ID),
				zap.Error(err),
			)
		}
		return
	}

	if err := d.notifier.Notify("Reminder Due", r.Title); err != nil {
		d.logger.Warn("failed to deliver reminder notification",
			zap.Uint64("reminder_id", r.ID),
			zap.Error(err),
		)
	}
}

// WorkspaceLocation resolves the workspace's IANA timezone, falling back
// to UTC when the workspace is missing or its zone name does not load.
func WorkspaceLocation(ws *models.Workspace) *time.Location {
	if ws == nil || ws.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(ws.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DueThisMinute reports whether the reminder's due time and now share the
// same local calendar minute in the workspace's timezone. This is the
// exact-match comparison the dashboard client used; the Scan loop itself
// uses the window check, which tolerates delayed ticks.
func DueThisMinute(r *models.Reminder, ws *models.Workspace, now time.Time) bool {
	loc := WorkspaceLocation(ws)

	due := r.Date.In(loc)
	local := now.In(loc)

	return due.Year() == local.Year() &&
		due.Month() == local.Month() &&
		due.Day() == local.Day() &&
		due.Hour() == local.Hour() &&
		due.Minute() == local.Minute()
}
