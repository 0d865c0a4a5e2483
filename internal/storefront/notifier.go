package storefront

import (
	"context"
	"sync"
	"time"
)

// DefaultNotificationDuration is how long a toast stays visible.
const DefaultNotificationDuration = 2500 * time.Millisecond

// Notifier shows a short message to the shopper.
type Notifier interface {
	Notify(ctx context.Context, msg string, d time.Duration)
}

// Toast keeps the last message and when it hides again.
type Toast struct {
	mu       sync.Mutex
	now      func() time.Time
	fallback time.Duration
	message  string
	shownFor time.Duration
	until    time.Time
}

// NewToast builds a toast. A non-positive fallback uses
// DefaultNotificationDuration.
func NewToast(fallback time.Duration) *Toast {
	if fallback <= 0 {
		fallback = DefaultNotificationDuration
	}
	return &Toast{now: time.Now, fallback: fallback}
}

// Notify replaces the current message. A non-positive d uses the toast's
// default duration.
func (t *Toast) Notify(_ context.Context, msg string, d time.Duration) {
	if d <= 0 {
		d = t.fallback
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = msg
	t.shownFor = d
	t.until = t.now().Add(d)
}

// Message returns the last message, visible or not.
func (t *Toast) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Duration returns how long the last message was shown for.
func (t *Toast) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shownFor
}

// VisibleUntil returns when the last message hides.
func (t *Toast) VisibleUntil() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.until
}

func (t *Toast) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message != "" && t.now().Before(t.until)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, time.Duration) {}
