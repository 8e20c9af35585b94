package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type classifies a toast for rendering.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// DefaultDuration is how long a toast stays visible when the caller
// does not say otherwise.
const DefaultDuration = 5 * time.Second

// Toast is one ephemeral notification.
type Toast struct {
	ID       string
	Type     Type
	Title    string
	Message  string
	Duration time.Duration
}

// Center owns the active toasts. Every toast leaves on its own timer or
// by explicit dismissal; subscribers receive the visible set after each
// change.
type Center struct {
	mu sync.Mutex

	toasts []Toast
	timers map[string]*time.Timer

	subs    map[uint64]chan []Toast
	nextSub uint64
}

// NewCenter creates an empty Center.
func NewCenter() *Center {
	return &Center{
		timers: make(map[string]*time.Timer),
		subs:   make(map[uint64]chan []Toast),
	}
}

// Push adds a toast and returns its id. An empty ID gets a fresh uuid,
// a zero Duration gets the default, an empty Type counts as info.
func (c *Center) Push(t Toast) string {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Duration <= 0 {
		t.Duration = DefaultDuration
	}
	if t.Type == "" {
		t.Type = TypeInfo
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := t.ID
	c.toasts = append(c.toasts, t)
	c.timers[id] = time.AfterFunc(t.Duration, func() { c.Dismiss(id) })
	c.publish()
	return id
}

// Success pushes a success toast with the default duration.
func (c *Center) Success(title, message string) string {
	return c.Push(Toast{Type: TypeSuccess, Title: title, Message: message})
}

// Error pushes an error toast with the default duration.
func (c *Center) Error(title, message string) string {
	return c.Push(Toast{Type: TypeError, Title: title, Message: message})
}

// Warning pushes a warning toast with the default duration.
func (c *Center) Warning(title, message string) string {
	return c.Push(Toast{Type: TypeWarning, Title: title, Message: message})
}

// Info pushes an info toast with the default duration.
func (c *Center) Info(title, message string) string {
	return c.Push(Toast{Type: TypeInfo, Title: title, Message: message})
}

// Dismiss removes a toast before its timer fires. Unknown ids are
// ignored, so the expiry timer and an explicit dismissal can race
// safely.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.publish()
			return
		}
	}
}

// Active returns a copy of the visible toasts, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Toast(nil), c.toasts...)
}

// Subscribe registers a listener for changes to the visible set. The
// channel is primed with the current set and always carries the newest
// one; intermediate updates are coalesced away when the listener lags.
// The returned function releases the subscription.
func (c *Center) Subscribe() (<-chan []Toast, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan []Toast, 1)
	ch <- append([]Toast(nil), c.toasts...)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// publish pushes the visible set to every subscriber, displacing an
// unconsumed older update so a lagging listener still sees the newest.
// Must be called with the lock held.
func (c *Center) publish() {
	snap := append([]Toast(nil), c.toasts...)
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
