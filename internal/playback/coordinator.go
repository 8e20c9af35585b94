package playback

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrEmptySoundID = errors.New("empty sound id")
)

// DefaultSettle is how long the coordinator waits after a confirmed stop
// before starting the next sound, so the device's audio pipeline can
// drain.
const DefaultSettle = 100 * time.Millisecond

// Coordinator serializes sound previews from any number of independent
// widgets against a device that can only play one sound at a time. All
// widgets derive their play/pause indicator from the coordinator's
// state; none keeps a local playing flag.
//
// Ordering is best effort, not linearizable: when presses overlap, the
// last press wins, but a stop is always confirmed before the next play
// goes out.
type Coordinator struct {
	mu sync.RWMutex

	svc     SoundService
	settle  time.Duration
	onError func(error)

	phase   Phase
	current string // sound the device is rendering (or was just asked to)
	pending string // sound queued to start once the in-flight stop completes
	seq     uint64 // incremented when a new device operation takes over, used to ignore stale completions

	subs    map[uint64]chan State
	nextSub uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSettle overrides the wait between a confirmed stop and the next
// play. Zero disables the wait.
func WithSettle(d time.Duration) Option {
	return func(c *Coordinator) { c.settle = d }
}

// WithErrorHandler installs a callback for errors from device calls that
// complete after their Toggle has returned.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Coordinator) { c.onError = fn }
}

// New creates a Coordinator driving the given device service.
func New(svc SoundService, opts ...Option) *Coordinator {
	c := &Coordinator{
		svc:    svc,
		settle: DefaultSettle,
		phase:  PhaseIdle,
		subs:   make(map[uint64]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Toggle starts soundID, or stops it if it is the one already playing.
// When another sound is playing, the device is stopped first and soundID
// starts once the stop is confirmed and the settle window has passed.
// That handover runs in the background; its errors go to the error
// handler and the state always falls back to idle on failure.
func (c *Coordinator) Toggle(ctx context.Context, soundID string) error {
	if soundID == "" {
		return ErrEmptySoundID
	}

	c.mu.Lock()
	switch c.phase {
	case PhasePlaying:
		if c.current == soundID {
			c.mu.Unlock()
			// Pressing the sound that is already playing stops it.
			return c.StopAll(ctx)
		}
		c.seq++
		id := c.seq
		c.current = ""
		c.pending = soundID
		c.phase = PhaseStopping
		c.publish()
		c.mu.Unlock()

		go c.swap(ctx, id)
		return nil

	case PhaseStopping:
		// A stop is already on the wire. Retarget it: whatever is
		// pending when it completes gets played, last press wins.
		// Pressing the queued sound again withdraws it.
		if c.pending == soundID {
			c.pending = ""
		} else {
			c.pending = soundID
		}
		c.publish()
		c.mu.Unlock()
		return nil
	}

	// Idle. Claim the slot before the network call so overlapping
	// presses see it and go through the stop-first path.
	c.seq++
	id := c.seq
	c.current = soundID
	c.phase = PhasePlaying
	c.publish()
	c.mu.Unlock()

	err := c.svc.Play(ctx, soundID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		// A newer press took over while this play was on the wire; its
		// outcome owns the state now.
		return err
	}
	if err != nil {
		c.toIdle()
		return err
	}
	return nil
}

// StopAll stops whatever is playing and withdraws any queued sound.
// Safe to call at any time; when nothing is playing it returns without
// touching the device. The state is idle afterwards even if the device
// call fails.
func (c *Coordinator) StopAll(ctx context.Context) error {
	c.mu.Lock()
	switch c.phase {
	case PhaseIdle:
		c.mu.Unlock()
		return nil
	case PhaseStopping:
		// A stop is already on the wire; withdraw the queued sound so
		// its completion lands on idle.
		if c.pending != "" {
			c.pending = ""
			c.publish()
		}
		c.mu.Unlock()
		return nil
	}
	c.seq++
	id := c.seq
	c.current = ""
	c.pending = ""
	c.phase = PhaseStopping
	c.publish()
	c.mu.Unlock()

	err := c.svc.Stop(ctx)

	c.mu.Lock()
	if id != c.seq {
		c.mu.Unlock()
		return err
	}
	if err != nil || c.pending == "" {
		c.toIdle()
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	// A press arrived while the stop was on the wire; start it once the
	// device has settled.
	go c.settleAndPlay(ctx, id)
	return nil
}

// State returns the current playback state.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Subscribe registers a listener for state changes. The channel is
// primed with the current state and always carries the newest one;
// intermediate states are coalesced away when the listener lags. The
// returned function releases the subscription.
func (c *Coordinator) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, 1)
	ch <- c.snapshot()
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// swap stops the current sound, then hands the device over to whatever
// sound is pending by the time the stop is confirmed.
func (c *Coordinator) swap(ctx context.Context, id uint64) {
	err := c.svc.Stop(ctx)

	c.mu.Lock()
	if id != c.seq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		// Never report a sound as playing when the device state is
		// unknown.
		c.toIdle()
		c.mu.Unlock()
		c.report(err)
		return
	}
	if c.pending == "" {
		// The queued press was withdrawn while the stop was on the
		// wire.
		c.toIdle()
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.settleAndPlay(ctx, id)
}

// settleAndPlay waits out the settle window after a confirmed stop, then
// starts the sound queued at that moment.
func (c *Coordinator) settleAndPlay(ctx context.Context, id uint64) {
	if err := c.waitSettle(ctx); err != nil {
		c.mu.Lock()
		stale := id != c.seq
		if !stale {
			c.toIdle()
		}
		c.mu.Unlock()
		if !stale {
			c.report(err)
		}
		return
	}

	c.mu.Lock()
	if id != c.seq {
		c.mu.Unlock()
		return
	}
	next := c.pending
	if next == "" {
		c.toIdle()
		c.mu.Unlock()
		return
	}
	c.pending = ""
	c.current = next
	c.phase = PhasePlaying
	c.publish()
	c.mu.Unlock()

	err := c.svc.Play(ctx, next)

	c.mu.Lock()
	stale := id != c.seq
	if !stale && err != nil {
		c.toIdle()
	}
	c.mu.Unlock()
	if !stale {
		c.report(err)
	}
}

// waitSettle sleeps for the settle window, honoring cancellation.
func (c *Coordinator) waitSettle(ctx context.Context) error {
	if c.settle <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.settle):
		return nil
	}
}

// snapshot builds the externally visible state.
// Must be called with at least a read lock held.
func (c *Coordinator) snapshot() State {
	switch c.phase {
	case PhasePlaying:
		return State{Phase: PhasePlaying, SoundID: c.current}
	case PhaseStopping:
		return State{Phase: PhaseStopping, SoundID: c.pending}
	default:
		return State{Phase: PhaseIdle}
	}
}

// toIdle resets the slot and tells subscribers.
// Must be called with the write lock held.
func (c *Coordinator) toIdle() {
	c.phase = PhaseIdle
	c.current = ""
	c.pending = ""
	c.publish()
}

// publish pushes the current state to every subscriber, displacing an
// unconsumed older state so a lagging listener still sees the newest.
// Must be called with the write lock held.
func (c *Coordinator) publish() {
	s := c.snapshot()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// report hands an error to the configured handler, if any.
func (c *Coordinator) report(err error) {
	if err != nil && c.onError != nil {
		c.onError(err)
	}
}
