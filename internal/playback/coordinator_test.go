package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeSoundService records device calls in order and can hold a call
// open so tests can interleave presses deterministically.
type fakeSoundService struct {
	mu    sync.Mutex
	calls []string

	playErr error
	stopErr error

	playBlockID string        // Play blocks for this sound id, if set
	playStarted chan struct{} // closed when the blocked Play is entered
	playRelease chan struct{} // the blocked Play waits until closed

	stopStarted chan struct{} // closed when Stop is first entered, if set
	stopRelease chan struct{} // Stop waits until closed, if set
}

func (f *fakeSoundService) Play(ctx context.Context, soundID string) error {
	f.mu.Lock()
	f.calls = append(f.calls, "play "+soundID)
	var started, release chan struct{}
	if f.playBlockID != "" && soundID == f.playBlockID {
		started = f.playStarted
		release = f.playRelease
		f.playBlockID = ""
	}
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	return f.playErr
}

func (f *fakeSoundService) Stop(ctx context.Context) error {
	f.mu.Lock()
	f.calls = append(f.calls, "stop")
	started := f.stopStarted
	release := f.stopRelease
	f.stopStarted = nil
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	return f.stopErr
}

func (f *fakeSoundService) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// waitForState polls until the coordinator reaches want or the deadline
// passes.
func waitForState(t *testing.T, c *Coordinator, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %+v, want %+v", c.State(), want)
}

// waitForCalls polls until the device call log matches want, in order.
// The state machine publishes a play optimistically before the device
// call goes out, so the log can trail the visible state by a moment.
func waitForCalls(t *testing.T, svc *fakeSoundService, want ...string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := svc.callLog()
		if len(got) == len(want) {
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("device calls = %v, want %v", got, want)
				}
			}
			return
		}
		if len(got) > len(want) || !time.Now().Before(deadline) {
			t.Fatalf("device calls = %v, want %v", got, want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestToggleStartsSoundFromIdle(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc)
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got := c.State(); !got.Playing("a") {
		t.Errorf("state = %+v, want playing a", got)
	}
	waitForCalls(t, svc, "play a")
}

func TestToggleSameSoundStops(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc, WithSettle(0))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) again error = %v", err)
	}

	if got := c.State(); got.Phase != PhaseIdle {
		t.Errorf("state = %+v, want idle", got)
	}
	waitForCalls(t, svc, "play a", "stop")
}

func TestToggleEmptySoundID(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc)

	if err := c.Toggle(context.Background(), ""); !errors.Is(err, ErrEmptySoundID) {
		t.Errorf("Toggle(\"\") error = %v, want %v", err, ErrEmptySoundID)
	}
	waitForCalls(t, svc)
}

func TestSwitchSoundsStopsBeforePlaying(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc, WithSettle(time.Millisecond))
	ctx := context.Background()

	if err := c.Toggle(ctx, "wake_up_sounds/wake-up-focus"); err != nil {
		t.Fatalf("Toggle(first) error = %v", err)
	}
	if err := c.Toggle(ctx, "get_up_sounds/get-up-blossom"); err != nil {
		t.Fatalf("Toggle(second) error = %v", err)
	}

	waitForState(t, c, State{Phase: PhasePlaying, SoundID: "get_up_sounds/get-up-blossom"})
	waitForCalls(t, svc,
		"play wake_up_sounds/wake-up-focus",
		"stop",
		"play get_up_sounds/get-up-blossom",
	)
}

func TestPressDuringInFlightPlayHandsOver(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeSoundService{playBlockID: "a", playStarted: started, playRelease: release}
	c := New(svc, WithSettle(time.Millisecond))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Toggle(ctx, "a") }()
	<-started

	// The first play is still on the wire; a second press must still
	// stop before playing.
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Errorf("Toggle(a) error = %v", err)
	}

	waitForState(t, c, State{Phase: PhasePlaying, SoundID: "b"})
	waitForCalls(t, svc, "play a", "stop", "play b")
}

func TestRetargetWhileStoppingLastPressWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeSoundService{stopStarted: started, stopRelease: release}
	c := New(svc, WithSettle(time.Millisecond))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	<-started

	// Press c while the stop for the a->b handover is held open. The
	// single stop must serve the latest target.
	if err := c.Toggle(ctx, "c"); err != nil {
		t.Fatalf("Toggle(c) error = %v", err)
	}
	close(release)

	waitForState(t, c, State{Phase: PhasePlaying, SoundID: "c"})
	waitForCalls(t, svc, "play a", "stop", "play c")
}

func TestPressingQueuedSoundWithdrawsIt(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeSoundService{stopStarted: started, stopRelease: release}
	c := New(svc, WithSettle(time.Millisecond))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	<-started

	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) again error = %v", err)
	}
	close(release)

	waitForState(t, c, State{Phase: PhaseIdle})
	waitForCalls(t, svc, "play a", "stop")
}

func TestPlayFailureResetsToIdle(t *testing.T) {
	svc := &fakeSoundService{playErr: errors.New("connection refused")}
	c := New(svc, WithSettle(0))

	if err := c.Toggle(context.Background(), "a"); err == nil {
		t.Fatal("Toggle() error = nil, want play error")
	}
	if got := c.State(); got.Phase != PhaseIdle {
		t.Errorf("state = %+v, want idle", got)
	}
}

func TestHandoverStopFailureResetsToIdle(t *testing.T) {
	svc := &fakeSoundService{stopErr: errors.New("device offline")}
	errs := make(chan error, 1)
	c := New(svc, WithSettle(time.Millisecond), WithErrorHandler(func(err error) { errs <- err }))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}

	select {
	case err := <-errs:
		if err == nil {
			t.Error("reported error = nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}
	waitForState(t, c, State{Phase: PhaseIdle})
	waitForCalls(t, svc, "play a", "stop")
}

func TestCancelDuringSettleAbandonsHandover(t *testing.T) {
	svc := &fakeSoundService{}
	errs := make(chan error, 1)
	c := New(svc, WithSettle(time.Hour), WithErrorHandler(func(err error) { errs <- err }))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	waitForCalls(t, svc, "play a", "stop")

	// The handover is parked in the settle wait; cancelling must abandon
	// it without ever starting b.
	cancel()

	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("reported error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}
	waitForState(t, c, State{Phase: PhaseIdle})
	waitForCalls(t, svc, "play a", "stop")
}

func TestStopAllWhenIdleIsNoOp(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc)

	if err := c.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll() error = %v", err)
	}
	if got := c.State(); got.Phase != PhaseIdle {
		t.Errorf("state = %+v, want idle", got)
	}
	waitForCalls(t, svc)
}

func TestStopAllStopsPlayingSound(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc, WithSettle(0))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := c.StopAll(ctx); err != nil {
		t.Fatalf("StopAll() error = %v", err)
	}

	if got := c.State(); got.Phase != PhaseIdle {
		t.Errorf("state = %+v, want idle", got)
	}
	waitForCalls(t, svc, "play a", "stop")
}

func TestStopAllClearsStateOnDeviceError(t *testing.T) {
	svc := &fakeSoundService{stopErr: errors.New("device offline")}
	c := New(svc, WithSettle(0))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := c.StopAll(ctx); err == nil {
		t.Fatal("StopAll() error = nil, want device error")
	}
	if got := c.State(); got.Phase != PhaseIdle {
		t.Errorf("state = %+v, want idle", got)
	}
}

func TestStopAllDuringHandoverLandsIdle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeSoundService{stopStarted: started, stopRelease: release}
	c := New(svc, WithSettle(time.Millisecond))
	ctx := context.Background()

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle(a) error = %v", err)
	}
	if err := c.Toggle(ctx, "b"); err != nil {
		t.Fatalf("Toggle(b) error = %v", err)
	}
	<-started

	if err := c.StopAll(ctx); err != nil {
		t.Fatalf("StopAll() error = %v", err)
	}
	close(release)

	waitForState(t, c, State{Phase: PhaseIdle})
	waitForCalls(t, svc, "play a", "stop")
}

func TestSubscribeDeliversNewestState(t *testing.T) {
	svc := &fakeSoundService{}
	c := New(svc, WithSettle(0))
	ctx := context.Background()

	ch, cancel := c.Subscribe()
	defer cancel()

	if s := <-ch; s.Phase != PhaseIdle {
		t.Fatalf("initial state = %+v, want idle", s)
	}

	if err := c.Toggle(ctx, "a"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	select {
	case s := <-ch:
		if !s.Playing("a") {
			t.Errorf("state = %+v, want playing a", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no state update received")
	}
}
