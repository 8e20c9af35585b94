package playback

import "context"

// Phase represents the current state of the shared playback slot.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhaseStopping Phase = "stopping"
)

// State is the snapshot every sound widget renders from. At most one
// sound ID is ever set, so no two widgets can claim to be playing at
// the same time.
type State struct {
	Phase   Phase
	SoundID string // playing: the audible sound; stopping: the sound queued to start next, if any
}

// Playing reports whether soundID is the one currently playing.
func (s State) Playing(soundID string) bool {
	return s.Phase == PhasePlaying && s.SoundID == soundID
}

// SoundService is the device surface the coordinator drives. The device
// renders at most one sound at a time; Stop is a no-op when nothing is
// playing.
type SoundService interface {
	Play(ctx context.Context, soundID string) error
	Stop(ctx context.Context) error
}
