package alarms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"jarvis-cli/internal/client"
	"jarvis-cli/pkg/models"
)

var (
	ErrUnknownAlarm = errors.New("unknown alarm id")

	// ErrTimeRequired is worded for direct display; the device UI speaks
	// German.
	ErrTimeRequired = errors.New("Bitte eine Weckzeit angeben")
)

// DuplicateAlarmError reports a create for a time that already has an
// alarm scheduled. Its message is the exact text the dashboard shows.
type DuplicateAlarmError struct {
	Time string
	Err  error
}

func (e *DuplicateAlarmError) Error() string {
	return fmt.Sprintf("Alarm für %s existiert bereits", e.Time)
}

func (e *DuplicateAlarmError) Unwrap() error { return e.Err }

// InvalidTimeError reports a create the server rejected as malformed.
type InvalidTimeError struct {
	Time string
	Err  error
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("Ungültiges Zeitformat: %s", e.Time)
}

func (e *InvalidTimeError) Unwrap() error { return e.Err }

// API is the slice of the device client the store needs.
type API interface {
	GetAlarms(ctx context.Context) ([]models.AlarmSnapshot, error)
	CreateAlarm(ctx context.Context, req models.CreateAlarmRequest) (models.CreateAlarmResponse, error)
	ToggleAlarm(ctx context.Context, alarmID string, active bool) (models.ToggleAlarmResponse, error)
	DeleteAlarm(ctx context.Context, alarmID string) (models.DeleteAlarmResponse, error)
}

// Store holds an observable copy of the server's alarm list. Mutations
// show their effect immediately and reconcile with the server
// afterwards; the server stays the source of truth, so every mutation
// ends in either an authoritative refetch or a revert.
type Store struct {
	mu  sync.RWMutex
	api API

	list []models.AlarmSnapshot

	subs    map[uint64]chan []models.AlarmSnapshot
	nextSub uint64
}

// NewStore creates a Store backed by the given API.
func NewStore(api API) *Store {
	return &Store{
		api:  api,
		subs: make(map[uint64]chan []models.AlarmSnapshot),
	}
}

// Refresh replaces the local list with the server's.
func (s *Store) Refresh(ctx context.Context) error {
	list, err := s.api.GetAlarms(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.list = list
	s.publish()
	s.mu.Unlock()
	return nil
}

// Alarms returns a copy of the current list.
func (s *Store) Alarms() []models.AlarmSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AlarmSnapshot(nil), s.list...)
}

// Toggle flips an alarm's active flag, showing the new value before the
// server has confirmed it. On success the list is refetched; on failure
// the record reverts to its prior value and the error is returned for
// display.
func (s *Store) Toggle(ctx context.Context, alarmID string, active bool) error {
	s.mu.RLock()
	found := s.indexOf(alarmID) >= 0
	s.mu.RUnlock()
	if !found {
		return ErrUnknownAlarm
	}

	var prev bool
	err := s.withOptimisticUpdate(
		func() {
			if i := s.indexOf(alarmID); i >= 0 {
				prev = s.list[i].Active
				s.list[i].Active = active
			}
		},
		func() error {
			_, err := s.api.ToggleAlarm(ctx, alarmID, active)
			return err
		},
		func() {
			if i := s.indexOf(alarmID); i >= 0 {
				s.list[i].Active = prev
			}
		},
	)
	if err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes an alarm, dropping the row before the server has
// confirmed it. The list is refetched whether the delete succeeded or
// not; a failed delete is never patched up locally.
func (s *Store) Delete(ctx context.Context, alarmID string) error {
	s.mu.Lock()
	idx := s.indexOf(alarmID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownAlarm
	}
	s.list = append(s.list[:idx], s.list[idx+1:]...)
	s.publish()
	s.mu.Unlock()

	_, delErr := s.api.DeleteAlarm(ctx, alarmID)
	refErr := s.Refresh(ctx)
	if delErr != nil {
		return delErr
	}
	return refErr
}

// Create schedules a new alarm. Only presence of the time is checked
// locally; the server owns format and conflict validation. Conflict and
// format failures come back worded for direct display, so the caller
// can keep its input open for correction.
func (s *Store) Create(ctx context.Context, alarmTime string) error {
	if strings.TrimSpace(alarmTime) == "" {
		return ErrTimeRequired
	}

	_, err := s.api.CreateAlarm(ctx, models.CreateAlarmRequest{Time: alarmTime})
	if err != nil {
		switch {
		case client.IsConflict(err):
			return &DuplicateAlarmError{Time: alarmTime, Err: err}
		case client.IsValidation(err):
			return &InvalidTimeError{Time: alarmTime, Err: err}
		}
		return err
	}
	return s.Refresh(ctx)
}

// Subscribe registers a listener for list changes. The channel is
// primed with the current list and always carries the newest one;
// intermediate updates are coalesced away when the listener lags.
// Delivered slices are shared snapshots and must not be modified. The
// returned function releases the subscription.
func (s *Store) Subscribe() (<-chan []models.AlarmSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan []models.AlarmSnapshot, 1)
	ch <- append([]models.AlarmSnapshot(nil), s.list...)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// withOptimisticUpdate runs a speculative write: apply mutates the local
// list immediately, commit performs the network call, rollback undoes
// the local change when the commit fails. apply and rollback run with
// the write lock held.
func (s *Store) withOptimisticUpdate(apply func(), commit func() error, rollback func()) error {
	s.mu.Lock()
	apply()
	s.publish()
	s.mu.Unlock()

	if err := commit(); err != nil {
		s.mu.Lock()
		rollback()
		s.publish()
		s.mu.Unlock()
		return err
	}
	return nil
}

// indexOf returns the position of alarmID in the list, or -1.
// Must be called with at least a read lock held.
func (s *Store) indexOf(alarmID string) int {
	for i := range s.list {
		if s.list[i].AlarmID == alarmID {
			return i
		}
	}
	return -1
}

// publish pushes a snapshot of the list to every subscriber, displacing
// an unconsumed older update so a lagging listener still sees the
// newest. Must be called with the write lock held.
func (s *Store) publish() {
	snap := append([]models.AlarmSnapshot(nil), s.list...)
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
