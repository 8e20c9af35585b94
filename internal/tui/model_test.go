package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"jarvis-cli/internal/alarms"
	"jarvis-cli/internal/client"
	"jarvis-cli/pkg/models"
)

func testModel() Model {
	return NewModel(client.New(client.ClientConfig{BaseURL: "http://127.0.0.1:1"}))
}

func TestBuildSoundRowsInsertsHeaders(t *testing.T) {
	rows := buildSoundRows(models.AlarmOptions{
		WakeUpSounds: []models.SoundOption{
			{ID: "wake_up_sounds/wake-up-focus", Label: "Wake-up Focus"},
		},
		GetUpSounds: []models.SoundOption{
			{ID: "get_up_sounds/get-up-blossom", Label: "Get-up Blossom"},
			{ID: "get_up_sounds/get-up-sunrise", Label: "Get-up Sunrise"},
		},
	})

	want := []soundRow{
		{label: "Weck-Sounds"},
		{id: "wake_up_sounds/wake-up-focus", label: "Wake-up Focus"},
		{label: "Aufsteh-Sounds"},
		{id: "get_up_sounds/get-up-blossom", label: "Get-up Blossom"},
		{id: "get_up_sounds/get-up-sunrise", label: "Get-up Sunrise"},
	}
	if len(rows) != len(want) {
		t.Fatalf("buildSoundRows() returned %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestBuildSoundRowsSkipsEmptyCatalogs(t *testing.T) {
	rows := buildSoundRows(models.AlarmOptions{})
	if len(rows) != 0 {
		t.Errorf("buildSoundRows(empty) returned %d rows, want 0", len(rows))
	}
}

func TestNextSelectableSkipsHeaders(t *testing.T) {
	rows := []soundRow{
		{label: "Weck-Sounds"},
		{id: "a", label: "A"},
		{label: "Aufsteh-Sounds"},
		{id: "b", label: "B"},
	}

	tests := []struct {
		name string
		idx  int
		dir  int
		want int
	}{
		{"down from leading header", 0, +1, 1},
		{"down over middle header", 2, +1, 3},
		{"up over middle header", 2, -1, 1},
		{"up from top header bounces down", 0, -1, 1},
		{"past the end stays on last", 9, +1, 3},
		{"below zero stays on first", -3, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextSelectable(rows, tt.idx, tt.dir); got != tt.want {
				t.Errorf("nextSelectable(rows, %d, %d) = %d, want %d", tt.idx, tt.dir, got, tt.want)
			}
		})
	}
}

func TestUserMessagePrefersDisplayText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"duplicate alarm keeps its wording",
			&alarms.DuplicateAlarmError{Time: "07:30", Err: &client.APIError{StatusCode: 409}},
			"Alarm für 07:30 existiert bereits",
		},
		{
			"missing time keeps its wording",
			alarms.ErrTimeRequired,
			"Bitte eine Weckzeit angeben",
		},
		{
			"network failure gets the offline wording",
			&client.NetworkError{Op: "GET /alarms/", Err: errors.New("connection refused")},
			"Gerät nicht erreichbar",
		},
		{
			"server detail is shown as sent",
			&client.APIError{StatusCode: 500, Detail: "speaker busy"},
			"speaker busy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlarmsUpdateClampsCursor(t *testing.T) {
	m := testModel()
	m.alarms = []models.AlarmSnapshot{
		{AlarmID: "alarm_0630", Time: "06:30"},
		{AlarmID: "alarm_0700", Time: "07:00"},
		{AlarmID: "alarm_0730", Time: "07:30"},
	}
	m.alarmCursor = 2

	next, _ := m.Update(alarmsMsg{{AlarmID: "alarm_0630", Time: "06:30"}})
	m = next.(Model)

	if m.alarmCursor != 0 {
		t.Errorf("alarmCursor after shrink = %d, want 0", m.alarmCursor)
	}
	if len(m.alarms) != 1 {
		t.Errorf("len(alarms) = %d, want 1", len(m.alarms))
	}
}

func TestTabKeyCyclesViews(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.active != tabSounds {
		t.Errorf("active after tab = %v, want %v", m.active, tabSounds)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.active != tabAlarms {
		t.Errorf("active after shift+tab = %v, want %v", m.active, tabAlarms)
	}
}

func TestCreatePromptStaysOpenOnFailure(t *testing.T) {
	m := testModel()
	m.creating = true
	m.createInput.SetValue("07:30")

	next, _ := m.Update(createResultMsg{err: &alarms.DuplicateAlarmError{
		Time: "07:30",
		Err:  &client.APIError{StatusCode: 409},
	}})
	m = next.(Model)

	if !m.creating {
		t.Error("create prompt closed after a failed create")
	}
	if got := m.createInput.Value(); got != "07:30" {
		t.Errorf("typed time after failure = %q, want it preserved as %q", got, "07:30")
	}

	toasts := m.center.Active()
	if len(toasts) != 1 {
		t.Fatalf("len(toasts) = %d, want 1", len(toasts))
	}
	if toasts[0].Message != "Alarm für 07:30 existiert bereits" {
		t.Errorf("toast message = %q, want the duplicate wording", toasts[0].Message)
	}
}

func TestCreateSuccessClosesPrompt(t *testing.T) {
	m := testModel()
	m.creating = true
	m.createInput.SetValue("07:30")

	next, _ := m.Update(createResultMsg{})
	m = next.(Model)

	if m.creating {
		t.Error("create prompt still open after success")
	}
	if got := m.createInput.Value(); got != "" {
		t.Errorf("input after success = %q, want empty", got)
	}
}
