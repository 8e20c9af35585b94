package models

// AlarmSnapshot represents a single alarm record from the GET /alarms/ endpoint.
type AlarmSnapshot struct {
	AlarmID       string `json:"alarm_id"`
	Time          string `json:"time"` // 24-hour "HH:MM"
	Active        bool   `json:"active"`
	Scheduled     bool   `json:"scheduled"`
	NextExecution string `json:"next_execution,omitempty"` // ISO timestamp, empty while inactive
	TimeUntil     string `json:"time_until,omitempty"`     // human readable, e.g. "7h 12m"
}

// CreateAlarmRequest is the body for POST /alarms/.
// Time accepts "HH:MM" (24-hour) or "+X" for X seconds from now.
type CreateAlarmRequest struct {
	Time string `json:"time"`
}

// CreateAlarmResponse echoes the scheduled alarm and the global settings used for it.
type CreateAlarmResponse struct {
	Message      string         `json:"message"`
	AlarmID      string         `json:"alarm_id"`
	Time         string         `json:"time"`
	SettingsUsed map[string]any `json:"settings_used,omitempty"`
}

// ToggleAlarmResponse is returned by PUT /alarms/{id}/toggle
type ToggleAlarmResponse struct {
	Message string `json:"message"`
	AlarmID string `json:"alarm_id"`
	Active  bool   `json:"active"`
}

// DeleteAlarmResponse is returned by DELETE /alarms/{id}
type DeleteAlarmResponse struct {
	Message string `json:"message"`
	AlarmID string `json:"alarm_id,omitempty"`
}
