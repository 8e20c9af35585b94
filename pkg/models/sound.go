package models

// SoundOption is one selectable entry from the device sound catalog.
type SoundOption struct {
	ID    string `json:"id"` // "category/filename", e.g. "wake_up_sounds/wake-up-focus"
	Label string `json:"label"`
}

// VolumeRange bounds the volume slider. Device defaults: 0.0 / 1.0 / 0.5.
type VolumeRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// BrightnessRange bounds the brightness slider. Device defaults: 0 / 100 / 100.
type BrightnessRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// AlarmOptions is the combined GET /alarms/options response: both sound
// catalogs plus the slider ranges, fetched in a single round trip.
type AlarmOptions struct {
	WakeUpSounds    []SoundOption   `json:"wake_up_sounds"`
	GetUpSounds     []SoundOption   `json:"get_up_sounds"`
	VolumeRange     VolumeRange     `json:"volume_range"`
	BrightnessRange BrightnessRange `json:"brightness_range"`
}

// PlaySoundResponse is returned by POST /alarms/play/{soundId}
type PlaySoundResponse struct {
	Message  string `json:"message"`
	SoundID  string `json:"sound_id"`
	Category string `json:"category"`
	Filename string `json:"filename"`
}

// StopSoundResponse is returned by POST /alarms/stop
type StopSoundResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"` // "stopped"
}
