package models

// GlobalSettings holds the device-wide alarm configuration from GET /alarms/settings.
// The wake-up timer duration is fixed on the device (9 minutes) and reported
// read-only; everything else is settable through PUT /settings/*.
type GlobalSettings struct {
	WakeUpTimerDuration int     `json:"wake_up_timer_duration"`
	UseSunrise          bool    `json:"use_sunrise"`
	MaxBrightness       float64 `json:"max_brightness"`
	Volume              float64 `json:"volume"`
	WakeUpSoundID       string  `json:"wake_up_sound_id"`
	GetUpSoundID        string  `json:"get_up_sound_id"`
}

// VolumeRequest is the body for PUT /settings/volume
type VolumeRequest struct {
	Volume float64 `json:"volume"`
}

// BrightnessRequest is the body for PUT /settings/brightness
type BrightnessRequest struct {
	Brightness float64 `json:"brightness"`
}

// SoundRequest is the body for PUT /settings/wake-up-sound and /settings/get-up-sound
type SoundRequest struct {
	SoundID string `json:"sound_id"`
}

type SetVolumeResponse struct {
	Message string  `json:"message"`
	Volume  float64 `json:"volume"`
}

type SetBrightnessResponse struct {
	Message    string  `json:"message"`
	Brightness float64 `json:"brightness"`
}

type SetWakeUpSoundResponse struct {
	Message       string `json:"message"`
	WakeUpSoundID string `json:"wake_up_sound_id"`
}

type SetGetUpSoundResponse struct {
	Message      string `json:"message"`
	GetUpSoundID string `json:"get_up_sound_id"`
}
