package models

// AudioSystem is one playback output registered on the device,
// e.g. "usb_speaker" or "sonos_era_100". Exactly one is active at a time.
type AudioSystem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// AudioSystemsResponse wraps the GET /audio/systems response
type AudioSystemsResponse struct {
	Systems []AudioSystem `json:"systems"`
}

// SwitchSystemResponse is returned by PUT /audio/{id}/activate. The device
// plays a short test sound on the new output as audible confirmation.
type SwitchSystemResponse struct {
	Message    string `json:"message"`
	SystemID   string `json:"system_id"`
	SystemName string `json:"system_name"`
}
