package models

// SceneActivationRequest is the body for POST /settings/scenes/activate-temporarily.
// The device saves the current light state, activates the scene for Duration
// seconds, then restores the saved state.
type SceneActivationRequest struct {
	SceneName string `json:"scene_name"`
	Duration  int    `json:"duration"` // seconds, device default 8
}

// SceneActivationResponse confirms a temporary scene activation
type SceneActivationResponse struct {
	Message   string `json:"message"`
	SceneName string `json:"scene_name"`
	Duration  int    `json:"duration"`
}
