package client

import (
	"context"

	"jarvis-cli/pkg/models"
)

// GetAvailableScenes lists the light scenes configured for the alarm room,
// capped at 8 by the device. Answers 503 while the Hue bridge is unreachable.
func (c *JarvisClient) GetAvailableScenes(ctx context.Context) ([]string, error) {
	var scenes []string

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&scenes).
		Get("/settings/available-scenes")

	if err != nil {
		return nil, wrapTransport("GET /settings/available-scenes", err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	return scenes, nil
}

// ActivateSceneTemporarily previews a scene: the device saves the current
// light state, activates the scene, waits, and restores. A durationSec of
// zero or less leaves the choice to the device (8 seconds).
func (c *JarvisClient) ActivateSceneTemporarily(ctx context.Context, sceneName string, durationSec int) (models.SceneActivationResponse, error) {
	req := models.SceneActivationRequest{SceneName: sceneName, Duration: durationSec}
	if req.Duration <= 0 {
		req.Duration = 8
	}

	var activated models.SceneActivationResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&activated).
		Post("/settings/scenes/activate-temporarily")

	if err != nil {
		return models.SceneActivationResponse{}, wrapTransport("POST /settings/scenes/activate-temporarily", err)
	}
	if resp.IsError() {
		return models.SceneActivationResponse{}, parseAPIError(resp)
	}

	return activated, nil
}
