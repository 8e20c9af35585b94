package client

import (
	"context"

	"jarvis-cli/pkg/models"
)

// GetAudioSystems lists the audio output systems the device knows about.
// Exactly one is active at a time.
func (c *JarvisClient) GetAudioSystems(ctx context.Context) ([]models.AudioSystem, error) {
	var respData models.AudioSystemsResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&respData).
		Get("/audio/systems")

	if err != nil {
		return nil, wrapTransport("GET /audio/systems", err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	return respData.Systems, nil
}

// ActivateAudioSystem switches playback output to the given system.
// Unknown system IDs answer 404.
func (c *JarvisClient) ActivateAudioSystem(ctx context.Context, systemID string) (models.SwitchSystemResponse, error) {
	var switched models.SwitchSystemResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&switched).
		Put("/audio/" + systemID + "/activate")

	if err != nil {
		return models.SwitchSystemResponse{}, wrapTransport("PUT /audio/{id}/activate", err)
	}
	if resp.IsError() {
		return models.SwitchSystemResponse{}, parseAPIError(resp)
	}

	return switched, nil
}
