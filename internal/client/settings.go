package client

import (
	"context"

	"jarvis-cli/pkg/models"
)

// GetSettings fetches the global alarm settings that apply to every alarm.
func (c *JarvisClient) GetSettings(ctx context.Context) (models.GlobalSettings, error) {
	var settings models.GlobalSettings

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&settings).
		Get("/alarms/settings")

	if err != nil {
		return models.GlobalSettings{}, wrapTransport("GET /alarms/settings", err)
	}
	if resp.IsError() {
		return models.GlobalSettings{}, parseAPIError(resp)
	}

	return settings, nil
}

// SetVolume updates the global volume (0.0 to 1.0). The device immediately
// plays a short test sound at the new level as audible feedback.
func (c *JarvisClient) SetVolume(ctx context.Context, volume float64) (models.SetVolumeResponse, error) {
	var updated models.SetVolumeResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(models.VolumeRequest{Volume: volume}).
		SetResult(&updated).
		Put("/settings/volume")

	if err != nil {
		return models.SetVolumeResponse{}, wrapTransport("PUT /settings/volume", err)
	}
	if resp.IsError() {
		return models.SetVolumeResponse{}, parseAPIError(resp)
	}

	return updated, nil
}

// SetBrightness updates the global maximum sunrise brightness (percent).
func (c *JarvisClient) SetBrightness(ctx context.Context, brightness float64) (models.SetBrightnessResponse, error) {
	var updated models.SetBrightnessResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(models.BrightnessRequest{Brightness: brightness}).
		SetResult(&updated).
		Put("/settings/brightness")

	if err != nil {
		return models.SetBrightnessResponse{}, wrapTransport("PUT /settings/brightness", err)
	}
	if resp.IsError() {
		return models.SetBrightnessResponse{}, parseAPIError(resp)
	}

	return updated, nil
}

// SetWakeUpSound assigns the global wake-up sound.
func (c *JarvisClient) SetWakeUpSound(ctx context.Context, soundID string) (models.SetWakeUpSoundResponse, error) {
	var updated models.SetWakeUpSoundResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(models.SoundRequest{SoundID: soundID}).
		SetResult(&updated).
		Put("/settings/wake-up-sound")

	if err != nil {
		return models.SetWakeUpSoundResponse{}, wrapTransport("PUT /settings/wake-up-sound", err)
	}
	if resp.IsError() {
		return models.SetWakeUpSoundResponse{}, parseAPIError(resp)
	}

	return updated, nil
}

// SetGetUpSound assigns the global get-up sound (played after the fixed
// wake-up timer).
func (c *JarvisClient) SetGetUpSound(ctx context.Context, soundID string) (models.SetGetUpSoundResponse, error) {
	var updated models.SetGetUpSoundResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(models.SoundRequest{SoundID: soundID}).
		SetResult(&updated).
		Put("/settings/get-up-sound")

	if err != nil {
		return models.SetGetUpSoundResponse{}, wrapTransport("PUT /settings/get-up-sound", err)
	}
	if resp.IsError() {
		return models.SetGetUpSoundResponse{}, parseAPIError(resp)
	}

	return updated, nil
}
