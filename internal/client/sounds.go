package client

import (
	"context"

	"jarvis-cli/pkg/models"
)

// GetAlarmOptions fetches both sound catalogs plus the slider ranges in a
// single round trip.
func (c *JarvisClient) GetAlarmOptions(ctx context.Context) (models.AlarmOptions, error) {
	var options models.AlarmOptions

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&options).
		Get("/alarms/options")

	if err != nil {
		return models.AlarmOptions{}, wrapTransport("GET /alarms/options", err)
	}
	if resp.IsError() {
		return models.AlarmOptions{}, parseAPIError(resp)
	}

	return options, nil
}

// PlaySound asks the device to start playing a sound. Sound IDs embed a
// literal slash ("category/filename"), so the ID is appended to the path
// verbatim; escaping it as a path parameter would 404.
func (c *JarvisClient) PlaySound(ctx context.Context, soundID string) (models.PlaySoundResponse, error) {
	var played models.PlaySoundResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&played).
		Post("/alarms/play/" + soundID)

	if err != nil {
		return models.PlaySoundResponse{}, wrapTransport("POST /alarms/play/{soundId}", err)
	}
	if resp.IsError() {
		return models.PlaySoundResponse{}, parseAPIError(resp)
	}

	return played, nil
}

// StopPlayback stops whatever the device is currently playing. Safe to call
// when nothing is playing.
func (c *JarvisClient) StopPlayback(ctx context.Context) (models.StopSoundResponse, error) {
	var stopped models.StopSoundResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&stopped).
		Post("/alarms/stop")

	if err != nil {
		return models.StopSoundResponse{}, wrapTransport("POST /alarms/stop", err)
	}
	if resp.IsError() {
		return models.StopSoundResponse{}, parseAPIError(resp)
	}

	return stopped, nil
}

// Play starts soundID on the device, discarding the confirmation body.
// Together with Stop this satisfies the playback coordinator's device
// interface.
func (c *JarvisClient) Play(ctx context.Context, soundID string) error {
	_, err := c.PlaySound(ctx, soundID)
	return err
}

// Stop halts device playback, discarding the confirmation body.
func (c *JarvisClient) Stop(ctx context.Context) error {
	_, err := c.StopPlayback(ctx)
	return err
}
