package client

import (
	"context"
	"strconv"

	"jarvis-cli/pkg/models"
)

// GetAlarms fetches all alarms with their schedule status.
func (c *JarvisClient) GetAlarms(ctx context.Context) ([]models.AlarmSnapshot, error) {
	var alarms []models.AlarmSnapshot

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&alarms).
		Get("/alarms/")

	if err != nil {
		return nil, wrapTransport("GET /alarms/", err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	return alarms, nil
}

// CreateAlarm schedules a new alarm. The device derives the alarm ID from the
// time and applies the global settings; a second alarm at the same time is
// rejected with 409.
func (c *JarvisClient) CreateAlarm(ctx context.Context, req models.CreateAlarmRequest) (models.CreateAlarmResponse, error) {
	var created models.CreateAlarmResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&created).
		Post("/alarms/")

	if err != nil {
		return models.CreateAlarmResponse{}, wrapTransport("POST /alarms/", err)
	}
	if resp.IsError() {
		return models.CreateAlarmResponse{}, parseAPIError(resp)
	}

	return created, nil
}

// ToggleAlarm flips an alarm between active and inactive.
func (c *JarvisClient) ToggleAlarm(ctx context.Context, alarmID string, active bool) (models.ToggleAlarmResponse, error) {
	var toggled models.ToggleAlarmResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetQueryParam("active", strconv.FormatBool(active)).
		SetResult(&toggled).
		Put("/alarms/" + alarmID + "/toggle")

	if err != nil {
		return models.ToggleAlarmResponse{}, wrapTransport("PUT /alarms/{id}/toggle", err)
	}
	if resp.IsError() {
		return models.ToggleAlarmResponse{}, parseAPIError(resp)
	}

	return toggled, nil
}

// DeleteAlarm permanently removes an alarm. Unknown IDs answer 404.
func (c *JarvisClient) DeleteAlarm(ctx context.Context, alarmID string) (models.DeleteAlarmResponse, error) {
	var deleted models.DeleteAlarmResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&deleted).
		Delete("/alarms/" + alarmID)

	if err != nil {
		return models.DeleteAlarmResponse{}, wrapTransport("DELETE /alarms/{id}", err)
	}
	if resp.IsError() {
		return models.DeleteAlarmResponse{}, parseAPIError(resp)
	}

	return deleted, nil
}
