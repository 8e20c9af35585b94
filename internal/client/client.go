package client

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the per-request budget for all device calls. The device
// answers on the local network; anything slower counts as a network failure.
const DefaultTimeout = 10 * time.Second

type JarvisClient struct {
	HTTP   *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // zero means DefaultTimeout
}

// APIInfo is the greeting returned by GET /
type APIInfo struct {
	Message string `json:"message"`
}

func New(cfg ClientConfig) *JarvisClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetTimeout(cfg.Timeout)

	// The device speaks plain JSON on the LAN; no auth headers, no TLS.
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	return &JarvisClient{
		HTTP:   r,
		Config: cfg,
	}
}

// Ping checks that the device API is reachable and answering.
func (c *JarvisClient) Ping(ctx context.Context) (APIInfo, error) {
	var info APIInfo

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/")

	if err != nil {
		return APIInfo{}, wrapTransport("GET /", err)
	}
	if resp.IsError() {
		return APIInfo{}, parseAPIError(resp)
	}

	return info, nil
}
