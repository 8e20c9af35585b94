package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// NetworkError wraps transport-level failures (connection refused, timeout,
// cancelled context). The device never saw the request, or its answer never
// arrived, so callers must treat the device state as unknown.
type NetworkError struct {
	Op  string // method + path, e.g. "POST /alarms/stop"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("device unreachable (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FieldError is one entry of a 422 validation detail list.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field renders the location path without the leading "body" segment,
// e.g. ["body","time"] -> "time".
func (f FieldError) Field() string {
	parts := make([]string, 0, len(f.Loc))
	for _, l := range f.Loc {
		s := fmt.Sprintf("%v", l)
		if len(parts) == 0 && s == "body" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}

// APIError is any non-2xx answer from the device, with the detail payload
// decoded. Detail always holds a printable message; Fields is populated for
// 422 validation errors.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("device returned %d", e.StatusCode)
	}
	return fmt.Sprintf("device returned %d: %s", e.StatusCode, e.Detail)
}

// parseAPIError decodes the error body of a failed response. The API sends
// either {"detail": "..."} or, for validation failures,
// {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}.
func parseAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var probe struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &probe); err != nil || len(probe.Detail) == 0 {
		apiErr.Detail = strings.TrimSpace(resp.String())
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(probe.Detail, &msg); err == nil {
		apiErr.Detail = msg
		return apiErr
	}

	if err := json.Unmarshal(probe.Detail, &apiErr.Fields); err == nil {
		msgs := make([]string, 0, len(apiErr.Fields))
		for _, f := range apiErr.Fields {
			if field := f.Field(); field != "" {
				msgs = append(msgs, field+": "+f.Msg)
			} else {
				msgs = append(msgs, f.Msg)
			}
		}
		apiErr.Detail = strings.Join(msgs, "; ")
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(probe.Detail))
	return apiErr
}

func wrapTransport(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}

// Classification helpers used by the mutation flows to pick user messages.

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func statusIs(err error, code int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == code
}

func IsConflict(err error) bool    { return statusIs(err, http.StatusConflict) }
func IsValidation(err error) bool  { return statusIs(err, http.StatusUnprocessableEntity) }
func IsNotFound(err error) bool    { return statusIs(err, http.StatusNotFound) }
func IsUnavailable(err error) bool { return statusIs(err, http.StatusServiceUnavailable) }

// Detail returns the server-provided detail string if err carries one.
func Detail(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Detail
	}
	return ""
}
