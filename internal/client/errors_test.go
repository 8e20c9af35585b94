package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestFieldErrorField(t *testing.T) {
	tests := []struct {
		name string
		loc  []any
		want string
	}{
		{"body prefix stripped", []any{"body", "time"}, "time"},
		{"nested path joined", []any{"body", "settings", "volume"}, "settings.volume"},
		{"query prefix kept", []any{"query", "active"}, "query.active"},
		{"numeric segments", []any{"body", "alarms", float64(0), "time"}, "alarms.0.time"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FieldError{Loc: tt.loc}
			if got := f.Field(); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	conflict := fmt.Errorf("create failed: %w", &APIError{StatusCode: 409, Detail: "exists"})

	if !IsConflict(conflict) {
		t.Errorf("IsConflict(wrapped) = false, want true")
	}
	if IsValidation(conflict) {
		t.Errorf("IsValidation(wrapped 409) = true, want false")
	}
	if got, want := Detail(conflict), "exists"; got != want {
		t.Errorf("Detail(wrapped) = %q, want %q", got, want)
	}
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := wrapTransport("POST /alarms/stop", cause)

	if !IsNetwork(err) {
		t.Errorf("IsNetwork() = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if IsConflict(err) {
		t.Errorf("IsConflict(network error) = true, want false")
	}
}

func TestDetailOnForeignError(t *testing.T) {
	if got := Detail(errors.New("plain")); got != "" {
		t.Errorf("Detail(plain error) = %q, want empty", got)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"with detail", &APIError{StatusCode: 404, Detail: "Alarm not found"}, "device returned 404: Alarm not found"},
		{"without detail", &APIError{StatusCode: 500}, "device returned 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
