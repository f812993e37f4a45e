package harvest

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "unknown",
		},
		{
			name: "browser launch",
			err:  ErrBrowserLaunch{Err: errors.New("chrome exited")},
			want: "browser_launch",
		},
		{
			name: "navigation",
			err:  ErrNavigation{Err: errors.New("net::ERR_NAME_NOT_RESOLVED")},
			want: "navigation",
		},
		{
			name: "wrapped navigation",
			err:  fmt.Errorf("page 1: %w", ErrNavigation{Err: errors.New("net::ERR_CONNECTION_RESET")}),
			want: "navigation",
		},
		{
			name: "suggestion",
			err:  ErrSuggestion{Err: errors.New("status 500")},
			want: "suggestion",
		},
		{
			name: "deadline",
			err:  fmt.Errorf("evaluate: %w", context.DeadlineExceeded),
			want: "timeout",
		},
		{
			name: "anything else",
			err:  errors.New("boom"),
			want: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorTypeLabel(tt.err); got != tt.want {
				t.Errorf("errorTypeLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	var navErr error = ErrNavigation{Err: cause}
	if !errors.Is(navErr, cause) {
		t.Errorf("ErrNavigation should unwrap to its cause")
	}
}
