package harvest

import (
	"context"
	"errors"
	"fmt"
)

// ErrBrowserLaunch indicates the browser process could not be started.
// This is the only fatal error in the system.
type ErrBrowserLaunch struct {
	Err error
}

func (e ErrBrowserLaunch) Error() string {
	return fmt.Errorf("browser_launch: %w", e.Err).Error()
}

func (e ErrBrowserLaunch) Unwrap() error {
	return e.Err
}

// ErrNavigation indicates a page load failure.
type ErrNavigation struct {
	Err error
}

func (e ErrNavigation) Error() string {
	return fmt.Errorf("navigation: %w", e.Err).Error()
}

func (e ErrNavigation) Unwrap() error {
	return e.Err
}

// ErrSuggestion indicates the selector-suggestion collaborator failed.
type ErrSuggestion struct {
	Err error
}

func (e ErrSuggestion) Error() string {
	return fmt.Errorf("suggestion: %w", e.Err).Error()
}

func (e ErrSuggestion) Unwrap() error {
	return e.Err
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var launch ErrBrowserLaunch
	if errors.As(err, &launch) {
		return "browser_launch"
	}
	var nav ErrNavigation
	if errors.As(err, &nav) {
		return "navigation"
	}
	var sugg ErrSuggestion
	if errors.As(err, &sugg) {
		return "suggestion"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "other"
}
