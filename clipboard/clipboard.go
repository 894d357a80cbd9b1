// Package clipboard writes to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/diffpane"
)

// Ensure System implements the Clipboard interface.
var _ diffpane.Clipboard = (*System)(nil)

// ErrUnavailable is returned when the platform has no usable clipboard.
var ErrUnavailable = errors.New("no clipboard available")

// System implements Clipboard with the platform clipboard utilities
// (pbcopy, wl-copy, xclip, xsel or the Windows API).
type System struct{}

// New returns the system clipboard.
func New() *System {
	return &System{}
}

// Detect returns the system clipboard, or ErrUnavailable when no clipboard
// utility is installed.
func Detect() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnavailable
	}
	return New(), nil
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
