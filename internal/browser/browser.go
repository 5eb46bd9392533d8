// Package browser hands a URL to the user's default browser.
package browser

import (
	"io"

	"github.com/pkg/browser"

	"github.com/fullstackdevtools/csvfetch/pkg/errors"
)

//go:generate mockgen -destination=mocks/browser_mock.go -package=browsermocks -source=browser.go

// Opener opens a URL outside the process.
type Opener interface {
	Open(rawURL string) error
}

// System opens URLs with the platform's default handler
// (open, xdg-open or rundll32 url.dll).
type System struct{}

// NewSystem returns an Opener backed by the platform's default browser.
// Output of the launched helper is discarded so it does not interleave with
// the program's log lines.
func NewSystem() *System {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &System{}
}

// Open launches the default browser with rawURL. Success only means the
// helper process started.
func (s *System) Open(rawURL string) error {
	if rawURL == "" {
		return errors.New("url is empty")
	}
	if err := browser.OpenURL(rawURL); err != nil {
		return errors.Wrapf(err, "failed to open %s in browser", rawURL)
	}
	return nil
}
