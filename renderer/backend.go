package renderer

import (
	"context"
	"time"

	"github.com/dacdangvan/seotool-sub006/models"
)

// Backend is a browser process able to create isolated contexts.
type Backend interface {
	// Start launches or connects to the browser.
	Start(ctx context.Context) error

	// NewContext creates an isolated browser context emulating viewport.
	NewContext(ctx context.Context, viewport models.Viewport) (BrowserContext, error)

	// Close terminates the browser process.
	Close() error
}

// BrowserContext is an isolated cookie/cache jar with a fixed device
// emulation. It outlives the pages opened in it.
type BrowserContext interface {
	NewPage(ctx context.Context, opts PageOptions) (Page, error)
	Close() error
}

// PageOptions configure a page before navigation.
type PageOptions struct {
	// BlockResources lists resource types to abort: image, stylesheet, font, media.
	BlockResources []string

	// Stealth masks common headless-browser fingerprints.
	Stealth bool

	// Headers are sent with every request of the page.
	Headers map[string]string
}

// StabilizationProbe reports when the DOM stops changing.
type StabilizationProbe interface {
	// WaitForStableDOM returns true once no mutation occurred for quiet, or
	// false when timeout elapsed first.
	WaitForStableDOM(ctx context.Context, quiet, timeout time.Duration) (bool, error)
}

// Page is a single tab owned by exactly one render.
type Page interface {
	StabilizationProbe

	// Navigate loads url and returns once DOMContentLoaded fired.
	Navigate(ctx context.Context, url string) error

	// WaitNetworkIdle blocks until the network-idle milestone of the last
	// navigation.
	WaitNetworkIdle(ctx context.Context) error

	// WaitSelector blocks until selector matches an element.
	WaitSelector(ctx context.Context, selector string) error

	// SeoSnapshot reads the current title, description, h1, canonical and URL.
	SeoSnapshot(ctx context.Context) (models.SeoSnapshot, error)

	// URL returns the current (post-redirect) location.
	URL(ctx context.Context) (string, error)

	// HTML serializes the current DOM.
	HTML(ctx context.Context) (string, error)

	// Close releases the tab. It must succeed even after ctx expired.
	Close() error
}
