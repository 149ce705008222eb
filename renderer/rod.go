package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

// Lifecycle milestones reported by Page.lifecycleEvent.
const (
	eventDOMContentLoaded = "DOMContentLoaded"
	eventNetworkIdle      = "networkIdle"
)

// RodBackend drives a local Chromium through go-rod.
type RodBackend struct {
	cfg      config.BrowserConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodBackend returns a backend that launches Chromium on Start.
func NewRodBackend(cfg config.BrowserConfig) *RodBackend {
	return &RodBackend{cfg: cfg}
}

// Start launches the browser and connects to it.
func (b *RodBackend) Start(_ context.Context) error {
	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(b.cfg.NoSandbox)

	if b.cfg.BrowserBin != "" {
		l = l.Bin(b.cfg.BrowserBin)
	}
	if b.cfg.DefaultProxy != "" {
		l = l.Proxy(b.cfg.DefaultProxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect to browser: %w", err)
	}

	b.launcher = l
	b.browser = browser
	return nil
}

// NewContext opens an incognito context whose pages emulate viewport.
func (b *RodBackend) NewContext(_ context.Context, viewport models.Viewport) (BrowserContext, error) {
	if b.browser == nil {
		return nil, errors.New("browser not started")
	}
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("create incognito context: %w", err)
	}
	return &rodContext{browser: incognito.DefaultDevice(deviceFor(viewport))}, nil
}

// Close disconnects and kills the browser process.
func (b *RodBackend) Close() error {
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	if b.launcher != nil {
		b.launcher.Kill()
	}
	b.browser = nil
	return err
}

func deviceFor(v models.Viewport) devices.Device {
	p := PresetFor(v)
	size := devices.ScreenSize{Width: p.Width, Height: p.Height}
	d := devices.Device{
		Title:     string(v),
		UserAgent: p.UserAgent,
		Screen: devices.Screen{
			DevicePixelRatio: p.DPR,
			Horizontal:       size,
			Vertical:         size,
		},
	}
	if p.Touch {
		d.Capabilities = append(d.Capabilities, "touch")
	}
	if p.Mobile {
		d.Capabilities = append(d.Capabilities, "mobile")
	}
	return d
}

type rodContext struct {
	browser *rod.Browser
}

// NewPage creates a tab with stealth, headers and resource blocking applied
// before any navigation.
func (c *rodContext) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	page, err := c.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	// Drop the request context; cleanup must work after it expired.
	page = page.Context(context.Background())

	if opts.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}
	if len(opts.Headers) > 0 {
		if err := (proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(opts.Headers)}).Call(page); err != nil {
			slog.Warn("failed to set extra headers", "error", err)
		}
	}
	if err := (proto.PageSetLifecycleEventsEnabled{Enabled: true}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("enable lifecycle events: %w", err)
	}

	lifeCtx, cancel := context.WithCancel(context.Background())
	rp := &rodPage{
		page:   page,
		events: make(chan *proto.PageLifecycleEvent, 256),
		seen:   make(map[string]bool, 4),
		cancel: cancel,
		router: setupHijack(page, opts.BlockResources),
	}

	// Subscribed before navigation so no milestone is missed.
	wait := page.Context(lifeCtx).EachEvent(func(e *proto.PageLifecycleEvent) bool {
		if e.FrameID != page.FrameID {
			return false
		}
		select {
		case rp.events <- e:
		default:
		}
		return false
	})
	go wait()

	return rp, nil
}

// Close disposes the incognito context and every page in it.
func (c *rodContext) Close() error {
	return proto.TargetDisposeBrowserContext{BrowserContextID: c.browser.BrowserContextID}.Call(c.browser)
}

type rodPage struct {
	page   *rod.Page
	router *rod.HijackRouter
	cancel context.CancelFunc
	events chan *proto.PageLifecycleEvent

	loaderID proto.NetworkLoaderID
	seen     map[string]bool

	closeOnce sync.Once
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	pc := p.page.Context(ctx)
	if err := pc.Navigate(url); err != nil {
		return err
	}
	tree, err := proto.PageGetFrameTree{}.Call(pc)
	if err == nil && tree.FrameTree != nil && tree.FrameTree.Frame != nil {
		p.loaderID = tree.FrameTree.Frame.LoaderID
	}
	return p.waitLifecycle(ctx, eventDOMContentLoaded)
}

func (p *rodPage) WaitNetworkIdle(ctx context.Context) error {
	return p.waitLifecycle(ctx, eventNetworkIdle)
}

// waitLifecycle consumes lifecycle events until name fired for the current
// navigation. Events from earlier loaders (about:blank) are skipped.
func (p *rodPage) waitLifecycle(ctx context.Context, name string) error {
	for !p.seen[name] {
		select {
		case e := <-p.events:
			if p.loaderID != "" && e.LoaderID != p.loaderID {
				continue
			}
			p.seen[string(e.Name)] = true
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *rodPage) WaitSelector(ctx context.Context, selector string) error {
	_, err := p.page.Context(ctx).Element(selector)
	return err
}

func (p *rodPage) SeoSnapshot(ctx context.Context) (models.SeoSnapshot, error) {
	res, err := p.page.Context(ctx).Eval(jsSeoSnapshot)
	if err != nil {
		return models.SeoSnapshot{}, err
	}
	v := res.Value
	return models.SeoSnapshot{
		Title:           v.Get("title").Str(),
		MetaDescription: v.Get("description").Str(),
		H1:              v.Get("h1").Str(),
		Canonical:       v.Get("canonical").Str(),
		URL:             v.Get("url").Str(),
	}, nil
}

func (p *rodPage) WaitForStableDOM(ctx context.Context, quiet, timeout time.Duration) (bool, error) {
	res, err := p.page.Context(ctx).Eval(jsWaitStable, quiet.Milliseconds(), timeout.Milliseconds())
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) URL(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(jsLocation)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Close stops interception and closes the tab using the original page
// reference so it works after the render context expired.
func (p *rodPage) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.cancel()
		if p.router != nil {
			_ = p.router.Stop()
		}
		err = p.page.Close()
	})
	return err
}

// toHeadersMap converts a plain string map to proto.NetworkHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
