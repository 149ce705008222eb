// Package fetcher retrieves the raw HTTP response of a page, as a crawler
// without JavaScript would see it.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	tls "github.com/refraction-networking/utls"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Result is one raw fetch.
type Result struct {
	HTML        string
	StatusCode  int
	FinalURL    string
	ContentType string
	LoadTime    time.Duration
	// Truncated is set when the body exceeded the configured cap.
	Truncated bool
}

// Fetcher performs GET requests with a Chrome TLS fingerprint (utls).
// It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	timeout   time.Duration
}

// chromeH1Spec is a Chrome ClientHello with ALPN forced to http/1.1, since
// http.Transport cannot speak h2 over a utls connection. It stays empty when
// utls cannot build the Chrome preset.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		slog.Error("fetcher: chrome TLS fingerprint unavailable, falling back to a randomized hello without ALPN", "error", err)
		return
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// New creates a Fetcher. proxy, if set, must be an http(s) proxy URL.
func New(cfg config.FetchConfig, proxy string) *Fetcher {
	transport := &http.Transport{
		DialTLSContext:      dialTLSChrome,
		ForceAttemptHTTP2:   false,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	if proxy != "" {
		if proxyURL, err := url.Parse(proxy); err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = chromeUA
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: ua,
		maxBody:   maxBody,
		timeout:   cfg.Timeout,
	}
}

// Fetch retrieves targetURL. HTTP error statuses are not errors: the page is
// returned with its status code. Transport failures, non-HTML responses and
// undecodable bodies return a *models.CrawlError.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeInvalidInput, "invalid URL", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, categorizeError(err, "request failed")
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !isHTMLContentType(ct) {
		return nil, models.NewCrawlError(models.ErrCodeFetchFailed,
			fmt.Sprintf("non-HTML response (content-type: %s)", ct), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, categorizeError(err, "read body")
	}
	cut := int64(len(body)) > f.maxBody
	if cut {
		body = body[:f.maxBody]
	}
	body, truncated, err := decompressResponse(resp.Header.Get("Content-Encoding"), body, f.maxBody, cut)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeFetchFailed, "decode body", err)
	}
	if truncated {
		slog.Warn("fetcher: body exceeded cap, extracting from a truncated page",
			"url", targetURL, "maxBytes", f.maxBody)
	}

	return &Result{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		ContentType: ct,
		LoadTime:    time.Since(start),
		Truncated:   truncated,
	}, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConn, err := chromeClient(conn, host, &chromeH1Spec)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// chromeClient wraps conn with spec. An empty spec means the Chrome preset
// failed to build; the randomized hello never offers h2, so the transport's
// HTTP/1.1 framing still holds.
func chromeClient(conn net.Conn, host string, spec *tls.ClientHelloSpec) (*tls.UConn, error) {
	cfg := &tls.Config{ServerName: host}
	if len(spec.CipherSuites) == 0 {
		return tls.UClient(conn, cfg, tls.HelloRandomizedNoALPN), nil
	}
	uc := tls.UClient(conn, cfg, tls.HelloCustom)
	if err := uc.ApplyPreset(spec); err != nil {
		return nil, fmt.Errorf("fetcher: apply tls spec: %w", err)
	}
	return uc, nil
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}

// categorizeError maps context errors to a timeout code.
func categorizeError(err error, msg string) *models.CrawlError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewCrawlError(models.ErrCodeTimeout, "fetch timed out", err)
	}
	return models.NewCrawlError(models.ErrCodeFetchFailed, msg, err)
}
