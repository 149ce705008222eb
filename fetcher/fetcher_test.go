package fetcher

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	tls "github.com/refraction-networking/utls"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

const pageHTML = `<html><head><title>Oak Tables</title></head><body><h1>Oak</h1></body></html>`

func encode(t *testing.T, enc string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch enc {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "br":
		w = brotli.NewWriter(&buf)
	case "deflate":
		w = zlib.NewWriter(&buf)
	case "raw-deflate":
		fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			t.Fatal(err)
		}
		w = fw
	default:
		return data
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchDecodesContentEncodings(t *testing.T) {
	tests := []struct {
		name   string
		enc    string
		header string
	}{
		{"identity", "", ""},
		{"gzip", "gzip", "gzip"},
		{"brotli", "br", "br"},
		{"zlib deflate", "deflate", "deflate"},
		{"raw deflate", "raw-deflate", "deflate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := encode(t, tt.enc, []byte(pageHTML))
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Accept-Encoding"); !strings.Contains(got, "br") {
					t.Errorf("Accept-Encoding = %q", got)
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if tt.header != "" {
					w.Header().Set("Content-Encoding", tt.header)
				}
				w.Write(body)
			}))
			defer srv.Close()

			res, err := New(config.FetchConfig{Timeout: 5 * time.Second}, "").Fetch(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if res.HTML != pageHTML {
				t.Errorf("HTML = %q", res.HTML)
			}
			if res.StatusCode != http.StatusOK {
				t.Errorf("StatusCode = %d", res.StatusCode)
			}
		})
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, pageHTML)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := New(config.FetchConfig{}, "").Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.FinalURL != srv.URL+"/new" {
		t.Errorf("FinalURL = %q", res.FinalURL)
	}
}

func TestFetchReturnsErrorStatusAsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "<html><title>Not found</title></html>")
	}))
	defer srv.Close()

	res, err := New(config.FetchConfig{}, "").Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", res.StatusCode)
	}
}

func TestFetchRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	_, err := New(config.FetchConfig{}, "").Fetch(context.Background(), srv.URL)
	if !models.HasCode(err, models.ErrCodeFetchFailed) {
		t.Errorf("err = %v, want %s", err, models.ErrCodeFetchFailed)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(config.FetchConfig{Timeout: 50 * time.Millisecond}, "").Fetch(context.Background(), srv.URL)
	if !models.HasCode(err, models.ErrCodeTimeout) {
		t.Errorf("err = %v, want %s", err, models.ErrCodeTimeout)
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(config.FetchConfig{Timeout: time.Second}, "").Fetch(context.Background(), addr)
	if !models.HasCode(err, models.ErrCodeFetchFailed) {
		t.Errorf("err = %v, want %s", err, models.ErrCodeFetchFailed)
	}
}

func TestFetchCapsBody(t *testing.T) {
	big := strings.Repeat("x", 4096)
	tests := []struct {
		name          string
		enc           string
		body          string
		wantLen       int
		wantTruncated bool
	}{
		{"small page", "", pageHTML, len(pageHTML), false},
		{"exactly the cap", "", big[:1024], 1024, false},
		{"oversized", "", big, 1024, true},
		{"oversized gzip", "gzip", big, 1024, true},
		{"small gzip", "gzip", pageHTML, len(pageHTML), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := encode(t, tt.enc, []byte(tt.body))
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				if tt.enc != "" {
					w.Header().Set("Content-Encoding", tt.enc)
				}
				w.Write(body)
			}))
			defer srv.Close()

			res, err := New(config.FetchConfig{MaxBodyBytes: 1024}, "").Fetch(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if len(res.HTML) != tt.wantLen {
				t.Errorf("len(HTML) = %d, want %d", len(res.HTML), tt.wantLen)
			}
			if res.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", res.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestDecompressCutStream(t *testing.T) {
	var sb strings.Builder
	for i := range 8000 {
		fmt.Fprintf(&sb, "<p>oak table %d costs %d</p>", i, i*i%9973)
	}
	data := []byte(sb.String())
	full := encode(t, "gzip", data)
	cut := full[:len(full)/2]

	out, truncated, err := decompressResponse("gzip", cut, 1<<20, true)
	if err != nil {
		t.Fatalf("cut stream: %v", err)
	}
	if !truncated || len(out) == 0 || !bytes.HasPrefix(data, out) {
		t.Errorf("cut stream = %d bytes, truncated %v", len(out), truncated)
	}

	if _, _, err := decompressResponse("gzip", cut, 1<<20, false); err == nil {
		t.Error("corrupt stream without a cap: got nil error")
	}
}

func TestChromeClient(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	uc, err := chromeClient(c1, "example.com", &tls.ClientHelloSpec{})
	if err != nil {
		t.Fatalf("empty spec: %v", err)
	}
	if uc.ClientHelloID.Client != tls.HelloRandomizedNoALPN.Client {
		t.Errorf("empty spec hello = %s, want %s", uc.ClientHelloID.Client, tls.HelloRandomizedNoALPN.Client)
	}

	if len(chromeH1Spec.CipherSuites) == 0 {
		t.Skip("chrome preset unavailable in this utls build")
	}
	uc, err = chromeClient(c1, "example.com", &chromeH1Spec)
	if err != nil {
		t.Fatalf("chrome spec: %v", err)
	}
	if uc.ClientHelloID.Client != tls.HelloCustom.Client {
		t.Errorf("chrome spec hello = %s, want %s", uc.ClientHelloID.Client, tls.HelloCustom.Client)
	}
	var alpn []string
	for _, ext := range chromeH1Spec.Extensions {
		if a, ok := ext.(*tls.ALPNExtension); ok {
			alpn = a.AlpnProtocols
		}
	}
	if len(alpn) != 1 || alpn[0] != "http/1.1" {
		t.Errorf("ALPN = %v, want [http/1.1]", alpn)
	}
}

func TestDecompressUnsupported(t *testing.T) {
	if _, _, err := decompressResponse("zstd", []byte("x"), 1<<20, false); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}
