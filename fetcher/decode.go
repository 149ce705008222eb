package fetcher

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// decompressResponse decodes body according to Content-Encoding. Output is
// capped at limit bytes; truncated reports whether anything was cut. cut says
// the encoded body itself was capped, so a stream ending early keeps the
// bytes decoded so far.
func decompressResponse(contentEncoding string, body []byte, limit int64, cut bool) (out []byte, truncated bool, err error) {
	var r io.Reader
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "", "identity":
		return body, cut, nil
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, false, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "deflate":
		// Servers disagree on zlib-wrapped versus raw deflate.
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			defer zr.Close()
			r = zr
		} else {
			fr := flate.NewReader(bytes.NewReader(body))
			defer fr.Close()
			r = fr
		}
	case "br":
		r = brotli.NewReader(bytes.NewReader(body))
	default:
		return nil, false, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}

	out, err = io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		if !cut || len(out) == 0 {
			return nil, false, fmt.Errorf("%s: %w", contentEncoding, err)
		}
		truncated = true
	}
	if int64(len(out)) > limit {
		out, truncated = out[:limit], true
	}
	return out, truncated || cut, nil
}
