package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/decision"
	"github.com/dacdangvan/seotool-sub006/fetcher"
	"github.com/dacdangvan/seotool-sub006/renderer"
)

// pipeline is the in-process crawler of one CLI run.
type pipeline struct {
	crawler *crawler.Crawler
	engine  *renderer.Engine
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	dec, err := decision.New(cfg.JSRender)
	if err != nil {
		return nil, err
	}
	p := &pipeline{}
	var rend crawler.Renderer
	if cfg.JSRender.Enabled {
		p.engine = renderer.New(renderer.NewRodBackend(cfg.Browser), cfg.JSRender)
		rend = p.engine
	}
	p.crawler = crawler.New(fetcher.New(cfg.Fetch, cfg.Browser.DefaultProxy), dec, rend, cfg.Crawl)
	return p, nil
}

func (p *pipeline) Close() {
	if p.engine == nil {
		return
	}
	if err := p.engine.Close(); err != nil {
		slog.Warn("browser shutdown", "error", err)
	}
}

// readURLs merges positional arguments with the non-empty, non-comment lines
// of file ("-" is stdin).
func readURLs(args []string, file string, stdin io.Reader) ([]string, error) {
	urls := append([]string(nil), args...)
	if file == "" {
		return urls, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open url file: %w", err)
		}
		defer f.Close()
		r = f
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return urls, nil
}

// writeJSON writes v indented to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

