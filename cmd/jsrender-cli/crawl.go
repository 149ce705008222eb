package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/models"
)

// crawl flags
var (
	urlFile     string
	concurrency int
	forceRender bool
	forceHTML   bool
	noDiff      bool
	includeHTML bool
	waitFor     string
	quiet       bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [url...]",
	Short: "Crawl one or many URLs and print the SEO results as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := readURLs(args, urlFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			return cmd.Help()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := newPipeline(appConfig)
		if err != nil {
			return err
		}
		defer p.Close()

		opts := crawlOptions()
		var results []*models.CrawlPageResult
		if len(urls) == 1 {
			results = []*models.CrawlPageResult{p.crawler.Crawl(ctx, urls[0], opts)}
		} else {
			results = crawlWithProgress(ctx, p.crawler, urls, opts)
		}

		failed := 0
		for _, r := range results {
			if r.Failed() {
				failed++
			}
		}
		slog.Info("crawl finished", "total", len(results), "failed", failed)

		var out any = results
		if len(results) == 1 {
			out = results[0]
		}
		if err := writeJSON(cmd.OutOrStdout(), output, out); err != nil {
			return err
		}
		if failed == len(results) {
			return fmt.Errorf("all %d URLs failed", failed)
		}
		return nil
	},
}

func init() {
	f := crawlCmd.Flags()
	f.StringVarP(&urlFile, "file", "f", "", "read URLs from a file, one per line (- for stdin)")
	f.IntVarP(&concurrency, "concurrency", "c", 0, "URLs crawled at once (default from JSRENDER_CRAWL_CONCURRENCY)")
	f.BoolVar(&forceRender, "force-render", false, "render every URL regardless of the decision")
	f.BoolVar(&forceHTML, "force-html", false, "never render; extract from raw HTML")
	f.BoolVar(&noDiff, "no-diff", false, "skip the raw-vs-rendered comparison")
	f.BoolVar(&includeHTML, "include-html", false, "include raw and rendered HTML in the output")
	f.StringVar(&waitFor, "wait-for", "", "CSS selector to wait for before capturing a rendered page")
	f.BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
}

func crawlOptions() crawler.Options {
	opts := crawler.Options{
		ForceHTML:   forceHTML,
		ForceRender: forceRender,
		IncludeDiff: !noDiff && appConfig.Crawl.DiffByDefault,
		IncludeHTML: includeHTML,
	}
	opts.Render.WaitForSelector = waitFor
	return opts
}

func crawlWithProgress(ctx context.Context, cr *crawler.Crawler, urls []string, opts crawler.Options) []*models.CrawlPageResult {
	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(len(urls),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("crawling"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	return cr.CrawlBatch(ctx, urls, opts, concurrency, func(done, total int, res *models.CrawlPageResult) {
		if bar != nil {
			bar.Describe(string(res.RenderMode))
			_ = bar.Add(1)
		}
		if res.Failed() {
			slog.Debug("crawl failed", "url", res.URL, "error", res.Error)
		}
	})
}
