package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/logging"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Global flags.
var (
	logLevel  string
	logFormat string
	viewport  string
	timeout   time.Duration
	noRender  bool
	output    string
)

var (
	appConfig *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "jsrender",
	Short: "JavaScript rendering detection and raw-vs-rendered SEO diff",
	Long: `jsrender fetches pages, decides whether they need a JavaScript render,
renders them in headless Chromium when they do and reports which SEO
elements only exist after JavaScript runs.

Examples:
  jsrender crawl https://example.com/ https://example.com/about
  jsrender crawl -f urls.txt -c 8 -o results.json
  jsrender diff https://example.com/ --viewport desktop
  jsrender decide https://example.com/

Configuration is read from JSRENDER_* environment variables; flags win.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		if viewport != "" {
			cfg.JSRender.DefaultViewport = viewport
		}
		if timeout > 0 {
			cfg.JSRender.Timeout = timeout
		}
		if noRender {
			cfg.JSRender.Enabled = false
		}
		if err := cfg.JSRender.Validate(); err != nil {
			return err
		}

		// stdout carries the JSON results.
		logCloser = logging.Init(cfg.Log, os.Stderr)
		appConfig = cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skip config loading.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jsrender %s (built %s)\n", Version, BuildTime)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from JSRENDER_LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "text", "log format on stderr: text or json")
	pf.StringVar(&viewport, "viewport", "", "device to emulate: mobile or desktop")
	pf.DurationVar(&timeout, "timeout", 0, "per-page render timeout, e.g. 30s")
	pf.BoolVar(&noRender, "no-render", false, "never launch a browser; extract from raw HTML only")
	pf.StringVarP(&output, "output", "o", "", "write JSON results to this file instead of stdout")

	rootCmd.AddCommand(crawlCmd, diffCmd, decideCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
