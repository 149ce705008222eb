package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/models"
)

var diffCmd = &cobra.Command{
	Use:   "diff <url>",
	Short: "Render a URL and report which SEO elements depend on JavaScript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.JSRender.Enabled {
			return fmt.Errorf("diff needs a browser; rendering is disabled")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := newPipeline(appConfig)
		if err != nil {
			return err
		}
		defer p.Close()

		opts := crawler.Options{}
		opts.Render.WaitForSelector = waitFor
		report, err := p.crawler.Diff(ctx, args[0], opts)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), output, report)
	},
}

var htmlFile string

var decideCmd = &cobra.Command{
	Use:   "decide <url>",
	Short: "Decide whether a URL needs JavaScript rendering without rendering it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw string
		if htmlFile != "" {
			data, err := os.ReadFile(htmlFile)
			if err != nil {
				return fmt.Errorf("read html file: %w", err)
			}
			raw = string(data)
		}

		appConfig.JSRender.Enabled = false
		p, err := newPipeline(appConfig)
		if err != nil {
			return err
		}

		dec, analysis, err := p.crawler.Decide(cmd.Context(), args[0], raw)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), output, struct {
			Decision models.RenderDecision   `json:"decision"`
			Analysis *models.RawHTMLAnalysis `json:"analysis"`
		}{dec, analysis})
	},
}

func init() {
	diffCmd.Flags().StringVar(&waitFor, "wait-for", "", "CSS selector to wait for before capturing the rendered page")
	decideCmd.Flags().StringVar(&htmlFile, "html", "", "analyse this HTML file instead of fetching the URL")
}
