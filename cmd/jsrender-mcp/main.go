package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dacdangvan/seotool-sub006/models"
)

func main() {
	apiURL := os.Getenv("JSRENDER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("JSRENDER_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "JSRENDER_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"jsrender",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	viewport := mcp.WithString("viewport",
		mcp.Description("Device to emulate when rendering: 'mobile' (default) or 'desktop'"),
		mcp.Enum("mobile", "desktop"),
	)

	crawlURLTool := mcp.NewTool("crawl_url",
		mcp.WithDescription("Crawl a page for SEO data. Raw HTML is fetched first and the page is rendered in a headless browser only when it looks JavaScript-dependent. Returns title, description, canonical, headings, link counts, an SEO score and, when rendered, the raw-vs-rendered risk report."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to crawl"),
		),
		viewport,
		mcp.WithBoolean("force_render",
			mcp.Description("Render with JavaScript regardless of the render decision"),
		),
		mcp.WithBoolean("force_html",
			mcp.Description("Never render; extract from the raw HTML only"),
		),
	)
	s.AddTool(crawlURLTool, handleCrawlURL(newAPIClient(apiURL, apiKey, 120*time.Second)))

	checkTool := mcp.NewTool("check_js_dependency",
		mcp.WithDescription("Render a page and compare its SEO elements with the raw HTML. Reports which of title, meta description, canonical, robots, H1, links and structured data only exist after JavaScript runs, and classifies the indexing risk as LOW, MEDIUM or HIGH."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to check"),
		),
		viewport,
		mcp.WithString("wait_for_selector",
			mcp.Description("CSS selector that must appear before the rendered page is captured"),
		),
	)
	s.AddTool(checkTool, handleCheckJSDependency(newAPIClient(apiURL, apiKey, 120*time.Second)))

	decideTool := mcp.NewTool("decide_render",
		mcp.WithDescription("Decide whether a page needs JavaScript rendering for SEO extraction, without launching a browser. Detects SPA shells, empty root containers, placeholder titles and frontend frameworks."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page"),
		),
		mcp.WithString("html",
			mcp.Description("Raw HTML to analyse. When omitted the URL is fetched."),
		),
	)
	s.AddTool(decideTool, handleDecideRender(newAPIClient(apiURL, apiKey, 60*time.Second)))

	batchTool := mcp.NewTool("batch_crawl",
		mcp.WithDescription("Crawl up to 100 URLs in parallel and return a per-page summary with render mode, JavaScript dependency risk and SEO score."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of URLs to crawl"),
		),
		viewport,
	)
	s.AddTool(batchTool, handleBatchCrawl(newAPIClient(apiURL, apiKey, 60*time.Second)))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleCrawlURL(api *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]any{
			"url":          url,
			"force_render": request.GetBool("force_render", false),
			"force_html":   request.GetBool("force_html", false),
		}
		if v := request.GetString("viewport", ""); v != "" {
			payload["viewport"] = v
		}

		var resp models.CrawlResponse
		if err := api.post(ctx, "/api/v1/crawl", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if resp.Result == nil {
			return mcp.NewToolResultError(formatError("crawl failed", resp.Error)), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(formatCrawl(resp.Result)), nil
		}
		return mcp.NewToolResultText(formatCrawl(resp.Result)), nil
	}
}

func handleCheckJSDependency(api *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]any{"url": url}
		if v := request.GetString("viewport", ""); v != "" {
			payload["viewport"] = v
		}
		if sel := request.GetString("wait_for_selector", ""); sel != "" {
			payload["wait_for_selector"] = sel
		}

		var resp models.DiffResponse
		if err := api.post(ctx, "/api/v1/diff", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success || resp.Report == nil {
			return mcp.NewToolResultError(formatError("diff failed", resp.Error)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("URL: %s\n%s", resp.Report.URL, formatReport(resp.Report))), nil
	}
}

func handleDecideRender(api *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]string{"url": url}
		if html := request.GetString("html", ""); html != "" {
			payload["html"] = html
		}

		var resp models.DecideResponse
		if err := api.post(ctx, "/api/v1/decide", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success || resp.Decision == nil {
			return mcp.NewToolResultError(formatError("decision failed", resp.Error)), nil
		}
		return mcp.NewToolResultText(formatDecision(resp.Decision)), nil
	}
}

func handleBatchCrawl(api *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		opts := map[string]any{}
		if v := request.GetString("viewport", ""); v != "" {
			opts["viewport"] = v
		}

		var created struct {
			models.BatchResponse
			Error *models.ErrorDetail `json:"error"`
		}
		if err := api.post(ctx, "/api/v1/crawl/batch", map[string]any{"urls": urls, "options": opts}, &created); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if created.ID == "" {
			return mcp.NewToolResultError(formatError("batch job creation failed", created.Error)), nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()

		var status models.BatchStatusResponse
		if err := api.waitBatch(ctx, created.ID, &status); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}
		return mcp.NewToolResultText(formatBatch(&status)), nil
	}
}
