package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/disinfecturl"
	"github.com/njchilds90/disinfecturl/internal/mcpserver"
	"github.com/njchilds90/disinfecturl/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sanitizer over HTTP",
		Long: `Start an HTTP server exposing the sanitizer as a JSON API.

Endpoints:

  POST /v1/sanitize  {"input": <any>, "mode": "auto|url|html"} -> {"result": string|null}
  POST /v1/batch     {"inputs": [<any>...], "mode": ...}       -> {"results": [...]}
  GET  /healthz

The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			mode, err := disinfecturl.ParseMode(a.cfg.Mode)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.cfg.HTTP, mode, a.san, a.logger)
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config http.addr)")
	return cmd
}

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run disinfecturl as an MCP (Model Context Protocol) server",
		Long: `Start an MCP server that exposes the sanitizer over stdio.

Tools:

  • sanitize_url   - Neutralize a single URL
  • sanitize_html  - Rewrite anchor hrefs in an HTML fragment
  • sanitize       - URL pass then anchor pass, like the sanitize command
  • inspect_url    - Report how a URL is classified

Logs go to stderr so they do not interfere with the protocol on stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Blocks until the client disconnects or a signal arrives.
			if err := mcpserver.New(version, a.san, a.logger).Run(ctx); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
