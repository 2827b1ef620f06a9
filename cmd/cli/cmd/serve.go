package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelospk/freesound-mcp/pkg/mcpserver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Serve functions allow overriding the transports for testing.
var (
	ServeStdioFunc = mcpserver.ServeStdio
	ServeHTTPFunc  = mcpserver.ServeHTTP
)

var serveHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Freesound MCP server",
	Long: `Runs an MCP server exposing the freesound_search, freesound_download and
freesound_download_original tools.

By default the server speaks MCP over stdio, which is what desktop MCP clients
launch. With --http it serves the streamable HTTP transport on /mcp instead.

Examples:
  freesound-mcp serve
  freesound-mcp serve --http :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	client, err := newClient(logger)
	if err != nil {
		return err
	}
	srv := mcpserver.New(client, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveHTTPAddr != "" {
		return ServeHTTPFunc(ctx, srv, serveHTTPAddr, logger)
	}
	err = ServeStdioFunc(ctx, srv, logger)
	if err != nil && ctx.Err() != nil {
		logger.WithFields(logrus.Fields{"reason": context.Cause(ctx)}).Info("Server stopped")
		return nil
	}
	return err
}
