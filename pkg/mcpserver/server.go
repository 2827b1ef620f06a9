// Package mcpserver exposes the Freesound client as Model Context Protocol tools.
// Handlers only validate argument shapes and serialize results; failures are
// reported to the calling agent as tool errors.
package mcpserver

import (
	"context"
	"fmt"
	stdlog "log"
	"os"

	freesound "github.com/angelospk/freesound-mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

const (
	ServerName    = "freesound-mcp"
	ServerVersion = "1.0.0"

	ToolSearch           = "freesound_search"
	ToolDownload         = "freesound_download"
	ToolDownloadOriginal = "freesound_download_original"
)

// SoundService is the subset of *freesound.Client the tools call.
type SoundService interface {
	Search(ctx context.Context, params freesound.SearchParams) ([]freesound.SoundSummary, error)
	DownloadPreview(ctx context.Context, params freesound.DownloadPreviewParams) (*freesound.DownloadResult, error)
	DownloadOriginal(ctx context.Context, params freesound.DownloadOriginalParams) (*freesound.DownloadResult, error)
}

// Ensure the real client satisfies the interface
var _ SoundService = (*freesound.Client)(nil)

// New creates an MCP server with all Freesound tools registered.
func New(service SoundService, logger *logrus.Logger) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	h := NewHandlers(service, logger)

	srv.AddTool(SearchTool(), h.Search)
	srv.AddTool(DownloadTool(), h.Download)
	srv.AddTool(DownloadOriginalTool(), h.DownloadOriginal)
	return srv
}

// SearchTool describes freesound_search.
func SearchTool() mcp.Tool {
	return mcp.NewTool(ToolSearch,
		mcp.WithTitleAnnotation("Freesound Search"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDescription("Search for sounds on Freesound"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search keywords")),
		mcp.WithNumber("maxDuration", mcp.Description("Maximum duration of sounds in seconds")),
		mcp.WithString("license", mcp.Description("License of sounds to search for")),
	)
}

// DownloadTool describes freesound_download.
func DownloadTool() mcp.Tool {
	return mcp.NewTool(ToolDownload,
		mcp.WithTitleAnnotation("Freesound Download"),
		mcp.WithDescription("Download a sound preview from Freesound by sound ID"),
		mcp.WithNumber("soundId", mcp.Required(), mcp.Description("ID of the sound to download")),
		mcp.WithString("quality",
			mcp.Enum(string(freesound.QualityHQ), string(freesound.QualityLQ)),
			mcp.DefaultString(string(freesound.DefaultQuality)),
			mcp.Description("Audio quality: 'hq' for high quality or 'lq' for low quality"),
		),
		mcp.WithString("downloadDir", mcp.Description("Custom download directory, defaults to ~/.freesound-mcp/downloads")),
	)
}

// DownloadOriginalTool describes freesound_download_original.
func DownloadOriginalTool() mcp.Tool {
	return mcp.NewTool(ToolDownloadOriginal,
		mcp.WithTitleAnnotation("Freesound Download Original"),
		mcp.WithDescription("Download the original uploaded file of a sound. Requires an OAuth2 access token."),
		mcp.WithNumber("soundId", mcp.Required(), mcp.Description("ID of the sound to download")),
		mcp.WithString("accessToken", mcp.Required(), mcp.Description("OAuth2 access token of a Freesound user")),
		mcp.WithString("downloadDir", mcp.Description("Custom download directory, defaults to ~/.freesound-mcp/downloads")),
	)
}

// ServeStdio serves srv over stdin/stdout until stdin closes or ctx is cancelled.
// Nothing but protocol frames may be written to stdout while it runs.
func ServeStdio(ctx context.Context, srv *server.MCPServer, logger *logrus.Logger) error {
	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(stdlog.New(logger.WriterLevel(logrus.ErrorLevel), "", 0))
	logger.Info("Freesound MCP Server running on stdio")
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// ServeHTTP serves srv with the streamable HTTP transport on addr.
func ServeHTTP(ctx context.Context, srv *server.MCPServer, addr string, logger *logrus.Logger) error {
	httpSrv := server.NewStreamableHTTPServer(srv)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Start(addr) }()
	logger.WithField("addr", addr).Info("Freesound MCP Server listening on streamable HTTP (/mcp)")

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		return httpSrv.Shutdown(context.Background())
	}
}
