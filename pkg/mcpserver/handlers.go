package mcpserver

import (
	"context"
	"fmt"
	"math"
	"strings"

	freesound "github.com/angelospk/freesound-mcp"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SearchOutput is the structured result of freesound_search.
type SearchOutput struct {
	Results []freesound.SoundSummary `json:"results"`
}

// DownloadOutput is the structured result of both download tools.
type DownloadOutput struct {
	FilePath string `json:"filePath"`
}

// Handlers implements the tool handlers on top of a SoundService.
type Handlers struct {
	service SoundService
	log     *logrus.Logger
}

// NewHandlers creates tool handlers. A nil logger means the logrus standard logger.
func NewHandlers(service SoundService, logger *logrus.Logger) *Handlers {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handlers{service: service, log: logger}
}

// Search handles freesound_search.
func (h *Handlers) Search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.requestLogger(req)
	args := req.GetArguments()

	query, err := requiredString(args, "query")
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	maxDuration, err := optionalNumber(args, "maxDuration")
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	license, err := optionalString(args, "license")
	if err != nil {
		return invalidArguments(logger, err), nil
	}

	sounds, err := h.service.Search(ctx, freesound.SearchParams{
		Query:       query,
		MaxDuration: maxDuration,
		License:     license,
	})
	if err != nil {
		logger.WithError(err).Error("Search failed")
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger.WithField("results", len(sounds)).Info("Search completed")
	return jsonResult(logger, SearchOutput{Results: sounds}), nil
}

// Download handles freesound_download.
func (h *Handlers) Download(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.requestLogger(req)
	args := req.GetArguments()

	soundID, err := requiredSoundID(args)
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	quality, err := optionalString(args, "quality")
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	q, err := freesound.ParseQuality(quality)
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	downloadDir, err := optionalString(args, "downloadDir")
	if err != nil {
		return invalidArguments(logger, err), nil
	}

	result, err := h.service.DownloadPreview(ctx, freesound.DownloadPreviewParams{
		SoundID:     soundID,
		Quality:     q,
		DownloadDir: downloadDir,
	})
	if err != nil {
		logger.WithError(err).WithField("sound_id", soundID).Error("Download failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(logger, DownloadOutput{FilePath: result.FilePath}), nil
}

// DownloadOriginal handles freesound_download_original.
func (h *Handlers) DownloadOriginal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.requestLogger(req)
	args := req.GetArguments()

	soundID, err := requiredSoundID(args)
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	token, err := requiredString(args, "accessToken")
	if err != nil {
		return invalidArguments(logger, err), nil
	}
	downloadDir, err := optionalString(args, "downloadDir")
	if err != nil {
		return invalidArguments(logger, err), nil
	}

	result, err := h.service.DownloadOriginal(ctx, freesound.DownloadOriginalParams{
		SoundID:     soundID,
		AccessToken: token,
		DownloadDir: downloadDir,
	})
	if err != nil {
		logger.WithError(err).WithField("sound_id", soundID).Error("Original download failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(logger, DownloadOutput{FilePath: result.FilePath}), nil
}

func (h *Handlers) requestLogger(req mcp.CallToolRequest) *logrus.Entry {
	logger := h.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"tool":       req.Params.Name,
	})
	logger.Debug("Tool called")
	return logger
}

func invalidArguments(logger *logrus.Entry, err error) *mcp.CallToolResult {
	logger.WithError(err).Warn("Invalid tool arguments")
	return mcp.NewToolResultError("invalid arguments: " + err.Error())
}

// jsonResult renders v as indented JSON text content.
func jsonResult(logger *logrus.Entry, v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.WithError(err).Error("Failed to encode tool result")
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// --- Argument helpers ---

func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func optionalNumber(args map[string]any, key string) (*float64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	if _, isBool := v.(bool); isBool {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%s must be a positive number", key)
	}
	return &f, nil
}

func requiredSoundID(args map[string]any) (int, error) {
	v, ok := args["soundId"]
	if !ok || v == nil {
		return 0, fmt.Errorf("soundId is required")
	}
	if _, isBool := v.(bool); isBool {
		return 0, fmt.Errorf("soundId must be an integer")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("soundId must be an integer: %w", err)
	}
	if f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("soundId must be a positive integer, got %v", v)
	}
	return cast.ToInt(f), nil
}
