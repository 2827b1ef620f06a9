package mcpserver

import (
	"context"
	"io"
	"testing"

	freesound "github.com/angelospk/freesound-mcp"
	coreErrors "github.com/angelospk/freesound-mcp/pkg/core/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSoundService is a mock implementation of SoundService using testify/mock
type MockSoundService struct {
	mock.Mock
}

var _ SoundService = (*MockSoundService)(nil)

func (m *MockSoundService) Search(ctx context.Context, params freesound.SearchParams) ([]freesound.SoundSummary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]freesound.SoundSummary), args.Error(1)
}

func (m *MockSoundService) DownloadPreview(ctx context.Context, params freesound.DownloadPreviewParams) (*freesound.DownloadResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freesound.DownloadResult), args.Error(1)
}

func (m *MockSoundService) DownloadOriginal(ctx context.Context, params freesound.DownloadOriginalParams) (*freesound.DownloadResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freesound.DownloadResult), args.Error(1)
}

func newTestHandlers(service SoundService) *Handlers {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHandlers(service, logger)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestSearchHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("Search", mock.Anything, freesound.SearchParams{
			Query:       "piano",
			MaxDuration: freesound.Float64(30),
			License:     "Creative Commons 0",
		}).Return([]freesound.SoundSummary{
			{ID: 1, Name: "Grand Piano", Duration: 2.5, License: "CC0", Preview: "https://x/hq.mp3"},
		}, nil)

		h := newTestHandlers(service)
		result, err := h.Search(context.Background(), callRequest(ToolSearch, map[string]any{
			"query":       "piano",
			"maxDuration": float64(30), // JSON numbers decode as float64
			"license":     "Creative Commons 0",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		var out SearchOutput
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
		assert.Equal(t, []freesound.SoundSummary{
			{ID: 1, Name: "Grand Piano", Duration: 2.5, License: "CC0", Preview: "https://x/hq.mp3"},
		}, out.Results)
		service.AssertExpectations(t)
	})

	t.Run("Empty Results Encode As Array", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("Search", mock.Anything, freesound.SearchParams{Query: "zzz"}).Return([]freesound.SoundSummary{}, nil)

		h := newTestHandlers(service)
		result, err := h.Search(context.Background(), callRequest(ToolSearch, map[string]any{"query": "zzz"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"results": []}`, resultText(t, result))
	})

	t.Run("Invalid Arguments", func(t *testing.T) {
		tests := []struct {
			name string
			args map[string]any
		}{
			{"Missing Query", map[string]any{}},
			{"Empty Query", map[string]any{"query": "  "}},
			{"Query Not String", map[string]any{"query": 42}},
			{"Max Duration Not Number", map[string]any{"query": "rain", "maxDuration": "long"}},
			{"Max Duration Negative", map[string]any{"query": "rain", "maxDuration": -1.0}},
			{"Max Duration Bool", map[string]any{"query": "rain", "maxDuration": true}},
			{"License Not String", map[string]any{"query": "rain", "license": 4}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service := new(MockSoundService)
				h := newTestHandlers(service)

				result, err := h.Search(context.Background(), callRequest(ToolSearch, tt.args))
				require.NoError(t, err)
				assert.True(t, result.IsError)
				assert.Contains(t, resultText(t, result), "invalid arguments")
				service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Service Error Becomes Tool Error", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("Search", mock.Anything, mock.Anything).
			Return(nil, &coreErrors.APIError{StatusCode: 401, Body: "Invalid token."})

		h := newTestHandlers(service)
		result, err := h.Search(context.Background(), callRequest(ToolSearch, map[string]any{"query": "rain"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "freesound API error: 401 - Invalid token.", resultText(t, result))
	})
}

func TestDownloadHandler(t *testing.T) {
	t.Run("Default Quality", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("DownloadPreview", mock.Anything, freesound.DownloadPreviewParams{
			SoundID: 1234,
			Quality: freesound.QualityLQ,
		}).Return(&freesound.DownloadResult{FilePath: "/tmp/dl/1234_preview_lq.mp3"}, nil)

		h := newTestHandlers(service)
		result, err := h.Download(context.Background(), callRequest(ToolDownload, map[string]any{"soundId": float64(1234)}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.JSONEq(t, `{"filePath": "/tmp/dl/1234_preview_lq.mp3"}`, resultText(t, result))
		service.AssertExpectations(t)
	})

	t.Run("Quality And Directory", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("DownloadPreview", mock.Anything, freesound.DownloadPreviewParams{
			SoundID:     7,
			Quality:     freesound.QualityHQ,
			DownloadDir: "/music",
		}).Return(&freesound.DownloadResult{FilePath: "/music/7_preview_hq.mp3"}, nil)

		h := newTestHandlers(service)
		result, err := h.Download(context.Background(), callRequest(ToolDownload, map[string]any{
			"soundId":     7,
			"quality":     "hq",
			"downloadDir": "/music",
		}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"filePath": "/music/7_preview_hq.mp3"}`, resultText(t, result))
		service.AssertExpectations(t)
	})

	t.Run("Invalid Arguments", func(t *testing.T) {
		tests := []struct {
			name string
			args map[string]any
		}{
			{"Missing Sound ID", map[string]any{}},
			{"Fractional Sound ID", map[string]any{"soundId": 1.5}},
			{"Zero Sound ID", map[string]any{"soundId": 0}},
			{"Sound ID Not Number", map[string]any{"soundId": "abc"}},
			{"Bad Quality", map[string]any{"soundId": 1, "quality": "best"}},
			{"Quality Not String", map[string]any{"soundId": 1, "quality": 1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service := new(MockSoundService)
				h := newTestHandlers(service)

				result, err := h.Download(context.Background(), callRequest(ToolDownload, tt.args))
				require.NoError(t, err)
				assert.True(t, result.IsError)
				service.AssertNotCalled(t, "DownloadPreview", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("No Preview Available", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("DownloadPreview", mock.Anything, mock.Anything).Return(nil, coreErrors.ErrNoPreviewAvailable)

		h := newTestHandlers(service)
		result, err := h.Download(context.Background(), callRequest(ToolDownload, map[string]any{"soundId": 1}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, coreErrors.ErrNoPreviewAvailable.Error(), resultText(t, result))
	})
}

func TestDownloadOriginalHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockSoundService)
		service.On("DownloadOriginal", mock.Anything, freesound.DownloadOriginalParams{
			SoundID:     99,
			AccessToken: "oauth-token",
		}).Return(&freesound.DownloadResult{FilePath: "/tmp/dl/99.flac"}, nil)

		h := newTestHandlers(service)
		result, err := h.DownloadOriginal(context.Background(), callRequest(ToolDownloadOriginal, map[string]any{
			"soundId":     99,
			"accessToken": "oauth-token",
		}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"filePath": "/tmp/dl/99.flac"}`, resultText(t, result))
		service.AssertExpectations(t)
	})

	t.Run("Missing Token", func(t *testing.T) {
		service := new(MockSoundService)
		h := newTestHandlers(service)

		result, err := h.DownloadOriginal(context.Background(), callRequest(ToolDownloadOriginal, map[string]any{"soundId": 99}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "accessToken is required")
	})

	t.Run("Download Error", func(t *testing.T) {
		service := new(MockSoundService)
		dlErr := &coreErrors.DownloadError{URL: "https://x/dl", StatusCode: 401, Body: "expired"}
		service.On("DownloadOriginal", mock.Anything, mock.Anything).Return(nil, dlErr)

		h := newTestHandlers(service)
		result, err := h.DownloadOriginal(context.Background(), callRequest(ToolDownloadOriginal, map[string]any{
			"soundId": 99, "accessToken": "expired",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "download failed: 401 - expired", resultText(t, result))
	})
}
