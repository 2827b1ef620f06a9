package freesound

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelospk/freesound-mcp/internal/constants"
	"github.com/angelospk/freesound-mcp/internal/httpclient"
	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the Freesound client.
type Config struct {
	APIKey      string
	UserAgent   string         // Optional: defaults to constants.DefaultUserAgent
	BaseURL     string         // Optional: Override default base URL
	DownloadDir string         // Optional: used when a download call names no directory
	HTTPClient  *http.Client   // Optional: defaults to http.DefaultClient
	Logger      *logrus.Logger // Optional: defaults to the logrus standard logger
}

// Client is the main Freesound API client. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	config     Config
	httpClient *httpclient.Client
	log        *logrus.Logger
}

// NewClient creates a new Freesound API client.
//
// An empty API key is not rejected: requests are sent anyway and fail upstream.
func NewClient(config Config) (*Client, error) {
	baseURL := constants.DefaultBaseURL
	if config.BaseURL != "" {
		if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid BaseURL provided: %w", err)
		}
		baseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	if config.UserAgent == "" {
		config.UserAgent = constants.DefaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if config.APIKey == "" {
		logger.Warnf("%s is not set; Freesound API calls will be rejected", constants.EnvAPIKey)
	}

	return &Client{
		config:     config,
		httpClient: httpclient.New(baseURL, config.APIKey, config.UserAgent, config.HTTPClient),
		log:        logger,
	}, nil
}

// BaseURL returns the API base URL used by the client.
func (c *Client) BaseURL() string {
	return c.httpClient.BaseURL()
}
