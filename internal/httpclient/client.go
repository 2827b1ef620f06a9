package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	coreErrors "github.com/angelospk/freesound-mcp/pkg/core/errors"
	"github.com/google/go-querystring/query"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProgressFunc is called once per binary fetch with the response content length
// (-1 when unknown). The returned writer, if non-nil, receives a copy of every byte read.
type ProgressFunc func(contentLength int64) io.Writer

// Client manages making HTTP requests to the API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// New creates a new internal HTTP client. A nil httpClient means http.DefaultClient.
func New(baseURL, apiKey, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL joins the base URL and path and encodes params (a struct with `url`
// tags, or nil) as the query string. Keys are emitted in sorted order.
func (c *Client) BuildURL(path string, params interface{}) (string, error) {
	fullURL, err := url.Parse(c.baseURL + path) // baseURL has no trailing slash, path starts with /
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", c.baseURL+path, err)
	}
	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return "", fmt.Errorf("failed to encode query parameters: %w", err)
		}
		fullURL.RawQuery = v.Encode()
	}
	return fullURL.String(), nil
}

// Get makes an authenticated GET request and decodes the JSON body into target.
func (c *Client) Get(ctx context.Context, path string, params interface{}, target interface{}) error {
	fullURL, err := c.BuildURL(path, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &coreErrors.APIError{StatusCode: resp.StatusCode, Body: string(respBodyBytes)}
	}

	if target != nil {
		if err := json.Unmarshal(respBodyBytes, target); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}
	return nil
}

// Fetch downloads rawURL and returns the complete body. The API key is never sent;
// bearerToken, when non-empty, is sent as an OAuth2 bearer credential.
func (c *Client) Fetch(ctx context.Context, rawURL, bearerToken string, progress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorText, _ := io.ReadAll(resp.Body)
		return nil, &coreErrors.DownloadError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(errorText)}
	}

	var body io.Reader = resp.Body
	if progress != nil {
		if w := progress(resp.ContentLength); w != nil {
			body = io.TeeReader(resp.Body, w)
		}
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}
	return buf.Bytes(), nil
}
