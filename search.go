package freesound

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/angelospk/freesound-mcp/internal/constants"
	coreErrors "github.com/angelospk/freesound-mcp/pkg/core/errors"
	"github.com/sirupsen/logrus"
)

// Search runs a text search and returns the first page of results, in the order
// the API returned them. Each summary carries the high-quality mp3 preview URL.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]SoundSummary, error) {
	q, err := buildSearchQuery(params)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"query":  q.Query,
		"filter": q.Filter,
	}).Debug("Searching sounds")

	var response searchResponse
	if err := c.httpClient.Get(ctx, "/search/text/", q, &response); err != nil {
		return nil, err
	}

	sounds := make([]SoundSummary, 0, len(response.Results))
	for _, item := range response.Results {
		sounds = append(sounds, SoundSummary{
			ID:       item.ID,
			Name:     item.Name,
			Duration: item.Duration,
			License:  item.License,
			Preview:  item.Previews.PreviewHQMP3,
		})
	}
	return sounds, nil
}

// SearchURL returns the URL Search would request for params.
func (c *Client) SearchURL(params SearchParams) (string, error) {
	q, err := buildSearchQuery(params)
	if err != nil {
		return "", err
	}
	return c.httpClient.BuildURL("/search/text/", q)
}

func buildSearchQuery(params SearchParams) (searchQuery, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return searchQuery{}, coreErrors.ErrEmptyQuery
	}

	// Clauses are space separated inside a single filter parameter, duration first.
	var clauses []string
	if params.MaxDuration != nil {
		if d := *params.MaxDuration; d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return searchQuery{}, coreErrors.ErrInvalidMaxDuration
		}
		clauses = append(clauses, "duration:[0 TO "+strconv.FormatFloat(*params.MaxDuration, 'f', -1, 64)+"]")
	}
	if params.License != "" {
		clauses = append(clauses, "license:"+quoteFilterValue(params.License))
	}

	return searchQuery{
		Query:  query,
		Fields: constants.SearchFields,
		Filter: strings.Join(clauses, " "),
	}, nil
}

// quoteFilterValue wraps v in double quotes for the search filter syntax, escaping
// embedded quotes and backslashes.
func quoteFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
