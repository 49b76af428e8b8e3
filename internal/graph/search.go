package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// searchPageSize caps the number of hits requested per search. The pipeline
// only consumes the first hit; a small page keeps responses cheap while the
// hit count stays visible in logs.
const searchPageSize = 25

// searchResponse wraps the value array from a drive search.
type searchResponse struct {
	Value []driveItemResponse `json:"value"`
}

// escapeSearchTerm prepares a term for interpolation into search(q='...'):
// single quotes are doubled per OData string-literal rules, then the term is
// percent-encoded as a path segment.
func escapeSearchTerm(term string) string {
	return url.PathEscape(strings.ReplaceAll(term, "'", "''"))
}

// SearchDriveItems queries a drive for items matching the term
// (GET /drives/{driveID}/root/search(q='{term}')). Matching semantics and
// result order belong entirely to the service: it matches on name and
// content, and callers take hits in the order given, first hit first.
func (c *Client) SearchDriveItems(ctx context.Context, driveID, term string) ([]Item, error) {
	path := fmt.Sprintf("/drives/%s/root/search(q='%s')?$top=%d",
		driveID, escapeSearchTerm(term), searchPageSize)

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("graph: decoding search response: %w", err)
	}

	items := make([]Item, 0, len(sr.Value))
	for i := range sr.Value {
		items = append(items, sr.Value[i].toItem())
	}

	c.logger.Debug("searched drive",
		slog.String("drive_id", driveID),
		slog.String("term", term),
		slog.Int("hits", len(items)),
	)

	return items, nil
}
