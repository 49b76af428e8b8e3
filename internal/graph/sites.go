package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// siteResponse mirrors the Graph API site JSON response.
// Unexported; callers use Site via toSite() normalization.
type siteResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

// toSite normalizes a Graph API site response into our Site type.
// The display name is preferred; the URL-segment name is the fallback.
func (s *siteResponse) toSite() Site {
	name := s.DisplayName
	if name == "" {
		name = s.Name
	}

	return Site{
		ID:     s.ID,
		Name:   name,
		WebURL: s.WebURL,
	}
}

// SiteByName resolves a named site on the given hostname
// (GET /sites/{hostname}:/sites/{name}). Returns ErrNotFound (wrapped in
// *APIError) when no such site exists.
func (c *Client) SiteByName(ctx context.Context, hostname, name string) (*Site, error) {
	path := fmt.Sprintf("/sites/%s:/sites/%s", hostname, url.PathEscape(name))

	return c.fetchSite(ctx, path)
}

// RootSite resolves the root site of the hostname (GET /sites/{hostname}).
func (c *Client) RootSite(ctx context.Context, hostname string) (*Site, error) {
	return c.fetchSite(ctx, "/sites/"+hostname)
}

func (c *Client) fetchSite(ctx context.Context, path string) (*Site, error) {
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr siteResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("graph: decoding site response: %w", err)
	}

	site := sr.toSite()

	c.logger.Debug("fetched site",
		slog.String("id", site.ID),
		slog.String("name", site.Name),
	)

	return &site, nil
}
