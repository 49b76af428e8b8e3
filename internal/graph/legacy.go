package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// The SharePoint host exposes the drive API a second time under
// /_api/v2.0 on site-scoped paths. It predates the Graph endpoint but
// answers with the same driveItem JSON, parent drive reference included,
// and its ids are the same ids the Graph content endpoint accepts. The
// catch is authentication: it requires a token minted for the tenant-host
// audience (HostScope) and rejects Graph-audience tokens with 401.

// LegacyDriveItem fetches a drive item by its immutable id through the
// site-scoped legacy endpoint
// (GET /sites/{siteName}/_api/v2.0/drive/items/{itemID}).
// The client's base URL must be the tenant host, not DefaultBaseURL.
func (c *Client) LegacyDriveItem(ctx context.Context, siteName, itemID string) (*Item, error) {
	path := fmt.Sprintf("/sites/%s/_api/v2.0/drive/items/%s",
		url.PathEscape(siteName), url.PathEscape(itemID))

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dir driveItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return nil, fmt.Errorf("graph: decoding legacy item response: %w", err)
	}

	item := dir.toItem()

	c.logger.Debug("fetched legacy item",
		slog.String("site", siteName),
		slog.String("item_id", item.ID),
		slog.String("drive_id", item.DriveID),
	)

	return &item, nil
}
