package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// driveResponse mirrors the Graph API drive JSON response.
// Unexported; callers use Drive via toDrive() normalization.
type driveResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DriveType string `json:"driveType"`
}

// drivesListResponse wraps the value array from GET /sites/{id}/drives.
type drivesListResponse struct {
	Value []driveResponse `json:"value"`
}

// toDrive normalizes a Graph API drive response into our Drive type.
func (d *driveResponse) toDrive() Drive {
	return Drive{
		ID:        d.ID,
		Name:      d.Name,
		DriveType: d.DriveType,
	}
}

// DefaultDrive returns the site's default document library
// (GET /sites/{siteID}/drive).
func (c *Client) DefaultDrive(ctx context.Context, siteID string) (*Drive, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/sites/%s/drive", siteID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dr driveResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("graph: decoding drive response: %w", err)
	}

	drive := dr.toDrive()

	c.logger.Debug("fetched default drive",
		slog.String("site_id", siteID),
		slog.String("drive_id", drive.ID),
		slog.String("name", drive.Name),
	)

	return &drive, nil
}

// SiteDrives returns every document library attached to the site
// (GET /sites/{siteID}/drives), in the order the API reports them.
func (c *Client) SiteDrives(ctx context.Context, siteID string) ([]Drive, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/sites/%s/drives", siteID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dlr drivesListResponse
	if err := json.NewDecoder(resp.Body).Decode(&dlr); err != nil {
		return nil, fmt.Errorf("graph: decoding drives response: %w", err)
	}

	drives := make([]Drive, 0, len(dlr.Value))
	for i := range dlr.Value {
		drives = append(drives, dlr.Value[i].toDrive())
	}

	c.logger.Debug("listed site drives",
		slog.String("site_id", siteID),
		slog.Int("count", len(drives)),
	)

	return drives, nil
}
