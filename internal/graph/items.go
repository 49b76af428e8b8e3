package graph

import "time"

// driveItemResponse mirrors the Graph API driveItem JSON. The legacy
// surface on the tenant host answers with the same shape, which is what
// makes its item and drive ids interchangeable with the Graph endpoints.
// Unexported; callers use Item via toItem() normalization.
type driveItemResponse struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Size                 int64      `json:"size"`
	LastModifiedDateTime string     `json:"lastModifiedDateTime"`
	ParentReference      *parentRef `json:"parentReference"`
	File                 *fileFacet `json:"file"`
}

type parentRef struct {
	ID      string `json:"id"`
	DriveID string `json:"driveId"`
}

type fileFacet struct {
	MimeType string `json:"mimeType"`
}

// toItem normalizes a driveItem response into our Item type.
// Nil-safe for the optional parent reference and file facet.
func (d *driveItemResponse) toItem() Item {
	item := Item{
		ID:         d.ID,
		Name:       d.Name,
		Size:       d.Size,
		ModifiedAt: parseTime(d.LastModifiedDateTime),
	}

	if d.ParentReference != nil {
		item.DriveID = d.ParentReference.DriveID
	}

	if d.File != nil {
		item.MimeType = d.File.MimeType
	}

	return item
}

// parseTime parses an RFC3339 timestamp, returning the zero time for empty
// or malformed input. The pipeline never branches on timestamps; they exist
// for diagnostics, so a missing one is not worth failing a response over.
func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t
}
