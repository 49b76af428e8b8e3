package graph

import "time"

// Site is a SharePoint site resolved from a candidate name.
type Site struct {
	ID     string
	Name   string
	WebURL string
}

// Drive is a document library attached to a site. The schedule pipeline
// calls these "content containers"; the API calls them drives.
type Drive struct {
	ID        string
	Name      string
	DriveType string
}

// Item is a drive item normalized from a Graph or legacy API response.
// Callers never see raw API data. ModifiedAt is the zero time when the
// response omitted or mangled the timestamp.
type Item struct {
	ID         string
	Name       string
	DriveID    string
	Size       int64
	MimeType   string
	ModifiedAt time.Time
}
