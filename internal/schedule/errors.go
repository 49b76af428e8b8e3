package schedule

import (
	"fmt"
	"strings"
)

// SiteNotFoundError is returned when no site candidate resolved.
// Candidates holds the labels in the order they were probed.
type SiteNotFoundError struct {
	Hostname   string
	Candidates []string
}

func (e *SiteNotFoundError) Error() string {
	return fmt.Sprintf("schedule: no site resolved on %s (tried %s)",
		e.Hostname, strings.Join(e.Candidates, ", "))
}

// NotFoundError is returned when every tier across every resolved site
// was exhausted without a match. The counts tell operators how wide the
// search actually ran before giving up.
type NotFoundError struct {
	FileName   string
	Sites      int
	Containers int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schedule: file %q not found in any of %d containers across %d sites",
		e.FileName, e.Containers, e.Sites)
}

// DownloadError is returned when a located item's content could not be
// fetched. By this point resolution succeeded, so the handle was real;
// the wrapped error says what the content endpoint thought of it.
type DownloadError struct {
	ItemID string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("schedule: downloading item %s: %v", e.ItemID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
