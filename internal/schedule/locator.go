package schedule

import (
	"context"
	"log/slog"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
)

// Handle identifies downloadable content: the drive plus the item in it.
// Handles are only ever built from successful store responses and live
// for the remainder of one run.
type Handle struct {
	DriveID string
	ItemID  string
}

// legacySiteCandidates lists the site name segments probed on the legacy
// surface. The root site has no site-scoped legacy path, so it is not a
// candidate here.
func legacySiteCandidates(configured string) []string {
	seen := make(map[string]bool)

	var names []string

	for _, name := range []string{configured, fallbackSiteName} {
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true

		names = append(names, name)
	}

	return names
}

// locateStrategy is one way of finding the schedule file. Strategies run
// in a fixed order and the first to land wins; a false return means
// "inconclusive, try the next one", regardless of why.
type locateStrategy struct {
	name string
	site string
	run  func(ctx context.Context) (Handle, bool)
}

// run carries the state of one pipeline execution. Nothing in it outlives
// the request that created it.
type run struct {
	p      *Pipeline
	client *graph.Client
	logger *slog.Logger

	legacy      *graph.Client
	legacyTried bool

	containersSearched int
}

// locate drives the strategy cascade and returns the first handle found.
// Exhaustion is the only error besides cancellation; individual strategy
// failures are swallowed as try-next.
func (r *run) locate(ctx context.Context, sites []resolvedSite) (*Resolution, error) {
	for _, s := range r.strategies(sites) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.logger.Debug("trying strategy",
			slog.String("strategy", s.name),
			slog.String("site", s.site),
		)

		handle, ok := s.run(ctx)
		if !ok {
			continue
		}

		r.logger.Info("schedule located",
			slog.String("strategy", s.name),
			slog.String("site", s.site),
			slog.String("drive_id", handle.DriveID),
			slog.String("item_id", handle.ItemID),
		)

		return &Resolution{Strategy: s.name, Site: s.site, Handle: handle}, nil
	}

	return nil, &NotFoundError{
		FileName:   r.p.fileName,
		Sites:      len(sites),
		Containers: r.containersSearched,
	}
}

// strategies builds the cascade: the legacy by-id tier first when a file
// id is configured, then per resolved site a default-container search
// followed by the exhaustive all-containers sweep, sites in resolution
// order.
func (r *run) strategies(sites []resolvedSite) []locateStrategy {
	var out []locateStrategy

	if r.p.fileID != "" {
		for _, name := range legacySiteCandidates(r.p.siteName) {
			out = append(out, locateStrategy{
				name: "legacy-id",
				site: name,
				run: func(ctx context.Context) (Handle, bool) {
					return r.legacyByID(ctx, name)
				},
			})
		}
	}

	for _, site := range sites {
		out = append(out, locateStrategy{
			name: "default-drive-search",
			site: site.Name,
			run: func(ctx context.Context) (Handle, bool) {
				return r.searchDefaultDrive(ctx, site)
			},
		})

		out = append(out, locateStrategy{
			name: "all-drives-search",
			site: site.Name,
			run: func(ctx context.Context) (Handle, bool) {
				return r.searchAllDrives(ctx, site)
			},
		})
	}

	return out
}

// legacyClient returns the client for the tenant-host legacy surface,
// minting the host-audience credential on first use. A failed exchange is
// remembered so later legacy candidates skip without re-asking, and it is
// never fatal: the legacy tier is inconclusive, the search tiers still
// run.
func (r *run) legacyClient(ctx context.Context) *graph.Client {
	if r.legacyTried {
		return r.legacy
	}

	r.legacyTried = true

	cred, err := r.p.creds.Acquire(ctx, graph.HostScope(r.p.hostname))
	if err != nil {
		r.logger.Warn("host-audience credential unavailable, skipping legacy tier",
			slog.String("error", err.Error()),
		)

		return nil
	}

	r.legacy = graph.NewClient(r.p.legacyBaseURL, r.p.httpClient, cred, r.logger)

	return r.legacy
}

func (r *run) legacyByID(ctx context.Context, siteName string) (Handle, bool) {
	client := r.legacyClient(ctx)
	if client == nil {
		return Handle{}, false
	}

	item, err := client.LegacyDriveItem(ctx, siteName, r.p.fileID)
	if err != nil {
		r.logger.Debug("legacy candidate failed",
			slog.String("site", siteName),
			slog.String("error", err.Error()),
		)

		return Handle{}, false
	}

	if item.ID == "" || item.DriveID == "" {
		r.logger.Debug("legacy response lacks usable ids", slog.String("site", siteName))

		return Handle{}, false
	}

	return Handle{DriveID: item.DriveID, ItemID: item.ID}, true
}

func (r *run) searchDefaultDrive(ctx context.Context, site resolvedSite) (Handle, bool) {
	drive, err := r.client.DefaultDrive(ctx, site.ID)
	if err != nil {
		r.logger.Debug("default container lookup failed",
			slog.String("site", site.Name),
			slog.String("error", err.Error()),
		)

		return Handle{}, false
	}

	return r.searchDrive(ctx, *drive)
}

func (r *run) searchAllDrives(ctx context.Context, site resolvedSite) (Handle, bool) {
	drives, err := r.client.SiteDrives(ctx, site.ID)
	if err != nil {
		r.logger.Debug("container enumeration failed",
			slog.String("site", site.Name),
			slog.String("error", err.Error()),
		)

		return Handle{}, false
	}

	for _, drive := range drives {
		if ctx.Err() != nil {
			return Handle{}, false
		}

		if handle, ok := r.searchDrive(ctx, drive); ok {
			return handle, true
		}
	}

	return Handle{}, false
}

// searchDrive runs the name search against one container and takes the
// first hit. Match semantics belong to the store; no local re-ranking.
func (r *run) searchDrive(ctx context.Context, drive graph.Drive) (Handle, bool) {
	r.containersSearched++

	items, err := r.client.SearchDriveItems(ctx, drive.ID, r.p.fileName)
	if err != nil {
		r.logger.Debug("container search failed",
			slog.String("drive_id", drive.ID),
			slog.String("error", err.Error()),
		)

		return Handle{}, false
	}

	if len(items) == 0 {
		return Handle{}, false
	}

	if len(items) > 1 {
		r.logger.Info("multiple matches, taking the first",
			slog.String("drive_id", drive.ID),
			slog.Int("hits", len(items)),
		)
	}

	hit := items[0]
	if hit.ID == "" {
		return Handle{}, false
	}

	driveID := hit.DriveID
	if driveID == "" {
		driveID = drive.ID
	}

	return Handle{DriveID: driveID, ItemID: hit.ID}, true
}
