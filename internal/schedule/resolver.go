package schedule

import (
	"context"
	"log/slog"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
)

// fallbackSiteName is probed when the configured site name does not
// resolve. It is the site name the schedule has historically lived under,
// kept as a fixed fallback so a renamed configuration does not take the
// display down.
const fallbackSiteName = "AssembleDisplay"

// siteCandidate is one name to probe during site resolution. An empty
// name means the hostname's root site.
type siteCandidate struct {
	Name string
}

func (c siteCandidate) label() string {
	if c.Name == "" {
		return "(root site)"
	}

	return c.Name
}

// siteCandidates builds the probe list: the configured name first, then
// the fixed fallback, then the root site as last resort. Duplicates
// collapse so a configuration that names the fallback probes it once.
func siteCandidates(configured string) []siteCandidate {
	seen := make(map[string]bool)

	var cands []siteCandidate

	for _, name := range []string{configured, fallbackSiteName} {
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true

		cands = append(cands, siteCandidate{Name: name})
	}

	return append(cands, siteCandidate{})
}

// resolvedSite is a site that answered a candidate probe.
type resolvedSite struct {
	graph.Site

	candidate siteCandidate
}

// resolveSites probes every candidate in order and returns those that
// resolved, preserving probe order. A candidate that fails to resolve is
// skipped, not fatal; later tiers may need any site that answered. Only
// zero resolutions across the whole list is an error.
func resolveSites(ctx context.Context, client *graph.Client, hostname string, cands []siteCandidate, logger *slog.Logger) ([]resolvedSite, error) {
	var sites []resolvedSite

	for _, cand := range cands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			site *graph.Site
			err  error
		)

		if cand.Name == "" {
			site, err = client.RootSite(ctx, hostname)
		} else {
			site, err = client.SiteByName(ctx, hostname, cand.Name)
		}

		if err != nil {
			logger.Debug("site candidate did not resolve",
				slog.String("candidate", cand.label()),
				slog.String("error", err.Error()),
			)

			continue
		}

		logger.Debug("site resolved",
			slog.String("candidate", cand.label()),
			slog.String("site_id", site.ID),
			slog.String("site_name", site.Name),
		)

		sites = append(sites, resolvedSite{Site: *site, candidate: cand})
	}

	if len(sites) == 0 {
		labels := make([]string, 0, len(cands))
		for _, cand := range cands {
			labels = append(labels, cand.label())
		}

		return nil, &SiteNotFoundError{Hostname: hostname, Candidates: labels}
	}

	logger.Info("site resolution complete",
		slog.Int("candidates", len(cands)),
		slog.Int("resolved", len(sites)),
	)

	return sites, nil
}
