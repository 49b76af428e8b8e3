// Package schedule resolves and retrieves the display schedule
// spreadsheet from SharePoint. The storage location is not reliably known
// in advance, so retrieval is a fallback cascade: a legacy fetch by
// configured item id when one exists, then a search of each resolved
// site's default document library, and finally a sweep across every
// library the site has. Each run is a fresh end-to-end pass; nothing is
// cached between requests.
package schedule

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/text/unicode/norm"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/config"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
)

// XLSXMimeType is the content type the schedule is served with.
const XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Content is a retrieved schedule document, fully buffered.
type Content struct {
	Bytes      []byte
	MimeType   string
	FileName   string
	Resolution Resolution
}

// Resolution records how the file was found: which strategy landed, on
// which site, and the handle it produced.
type Resolution struct {
	Strategy string
	Site     string
	Handle   Handle
}

// Credentials mints audience-scoped app-only credentials.
// *graph.CredentialProvider is the production implementation.
type Credentials interface {
	Acquire(ctx context.Context, scope string) (*graph.Credential, error)
}

// Pipeline holds the immutable configuration for schedule retrieval.
// It is safe for concurrent use: every Run works off its own credential,
// client, and search state.
type Pipeline struct {
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger

	hostname string
	siteName string
	fileName string
	fileID   string

	graphBaseURL  string
	legacyBaseURL string
}

// New builds a Pipeline from resolved configuration. The file name is
// normalized to NFC once here; SharePoint stores names in NFC, so a
// config pasted from a platform that composes differently still matches.
func New(cfg *config.Config, creds Credentials, httpClient *http.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		creds:         creds,
		httpClient:    httpClient,
		logger:        logger,
		hostname:      cfg.Hostname,
		siteName:      cfg.SiteName,
		fileName:      norm.NFC.String(cfg.FileName),
		fileID:        cfg.FileID,
		graphBaseURL:  graph.DefaultBaseURL,
		legacyBaseURL: "https://" + cfg.Hostname,
	}
}

// Run executes the full pipeline, resolution through download. The
// returned Content carries the whole payload; callers hand its bytes to
// the HTTP response untouched. Pass a request-scoped logger to tie
// pipeline logs to the request, or nil for the pipeline's own.
func (p *Pipeline) Run(ctx context.Context, logger *slog.Logger) (*Content, error) {
	r, resolution, err := p.resolve(ctx, logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if _, err := r.client.Download(ctx, resolution.Handle.DriveID, resolution.Handle.ItemID, &buf); err != nil {
		return nil, &DownloadError{ItemID: resolution.Handle.ItemID, Err: err}
	}

	r.logger.Info("schedule retrieved",
		slog.String("strategy", resolution.Strategy),
		slog.String("site", resolution.Site),
		slog.Int("bytes", buf.Len()),
	)

	return &Content{
		Bytes:      buf.Bytes(),
		MimeType:   XLSXMimeType,
		FileName:   p.fileName,
		Resolution: *resolution,
	}, nil
}

// Resolve runs resolution without downloading. The check command uses it
// to report where the schedule lives without pulling the bytes.
func (p *Pipeline) Resolve(ctx context.Context, logger *slog.Logger) (*Resolution, error) {
	_, resolution, err := p.resolve(ctx, logger)

	return resolution, err
}

func (p *Pipeline) resolve(ctx context.Context, logger *slog.Logger) (*run, *Resolution, error) {
	if logger == nil {
		logger = p.logger
	}

	// The Graph-audience credential comes first; an exchange the token
	// endpoint rejects fails the run before any store call is made.
	cred, err := p.creds.Acquire(ctx, graph.DefaultScope)
	if err != nil {
		return nil, nil, err
	}

	client := graph.NewClient(p.graphBaseURL, p.httpClient, cred, logger)
	r := &run{p: p, client: client, logger: logger}

	sites, err := resolveSites(ctx, client, p.hostname, siteCandidates(p.siteName), logger)
	if err != nil {
		return nil, nil, err
	}

	resolution, err := r.locate(ctx, sites)
	if err != nil {
		return nil, nil, err
	}

	return r, resolution, nil
}
