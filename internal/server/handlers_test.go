package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/config"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/schedule"
)

var testBytes = []byte("PK\x03\x04 schedule spreadsheet bytes")

// stubRunner is a canned Runner. With block set it waits for the request
// context to expire, standing in for a stalled upstream.
type stubRunner struct {
	content *schedule.Content
	err     error
	block   bool

	calls atomic.Int32
}

func (r *stubRunner) Run(ctx context.Context, _ *slog.Logger) (*schedule.Content, error) {
	r.calls.Add(1)

	if r.block {
		<-ctx.Done()

		return nil, ctx.Err()
	}

	if r.err != nil {
		return nil, r.err
	}

	return r.content, nil
}

func scheduleContent() *schedule.Content {
	return &schedule.Content{
		Bytes:    testBytes,
		MimeType: schedule.XLSXMimeType,
		FileName: "AssembleSchedule.xlsx",
		Resolution: schedule.Resolution{
			Strategy: "default-drive-search",
			Site:     "Assemble",
			Handle:   schedule.Handle{DriveID: "drive-1", ItemID: "item-1"},
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, runner Runner) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(New(cfg, runner, slog.Default()).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, config.DefaultConfig(), &stubRunner{})

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var health healthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Message)
	assert.Equal(t, "/", health.Endpoints.Health)
	assert.Equal(t, "/api/download-schedule", health.Endpoints.DownloadFile)
}

func TestUnknownPath(t *testing.T) {
	srv := newTestServer(t, config.DefaultConfig(), &stubRunner{})

	resp, _ := get(t, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadSchedule_WrongMethod(t *testing.T) {
	srv := newTestServer(t, config.DefaultConfig(), &stubRunner{})

	resp, err := http.Post(srv.URL+downloadPath, "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDownloadSchedule_Success(t *testing.T) {
	runner := &stubRunner{content: scheduleContent()}
	srv := newTestServer(t, config.DefaultConfig(), runner)

	resp, body := get(t, srv.URL+downloadPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, schedule.XLSXMimeType, resp.Header.Get("Content-Type"))
	assert.Equal(t, testBytes, body, "payload passes through byte for byte")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "AssembleSchedule.xlsx")

	reqID := resp.Header.Get("X-Request-ID")
	_, err := uuid.Parse(reqID)
	assert.NoError(t, err, "X-Request-ID is a uuid, got %q", reqID)

	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestDownloadSchedule_RequestIDVaries(t *testing.T) {
	srv := newTestServer(t, config.DefaultConfig(), &stubRunner{content: scheduleContent()})

	first, _ := get(t, srv.URL+downloadPath)
	second, _ := get(t, srv.URL+downloadPath)
	assert.NotEqual(t, first.Header.Get("X-Request-ID"), second.Header.Get("X-Request-ID"))
}

func TestDownloadSchedule_NotFoundNamesFile(t *testing.T) {
	runner := &stubRunner{err: &schedule.NotFoundError{
		FileName:   "AssembleSchedule.xlsx",
		Sites:      2,
		Containers: 5,
	}}
	srv := newTestServer(t, config.DefaultConfig(), runner)

	resp, body := get(t, srv.URL+downloadPath)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Contains(t, errResp.Error, "AssembleSchedule.xlsx",
		"the caller learns which file was searched for")
	assert.NotEmpty(t, errResp.Detail, "development mode includes the error chain")
}

func TestDownloadSchedule_AuthFailure(t *testing.T) {
	runner := &stubRunner{err: &graph.AuthError{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"error":"invalid_client"}`,
	}}
	srv := newTestServer(t, config.DefaultConfig(), runner)

	resp, body := get(t, srv.URL+downloadPath)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "authentication with the document store failed", errResp.Error)
}

func TestDownloadSchedule_ProductionHidesDetail(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Environment = "production"

	runner := &stubRunner{err: &schedule.DownloadError{ItemID: "item-1", Err: graph.ErrServerError}}
	srv := newTestServer(t, cfg, runner)

	resp, body := get(t, srv.URL+downloadPath)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Contains(t, raw, "error")
	assert.NotContains(t, raw, "detail", "production responses carry no internals")

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "downloading the schedule file failed", errResp.Error)
	assert.NotContains(t, errResp.Error, "item-1")
}

func TestDownloadSchedule_Timeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Network.RequestTimeout = "50ms"

	srv := newTestServer(t, cfg, &stubRunner{block: true})

	resp, body := get(t, srv.URL+downloadPath)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "schedule request timed out", errResp.Error)
}

func TestTopLevelMessage_Fallback(t *testing.T) {
	assert.Equal(t, "internal error", topLevelMessage(assert.AnError))
}
