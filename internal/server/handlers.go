package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/schedule"
)

const (
	downloadPath = "/api/download-schedule"

	// The display client is a static page served from a different
	// origin; the schedule is readable by anyone who can reach this
	// service.
	corsOrigin = "*"
)

type healthEndpoints struct {
	Health       string `json:"health"`
	DownloadFile string `json:"downloadFile"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Endpoints healthEndpoints `json:"endpoints"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "assemble display schedule service is running",
		Endpoints: healthEndpoints{
			Health:       "/",
			DownloadFile: downloadPath,
		},
	})
}

// handleDownloadSchedule runs the full pipeline for each request. The
// response is either the complete spreadsheet or a JSON error, never a
// mix: content is fully buffered before the first byte is written.
func (s *Server) handleDownloadSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)

	logger := s.logger.With(slog.String("request_id", reqID))

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	logger.Info("download request", slog.String("remote", r.RemoteAddr))

	content, err := s.pipeline.Run(ctx, logger)
	if err != nil {
		s.writeError(w, logger, err)

		return
	}

	w.Header().Set("Content-Type", content.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Bytes)))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": content.FileName}))

	if _, err := w.Write(content.Bytes); err != nil {
		logger.Warn("writing response", slog.String("error", err.Error()))
	}
}

// writeError logs full diagnostic context server-side and sends the
// caller a 500 with only the top-level message. The detail field, the
// flattened error chain, is withheld in production.
func (s *Server) writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	attrs := []any{slog.String("error", err.Error())}

	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs,
			slog.Int("store_status", apiErr.StatusCode),
			slog.String("store_request_id", apiErr.RequestID),
		)
	}

	var authErr *graph.AuthError
	if errors.As(err, &authErr) {
		attrs = append(attrs,
			slog.Int("token_status", authErr.StatusCode),
			slog.String("token_body", authErr.Body),
		)
	}

	logger.Error("schedule request failed", attrs...)

	resp := errorResponse{Error: topLevelMessage(err)}
	if !s.cfg.Production() {
		resp.Detail = err.Error()
	}

	writeJSON(w, http.StatusInternalServerError, resp)
}

// topLevelMessage maps pipeline failures to the caller-facing message.
// The not-found errors surface verbatim; they already say what was
// searched and how widely. Everything else gets a stage label and the
// log keeps the specifics.
func topLevelMessage(err error) string {
	var authErr *graph.AuthError
	if errors.As(err, &authErr) {
		return "authentication with the document store failed"
	}

	var siteErr *schedule.SiteNotFoundError
	if errors.As(err, &siteErr) {
		return siteErr.Error()
	}

	var notFound *schedule.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}

	var dlErr *schedule.DownloadError
	if errors.As(err, &dlErr) {
		return "downloading the schedule file failed"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "schedule request timed out"
	}

	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
