// Copyright 2025 Pullboard, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api exposes the review dashboard over HTTP: the pull request
// queue, the configuration summary, and preference reads and updates.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/internal/prefs"
	"github.com/pullboardhq/pullboard/internal/service"
)

// PullService is the retrieval surface the handler needs.
// *service.Service satisfies it.
type PullService interface {
	PullRequests(ctx context.Context, force bool) (*service.Result, error)
	Config() github.ConfigSummary
	Invalidate()
}

// PreferenceStore combines the read and write preference capabilities.
type PreferenceStore interface {
	prefs.View
	prefs.Mutator
}

type Handler struct {
	svc   PullService
	store PreferenceStore
	log   *zap.Logger
}

func NewHandler(svc PullService, store PreferenceStore, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, store: store, log: logger}
}

// NewRouter assembles the full middleware chain and routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(h.log))
	r.Use(Recoverer(h.log))
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *chi.Mux, h *Handler) {
	r.Get("/api/pulls", withTimeout(h.getPulls, 60*time.Second))
	r.Get("/api/config", withTimeout(h.getConfig, 5*time.Second))
	r.Get("/api/preferences", withTimeout(h.getPreferences, 5*time.Second))
	r.Put("/api/preferences", withTimeout(h.putPreferences, 5*time.Second))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
}

func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

func (h *Handler) getPulls(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"

	result, err := h.svc.PullRequests(r.Context(), force)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Config())
}

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Preferences()
	if err != nil {
		h.log.Error("failed to read preferences", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "preference_store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) putPreferences(w http.ResponseWriter, r *http.Request) {
	var p prefs.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be a preference document")
		return
	}
	if err := prefs.Validate(p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_preferences", err.Error())
		return
	}
	if err := h.store.SetPreferences(p); err != nil {
		h.log.Error("failed to persist preferences", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "preference_store_error", err.Error())
		return
	}

	// Preference changes take effect on the next read.
	h.svc.Invalidate()
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *github.APIError
	switch {
	case errors.Is(err, pberrors.ErrNotConfigured):
		writeError(w, http.StatusConflict, "not_configured",
			"a GitHub token and username must be configured before fetching pull requests")
	case errors.Is(err, pberrors.ErrInvalidToken):
		writeError(w, http.StatusBadGateway, "invalid_token",
			"GitHub rejected the configured token")
	case errors.Is(err, pberrors.ErrRateLimit):
		writeError(w, http.StatusBadGateway, "rate_limited",
			"GitHub API rate limit exceeded")
	case errors.As(err, &apiErr):
		h.log.Warn("upstream API error", zap.Int("status", apiErr.StatusCode))
		writeError(w, http.StatusBadGateway, "upstream_error", apiErr.Error())
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", "retrieval timed out")
	default:
		h.log.Error("retrieval failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}
