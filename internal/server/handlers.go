package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/teemow/meetinvite/internal/google"
	"github.com/teemow/meetinvite/internal/invite"
	"github.com/teemow/meetinvite/internal/logging"
)

// maxRequestBody bounds the size of a create request.
const maxRequestBody = 1 << 20

// Invitations is the application service behind the HTTP routes.
type Invitations interface {
	BeginAuthorization(state string) string
	CompleteAuthorization(ctx context.Context, code string) (*google.Authorization, error)
	CreateEvent(ctx context.Context, req invite.CreateEventRequest) (*invite.CreatedEvent, error)
}

// LoginResponse is returned by the OAuth redirect route.
type LoginResponse struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// CreateEventResponse is returned by the create route.
type CreateEventResponse struct {
	Message   string `json:"message"`
	EventLink string `json:"eventLink"`
}

type handlers struct {
	svc      Invitations
	logger   *slog.Logger
	newState func() string
}

func (h *handlers) beginAuthorization(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.svc.BeginAuthorization(h.newState()), http.StatusFound)
}

func (h *handlers) completeAuthorization(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if providerErr := query.Get("error"); providerErr != "" {
		h.logger.Warn("authorization denied by provider", slog.String("reason", providerErr))
	}

	auth, err := h.svc.CompleteAuthorization(r.Context(), query.Get("code"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:   MessageLoginSuccess,
		UserID:    auth.UserID,
		UserName:  auth.Name,
		UserEmail: auth.Email,
	})
}

func (h *handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req invite.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, invite.E(invite.KindInvalidRequest, "server.createEvent", fmt.Errorf("decode body: %w", err)))
		return
	}

	created, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateEventResponse{
		Message:   MessageEventCreated,
		EventLink: created.EventLink,
	})
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := TranslateError(err)
	h.logger.Info("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("kind", invite.KindOf(err).String()),
		logging.Err(err))
	writeError(w, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
