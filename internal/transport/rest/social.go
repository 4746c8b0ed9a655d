package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

type socialService interface {
	Favorite(ctx context.Context, entryID uuid.UUID) error
	Unfavorite(ctx context.Context, entryID uuid.UUID) error
	ListFavorites(ctx context.Context) ([]domain.Entry, error)
	ListRecent(ctx context.Context) ([]domain.Entry, error)
	AddComment(ctx context.Context, entryID uuid.UUID, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error)
	UpvoteComment(ctx context.Context, commentID uuid.UUID) (int, error)
}

// SocialHandler serves favorites, recent views and comments.
type SocialHandler struct {
	svc      socialService
	audioURL audioURLFunc
	log      *slog.Logger
}

// NewSocialHandler creates a SocialHandler.
func NewSocialHandler(svc socialService, audioURL func(ref string) string, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{svc: svc, audioURL: audioURL, log: logger.With("handler", "social")}
}

type commentRequest struct {
	Text string `json:"text"`
}

type upvotesResponse struct {
	Upvotes int `json:"upvotes"`
}

// Favorite handles POST /entries/{id}/favorite.
func (h *SocialHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Favorite)
}

// Unfavorite handles POST /entries/{id}/unfavorite.
func (h *SocialHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.Unfavorite)
}

func (h *SocialHandler) toggle(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) error) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Favorites handles GET /me/favorites.
func (h *SocialHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListFavorites(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponses(entries, h.audioURL))
}

// Recent handles GET /me/recent.
func (h *SocialHandler) Recent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListRecent(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponses(entries, h.audioURL))
}

// Comments handles GET /entries/{id}/comments.
func (h *SocialHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	comments, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// AddComment handles POST /entries/{id}/comments.
func (h *SocialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.AddComment(r.Context(), id, req.Text)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

// UpvoteComment handles POST /comments/{id}/upvote.
func (h *SocialHandler) UpvoteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	upvotes, err := h.svc.UpvoteComment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, upvotesResponse{Upvotes: upvotes})
}
