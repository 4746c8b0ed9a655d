package rest

import (
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/internal/service/entry"
)

const exportFilename = "local-language-archive.csv"

var exportHeader = []string{
	"language", "word", "meaning", "example", "category", "tags", "votes", "avg_rating", "createdAt",
}

type entryService interface {
	Create(ctx context.Context, input entry.CreateInput) (*domain.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	Update(ctx context.Context, id uuid.UUID, input entry.UpdateInput) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResolvePublic(ctx context.Context, token string) (*domain.PublicEntry, error)
	WordOfDay(ctx context.Context) (*domain.Entry, error)
	ExportRows(ctx context.Context) ([]domain.ExportRow, error)
}

// EntryHandler serves entry CRUD, share links, word of the day and export.
type EntryHandler struct {
	svc       entryService
	audioURL  audioURLFunc
	maxUpload int64
	log       *slog.Logger
}

// NewEntryHandler creates an EntryHandler. audioURL may be nil when stored
// references are not publicly addressable.
func NewEntryHandler(svc entryService, audioURL func(ref string) string, maxUpload int64, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		svc:       svc,
		audioURL:  audioURL,
		maxUpload: maxUpload,
		log:       logger.With("handler", "entries"),
	}
}

// List handles GET /entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.EntryFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Language: q.Get("language"),
	}

	var errs []domain.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		writeServiceError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponses(entries, h.audioURL))
}

// Get handles GET /entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e, h.audioURL))
}

// Create handles POST /entries. Accepts multipart (with an optional audio
// file), urlencoded or JSON bodies.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.Close()

	input, err := form.createInput()
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	e, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(e, h.audioURL))
}

// Update handles PUT /entries/{id}. Only fields present in the body change.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.Close()

	input, err := form.updateInput()
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e, h.audioURL))
}

// Delete handles DELETE /entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Public handles GET /public/{token}.
func (h *EntryHandler) Public(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ResolvePublic(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublicEntryResponse(p, h.audioURL))
}

type wordOfDayResponse struct {
	OK    bool           `json:"ok"`
	Entry *entryResponse `json:"entry,omitempty"`
}

// WordOfDay handles GET /word-of-day.
func (h *EntryHandler) WordOfDay(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.WordOfDay(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if e == nil {
		writeJSON(w, http.StatusOK, wordOfDayResponse{OK: false})
		return
	}
	resp := toEntryResponse(e, h.audioURL)
	writeJSON(w, http.StatusOK, wordOfDayResponse{OK: true, Entry: &resp})
}

// ExportCSV handles GET /export/csv.
func (h *EntryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ExportRows(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, row := range rows {
		_ = cw.Write([]string{
			row.Language,
			row.Word,
			row.Meaning,
			row.Example,
			row.Category,
			domain.EncodeStringList(row.Tags),
			strconv.Itoa(row.Votes),
			strconv.FormatFloat(row.AvgRating, 'f', -1, 64),
			row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.ErrorContext(r.Context(), "csv export write failed", slog.String("error", err.Error()))
	}
}

func (h *EntryHandler) parseForm(w http.ResponseWriter, r *http.Request) (*entryForm, bool) {
	form, err := parseEntryForm(w, r, h.maxUpload)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return form, true
}
