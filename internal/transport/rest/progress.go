package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
	"github.com/akulichev/coderecall-backend/internal/service/schedule"
)

type scheduleService interface {
	Learn(ctx context.Context, input schedule.LearnInput) (domain.ProgressRecord, error)
	Review(ctx context.Context, input schedule.ReviewInput) (domain.ProgressRecord, error)
	Undo(ctx context.Context, input schedule.UndoInput) (domain.ProgressRecord, error)
	Retime(ctx context.Context, input schedule.RetimeInput) (domain.ProgressRecord, error)
	ClearProgress(ctx context.Context) (int, error)
	UpsertSolution(ctx context.Context, input schedule.SolutionInput) (domain.ProgressRecord, error)
	DeleteSolution(ctx context.Context, problemID, solutionID string) (domain.ProgressRecord, error)
}

// ProgressHandler serves the scheduling operations.
type ProgressHandler struct {
	svc scheduleService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc scheduleService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger}
}

type eventRequest struct {
	Plan string     `json:"plan"`
	Date *time.Time `json:"date,omitempty"`
}

// Learn handles POST /api/problems/{id}/learn.
func (h *ProgressHandler) Learn(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	input := schedule.LearnInput{ProblemID: r.PathValue("id"), Plan: req.Plan}
	if req.Date != nil {
		input.Now = *req.Date
	}

	rec, err := h.svc.Learn(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Review handles POST /api/problems/{id}/review.
func (h *ProgressHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	input := schedule.ReviewInput{ProblemID: r.PathValue("id"), Plan: req.Plan}
	if req.Date != nil {
		input.Now = *req.Date
	}

	rec, err := h.svc.Review(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type undoRequest struct {
	Kind domain.EventKind `json:"kind"`
	Date time.Time        `json:"date"`
}

// Undo handles POST /api/problems/{id}/undo.
func (h *ProgressHandler) Undo(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	rec, err := h.svc.Undo(r.Context(), schedule.UndoInput{
		ProblemID: r.PathValue("id"),
		Kind:      req.Kind,
		Date:      req.Date,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type retimeRequest struct {
	Kind    domain.EventKind `json:"kind"`
	OldDate time.Time        `json:"oldDate"`
	NewDate time.Time        `json:"newDate"`
}

// Retime handles POST /api/problems/{id}/retime.
func (h *ProgressHandler) Retime(w http.ResponseWriter, r *http.Request) {
	var req retimeRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	rec, err := h.svc.Retime(r.Context(), schedule.RetimeInput{
		ProblemID: r.PathValue("id"),
		Kind:      req.Kind,
		OldDate:   req.OldDate,
		NewDate:   req.NewDate,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Clear handles POST /api/progress/clear.
func (h *ProgressHandler) Clear(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ClearProgress(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cleared": count})
}

type solutionRequest struct {
	SolutionID string             `json:"solutionId,omitempty"`
	Title      string             `json:"title"`
	Notes      string             `json:"notes"`
	Link       string             `json:"link"`
	Tags       []string           `json:"tags"`
	Codes      []domain.CodeBlock `json:"codes"`
}

// UpsertSolution handles PUT /api/problems/{id}/solutions.
func (h *ProgressHandler) UpsertSolution(w http.ResponseWriter, r *http.Request) {
	var req solutionRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	rec, err := h.svc.UpsertSolution(r.Context(), schedule.SolutionInput{
		ProblemID:  r.PathValue("id"),
		SolutionID: req.SolutionID,
		Title:      req.Title,
		Notes:      req.Notes,
		Link:       req.Link,
		Tags:       req.Tags,
		Codes:      req.Codes,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteSolution handles DELETE /api/problems/{id}/solutions/{solutionId}.
func (h *ProgressHandler) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.DeleteSolution(r.Context(), r.PathValue("id"), r.PathValue("solutionId"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// decodeBody decodes a JSON body, tolerating an empty one. Returns false
// after writing the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, log, domain.NewValidationError("body", "invalid JSON"))
		return false
	}
	return true
}
