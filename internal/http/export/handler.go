package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/export"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.download)
}

type exportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req exportRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	var (
		filter receipt.ListFilter
		err    error
	)

	if filter.From, err = respond.ParseTime("start_date", req.StartDate); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.To, err = respond.ParseTime("end_date", req.EndDate); err != nil {
		respond.Error(w, r, err)
		return
	}

	// Buffered so a failed listing still gets a JSON error instead of a torn zip.
	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), userID, filter, &buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(filter)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Receipt-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "user_id", userID, "error", err)
	}
}
