package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	name string
	db   Pinger
}

func NewHandler(name string, db Pinger) *Handler {
	return &Handler{name: name, db: db}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.health)
}

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "healthy",
		Message:  h.name + " API is running",
		Database: "up",
	}

	if err := h.db.PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"

		respond.JSON(w, http.StatusServiceUnavailable, resp)

		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
