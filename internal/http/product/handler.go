package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
	"github.com/MrJamesThe3rd/bitebudget/internal/product"
)

type Handler struct {
	svc *product.Service
}

func NewHandler(svc *product.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the public catalog endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
	r.Post("/price-comparison", h.priceComparison)
}

// ProtectedRoutes mounts the endpoints that need a token.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Get("/recommendations", h.recommendations)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := respond.QueryInt(r, "page", 1)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	perPage, err := respond.QueryInt(r, "per_page", product.DefaultPerPage)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.List(r.Context(), product.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPageResponse(p))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

type comparisonRequest struct {
	Products []string `json:"products" validate:"required,min=1,max=50,dive,required"`
}

func (h *Handler) priceComparison(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"comparison": toComparisonResponses(pricing.CompareCatalog(req.Products)),
	})
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	if _, ok := respond.UserID(w, r); !ok {
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"recommendations": toRecommendationResponses(h.svc.Recommendations()),
	})
}
