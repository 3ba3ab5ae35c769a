package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
)

const maxTopProducts = 100

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/spending-trends", h.spendingTrends)
	r.Get("/category-breakdown", h.categoryBreakdown)
	r.Get("/top-products", h.topProducts)
	r.Get("/shopping-patterns", h.shoppingPatterns)
	r.Get("/sustainability-score", h.sustainability)
	r.Get("/budget-analysis", h.budgetAnalysis)
}

func (h *Handler) spendingTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	trend, err := h.svc.SpendingTrends(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTrendResponse(trend))
}

func (h *Handler) categoryBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	cats, err := h.svc.CategoryBreakdown(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"categories": toCategoryResponses(cats)})
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	limit, err := respond.QueryInt(r, "limit", analytics.DefaultTopProducts)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if limit < 1 || limit > maxTopProducts {
		respond.Error(w, r, apperr.Invalid("limit", "must be between 1 and 100"))
		return
	}

	products, err := h.svc.TopProducts(r.Context(), userID, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"top_products": toProductResponses(products)})
}

func (h *Handler) shoppingPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.ShoppingPatterns(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPatternsResponse(p))
}

func (h *Handler) sustainability(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sustainability(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSustainabilityResponse(s))
}

func (h *Handler) budgetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	as, err := h.svc.BudgetAnalysis(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"budget_analysis": toAnalysisResponses(as)})
}
