package budget

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	TotalBudget float64 `json:"total_budget" validate:"gte=0"`
	SpentAmount float64 `json:"spent_amount" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=100"`
	Period      string  `json:"period"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req createBudgetRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	start, err := respond.ParseTime("start_date", req.StartDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	end, err := respond.ParseTime("end_date", req.EndDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), userID, budget.CreateParams{
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		SpentAmount: req.SpentAmount,
		Category:    req.Category,
		Period:      budget.Period(req.Period),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Budget created successfully",
		"budget":  toResponse(b),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"budgets": toResponseList(budgets)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"budget": toResponse(b)})
}

type updateBudgetRequest struct {
	Name        *string  `json:"name,omitempty"`
	TotalBudget *float64 `json:"total_budget,omitempty" validate:"omitnil,gte=0"`
	SpentAmount *float64 `json:"spent_amount,omitempty" validate:"omitnil,gte=0"`
	Category    *string  `json:"category,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := budget.UpdateParams{
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		SpentAmount: req.SpentAmount,
		Category:    req.Category,
	}

	if req.EndDate != nil {
		end, err := respond.ParseTime("end_date", *req.EndDate)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.EndDate = end
	}

	b, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Budget updated successfully",
		"budget":  toResponse(b),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Budget deleted successfully"})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"summary": toSummaryResponse(s)})
}
