package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
)

type Handler struct {
	svc *pricing.Service
}

func NewHandler(svc *pricing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/compare-prices", h.compare)
	r.Get("/price-alerts", h.listAlerts)
	r.Post("/price-alerts", h.createAlert)
	r.Get("/price-trends/{product}", h.trends)
	r.Get("/ml-predictions", h.predictions)
}

type compareRequest struct {
	Products []string `json:"products" validate:"max=50"`
}

func (h *Handler) compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Compare(r.Context(), req.Products)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, envelope{Message: "Price comparison completed", Data: toComparisonResponse(c)})
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	alerts, err := h.svc.Alerts(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, envelope{
		Message: "Price alerts retrieved successfully",
		Data:    toAlertStatusResponses(alerts),
	})
}

type createAlertRequest struct {
	ProductName string   `json:"product_name" validate:"required,max=200"`
	TargetPrice float64  `json:"target_price" validate:"required"`
	Stores      []string `json:"stores" validate:"required"`
	AlertType   string   `json:"alert_type" validate:"max=50"`
}

func (h *Handler) createAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req createAlertRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	a, err := h.svc.CreateAlert(r.Context(), userID, pricing.CreateAlertParams{
		ProductName: req.ProductName,
		TargetPrice: req.TargetPrice,
		Stores:      req.Stores,
		AlertType:   req.AlertType,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, envelope{
		Message: "Price alert created successfully",
		Data:    toAlertResponse(a),
	})
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Trends(chi.URLParam(r, "product"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, envelope{Message: "Price trends retrieved successfully", Data: toTrendResponse(t)})
}

func (h *Handler) predictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Predictions(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, envelope{
		Message: "ML predictions retrieved successfully",
		Data:    toPredictionsResponse(p),
	})
}
