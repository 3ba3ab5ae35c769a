package receipt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	TotalPrice  float64 `json:"total_price" validate:"gte=0"`
	Category    string  `json:"category"`
}

type createReceiptRequest struct {
	StoreName    string        `json:"store_name" validate:"required,max=200"`
	TotalAmount  float64       `json:"total_amount" validate:"gte=0"`
	PurchaseDate string        `json:"purchase_date"`
	Items        []itemRequest `json:"items" validate:"dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req createReceiptRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	purchased, err := respond.ParseTime("purchase_date", req.PurchaseDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	params := receipt.CreateParams{
		StoreName:    req.StoreName,
		TotalAmount:  req.TotalAmount,
		PurchaseDate: purchased,
		Items:        make([]receipt.ItemParams, 0, len(req.Items)),
	}

	for _, it := range req.Items {
		params.Items = append(params.Items, receipt.ItemParams{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Category:    it.Category,
		})
	}

	rec, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Receipt created successfully",
		"receipt": toResponse(rec),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var (
		filter receipt.ListFilter
		err    error
	)

	if filter.From, err = respond.ParseTime("start_date", r.URL.Query().Get("start_date")); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.To, err = respond.ParseTime("end_date", r.URL.Query().Get("end_date")); err != nil {
		respond.Error(w, r, err)
		return
	}

	receipts, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"receipts": toResponseList(receipts)})
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

	rec, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"receipt": toResponse(rec)})
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

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Receipt deleted successfully"})
}
