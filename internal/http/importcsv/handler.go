package importcsv

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/importer"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc  *importer.Service
	receiptSvc *receipt.Service
}

func NewHandler(importSvc *importer.Service, receiptSvc *receipt.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		receiptSvc: receiptSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
}

type itemDTO struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Category    string  `json:"category"`
}

type previewResponse struct {
	Profile string    `json:"profile"`
	Charset string    `json:"charset"`
	Skipped int       `json:"skipped"`
	Total   float64   `json:"total"`
	Items   []itemDTO `json:"items"`
}

type importResponse struct {
	Message   string          `json:"message"`
	ReceiptID string          `json:"receipt_id"`
	Imported  int             `json:"imported"`
	Preview   previewResponse `json:"preview"`
}

// parse reads the "file" form field. It writes the error response itself.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (*importer.Result, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return nil, false
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		if apperr.IsValidation(err) {
			respond.Error(w, r, err)
			return nil, false
		}

		respond.Message(w, http.StatusBadRequest, err.Error())

		return nil, false
	}

	return res, true
}

// preview parses the upload without storing anything.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := respond.UserID(w, r); !ok {
		return
	}

	res, ok := h.parse(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toPreview(res))
}

// importCSV stores the parsed items as one receipt. store_name is required;
// purchase_date defaults to now and total_amount to the sum of the items.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	res, ok := h.parse(w, r)
	if !ok {
		return
	}

	storeName := strings.TrimSpace(r.FormValue("store_name"))
	if storeName == "" {
		respond.Error(w, r, apperr.Invalid("store_name", "required"))
		return
	}

	purchased, err := respond.ParseTime("purchase_date", r.FormValue("purchase_date"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(res.Items) == 0 {
		respond.Error(w, r, apperr.Invalid("file", "no receipt items found"))
		return
	}

	preview := toPreview(res)

	total := preview.Total
	if s := strings.TrimSpace(r.FormValue("total_amount")); s != "" {
		if total, err = strconv.ParseFloat(s, 64); err != nil {
			respond.Error(w, r, apperr.Invalid("total_amount", "must be a number"))
			return
		}
	}

	rec, err := h.receiptSvc.Create(r.Context(), userID, receipt.CreateParams{
		StoreName:    storeName,
		TotalAmount:  total,
		PurchaseDate: purchased,
		Items:        res.Items,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Message:   "Receipt imported successfully",
		ReceiptID: rec.ID.String(),
		Imported:  len(rec.Items),
		Preview:   preview,
	})
}

func toPreview(res *importer.Result) previewResponse {
	resp := previewResponse{
		Profile: res.Profile,
		Charset: res.Charset,
		Skipped: res.Skipped,
		Total:   res.Total(),
		Items:   make([]itemDTO, 0, len(res.Items)),
	}

	for _, it := range res.Items {
		resp.Items = append(resp.Items, itemDTO{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Category:    it.Category,
		})
	}

	return resp
}
