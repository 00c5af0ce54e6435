package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Handler struct {
	svc      *ledger.Service
	pageSize int
}

func NewHandler(svc *ledger.Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type summaryResponse struct {
	Rows      []ledger.SummaryRow `json:"rows"`
	Totals    ledger.SummaryRow   `json:"totals"`
	Page      int                 `json:"page"`
	PageCount int                 `json:"pageCount"`
	Total     int                 `json:"total"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	page, err := respond.IntQuery(r, "page", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenderID := r.URL.Query().Get("tender")
	if tenderID == "" {
		tenderID = ledger.AllTenders
	}

	rows := h.svc.Summary(tenderID)
	p := ledger.Paginate(rows, page, h.pageSize)

	respond.JSON(w, http.StatusOK, summaryResponse{
		Rows:      p.Items,
		Totals:    ledger.SummaryTotals(rows),
		Page:      p.Page,
		PageCount: p.PageCount,
		Total:     p.Total,
	})
}
