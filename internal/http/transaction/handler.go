package transaction

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Handler struct {
	svc      *ledger.Service
	pageSize int
}

// NewHandler creates a handler listing pageSize transactions per page unless
// the request asks otherwise.
func NewHandler(svc *ledger.Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := respond.IntQuery(r, "page", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	size, err := respond.IntQuery(r, "page_size", h.pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()

	result := ledger.QueryTransactions(h.svc.Snapshot().Transactions, ledger.TransactionQuery{
		TenderID: q.Get("tender"),
		Search:   q.Get("q"),
		Page:     page,
		PageSize: size,
	})

	respond.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Transaction(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tx)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ledger.Transaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, res, err := h.svc.SaveTransaction(r.Context(), req, "")
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toMutationResponse(&tx, res))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req ledger.Transaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, res, err := h.svc.SaveTransaction(r.Context(), req, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMutationResponse(&tx, res))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMutationResponse(nil, res))
}
