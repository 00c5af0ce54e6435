package tender

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/next-id", h.nextID)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/next-txn-id", h.nextTxnID)
}

type mutationResponse struct {
	Tender *ledger.Tender `json:"tender,omitempty"`
	respond.SaveStatus
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := respond.IntQuery(r, "page", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	size, err := respond.IntQuery(r, "page_size", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenders := ledger.SearchTenders(h.svc.Snapshot().Tenders, r.URL.Query().Get("q"))

	respond.JSON(w, http.StatusOK, ledger.Paginate(tenders, page, size))
}

func (h *Handler) nextID(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"tenderId": h.svc.NextTenderID()})
}

func (h *Handler) nextTxnID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.svc.Tender(id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"txnId": h.svc.NextTxnID(id)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Tender(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, t)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, editingID string, status int) {
	var req ledger.Tender
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, res, err := h.svc.SaveTender(r.Context(), req, editingID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, status, mutationResponse{Tender: &t, SaveStatus: respond.NewSaveStatus(res)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteTender(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{SaveStatus: respond.NewSaveStatus(res)})
}
