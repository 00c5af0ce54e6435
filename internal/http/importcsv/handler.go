package importcsv

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/importer"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
	}
}

// Routes expects to be mounted below a path carrying the {id} tender param.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported     int                  `json:"imported"`
	Transactions []ledger.Transaction `json:"transactions"`
	respond.SaveStatus
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, res, err := h.ledgerSvc.ImportTransactions(r.Context(), tenderID, rows)
	if err != nil {
		respond.Error(w, err)
		return
	}

	slog.Info("imported transactions", "tender", tenderID, "count", len(txs), "saved", res.Saved())

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(txs),
		Transactions: txs,
		SaveStatus:   respond.NewSaveStatus(res),
	})
}
