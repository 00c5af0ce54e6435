package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tenderbook/internal/export"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.report)
	r.Post("/download", h.download)
}

type exportRequest struct {
	TenderID string `json:"tenderId"`
	Query    string `json:"q"`
}

type reportResponse struct {
	ledger.Report
	Text string `json:"text"`
}

// decodeRequest accepts an empty body as "all tenders".
func decodeRequest(r *http.Request) (exportRequest, error) {
	var req exportRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return exportRequest{}, err
	}

	return req, nil
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report := h.svc.Report(req.TenderID, req.Query)

	respond.JSON(w, http.StatusOK, reportResponse{
		Report: report,
		Text:   export.RenderText(report, time.Now()),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s.zip\"", export.Filename(time.Now())))

	if err := h.svc.WriteZip(w, req.TenderID, req.Query); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
