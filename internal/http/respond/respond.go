// Package respond holds the response helpers shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

// SaveStatus reports whether a mutation reached the persistence backend.
type SaveStatus struct {
	Saved     bool   `json:"saved"`
	SaveError string `json:"saveError"`
}

func NewSaveStatus(res ledger.SaveResult) SaveStatus {
	status := SaveStatus{Saved: res.Saved()}
	if res.Err != nil {
		status.SaveError = res.Err.Error()
	}

	return status
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps ledger errors to status codes. Anything unrecognised is a 500
// and is logged.
func Error(w http.ResponseWriter, err error) {
	var (
		verr *ledger.ValidationError
		derr *ledger.DuplicateIDError
	)

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Message, http.StatusBadRequest)
	case errors.As(err, &derr):
		http.Error(w, derr.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// IntQuery reads an optional integer query parameter, returning def when it is
// absent.
func IntQuery(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return n, nil
}
