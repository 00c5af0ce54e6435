package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Format string

const (
	// FormatAuto detects the layout from the header row.
	FormatAuto Format = "auto"
)

// Importer turns an uploaded file into unsaved transactions. IDs and the
// tender link are assigned when the batch is stored.
type Importer interface {
	Parse(r io.Reader) ([]ledger.Transaction, error)
}
