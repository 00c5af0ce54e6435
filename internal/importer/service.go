package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tenderbook/internal/importer/csvimport"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: csvimport.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]ledger.Transaction, error) {
	var importer Importer

	switch format {
	case FormatAuto, "":
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
