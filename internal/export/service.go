package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const (
	CSVName  = "report.csv"
	TextName = "report.txt"

	reportTitle = "Tenders & Transactions Report"
)

var csvHeader = []string{
	"Tender ID", "Tender Name", "City", "Pincode", "Tender Value", "Tender Date",
	"Txn ID", "Description", "Type", "Vendor", "Amount", "Txn Date",
}

// Service renders tender reports as CSV and plain text.
type Service struct {
	ledger *ledger.Service
	now    func() time.Time
}

// NewService creates a new export Service.
func NewService(l *ledger.Service) *Service {
	return &Service{ledger: l, now: time.Now}
}

// Report builds the report for tenderID; an empty id selects every tender.
func (s *Service) Report(tenderID, query string) ledger.Report {
	if tenderID == "" {
		tenderID = ledger.AllTenders
	}

	return s.ledger.Report(tenderID, query)
}

// Filename is the base name used for downloads generated at t.
func Filename(t time.Time) string {
	return "Tenders_Transactions_" + t.In(ledger.IST).Format("2006-01-02")
}

// WriteCSV writes one row per transaction, prefixed with its tender's columns.
// Tenders without transactions get a single row with empty transaction cells.
func WriteCSV(w io.Writer, report ledger.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, g := range report.Groups {
		t := g.Tender
		tenderCols := []string{t.ID, t.Name, t.City, t.Pincode, t.Value.String(), t.Date.Display()}

		if len(g.Transactions) == 0 {
			if err := cw.Write(append(tenderCols, "", "", "", "", "", "")); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}

			continue
		}

		for _, tx := range g.Transactions {
			row := append(append([]string{}, tenderCols...),
				tx.ID, tx.Desc, tx.Type, tx.Vendor, tx.Amount.String(), tx.Date.Display())

			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// RenderText formats the report for printing: a header per tender, its
// transactions, and a credit/debit/net line.
func RenderText(report ledger.Report, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString(reportTitle + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s IST\n", generatedAt.In(ledger.IST).Format(ledger.DisplayLayout)))

	if len(report.Groups) == 0 {
		sb.WriteString("\nNo transactions found\n")
		return sb.String()
	}

	for _, g := range report.Groups {
		t := g.Tender

		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Tender ID: %s | Name: %s | City: %s\n", t.ID, t.Name, t.City))
		sb.WriteString(fmt.Sprintf("Pincode: %s | Value: %s | Date: %s\n", t.Pincode, t.Value.String(), t.Date.Display()))

		if len(g.Transactions) == 0 {
			sb.WriteString("  No transactions found\n")
		}

		for _, tx := range g.Transactions {
			sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s | %s | %s\n",
				tx.ID, tx.Desc, tx.Type, tx.Vendor, tx.Amount.String(), tx.Date.Display()))
		}

		sb.WriteString(fmt.Sprintf("Credit: %s | Debit: %s | Net: %s (%s)\n",
			g.Summary.TotalCredit.StringFixed(2), g.Summary.TotalDebit.StringFixed(2),
			g.Summary.NetAmount.StringFixed(2), g.Summary.Status))
	}

	return sb.String()
}

// ExportToDir writes report.csv and report.txt into dir and returns their paths.
func (s *Service) ExportToDir(tenderID, query, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := s.Report(tenderID, query)

	csvPath := filepath.Join(dir, CSVName)

	f, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	if err := WriteCSV(f, report); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing file: %w", err)
	}

	textPath := filepath.Join(dir, TextName)
	if err := os.WriteFile(textPath, []byte(RenderText(report, s.now())), 0o644); err != nil {
		return nil, fmt.Errorf("writing file: %w", err)
	}

	return []string{csvPath, textPath}, nil
}

// WriteZip streams a zip archive holding both renderings to w.
func (s *Service) WriteZip(w io.Writer, tenderID, query string) error {
	report := s.Report(tenderID, query)
	zw := zip.NewWriter(w)

	cf, err := zw.Create(CSVName)
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}

	if err := WriteCSV(cf, report); err != nil {
		return err
	}

	tf, err := zw.Create(TextName)
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}

	if _, err := io.WriteString(tf, RenderText(report, s.now())); err != nil {
		return fmt.Errorf("writing zip entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}

	return nil
}
