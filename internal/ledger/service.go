package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=gateway_mock.go -package=ledger
type Gateway interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Service owns the tender and transaction collections and enforces their
// invariants. Every mutation is followed by a full snapshot save.
type Service struct {
	gateway Gateway

	mu      sync.Mutex
	doc     Document
	loadErr error

	// lastSave is closed once the most recent snapshot has left the gateway.
	// Each save waits on its predecessor, so snapshots are saved in mutation
	// order without holding mu.
	lastSave chan struct{}
}

func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Load replaces the collections with the gateway's document. On failure the
// collections are emptied and a *PersistenceError is returned.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.gateway.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.doc = Document{}.Clone()
		s.loadErr = &PersistenceError{Op: "load", Err: err}
		slog.Error("failed to load document, starting empty", "error", err)

		return s.loadErr
	}

	s.doc = doc.Clone()
	s.doc.clearOutOfRangeDates()
	s.loadErr = nil
	slog.Info("document loaded", "tenders", len(s.doc.Tenders), "transactions", len(s.doc.Transactions))

	return nil
}

// LoadError returns the error of the last Load, or nil if it succeeded.
func (s *Service) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadErr
}

// Snapshot returns a copy of the current collections.
func (s *Service) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Clone()
}

func (s *Service) Tender(id string) (Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfTender(s.doc.Tenders, id)
	if idx < 0 {
		return Tender{}, fmt.Errorf("tender %s: %w", id, ErrNotFound)
	}

	return s.doc.Tenders[idx], nil
}

func (s *Service) Transaction(id string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfTransaction(s.doc.Transactions, id)
	if idx < 0 {
		return Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	return s.doc.Transactions[idx], nil
}

func (s *Service) NextTenderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return NextTenderID(s.doc.Tenders)
}

func (s *Service) NextTxnID(tenderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return NextTxnID(s.doc.Transactions, tenderID)
}

// SaveTender creates a tender, or replaces the one at editingID when it is set.
// A blank id is generated. Renaming rewrites the tender id on every linked
// transaction.
func (s *Service) SaveTender(ctx context.Context, in Tender, editingID string) (Tender, SaveResult, error) {
	var saved Tender

	res, err := s.mutate(ctx, "save tender", func(doc *Document) error {
		t := normalizeTender(in)
		if t.ID == "" {
			t.ID = NextTenderID(doc.Tenders)
		}

		if err := validateTender(t); err != nil {
			return err
		}

		if editingID == "" {
			if indexOfTender(doc.Tenders, t.ID) >= 0 {
				return &DuplicateIDError{Kind: "tender", ID: t.ID}
			}

			doc.Tenders = append(doc.Tenders, t)
			saved = t

			return nil
		}

		idx := indexOfTender(doc.Tenders, editingID)
		if idx < 0 {
			return fmt.Errorf("tender %s: %w", editingID, ErrNotFound)
		}

		if t.ID != editingID && indexOfTender(doc.Tenders, t.ID) >= 0 {
			return &DuplicateIDError{Kind: "tender", ID: t.ID}
		}

		doc.Tenders[idx] = t

		if t.ID != editingID {
			for i := range doc.Transactions {
				if doc.Transactions[i].TenderID == editingID {
					doc.Transactions[i].TenderID = t.ID
				}
			}
		}

		saved = t

		return nil
	})
	if err != nil {
		return Tender{}, SaveResult{}, err
	}

	return saved, res, nil
}

// DeleteTender removes the tender and every transaction referencing it.
func (s *Service) DeleteTender(ctx context.Context, id string) (SaveResult, error) {
	return s.mutate(ctx, "delete tender", func(doc *Document) error {
		idx := indexOfTender(doc.Tenders, id)
		if idx < 0 {
			return fmt.Errorf("tender %s: %w", id, ErrNotFound)
		}

		doc.Tenders = append(doc.Tenders[:idx], doc.Tenders[idx+1:]...)

		kept := doc.Transactions[:0]
		for _, tx := range doc.Transactions {
			if tx.TenderID != id {
				kept = append(kept, tx)
			}
		}

		doc.Transactions = kept

		return nil
	})
}

// SaveTransaction creates a transaction, or replaces the one at editingID when
// it is set. A blank id on create is generated from the linked tender.
// Transaction ids cannot be changed by an edit.
//
// The linked tender is not checked for existence.
func (s *Service) SaveTransaction(ctx context.Context, in Transaction, editingID string) (Transaction, SaveResult, error) {
	var saved Transaction

	res, err := s.mutate(ctx, "save transaction", func(doc *Document) error {
		tx := normalizeTransaction(in)
		if tx.ID == "" {
			if editingID != "" {
				tx.ID = editingID
			} else {
				tx.ID = NextTxnID(doc.Transactions, tx.TenderID)
			}
		}

		if err := validateTransaction(tx); err != nil {
			return err
		}

		if editingID == "" {
			if indexOfTransaction(doc.Transactions, tx.ID) >= 0 {
				return &DuplicateIDError{Kind: "transaction", ID: tx.ID}
			}

			doc.Transactions = append(doc.Transactions, tx)
			saved = tx

			return nil
		}

		if tx.ID != editingID {
			return &ValidationError{Field: "txnId", Message: "Transaction ID cannot be changed"}
		}

		idx := indexOfTransaction(doc.Transactions, editingID)
		if idx < 0 {
			return fmt.Errorf("transaction %s: %w", editingID, ErrNotFound)
		}

		doc.Transactions[idx] = tx
		saved = tx

		return nil
	})
	if err != nil {
		return Transaction{}, SaveResult{}, err
	}

	return saved, res, nil
}

// DeleteTransaction removes the transaction with the given id.
func (s *Service) DeleteTransaction(ctx context.Context, id string) (SaveResult, error) {
	return s.mutate(ctx, "delete transaction", func(doc *Document) error {
		idx := indexOfTransaction(doc.Transactions, id)
		if idx < 0 {
			return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}

		doc.Transactions = append(doc.Transactions[:idx], doc.Transactions[idx+1:]...)

		return nil
	})
}

// ImportTransactions appends a batch of transactions to an existing tender,
// generating their ids in order. Either every row is accepted or none is.
func (s *Service) ImportTransactions(ctx context.Context, tenderID string, in []Transaction) ([]Transaction, SaveResult, error) {
	var saved []Transaction

	res, err := s.mutate(ctx, "import transactions", func(doc *Document) error {
		if tenderID == "" {
			return &ValidationError{Field: "tenderId", Message: "Linked Tender ID is required"}
		}

		if indexOfTender(doc.Tenders, tenderID) < 0 {
			return fmt.Errorf("tender %s: %w", tenderID, ErrNotFound)
		}

		working := append([]Transaction(nil), doc.Transactions...)
		batch := make([]Transaction, 0, len(in))

		for _, row := range in {
			tx := normalizeTransaction(row)
			tx.TenderID = tenderID
			tx.ID = NextTxnID(working, tenderID)

			if err := validateTransaction(tx); err != nil {
				return err
			}

			working = append(working, tx)
			batch = append(batch, tx)
		}

		doc.Transactions = working
		saved = batch

		return nil
	})
	if err != nil {
		return nil, SaveResult{}, err
	}

	return saved, res, nil
}

// mutate applies fn to the collections and saves the resulting snapshot. fn
// must either fully succeed or leave doc untouched.
func (s *Service) mutate(ctx context.Context, op string, fn func(doc *Document) error) (SaveResult, error) {
	s.mu.Lock()

	if err := fn(&s.doc); err != nil {
		s.mu.Unlock()
		return SaveResult{}, err
	}

	snapshot := s.doc.Clone()

	prev := s.lastSave
	done := make(chan struct{})
	s.lastSave = done
	s.mu.Unlock()

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			go func() {
				<-prev
				close(done)
			}()

			slog.Error("gave up waiting to save document", "op", op, "error", ctx.Err())

			return SaveResult{Err: &PersistenceError{Op: "save", Err: ctx.Err()}}, nil
		}
	}
	defer close(done)

	if err := s.gateway.Save(ctx, snapshot); err != nil {
		slog.Error("failed to save document", "op", op, "error", err)
		return SaveResult{Err: &PersistenceError{Op: "save", Err: err}}, nil
	}

	slog.Debug("document saved", "op", op,
		"tenders", len(snapshot.Tenders), "transactions", len(snapshot.Transactions))

	return SaveResult{}, nil
}

func normalizeTender(t Tender) Tender {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Desc = strings.TrimSpace(t.Desc)
	t.City = strings.TrimSpace(t.City)
	t.Pincode = strings.TrimSpace(t.Pincode)

	if t.Date.Valid {
		t.Date = NewInstant(t.Date.Time)
	}

	return t
}

func validateTender(t Tender) error {
	switch {
	case t.ID == "":
		return &ValidationError{Field: "tenderId", Message: "Tender ID is required"}
	case t.Name == "":
		return &ValidationError{Field: "tenderName", Message: "Tender Name is required"}
	case t.Pincode != "" && !pincodePattern.MatchString(t.Pincode):
		return &ValidationError{Field: "tenderPincode", Message: "Pincode must be 6 digits"}
	case !t.Date.InRange():
		return &ValidationError{Field: "tenderDate", Message: "Tender Date must fall within years 0000-9999"}
	}

	return nil
}

func normalizeTransaction(tx Transaction) Transaction {
	tx.ID = strings.TrimSpace(tx.ID)
	tx.TenderID = strings.TrimSpace(tx.TenderID)
	tx.Desc = strings.TrimSpace(tx.Desc)
	tx.Type = strings.TrimSpace(tx.Type)
	tx.Vendor = strings.TrimSpace(tx.Vendor)

	if !tx.Amount.Valid {
		tx.Amount = NewAmount(decimal.Zero)
	}

	if tx.Date.Valid {
		tx.Date = NewInstant(tx.Date.Time)
	}

	return tx
}

func validateTransaction(tx Transaction) error {
	switch {
	case tx.ID == "":
		return &ValidationError{Field: "txnId", Message: "Transaction ID is required"}
	case tx.TenderID == "":
		return &ValidationError{Field: "tenderId", Message: "Linked Tender ID is required"}
	case !tx.Date.InRange():
		return &ValidationError{Field: "txnDate", Message: "Transaction Date must fall within years 0000-9999"}
	}

	return nil
}

func indexOfTender(tenders []Tender, id string) int {
	for i, t := range tenders {
		if t.ID == id {
			return i
		}
	}

	return -1
}

func indexOfTransaction(transactions []Transaction, id string) int {
	for i, tx := range transactions {
		if tx.ID == id {
			return i
		}
	}

	return -1
}
