package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

// Store keeps the document in process memory as its encoded JSON, so loads see
// exactly what a remote store would return.
type Store struct {
	mu   sync.Mutex
	data []byte
}

func New() *Store {
	return &Store{}
}

// NewFromDocument returns a store seeded with doc.
func NewFromDocument(doc ledger.Document) (*Store, error) {
	s := New()
	if err := s.Save(context.Background(), doc); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Load(_ context.Context) (ledger.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc ledger.Document
	if len(s.data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(s.data, &doc); err != nil {
		return ledger.Document{}, fmt.Errorf("decoding document: %w", err)
	}

	return doc, nil
}

func (s *Store) Save(_ context.Context, doc ledger.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data

	return nil
}
