// Package events announces persisted ledger snapshots to other systems.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

// SavedMessage announces that a snapshot reached the store. Consumers fetch
// the document themselves; the message only carries its size.
type SavedMessage struct {
	Tenders      int       `json:"tenders"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

//go:generate mockgen -source=events.go -destination=publisher_mock.go -package=events
type Publisher interface {
	PublishSaved(ctx context.Context, msg SavedMessage) error
}

type notifyingGateway struct {
	ledger.Gateway
	pub Publisher
	now func() time.Time
}

// Notify wraps gw so every successful save is published. A failed publish is
// logged and never fails the save.
func Notify(gw ledger.Gateway, pub Publisher) ledger.Gateway {
	return &notifyingGateway{Gateway: gw, pub: pub, now: time.Now}
}

func (g *notifyingGateway) Save(ctx context.Context, doc ledger.Document) error {
	if err := g.Gateway.Save(ctx, doc); err != nil {
		return err
	}

	msg := SavedMessage{
		Tenders:      len(doc.Tenders),
		Transactions: len(doc.Transactions),
		Timestamp:    g.now().UTC(),
	}

	if err := g.pub.PublishSaved(ctx, msg); err != nil {
		slog.Error("failed to publish save event", "error", err)
	}

	return nil
}
