package transaction

import (
	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type mutationResponse struct {
	Transaction *ledger.Transaction `json:"transaction,omitempty"`
	respond.SaveStatus
}

func toMutationResponse(tx *ledger.Transaction, res ledger.SaveResult) mutationResponse {
	return mutationResponse{Transaction: tx, SaveStatus: respond.NewSaveStatus(res)}
}
