package transaction

import (
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
)

// MutationInput represents the request body for a deposit, withdrawal,
// interest or penalty posting. Amounts are decimal strings so precision
// survives the wire.
type MutationInput struct {
	Amount          string `json:"amount" validate:"required"`
	Description     string `json:"description,omitempty" validate:"max=255"`
	ReferenceNumber string `json:"reference_number,omitempty" validate:"max=50"`
}

// TransferInput represents the request body for a fund transfer.
type TransferInput struct {
	ToAccountID string `json:"to_account_id" validate:"required,uuid4"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

func toRead(t *ledgerdomain.Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:              t.ID,
		BankID:          t.BankID,
		SourceID:        t.SourceID,
		DestinationID:   t.DestinationID,
		Amount:          t.Amount,
		Type:            string(t.Type),
		Description:     t.Description,
		BalanceAfter:    t.BalanceAfter,
		Status:          string(t.Status),
		ReferenceNumber: t.ReferenceNumber,
		ProcessedBy:     t.ProcessedBy,
		CreatedAt:       t.CreatedAt,
	}
}
