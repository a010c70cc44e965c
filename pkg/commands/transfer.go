package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer moves funds between two accounts as one atomic unit.
type Transfer struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
}

// Posting credits interest to or debits a penalty from an account. Postings
// bypass the minimum-balance floor; only staff may issue them.
type Posting struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
}
