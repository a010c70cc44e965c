package account

import (
	accountdomain "github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/dto"
)

// OpenAccountInput represents the request body for opening an account.
type OpenAccountInput struct {
	Type           string `json:"type" validate:"required"`
	OwnerID        string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
	MinimumBalance string `json:"minimum_balance,omitempty"`
	InterestRate   string `json:"interest_rate,omitempty"`
	Nominee        string `json:"nominee,omitempty" validate:"max=100"`
}

// NomineeInput represents the request body for a nominee update.
type NomineeInput struct {
	Nominee string `json:"nominee" validate:"required,max=100"`
}

func toRead(a *accountdomain.Account) dto.AccountRead {
	return dto.AccountRead{
		ID:                a.ID,
		Number:            a.Number,
		OwnerID:           a.OwnerID,
		BankID:            a.BankID,
		Type:              string(a.Type),
		Balance:           a.Balance,
		MinimumBalance:    a.MinimumBalance,
		InterestRate:      a.InterestRate,
		Nominee:           a.Nominee,
		Active:            a.Active,
		LastTransactionAt: a.LastTransactionAt,
		CreatedAt:         a.CreatedAt,
	}
}
