package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/account"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
)

// Transfer debits the source account, credits the destination and appends
// exactly one ledger entry, all within one storage transaction. BalanceAfter
// on the entry is the source account's post-debit balance.
//
// Both account rows are locked in ascending account-ID order regardless of
// which side is source and which is destination, so two concurrent transfers
// over the same pair in opposite directions cannot deadlock.
func (s *Service) Transfer(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Transfer,
) (txn *ledgerdomain.Transaction, err error) {
	logger := s.logger.With(
		"operation", "transfer",
		"actor_id", actor.ID,
		"from_account_id", cmd.FromAccountID,
		"to_account_id", cmd.ToAccountID,
		"amount", cmd.Amount,
	)
	defer s.record(ctx, actor, "ledger.transfer", cmd.FromAccountID, &txn, &err)

	if cmd.FromAccountID == cmd.ToAccountID {
		return nil, domain.E(domain.KindValidation, "cannot transfer to the same account")
	}
	if err = validateMutation(cmd.Amount, cmd.Description); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, transactions, err := mutationRepos(uow)
		if err != nil {
			return err
		}

		src, dst, err := lockPair(ctx, accounts, cmd)
		if err != nil {
			return err
		}

		if err = s.policy.CanTransfer(actor, src.OwnerID, src.BankID, dst.BankID); err != nil {
			return err
		}
		if !dst.Active {
			return domain.E(domain.KindAccountInactive, "destination account is not active")
		}
		if err = src.CanDebit(cmd.Amount); err != nil {
			return err
		}

		fromBalance, err := accounts.MutateBalance(ctx, src.ID, cmd.Amount.Neg(), true)
		if err != nil {
			return err
		}
		if _, err = accounts.MutateBalance(ctx, dst.ID, cmd.Amount, true); err != nil {
			return err
		}

		entry := &ledgerdomain.Transaction{
			ID:            ledgerdomain.NewID(),
			BankID:        src.BankID,
			SourceID:      &src.ID,
			DestinationID: &dst.ID,
			Amount:        cmd.Amount,
			Type:          ledgerdomain.TypeTransfer,
			Description:   cmd.Description,
			BalanceAfter:  fromBalance,
			Status:        ledgerdomain.StatusCompleted,
			ProcessedBy:   actor.ID,
			CreatedAt:     time.Now().UTC(),
		}
		if err = transactions.Create(ctx, entry); err != nil {
			return err
		}
		txn = entry
		return nil
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("transfer completed", "transaction_id", txn.ID, "balance_after", txn.BalanceAfter)
	return txn, nil
}

// lockPair acquires both account rows in ascending ID order and returns them
// as (source, destination).
func lockPair(
	ctx context.Context,
	accounts repository.AccountRepository,
	cmd commands.Transfer,
) (src, dst *account.Account, err error) {
	first, second := cmd.FromAccountID, cmd.ToAccountID
	if strings.Compare(first.String(), second.String()) > 0 {
		first, second = second, first
	}

	a, err := accounts.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, fmt.Errorf("locking account %s: %w", first, err)
	}
	b, err := accounts.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, fmt.Errorf("locking account %s: %w", second, err)
	}

	if a.ID == cmd.FromAccountID {
		return a, b, nil
	}
	return b, a, nil
}
