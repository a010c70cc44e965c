package ledger

import (
	"context"
	"time"

	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/domain"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
)

// PostInterest credits interest to an account. Staff only.
func (s *Service) PostInterest(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Posting,
) (*ledgerdomain.Transaction, error) {
	return s.post(ctx, actor, cmd, ledgerdomain.TypeInterest)
}

// PostPenalty debits a penalty from an account. Staff only.
//
// Penalties skip the available-balance pre-check and may push the balance
// below the minimum-balance floor; only the non-negative guard applies.
// The floor is a withdrawal pre-check, not a hard invariant.
func (s *Service) PostPenalty(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Posting,
) (*ledgerdomain.Transaction, error) {
	return s.post(ctx, actor, cmd, ledgerdomain.TypePenalty)
}

func (s *Service) post(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Posting,
	txnType ledgerdomain.TxnType,
) (txn *ledgerdomain.Transaction, err error) {
	logger := s.logger.With(
		"operation", string(txnType),
		"actor_id", actor.ID,
		"account_id", cmd.AccountID,
		"amount", cmd.Amount,
	)
	defer s.record(ctx, actor, "ledger."+string(txnType), cmd.AccountID, &txn, &err)

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
		acc, err := accounts.GetForUpdate(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanReview(actor, acc.BankID); err != nil {
			return err
		}
		if !acc.Active {
			return domain.E(domain.KindAccountInactive, "account is not active")
		}

		delta := cmd.Amount
		if txnType == ledgerdomain.TypePenalty {
			delta = delta.Neg()
		}
		newBalance, err := accounts.MutateBalance(ctx, acc.ID, delta, true)
		if err != nil {
			return err
		}

		entry := &ledgerdomain.Transaction{
			ID:           ledgerdomain.NewID(),
			BankID:       acc.BankID,
			SourceID:     &acc.ID,
			Amount:       cmd.Amount,
			Type:         txnType,
			Description:  cmd.Description,
			BalanceAfter: newBalance,
			Status:       ledgerdomain.StatusCompleted,
			ProcessedBy:  actor.ID,
			CreatedAt:    time.Now().UTC(),
		}
		if err = transactions.Create(ctx, entry); err != nil {
			return err
		}
		txn = entry
		return nil
	})
	if err != nil {
		logger.Error("posting failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("posting completed", "transaction_id", txn.ID, "balance_after", txn.BalanceAfter)
	return txn, nil
}
