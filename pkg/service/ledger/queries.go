package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
)

const defaultPageSize = 50

// History returns the account's ledger entries, newest first. The caller must
// be permitted to operate on the account.
func (s *Service) History(
	ctx context.Context,
	actor policy.Actor,
	accountID uuid.UUID,
	limit, offset int,
) (page *dto.TransactionPage, err error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanOperate(actor, acc.OwnerID, acc.BankID); err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		page, err = transactions.ListByAccount(ctx, accountID, limit, offset)
		return err
	})
	if err != nil {
		s.logger.Error("history query failed", "account_id", accountID, "error", err)
		return nil, classify(err)
	}
	return page, nil
}

// BankHistory returns every ledger entry of one tenant, newest first.
// Staff only.
func (s *Service) BankHistory(
	ctx context.Context,
	actor policy.Actor,
	bankID uuid.UUID,
	limit, offset int,
) (page *dto.TransactionPage, err error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	if err = s.policy.CanReview(actor, bankID); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		page, err = transactions.ListByBank(ctx, bankID, limit, offset)
		return err
	})
	if err != nil {
		s.logger.Error("bank history query failed", "bank_id", bankID, "error", err)
		return nil, classify(err)
	}
	return page, nil
}
