package transaction

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/config"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/middleware"
	"github.com/sahakar/coopbank/pkg/policy"
	ledgersvc "github.com/sahakar/coopbank/pkg/service/ledger"
	"github.com/sahakar/coopbank/webapi/common"
)

// Routes registers HTTP routes for balance mutations and ledger queries.
//
// Routes:
//   - POST /account/:id/deposit      : Deposit funds.
//   - POST /account/:id/withdraw     : Withdraw funds.
//   - POST /account/:id/transfer     : Transfer funds to another account.
//   - POST /account/:id/interest     : Post interest (staff only).
//   - POST /account/:id/penalty      : Post a penalty (staff only).
//   - GET  /account/:id/transactions : List the account's ledger entries.
//   - GET  /bank/:id/transactions    : List one tenant's ledger (staff only).
func Routes(app *fiber.App, ledgerSvc *ledgersvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/account/:id/deposit", protected, Deposit(ledgerSvc))
	app.Post("/account/:id/withdraw", protected, Withdraw(ledgerSvc))
	app.Post("/account/:id/transfer", protected, Transfer(ledgerSvc))
	app.Post("/account/:id/interest", protected, PostInterest(ledgerSvc))
	app.Post("/account/:id/penalty", protected, PostPenalty(ledgerSvc))
	app.Get("/account/:id/transactions", protected, History(ledgerSvc))
	app.Get("/bank/:id/transactions", protected, BankHistory(ledgerSvc))
}

// Deposit credits an account and returns the completed ledger entry.
// @Summary Deposit funds into an account
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body MutationInput true "Deposit details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/deposit [post]
// @Security Bearer
func Deposit(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, amount, input, ok := parseMutation(c)
		if !ok {
			return nil
		}
		cmd := commands.Deposit{
			AccountID:   accountID,
			Amount:      amount,
			Description: input.Description,
		}
		if input.ReferenceNumber != "" {
			cmd.ReferenceNumber = &input.ReferenceNumber
		}
		txn, err := ledgerSvc.Deposit(c.Context(), actor, cmd)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit completed", toRead(txn))
	}
}

// Withdraw debits an account subject to the available-balance check and
// returns the completed ledger entry.
// @Summary Withdraw funds from an account
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body MutationInput true "Withdrawal details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/withdraw [post]
// @Security Bearer
func Withdraw(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, amount, input, ok := parseMutation(c)
		if !ok {
			return nil
		}
		txn, err := ledgerSvc.Withdraw(c.Context(), actor, commands.Withdraw{
			AccountID:   accountID,
			Amount:      amount,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal completed", toRead(txn))
	}
}

// Transfer moves funds from the account in the path to the destination in
// the body, atomically.
// @Summary Transfer funds between accounts
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Source account ID"
// @Param request body TransferInput true "Transfer details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/transfer [post]
// @Security Bearer
func Transfer(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		fromID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[TransferInput](c)
		if input == nil {
			return err // error response already written
		}
		toID, err := uuid.Parse(input.ToAccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid destination account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", nil, err.Error(), fiber.StatusBadRequest)
		}
		txn, err := ledgerSvc.Transfer(c.Context(), actor, commands.Transfer{
			FromAccountID: fromID,
			ToAccountID:   toID,
			Amount:        amount,
			Description:   input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer completed", toRead(txn))
	}
}

// PostInterest credits interest to an account. Staff only; the posting may
// not be blocked by the minimum-balance floor.
// @Summary Post interest to an account
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body MutationInput true "Posting details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/interest [post]
// @Security Bearer
func PostInterest(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return posting(ledgerSvc.PostInterest, "Interest posted")
}

// PostPenalty debits a penalty from an account. Staff only; the balance may
// drop below the minimum-balance floor but never below zero.
// @Summary Post a penalty to an account
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body MutationInput true "Posting details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/penalty [post]
// @Security Bearer
func PostPenalty(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return posting(ledgerSvc.PostPenalty, "Penalty posted")
}

// History lists the account's ledger entries, newest first.
// @Summary List account transactions
// @Tags transactions
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/transactions [get]
// @Security Bearer
func History(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		page, err := ledgerSvc.History(c.Context(), actor, accountID,
			c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", page)
	}
}

// BankHistory lists one tenant's full ledger. Staff only.
// @Summary List bank transactions
// @Tags transactions
// @Produce json
// @Param id path string true "Bank ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /bank/{id}/transactions [get]
// @Security Bearer
func BankHistory(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		bankID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		page, err := ledgerSvc.BankHistory(c.Context(), actor, bankID,
			c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", page)
	}
}

type postingFunc func(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Posting,
) (*ledgerdomain.Transaction, error)

// posting handles the shared shape of interest and penalty endpoints.
func posting(fn postingFunc, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, amount, input, ok := parseMutation(c)
		if !ok {
			return nil
		}
		txn, err := fn(c.Context(), actor, commands.Posting{
			AccountID:   accountID,
			Amount:      amount,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Posting failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, toRead(txn))
	}
}

// parseMutation extracts the account ID from the path and the amount from the
// body. When ok is false the error response is already written.
func parseMutation(c *fiber.Ctx) (accountID uuid.UUID, amount decimal.Decimal, input *MutationInput, ok bool) {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		return uuid.Nil, decimal.Zero, nil, false
	}
	input, _ = common.BindAndValidate[MutationInput](c)
	if input == nil {
		return uuid.Nil, decimal.Zero, nil, false
	}
	amount, err = decimal.NewFromString(input.Amount)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid amount", nil, err.Error(), fiber.StatusBadRequest)
		return uuid.Nil, decimal.Zero, nil, false
	}
	return accountID, amount, input, true
}
