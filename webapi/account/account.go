package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/middleware"
	accountsvc "github.com/sahakar/coopbank/pkg/service/account"
	"github.com/sahakar/coopbank/webapi/common"
)

// Routes registers HTTP routes for account lifecycle operations.
//
// Routes:
//   - POST   /account             : Open a new account.
//   - GET    /account             : List the caller's accounts.
//   - GET    /account/:id         : Fetch one account.
//   - DELETE /account/:id         : Deactivate a zero-balance account.
//   - PUT    /account/:id/nominee : Update the nominee (staff only).
func Routes(app *fiber.App, accountSvc *accountsvc.Service, cfg *config.App) {
	app.Post("/account", middleware.JwtProtected(cfg.Jwt), Open(accountSvc))
	app.Get("/account", middleware.JwtProtected(cfg.Jwt), ListOwn(accountSvc))
	app.Get("/account/:id", middleware.JwtProtected(cfg.Jwt), Get(accountSvc))
	app.Delete("/account/:id", middleware.JwtProtected(cfg.Jwt), Deactivate(accountSvc))
	app.Put("/account/:id/nominee", middleware.JwtProtected(cfg.Jwt), UpdateNominee(accountSvc))
}

// Open creates a new account for the caller, or for another member when the
// caller is staff.
// @Summary Open a new account
// @Description Opens a savings, current, fixed deposit or recurring deposit account. One active account per type per member.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body OpenAccountInput true "Account details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account [post]
// @Security Bearer
func Open(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[OpenAccountInput](c)
		if input == nil {
			return err // error response already written
		}
		req := accountsvc.OpenRequest{
			Type:    input.Type,
			Nominee: input.Nominee,
		}
		if input.OwnerID != "" {
			ownerID, err := uuid.Parse(input.OwnerID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid owner ID", nil, err.Error(), fiber.StatusBadRequest)
			}
			req.OwnerID = ownerID
		}
		if input.MinimumBalance != "" {
			min, err := decimal.NewFromString(input.MinimumBalance)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid minimum balance", nil, err.Error(), fiber.StatusBadRequest)
			}
			req.MinimumBalance = min
		}
		if input.InterestRate != "" {
			rate, err := decimal.NewFromString(input.InterestRate)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid interest rate", nil, err.Error(), fiber.StatusBadRequest)
			}
			req.InterestRate = rate
		}
		acc, err := accountSvc.Open(c.Context(), actor, req)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", toRead(acc))
	}
}

// ListOwn returns the caller's accounts.
// @Summary List own accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account [get]
// @Security Bearer
func ListOwn(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accs, err := accountSvc.ListOwn(c.Context(), actor)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		items := make([]dto.AccountRead, 0, len(accs))
		for _, a := range accs {
			items = append(items, toRead(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", items)
	}
}

// Get returns one account after an access check.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id} [get]
// @Security Bearer
func Get(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		acc, err := accountSvc.Get(c.Context(), actor, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", toRead(acc))
	}
}

// Deactivate closes a zero-balance account. The account and its ledger stay
// queryable afterwards.
// @Summary Deactivate an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id} [delete]
// @Security Bearer
func Deactivate(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		if err := accountSvc.Deactivate(c.Context(), actor, accountID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to deactivate account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deactivated", nil)
	}
}

// UpdateNominee changes the nominee details. Staff only.
// @Summary Update account nominee
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body NomineeInput true "Nominee details"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /account/{id}/nominee [put]
// @Security Bearer
func UpdateNominee(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[NomineeInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := accountSvc.UpdateNominee(c.Context(), actor, accountID, input.Nominee); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update nominee", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Nominee updated", nil)
	}
}
