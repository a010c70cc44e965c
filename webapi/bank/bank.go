package bank

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/middleware"
	auditsvc "github.com/sahakar/coopbank/pkg/service/audit"
	banksvc "github.com/sahakar/coopbank/pkg/service/bank"
	"github.com/sahakar/coopbank/webapi/common"
)

// Routes registers bank endpoints. Listing is open so members can pick a
// bank before registering; creation requires a super admin token.
func Routes(app *fiber.App, bankSvc *banksvc.Service, auditSvc *auditsvc.Service, cfg *config.App) {
	app.Post("/bank", middleware.JwtProtected(cfg.Jwt), Register(bankSvc))
	app.Get("/bank", List(bankSvc))
	app.Get("/bank/:id", Get(bankSvc))
	app.Get("/bank/:id/audit", middleware.JwtProtected(cfg.Jwt), AuditTrail(auditSvc))
}

// Register creates a new cooperative bank tenant.
// @Summary Register a cooperative bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Bank details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /bank [post]
// @Security Bearer
func Register(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		b, err := bankSvc.Register(c.Context(), actor, input.Code, input.Name, input.Address)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bank registered", b)
	}
}

// List returns all registered banks.
// @Summary List cooperative banks
// @Tags banks
// @Produce json
// @Success 200 {object} common.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /bank [get]
func List(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := bankSvc.List(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list banks", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Banks fetched", items)
	}
}

// Get returns one bank.
// @Summary Get a cooperative bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /bank/{id} [get]
func Get(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		b, err := bankSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank fetched", b)
	}
}

// AuditTrail lists a bank's audit records, newest first. Staff only.
// @Summary List bank audit records
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /bank/{id}/audit [get]
// @Security Bearer
func AuditTrail(auditSvc *auditsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		records, err := auditSvc.Trail(c.Context(), actor, id,
			c.QueryInt("limit"), c.QueryInt("offset"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list audit records", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Audit records fetched", records)
	}
}
