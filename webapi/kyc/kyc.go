package kyc

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/middleware"
	kycsvc "github.com/sahakar/coopbank/pkg/service/kyc"
	"github.com/sahakar/coopbank/webapi/common"
)

// Routes registers KYC document endpoints.
func Routes(app *fiber.App, kycSvc *kycsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/kyc", protected, Submit(kycSvc))
	app.Get("/kyc", protected, ListOwn(kycSvc))
	app.Post("/kyc/:id/review", protected, Review(kycSvc))
}

// Submit records a document pending review.
// @Summary Submit a KYC document
// @Tags kyc
// @Accept json
// @Produce json
// @Param request body SubmitInput true "Document metadata"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /kyc [post]
// @Security Bearer
func Submit(kycSvc *kycsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[SubmitInput](c)
		if input == nil {
			return err // error response already written
		}
		doc, err := kycSvc.Submit(c.Context(), actor, input.Type, input.FileRef)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to submit document", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Document submitted", doc)
	}
}

// ListOwn returns the caller's submitted documents.
// @Summary List own KYC documents
// @Tags kyc
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /kyc [get]
// @Security Bearer
func ListOwn(kycSvc *kycsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		items, err := kycSvc.ListOwn(c.Context(), actor)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list documents", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Documents fetched", items)
	}
}

// Review verifies or rejects a document. Staff only.
// @Summary Review a KYC document
// @Tags kyc
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body ReviewInput true "Review decision"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /kyc/{id}/review [post]
// @Security Bearer
func Review(kycSvc *kycsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		docID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid document ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ReviewInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := kycSvc.Review(c.Context(), actor, docID, input.Status, input.Note); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to review document", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Document reviewed", nil)
	}
}
