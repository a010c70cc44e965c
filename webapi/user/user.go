package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/middleware"
	usersvc "github.com/sahakar/coopbank/pkg/service/user"
	"github.com/sahakar/coopbank/webapi/common"
)

// Routes registers user endpoints. Registration is open; the profile
// endpoint requires a valid token.
func Routes(app *fiber.App, userSvc *usersvc.Service, cfg *config.App) {
	app.Post("/user", Register(userSvc))
	app.Get("/user/me", middleware.JwtProtected(cfg.Jwt), Me(userSvc))
}

// Register creates a member bound to a cooperative bank.
// @Summary Register a new member
// @Description Creates a member account within the given cooperative bank
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		bankID, err := uuid.Parse(input.BankID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		u, err := userSvc.Register(c.Context(), input.Username, input.Email, input.Password, bankID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", dto.UserRead{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      string(u.Role),
			BankID:    u.BankID,
			CreatedAt: u.CreatedAt,
		})
	}
}

// Me returns the authenticated user's profile.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user/me [get]
// @Security Bearer
func Me(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := common.CurrentActor(c)
		if !ok {
			return nil
		}
		u, err := userSvc.Get(c.Context(), actor.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User fetched", u)
	}
}
