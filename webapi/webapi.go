// Package webapi provides the HTTP surface of the application. It is
// organized into sub-packages per domain:
// - account: account lifecycle endpoints
// - transaction: balance mutations and ledger queries
// - auth: authentication endpoints
// - user: registration and profile endpoints
// - bank: cooperative bank tenant endpoints
// - kyc: document submission and review endpoints
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sahakar/coopbank/pkg/app"
	accountweb "github.com/sahakar/coopbank/webapi/account"
	authweb "github.com/sahakar/coopbank/webapi/auth"
	bankweb "github.com/sahakar/coopbank/webapi/bank"
	"github.com/sahakar/coopbank/webapi/common"
	kycweb "github.com/sahakar/coopbank/webapi/kyc"
	transactionweb "github.com/sahakar/coopbank/webapi/transaction"
	userweb "github.com/sahakar/coopbank/webapi/user"
)

// SetupApp initializes Fiber with middleware and every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed on the client IP. Uses X-Forwarded-For when behind
	// a proxy, falling back to X-Real-IP, then the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				nil,
				"rate limit exceeded",
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Cooperative Bank API is running")
		},
	)

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.Config)
	bankweb.Routes(fiberApp, a.BankService, a.AuditService, a.Config)
	accountweb.Routes(fiberApp, a.AccountService, a.Config)
	transactionweb.Routes(fiberApp, a.LedgerService, a.Config)
	kycweb.Routes(fiberApp, a.KycService, a.Config)
	return fiberApp
}
