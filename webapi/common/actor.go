package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sahakar/coopbank/pkg/policy"
	authsvc "github.com/sahakar/coopbank/pkg/service/auth"
)

// CurrentActor resolves the verified JWT stored by the auth middleware into
// an actor. On failure the 401 response is already written and ok is false.
func CurrentActor(c *fiber.Ctx) (actor policy.Actor, ok bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		return policy.Actor{}, false
	}
	actor, err := authsvc.ActorFromToken(token)
	if err != nil {
		_ = ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		return policy.Actor{}, false
	}
	return actor, true
}
