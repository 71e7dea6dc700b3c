package middleware

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/model"
	"restaurant_pos/service"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ClaimsKey = "claims"

type TokenParser interface {
	ParseToken(token string) (model.TokenClaim, error)
}

// Protected accepts the token from the Authorization header, the
// access_token cookie or the token query parameter (websocket clients
// cannot set headers).
func Protected(auth TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			token = c.Cookies("access_token")
		}
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN)
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN)
		}

		c.Locals(ClaimsKey, claims)
		c.SetUserContext(service.WithUserID(c.UserContext(), claims.UserID))
		return c.Next()
	}
}

// Claims returns the token claims stored by Protected.
func Claims(c *fiber.Ctx) (model.TokenClaim, bool) {
	claims, ok := c.Locals(ClaimsKey).(model.TokenClaim)
	return claims, ok
}

func RestaurantID(c *fiber.Ctx) uuid.UUID {
	claims, _ := Claims(c)
	return claims.RestaurantID
}

// AdminToken guards the tenant administration routes with the static
// ADMIN_TOKEN. An unset token closes the routes.
func AdminToken(token string) fiber.Handler {
	return staticKey("X-Admin-Token", token)
}

// APIKey guards the surface used by the external AI agent.
func APIKey(key string) fiber.Handler {
	return staticKey("X-Api-Key", key)
}

func staticKey(header, expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(header)
		if expected == "" || got == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN)
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.INVALID_TOKEN)
		}
		return c.Next()
	}
}

// QZOrigin rejects any request whose Origin header is absent or not in
// the allow-list. Preflight answers are left to the cors middleware.
func QZOrigin(allowed []string) fiber.Handler {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = true
	}
	return func(c *fiber.Ctx) error {
		origin := strings.TrimRight(c.Get(fiber.HeaderOrigin), "/")
		if !set[origin] {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ORIGIN_NOT_ALLOWED)
		}
		return c.Next()
	}
}

type APILogRecorder interface {
	Record(ctx context.Context, entry model.ApiLog)
}

// APILogger records method, path, status and duration of every request it
// wraps. Write failures are swallowed by the recorder.
func APILogger(rec APILogRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		entry := model.ApiLog{
			Method:       c.Method(),
			Path:         c.Path(),
			StatusCode:   status,
			DurationMs:   time.Since(start).Milliseconds(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(c.Response().Body()),
		}
		if claims, ok := Claims(c); ok {
			entry.RestaurantID = &claims.RestaurantID
		}
		rec.Record(c.UserContext(), entry)
		return err
	}
}
