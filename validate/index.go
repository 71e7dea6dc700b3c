package validate

import (
	"restaurant_pos/constants"
	"restaurant_pos/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys the handlers read back.
const (
	KeyID    = "inputId"
	KeyInput = "input"
)

var validate = validator.New()

// Struct runs the validator tags of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// UUIDParam parses the path parameter key as a uuid.
func UUIDParam(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_ID_INVALID)
		}
		c.Locals(KeyID, id)
		return c.Next()
	}
}

// body parses the JSON body into T, runs the validator plus any extra
// checks and stores the value under KeyInput.
func body[T any](checks ...func(*T) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		for _, check := range checks {
			if msg := check(&input); msg != "" {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, msg)
			}
		}
		c.Locals(KeyInput, input)
		return c.Next()
	}
}

// query is body's counterpart for query strings.
func query[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
		}
		c.Locals(KeyInput, input)
		return c.Next()
	}
}

// ID and Input fetch what the middlewares stored.
func ID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(KeyID).(uuid.UUID)
	return id
}

func Input[T any](c *fiber.Ctx) T {
	v, _ := c.Locals(KeyInput).(T)
	return v
}
