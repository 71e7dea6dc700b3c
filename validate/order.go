package validate

import (
	"restaurant_pos/constants"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return body(func(in *model.CreateOrderInput) string {
		if in.TipoPedido == "COMANDA" && in.ComandaID == nil {
			return "comanda_id is required for COMANDA orders"
		}
		if in.Discount.IsNegative() {
			return "discount must not be negative"
		}
		if in.DeliveryFee != nil && in.DeliveryFee.IsNegative() {
			return "delivery_fee must not be negative"
		}
		return ""
	})
}

// UpdateOrderStatus only decodes the body: the order service owns the
// required-field checks so every caller gets the same 400.
func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
		}
		c.Locals(KeyInput, input)
		return c.Next()
	}
}

func CancelOrder() fiber.Handler {
	return body(func(in *model.CancelOrderInput) string {
		if in.OrderID == "" && in.OrderNumber <= 0 {
			return "order_id or order_number is required"
		}
		return ""
	})
}

func FilterOrderQuery() fiber.Handler { return query[model.FilterOrder]() }

// FilterOrderBody accepts the list filters as JSON; an empty body lists
// everything.
func FilterOrderBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterOrder
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
			}
		}
		c.Locals(KeyInput, input)
		return c.Next()
	}
}
