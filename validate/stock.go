package validate

import (
	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
)

func CreateStockItem() fiber.Handler { return body[model.StockItemInput]() }

func UpdateStockItem() fiber.Handler { return body[model.UpdateStockItemInput]() }

func AdjustStock() fiber.Handler {
	return body(func(in *model.StockAdjustInput) string {
		if in.Delta.IsZero() {
			return "delta must not be zero"
		}
		return ""
	})
}

func CreatePaymentMethod() fiber.Handler { return body[model.PaymentMethodInput]() }

func UpdatePaymentMethod() fiber.Handler { return body[model.UpdatePaymentMethodInput]() }

func OpenComanda() fiber.Handler { return body[model.OpenComandaInput]() }

func CloseComanda() fiber.Handler { return body[model.CloseComandaInput]() }
