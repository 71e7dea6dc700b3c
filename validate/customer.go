package validate

import (
	"restaurant_pos/helper"
	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
)

func CreateCustomer() fiber.Handler {
	return body(func(in *model.CreateCustomerInput) string {
		if _, err := helper.NormalizePhone(in.Phone); err != nil {
			return "phone: " + err.Error()
		}
		if in.DeliveryFeeDefault != nil && in.DeliveryFeeDefault.IsNegative() {
			return "delivery_fee_default must not be negative"
		}
		return ""
	})
}

func EditCustomer() fiber.Handler {
	return body(func(in *model.EditCustomerInput) string {
		if in.Phone != nil {
			if _, err := helper.NormalizePhone(*in.Phone); err != nil {
				return "phone: " + err.Error()
			}
		}
		if in.DeliveryFeeDefault != nil && in.DeliveryFeeDefault.IsNegative() {
			return "delivery_fee_default must not be negative"
		}
		return ""
	})
}

func FilterCustomer() fiber.Handler { return query[model.FilterCustomer]() }

func DeliveryRule() fiber.Handler {
	return body(func(in *model.DeliveryRuleInput) string {
		if in.Fee.IsNegative() {
			return "fee must not be negative"
		}
		return ""
	})
}

func DeliveryFee() fiber.Handler { return body[model.DeliveryFeeInput]() }
