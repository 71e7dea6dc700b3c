package handler

import (
	"restaurant_pos/constants"
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) ListCustomers(c *fiber.Ctx) error {
	res, err := h.Customers.List(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.FilterCustomer](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"data": res})
}

func (h *Handler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.Customers.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"customer": customer})
}

func (h *Handler) GetCustomerByPhone(c *fiber.Ctx) error {
	customer, err := h.Customers.GetByPhone(c.UserContext(), middleware.RestaurantID(c), c.Params("phone"))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"customer": customer})
}

func (h *Handler) CreateCustomer(c *fiber.Ctx) error {
	customer, err := h.Customers.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.CreateCustomerInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"customer": customer})
}

func (h *Handler) UpdateCustomer(c *fiber.Ctx) error {
	customer, err := h.Customers.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.EditCustomerInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"customer": customer})
}

func (h *Handler) ListDeliveryRules(c *fiber.Ctx) error {
	rules, err := h.DeliveryRules.List(c.UserContext(), middleware.RestaurantID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"rules": rules})
}

func (h *Handler) CreateDeliveryRule(c *fiber.Ctx) error {
	res, err := h.DeliveryRules.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.DeliveryRuleInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, ruleBody(res.Rule, res.CustomersUpdated, res.CascadeError))
}

func (h *Handler) UpdateDeliveryRule(c *fiber.Ctx) error {
	res, err := h.DeliveryRules.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.DeliveryRuleInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ruleBody(res.Rule, res.CustomersUpdated, res.CascadeError))
}

func ruleBody(rule *model.DeliveryRule, updated int64, cascadeErr string) fiber.Map {
	body := fiber.Map{"rule": rule, "customers_updated": updated}
	if cascadeErr != "" {
		body["cascade_error"] = cascadeErr
	}
	return body
}

func (h *Handler) DeleteDeliveryRule(c *fiber.Ctx) error {
	if err := h.DeliveryRules.Delete(c.UserContext(), middleware.RestaurantID(c), validate.ID(c)); err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

const defaultMinSimilarity = 0.3

func (h *Handler) SearchDeliveryRules(c *fiber.Ctx) error {
	matches, err := h.DeliveryRules.Search(c.UserContext(), middleware.RestaurantID(c),
		c.Query("q"),
		c.QueryInt("limit", 0),
		c.QueryFloat("minSimilarity", defaultMinSimilarity))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"results": matches})
}

// QuoteDeliveryFee asks the fee webhook for a quote. Every failure ends in a
// 200 telling the operator to type the fee by hand.
func (h *Handler) QuoteDeliveryFee(c *fiber.Ctx) error {
	input := validate.Input[model.DeliveryFeeInput](c)
	manual := model.DeliveryFeeQuote{Success: false, Manual: true, Message: constants.DELIVERY_FEE_MANUAL}

	if h.DeliveryFee == nil {
		return c.Status(fiber.StatusOK).JSON(manual)
	}
	quote, err := h.DeliveryFee.Quote(c.UserContext(), input.CepOrigem, input.CepDestino)
	if err != nil {
		h.log.Warn("delivery fee quote unavailable", zap.Error(err),
			zap.String("cep_origem", input.CepOrigem), zap.String("cep_destino", input.CepDestino))
		return c.Status(fiber.StatusOK).JSON(manual)
	}
	return c.Status(fiber.StatusOK).JSON(model.DeliveryFeeQuote{
		Success:    true,
		Fee:        quote.Fee,
		DistanceKm: quote.DistanceKm,
	})
}
