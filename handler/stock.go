package handler

import (
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListStockItems(c *fiber.Ctx) error {
	items, err := h.Stock.List(c.UserContext(), middleware.RestaurantID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"items": items})
}

func (h *Handler) LowStockItems(c *fiber.Ctx) error {
	items, err := h.Stock.Low(c.UserContext(), middleware.RestaurantID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"items": items})
}

func (h *Handler) GetStockItem(c *fiber.Ctx) error {
	item, err := h.Stock.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"item": item})
}

func (h *Handler) CreateStockItem(c *fiber.Ctx) error {
	item, err := h.Stock.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.StockItemInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"item": item})
}

func (h *Handler) UpdateStockItem(c *fiber.Ctx) error {
	item, err := h.Stock.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.UpdateStockItemInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"item": item})
}

func (h *Handler) AdjustStockItem(c *fiber.Ctx) error {
	item, err := h.Stock.Adjust(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.StockAdjustInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"item": item})
}

func (h *Handler) ListPaymentMethods(c *fiber.Ctx) error {
	methods, err := h.PaymentMethods.List(c.UserContext(), middleware.RestaurantID(c), c.QueryBool("active", false))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"payment_methods": methods})
}

func (h *Handler) GetPaymentMethod(c *fiber.Ctx) error {
	method, err := h.PaymentMethods.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"payment_method": method})
}

func (h *Handler) CreatePaymentMethod(c *fiber.Ctx) error {
	method, err := h.PaymentMethods.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.PaymentMethodInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"payment_method": method})
}

func (h *Handler) UpdatePaymentMethod(c *fiber.Ctx) error {
	method, err := h.PaymentMethods.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.UpdatePaymentMethodInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"payment_method": method})
}

func (h *Handler) DeletePaymentMethod(c *fiber.Ctx) error {
	if err := h.PaymentMethods.Delete(c.UserContext(), middleware.RestaurantID(c), validate.ID(c)); err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) ListComandas(c *fiber.Ctx) error {
	comandas, err := h.Comandas.List(c.UserContext(), middleware.RestaurantID(c), c.Query("status"))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"comandas": comandas})
}

func (h *Handler) GetComanda(c *fiber.Ctx) error {
	comanda, err := h.Comandas.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"comanda": comanda})
}

func (h *Handler) OpenComanda(c *fiber.Ctx) error {
	comanda, err := h.Comandas.Open(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.OpenComandaInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"comanda": comanda})
}

func (h *Handler) CloseComanda(c *fiber.Ctx) error {
	comanda, err := h.Comandas.Close(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.CloseComandaInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"comanda": comanda})
}
