package handler

import (
	"fmt"
	"time"

	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListOrders serves both GET (query filters) and POST (JSON filters).
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	res, err := h.Orders.List(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.FilterOrder](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"data": res})
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	order, err := h.Orders.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"order": order})
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	order, err := h.Orders.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.CreateOrderInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"order": order})
}

// UpdateOrderStatus answers as soon as the status is stored; notifications
// run in the background.
func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	order, err := h.Orders.UpdateStatus(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.UpdateOrderStatusInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"order": order})
}

// CancelOrderAI is the API-key variant: the restaurant comes in the body.
func (h *Handler) CancelOrderAI(c *fiber.Ctx) error {
	input := validate.Input[model.CancelOrderInput](c)
	restaurantID, err := uuid.Parse(input.RestaurantID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "restaurant_id inválido")
	}
	return h.cancel(c, restaurantID, input)
}

func (h *Handler) CancelOrder(c *fiber.Ctx) error {
	input := model.CancelOrderInput{OrderID: validate.ID(c).String()}
	return h.cancel(c, middleware.RestaurantID(c), input)
}

func (h *Handler) cancel(c *fiber.Ctx, restaurantID uuid.UUID, input model.CancelOrderInput) error {
	res, err := h.Orders.Cancel(c.UserContext(), restaurantID, input)
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":           res.Order,
		"previous_status": res.PreviousStatus,
		"status":          res.Status,
	})
}

func (h *Handler) PrintData(c *fiber.Ctx) error {
	data, err := h.Orders.PrintData(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"data": data})
}

func (h *Handler) PrintPDF(c *fiber.Ctx) error {
	pdf, data, err := h.Orders.RenderPDF(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%d.pdf"`, data.OrderNumber))
	return c.Status(fiber.StatusOK).Send(pdf)
}

func (h *Handler) SendCustomerPDF(c *fiber.Ctx) error {
	res, err := h.Orders.SendCustomerPDF(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	if res.WhatsApp.IsSkipped() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"skipped": true,
			"reason":  res.WhatsApp.Reason,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"whatsapp": res.WhatsApp,
		"email":    res.Email,
	})
}

func (h *Handler) ExportOrders(c *fiber.Ctx) error {
	file, err := h.Orders.Export(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.FilterOrder](c))
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="pedidos-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Status(fiber.StatusOK).Send(file)
}
