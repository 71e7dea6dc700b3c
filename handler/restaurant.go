package handler

import (
	"fmt"

	"restaurant_pos/constants"
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.Restaurants.Create(c.UserContext(), validate.Input[model.CreateRestaurantInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"restaurant": restaurant})
}

func (h *Handler) GetRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.Restaurants.Get(c.UserContext(), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"restaurant": restaurant})
}

func (h *Handler) MyRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.Restaurants.Get(c.UserContext(), middleware.RestaurantID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"restaurant": restaurant})
}

func (h *Handler) UpdateRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.Restaurants.Update(c.UserContext(), validate.ID(c), validate.Input[model.UpdateRestaurantInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"restaurant": restaurant})
}

// UploadMenuDocument stores the caller restaurant's menu file and keeps its
// URL on the restaurant.
func (h *Handler) UploadMenuDocument(c *fiber.Ctx) error {
	id := validate.ID(c)
	if id != middleware.RestaurantID(c) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Restaurante não pertence ao usuário")
	}
	if h.Uploader == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.STORAGE_NOT_CONFIGURED)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_REQUIRED)
	}
	file, err := fh.Open()
	if err != nil {
		return h.respondError(c, err)
	}
	defer file.Close()

	url, err := h.Uploader.UploadDocument(c.UserContext(), "restaurant_pos/menus", fmt.Sprintf("menu_%s", id), file)
	if err != nil {
		return h.respondError(c, err)
	}
	restaurant, err := h.Restaurants.SetMenuDocument(c.UserContext(), id, url)
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"restaurant": restaurant})
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	user, err := h.Users.Create(c.UserContext(), validate.Input[model.CreateUserInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"user": user})
}

func (h *Handler) ListActivityLogs(c *fiber.Ctx) error {
	var p model.Pagination
	if err := c.QueryParser(&p); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
	}
	res, err := h.Activity.List(c.UserContext(), middleware.RestaurantID(c), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"data": res})
}
