package handler

import (
	"restaurant_pos/constants"
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	res, err := h.Products.List(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.FilterProduct](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"data": res})
}

func (h *Handler) GetProduct(c *fiber.Ctx) error {
	product, err := h.Products.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"product": product})
}

func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	product, err := h.Products.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.CreateProductInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"product": product})
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	product, err := h.Products.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.UpdateProductInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"product": product})
}

func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.Products.Delete(c.UserContext(), middleware.RestaurantID(c), validate.ID(c)); err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) SaveRecipe(c *fiber.Ctx) error {
	product, err := h.Products.SaveRecipe(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.SaveRecipeInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"product": product})
}

func (h *Handler) UploadProductImage(c *fiber.Ctx) error {
	if h.Uploader == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.STORAGE_NOT_CONFIGURED)
	}
	restaurantID, id := middleware.RestaurantID(c), validate.ID(c)

	// 404 before paying for the upload.
	if _, err := h.Products.Get(c.UserContext(), restaurantID, id); err != nil {
		return h.respondError(c, err)
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

	url, err := h.Uploader.UploadImage(c.UserContext(), "restaurant_pos/products/"+restaurantID.String(), id.String(), file)
	if err != nil {
		return h.respondError(c, err)
	}
	product, err := h.Products.SetImage(c.UserContext(), restaurantID, id, url)
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"product": product})
}

func (h *Handler) ListAddons(c *fiber.Ctx) error {
	addons, err := h.Addons.List(c.UserContext(), middleware.RestaurantID(c), c.Query("category"))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"addons": addons})
}

func (h *Handler) GetAddon(c *fiber.Ctx) error {
	addon, err := h.Addons.Get(c.UserContext(), middleware.RestaurantID(c), validate.ID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"addon": addon})
}

func (h *Handler) CreateAddon(c *fiber.Ctx) error {
	addon, err := h.Addons.Create(c.UserContext(), middleware.RestaurantID(c), validate.Input[model.CreateAddonInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"addon": addon})
}

func (h *Handler) UpdateAddon(c *fiber.Ctx) error {
	addon, err := h.Addons.Update(c.UserContext(), middleware.RestaurantID(c), validate.ID(c), validate.Input[model.UpdateAddonInput](c))
	if err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"addon": addon})
}

func (h *Handler) DeleteAddon(c *fiber.Ctx) error {
	if err := h.Addons.Delete(c.UserContext(), middleware.RestaurantID(c), validate.ID(c)); err != nil {
		return h.respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
