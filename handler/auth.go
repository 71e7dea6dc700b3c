package handler

import (
	"time"

	"restaurant_pos/helper"
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"
	"restaurant_pos/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	input := validate.Input[model.LoginInput](c)

	data, err := h.Auth.Login(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    data.AccessToken,
		Expires:  time.Now().Add(helper.AccessTokenTTL),
		HTTPOnly: true,
		Secure:   !h.Config.IsDev(),
		SameSite: "None",
	})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"access_token": data.AccessToken,
		"expires_in":   data.ExpiresIn,
		"user":         data.User,
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	claims, _ := middleware.Claims(c)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": claims})
}
