package handler

import (
	"errors"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/qz"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QZCertificate returns the PEM certificate the print bridge trusts.
func (h *Handler) QZCertificate(c *fiber.Ctx) error {
	cert, err := h.Signer.Certificate()
	if err != nil {
		return h.qzError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(cert)
}

// QZSign signs the string the print bridge hands over. It may come as
// {"request": "..."}, as a ?request= parameter or as a raw text body.
func (h *Handler) QZSign(c *fiber.Ctx) error {
	payload := c.Query("request")
	if payload == "" {
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			var body struct {
				Request string `json:"request"`
				Data    string `json:"data"`
			}
			if err := c.BodyParser(&body); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT)
			}
			payload = body.Request
			if payload == "" {
				payload = body.Data
			}
		} else {
			payload = string(c.Body())
		}
	}
	if payload == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "request é obrigatório")
	}

	signature, err := h.Signer.Sign(payload)
	if err != nil {
		return h.qzError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(signature)
}

func (h *Handler) qzError(c *fiber.Ctx, err error) error {
	if errors.Is(err, qz.ErrNotConfigured) {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.QZ_NOT_CONFIGURED)
	}
	h.log.Error("qz signing failed", zap.Error(err))
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
}
