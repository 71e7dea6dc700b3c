package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"restaurant_pos/model"
)

// ErrorResponse writes {"error": message}. Internal error details stay in
// the server log, never in the body.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// SuccessResponse merges fields into a {"success": true, ...} body.
func SuccessResponse(c *fiber.Ctx, status int, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func ApplyPagination(query *gorm.DB, p model.Pagination) *gorm.DB {
	p.Normalize()
	return query.Limit(p.Limit).Offset(p.Offset())
}
