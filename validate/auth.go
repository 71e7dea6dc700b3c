package validate

import (
	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler { return body[model.LoginInput]() }

func CreateRestaurant() fiber.Handler { return body[model.CreateRestaurantInput]() }

func UpdateRestaurant() fiber.Handler { return body[model.UpdateRestaurantInput]() }

func CreateUser() fiber.Handler { return body[model.CreateUserInput]() }
