package validate

import (
	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
)

func CreateProduct() fiber.Handler {
	return body(func(in *model.CreateProductInput) string {
		if in.Price.IsNegative() {
			return "price must not be negative"
		}
		if in.Type == "COMBO" && len(in.ComboItems) == 0 {
			return "combo_items is required for a combo"
		}
		return ""
	})
}

func UpdateProduct() fiber.Handler {
	return body(func(in *model.UpdateProductInput) string {
		if in.Price != nil && in.Price.IsNegative() {
			return "price must not be negative"
		}
		if in.ComboItems != nil {
			if err := validate.Var(*in.ComboItems, "dive"); err != nil {
				return err.Error()
			}
		}
		return ""
	})
}

func SaveRecipe() fiber.Handler {
	return body(func(in *model.SaveRecipeInput) string {
		for _, it := range in.Items {
			if !it.Quantity.IsPositive() {
				return "recipe quantity must be positive"
			}
		}
		return ""
	})
}

func FilterProduct() fiber.Handler { return query[model.FilterProduct]() }

func CreateAddon() fiber.Handler {
	return body(func(in *model.CreateAddonInput) string {
		if in.Price.IsNegative() {
			return "price must not be negative"
		}
		return ""
	})
}

func UpdateAddon() fiber.Handler {
	return body(func(in *model.UpdateAddonInput) string {
		if in.Price != nil && in.Price.IsNegative() {
			return "price must not be negative"
		}
		return ""
	})
}
