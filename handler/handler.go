package handler

import (
	"restaurant_pos/config"
	"restaurant_pos/helper"
	"restaurant_pos/qz"
	"restaurant_pos/realtime"
	"restaurant_pos/service"
	"restaurant_pos/utils"

	"go.uber.org/zap"
)

// Deps is everything the HTTP layer talks to. Uploader, DeliveryFee and
// Broker are nil when their integration is not configured.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Auth           *service.AuthService
	Restaurants    *service.RestaurantService
	Users          *service.UserService
	Products       *service.ProductService
	Addons         *service.AddonService
	Customers      *service.CustomerService
	DeliveryRules  *service.DeliveryRuleService
	Stock          *service.StockService
	PaymentMethods *service.PaymentMethodService
	Comandas       *service.ComandaService
	Orders         *service.OrderService
	Activity       *service.ActivityLogService

	Uploader    *helper.Uploader
	DeliveryFee *utils.DeliveryFeeClient
	Signer      *qz.Signer
	Broker      *realtime.Broker
}

type Handler struct {
	Deps
	log *zap.Logger
}

func New(deps Deps) *Handler {
	return &Handler{Deps: deps, log: deps.Log.With(zap.String("component", "http"))}
}
