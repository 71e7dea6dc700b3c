package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant_pos/config"
	"restaurant_pos/database"
	"restaurant_pos/handler"
	"restaurant_pos/helper"
	"restaurant_pos/logger"
	"restaurant_pos/notify"
	"restaurant_pos/qz"
	"restaurant_pos/realtime"
	"restaurant_pos/receipt"
	"restaurant_pos/router"
	"restaurant_pos/scheduler"
	"restaurant_pos/service"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(false); err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(logger.L())
	if err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.IsDev() {
		if err := logger.Init(true); err != nil {
			logger.L().Fatal("logger init", zap.Error(err))
		}
	}
	log := logger.L()

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	dispatcher := notify.NewDispatcher(log, cfg.HTTPClientTimeout*3)

	activity := service.NewActivityLogService(db, log)
	apiLogs := service.NewApiLogService(db, log)
	rules := service.NewDeliveryRuleService(db, log, activity)
	stock := service.NewStockService(db, log, activity)

	deps := service.OrderDeps{
		Activity:       activity,
		Stock:          stock,
		Dispatcher:     dispatcher,
		Messenger:      notify.NewWhatsApp(cfg.WhatsApp, httpClient, log),
		Receipts:       receipt.NewRenderer(),
		PublicOrderURL: cfg.PublicOrderURL,
	}
	if cfg.AutomationWebhookURL != "" {
		deps.Hook = notify.NewAutomation(cfg.AutomationWebhookURL, httpClient, log)
	}
	if cfg.SMTP.Enabled() {
		deps.Mailer = utils.NewMailer(cfg.SMTP, log)
	}

	var broker *realtime.Broker
	if cfg.Redis.Enabled() {
		broker = realtime.NewBroker(cfg.Redis, log)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := broker.Ping(ctx); err != nil {
			log.Warn("redis unreachable, order board events may be lost", zap.Error(err))
		}
		cancel()
		deps.Publisher = broker
	} else {
		log.Warn("redis not configured, realtime order board disabled")
	}

	var uploader *helper.Uploader
	if cfg.Cloudinary.Enabled() {
		if uploader, err = helper.InitCloudinary(cfg.Cloudinary); err != nil {
			log.Error("cloudinary disabled", zap.Error(err))
			uploader = nil
		}
	}

	signer, err := qz.NewSigner(cfg.QZ.Certificate, cfg.QZ.PrivateKey)
	if err != nil {
		log.Error("qz private key unusable, signing disabled", zap.Error(err))
		signer, _ = qz.NewSigner(cfg.QZ.Certificate, "")
	}

	h := handler.New(handler.Deps{
		Config:         cfg,
		Log:            log,
		Auth:           service.NewAuthService(db, cfg.JWTSecret, log),
		Restaurants:    service.NewRestaurantService(db, log, activity),
		Users:          service.NewUserService(db, log, activity),
		Products:       service.NewProductService(db, log, activity),
		Addons:         service.NewAddonService(db, log, activity),
		Customers:      service.NewCustomerService(db, log, activity, rules),
		DeliveryRules:  rules,
		Stock:          stock,
		PaymentMethods: service.NewPaymentMethodService(db, log, activity),
		Comandas:       service.NewComandaService(db, log, activity),
		Orders:         service.NewOrderService(db, log, deps),
		Activity:       activity,
		Uploader:       uploader,
		DeliveryFee:    utils.NewDeliveryFeeClient(cfg.DeliveryFeeWebhookURL, httpClient),
		Signer:         signer,
		Broker:         broker,
	})

	jobs := scheduler.New(log, cfg.LogRetentionDays, stock, map[string]scheduler.Purger{
		"activity_logs": activity,
		"api_logs":      apiLogs,
	})
	if err := jobs.Start(); err != nil {
		log.Fatal("scheduler", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.QZ.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Api-Key, X-Admin-Token",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie, Content-Disposition",
		MaxAge:           600,
	}))
	router.SetupRoutes(app, h, apiLogs)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatal("http server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	jobs.Stop()
	dispatcher.Wait()
	if broker != nil {
		_ = broker.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
