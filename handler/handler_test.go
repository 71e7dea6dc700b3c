package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant_pos/config"
	"restaurant_pos/constants"
	"restaurant_pos/handler"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/notify"
	"restaurant_pos/qz"
	"restaurant_pos/receipt"
	"restaurant_pos/router"
	"restaurant_pos/service"
	"restaurant_pos/testutil"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	jwtSecret = "test-secret"
	aiKey     = "ai-key"
	qzOrigin  = "https://app.pdvflow.com.br"
)

type gatewayCall struct {
	Path string
	Body map[string]any
}

// gateway records every request the WhatsApp client makes.
type gateway struct {
	mu    sync.Mutex
	calls []gatewayCall
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{Path: r.URL.Path, Body: body})
	g.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"key":{"id":"1"}}`))
}

func (g *gateway) byAction(action string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayCall
	for _, c := range g.calls {
		if strings.Contains(c.Path, "/message/"+action+"/") {
			out = append(out, c)
		}
	}
	return out
}

// feeStub answers the delivery-fee webhook with a fixed reply.
type feeStub struct {
	mu     sync.Mutex
	status int
	body   string
}

func (f *feeStub) reply(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *feeStub) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

type testApp struct {
	app        *fiber.App
	fee        *feeStub
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	gateway    *gateway
	restaurant model.Restaurant
	token      string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()

	gw := &gateway{}
	gwServer := httptest.NewServer(gw)
	t.Cleanup(gwServer.Close)

	fee := &feeStub{status: http.StatusBadGateway}
	feeServer := httptest.NewServer(fee)
	t.Cleanup(feeServer.Close)

	cfg := &config.Config{
		Env:      "development",
		AIAPIKey: aiKey,
		WhatsApp: config.WhatsApp{APIURL: gwServer.URL, APIKey: "k", Instance: "loja"},
		QZ:       config.QZ{Certificate: "-----BEGIN CERTIFICATE-----\nabc\n-----END CERTIFICATE-----", AllowedOrigins: config.DefaultQZOrigins},
	}

	client := &http.Client{Timeout: 2 * time.Second}
	dispatcher := notify.NewDispatcher(log, 5*time.Second)
	t.Cleanup(dispatcher.Wait)

	activity := service.NewActivityLogService(db, log)
	apiLogs := service.NewApiLogService(db, log)
	rules := service.NewDeliveryRuleService(db, log, activity)
	stock := service.NewStockService(db, log, activity)
	signer, err := qz.NewSigner(cfg.QZ.Certificate, "")
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	h := handler.New(handler.Deps{
		Config:         cfg,
		Log:            log,
		Auth:           service.NewAuthService(db, jwtSecret, log),
		Restaurants:    service.NewRestaurantService(db, log, activity),
		Users:          service.NewUserService(db, log, activity),
		Products:       service.NewProductService(db, log, activity),
		Addons:         service.NewAddonService(db, log, activity),
		Customers:      service.NewCustomerService(db, log, activity, rules),
		DeliveryRules:  rules,
		Stock:          stock,
		PaymentMethods: service.NewPaymentMethodService(db, log, activity),
		Comandas:       service.NewComandaService(db, log, activity),
		Orders: service.NewOrderService(db, log, service.OrderDeps{
			Activity:   activity,
			Stock:      stock,
			Dispatcher: dispatcher,
			Messenger:  notify.NewWhatsApp(cfg.WhatsApp, client, log),
			Receipts:   receipt.NewRenderer(),
		}),
		Activity:    activity,
		DeliveryFee: utils.NewDeliveryFeeClient(feeServer.URL, client),
		Signer:      signer,
	})

	app := fiber.New()
	router.SetupRoutes(app, h, apiLogs)

	restaurant := model.Restaurant{Name: "Cantina", Slug: "cantina", Active: true}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	token, err := helper.GenerateAccessToken(jwtSecret, model.TokenClaim{
		RestaurantID: restaurant.ID,
		Username:     "caixa",
		Role:         constants.ROLE_ATENDENTE,
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	return &testApp{app: app, fee: fee, db: db, dispatcher: dispatcher, gateway: gw, restaurant: restaurant, token: token}
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func (a *testApp) bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.token}
}

func (a *testApp) addOrder(t *testing.T, number int, status string) model.Order {
	t.Helper()
	customer := model.Customer{RestaurantID: a.restaurant.ID, Name: "Maria", Phone: "5511987654321"}
	if err := a.db.FirstOrCreate(&customer, model.Customer{RestaurantID: a.restaurant.ID, Phone: customer.Phone}).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	order := model.Order{
		RestaurantID:  a.restaurant.ID,
		OrderNumber:   number,
		CustomerID:    &customer.ID,
		TipoPedido:    constants.TIPO_RETIRADA,
		Status:        status,
		PaymentStatus: constants.PAYMENT_PENDENTE,
		Subtotal:      decimal.NewFromInt(40),
		Total:         decimal.NewFromInt(40),
	}
	if err := a.db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestProtectedRoutes(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, http.MethodGet, "/orders", nil, nil)
	if status != fiber.StatusUnauthorized || body["error"] != constants.MISSING_TOKEN {
		t.Fatalf("expected 401 missing token, got %d %v", status, body)
	}
	status, _ = a.do(t, http.MethodGet, "/orders", nil, map[string]string{"Authorization": "Bearer nope"})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", status)
	}
	status, body = a.do(t, http.MethodGet, "/orders", nil, a.bearer())
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
}

func TestUpdateOrderStatusNotifiesOnce(t *testing.T) {
	a := newTestApp(t)
	order := a.addOrder(t, 42, constants.ORDER_PENDENTE)

	input := map[string]string{"orderId": order.ID.String(), "newStatus": constants.ORDER_EM_PREPARO}
	status, body := a.do(t, http.MethodPost, "/orders/update-status", input, a.bearer())
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	got, _ := body["order"].(map[string]any)
	if got["status"] != constants.ORDER_EM_PREPARO {
		t.Fatalf("expected EM_PREPARO in response, got %v", got["status"])
	}

	a.dispatcher.Wait()
	texts := a.gateway.byAction("sendText")
	if len(texts) != 1 {
		t.Fatalf("expected exactly one text, got %d", len(texts))
	}
	if text, _ := texts[0].Body["text"].(string); !strings.Contains(text, "#42") {
		t.Fatalf("text does not mention the order number: %q", text)
	}

	// Same status again stores nothing new and sends nothing.
	status, _ = a.do(t, http.MethodPost, "/orders/update-status", input, a.bearer())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 on repeat, got %d", status)
	}
	a.dispatcher.Wait()
	if n := len(a.gateway.byAction("sendText")); n != 1 {
		t.Fatalf("repeat status must not notify again, got %d texts", n)
	}

	status, _ = a.do(t, http.MethodPost, "/orders/update-status", map[string]string{"orderId": order.ID.String(), "newStatus": "VOANDO"}, a.bearer())
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", status)
	}
}

func TestCancelOrderViaAIKey(t *testing.T) {
	a := newTestApp(t)
	delivered := a.addOrder(t, 1, constants.ORDER_ENTREGUE)
	pending := a.addOrder(t, 2, constants.ORDER_PENDENTE)

	status, _ := a.do(t, http.MethodPost, "/ai/orders/cancel", map[string]string{
		"restaurant_id": a.restaurant.ID.String(), "order_id": pending.ID.String(),
	}, nil)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", status)
	}

	key := map[string]string{"X-Api-Key": aiKey}
	status, body := a.do(t, http.MethodPost, "/ai/orders/cancel", map[string]string{
		"restaurant_id": a.restaurant.ID.String(), "order_id": delivered.ID.String(),
	}, key)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a delivered order, got %d %v", status, body)
	}

	status, body = a.do(t, http.MethodPost, "/ai/orders/cancel", map[string]any{
		"restaurant_id": a.restaurant.ID.String(), "order_number": 2, "customer_phone": "(11) 98765-4321",
	}, key)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	if body["previous_status"] != constants.ORDER_PENDENTE || body["status"] != constants.ORDER_CANCELADO {
		t.Fatalf("unexpected cancel result %v", body)
	}

	var logged int64
	a.db.Model(&model.ApiLog{}).Count(&logged)
	if logged != 2 {
		t.Fatalf("expected 2 api log rows, got %d", logged)
	}
}

func TestDeliveryFeeFallsBackToManual(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, http.MethodPost, "/delivery/fee", map[string]string{
		"cep_origem": "01001-000", "cep_destino": "04538-132",
	}, a.bearer())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["success"] != false || body["manual"] != true || body["message"] != constants.DELIVERY_FEE_MANUAL {
		t.Fatalf("expected manual fallback, got %v", body)
	}
}

func TestDeliveryFeeQuote(t *testing.T) {
	a := newTestApp(t)
	a.fee.reply(http.StatusOK, `{"success":true,"fee":12.5,"distance_km":3.2}`)

	status, body := a.do(t, http.MethodPost, "/delivery/fee", map[string]string{
		"cep_origem": "01001-000", "cep_destino": "04538-132",
	}, a.bearer())
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	if body["success"] != true || body["fee"] != "12.5" || body["distance_km"] != 3.2 {
		t.Fatalf("unexpected quote %v", body)
	}
	if _, manual := body["manual"]; manual {
		t.Fatalf("a priced quote must not ask for manual entry: %v", body)
	}

	var logged int64
	a.db.Model(&model.ApiLog{}).Where("path = ?", "/delivery/fee").Count(&logged)
	if logged != 1 {
		t.Fatalf("expected the call to be logged once, got %d", logged)
	}
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	a := newTestApp(t)
	input := map[string]string{"name": "João", "phone": "(21) 99999-0000"}

	status, body := a.do(t, http.MethodPost, "/customers", input, a.bearer())
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %v", status, body)
	}
	status, body = a.do(t, http.MethodPost, "/customers", map[string]string{"name": "Outro", "phone": "21999990000"}, a.bearer())
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d %v", status, body)
	}
	if _, ok := body["error"].(string); !ok {
		t.Fatalf("expected error message, got %v", body)
	}
}

func TestQZEndpoints(t *testing.T) {
	a := newTestApp(t)

	t.Run("missing origin", func(t *testing.T) {
		status, body := a.do(t, http.MethodGet, "/qz/cert", nil, nil)
		if status != fiber.StatusForbidden || body["error"] != constants.ORIGIN_NOT_ALLOWED {
			t.Fatalf("expected 403, got %d %v", status, body)
		}
	})

	t.Run("foreign origin", func(t *testing.T) {
		status, _ := a.do(t, http.MethodGet, "/qz/cert", nil, map[string]string{"Origin": "https://evil.example"})
		if status != fiber.StatusForbidden {
			t.Fatalf("expected 403, got %d", status)
		}
	})

	t.Run("certificate as text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/qz/cert", nil)
		req.Header.Set("Origin", qzOrigin)
		resp, err := a.app.Test(req, -1)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != fiber.StatusOK || !strings.HasPrefix(string(raw), "-----BEGIN CERTIFICATE-----") {
			t.Fatalf("unexpected certificate response %d %q", resp.StatusCode, raw)
		}
	})

	t.Run("sign without key", func(t *testing.T) {
		status, body := a.do(t, http.MethodPost, "/qz/sign", map[string]string{"request": "abc"}, map[string]string{"Origin": qzOrigin})
		if status != fiber.StatusServiceUnavailable || body["error"] != constants.QZ_NOT_CONFIGURED {
			t.Fatalf("expected 503, got %d %v", status, body)
		}
	})
}
