package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/model"
	"restaurant_pos/notify"
	"restaurant_pos/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	log        *zap.Logger
	activity   *ActivityLogService
	restaurant model.Restaurant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return fixtureOn(t, testutil.NewDB(t))
}

func fixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	log := zap.NewNop()
	f := &fixture{db: db, log: log, activity: NewActivityLogService(db, log)}
	f.restaurant = f.addRestaurant(t, "Cantina da Praça")
	return f
}

func (f *fixture) addRestaurant(t *testing.T, name string) model.Restaurant {
	t.Helper()
	r := model.Restaurant{Name: name, Slug: uuid.NewString(), Active: true}
	if err := f.db.Create(&r).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return r
}

func (f *fixture) addProduct(t *testing.T, name string, price string) model.Product {
	t.Helper()
	p := model.Product{
		RestaurantID: f.restaurant.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Type:         constants.PRODUCT_UNIDADE,
		Available:    true,
	}
	if err := f.db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) addCustomer(t *testing.T, restaurantID uuid.UUID, name, phone, neighborhood string, fee *decimal.Decimal) model.Customer {
	t.Helper()
	c := model.Customer{
		RestaurantID:       restaurantID,
		Name:               name,
		Phone:              phone,
		Neighborhood:       neighborhood,
		DeliveryFeeDefault: fee,
	}
	if err := f.db.Create(&c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func (f *fixture) addOrder(t *testing.T, number int, status string, customerID *uuid.UUID) model.Order {
	t.Helper()
	o := model.Order{
		RestaurantID:  f.restaurant.ID,
		OrderNumber:   number,
		CustomerID:    customerID,
		TipoPedido:    constants.TIPO_ENTREGA,
		Status:        status,
		PaymentStatus: constants.PAYMENT_PENDENTE,
		Subtotal:      decimal.NewFromInt(30),
		Total:         decimal.NewFromInt(30),
	}
	if err := f.db.Create(&o).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func (f *fixture) orderStatus(t *testing.T, id uuid.UUID) string {
	t.Helper()
	var o model.Order
	if err := f.db.Select("status").First(&o, "id = ?", id).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	return o.Status
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type sentText struct{ phone, text string }

// fakeMessenger records what would have gone out over WhatsApp.
type fakeMessenger struct {
	mu    sync.Mutex
	texts []sentText
	menus []notify.Menu
	docs  []notify.Document
	skip  bool
	err   error
}

func (m *fakeMessenger) result() notify.Result {
	if m.skip {
		return notify.Skipped("not configured")
	}
	return notify.Sent()
}

func (m *fakeMessenger) SendText(_ context.Context, phone, text string) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, sentText{phone, text})
	return m.result(), m.err
}

func (m *fakeMessenger) SendMenu(_ context.Context, _ string, menu notify.Menu) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menus = append(m.menus, menu)
	return m.result(), m.err
}

func (m *fakeMessenger) SendDocument(_ context.Context, _ string, doc notify.Document) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return m.result(), m.err
}

type fakeHook struct {
	mu     sync.Mutex
	events []notify.StatusEvent
}

func (h *fakeHook) OrderStatusChanged(_ context.Context, ev notify.StatusEvent) (notify.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	return notify.Sent(), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []model.OrderEvent
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, _ uuid.UUID, ev model.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(data *model.PrintData) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type orderFixture struct {
	*fixture
	svc        *OrderService
	messenger  *fakeMessenger
	hook       *fakeHook
	publisher  *fakePublisher
	dispatcher *notify.Dispatcher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	return orderFixtureOn(t, newFixture(t))
}

func orderFixtureOn(t *testing.T, f *fixture) *orderFixture {
	t.Helper()
	of := &orderFixture{
		fixture:    f,
		messenger:  &fakeMessenger{},
		hook:       &fakeHook{},
		publisher:  &fakePublisher{},
		dispatcher: notify.NewDispatcher(f.log, 5*time.Second),
	}
	of.svc = NewOrderService(f.db, f.log, OrderDeps{
		Activity:   f.activity,
		Stock:      NewStockService(f.db, f.log, f.activity),
		Dispatcher: of.dispatcher,
		Messenger:  of.messenger,
		Hook:       of.hook,
		Publisher:  of.publisher,
		Receipts:   fakeRenderer{},
	})
	t.Cleanup(of.dispatcher.Wait)
	return of
}
