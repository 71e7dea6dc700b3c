//go:build integration

package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"restaurant_pos/constants"
	"restaurant_pos/model"
	"restaurant_pos/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestPostgresCascadeFee(t *testing.T) {
	f := fixtureOn(t, testutil.NewPostgres(t))
	rules := NewDeliveryRuleService(f.db, f.log, f.activity)
	ctx := context.Background()
	other := f.addRestaurant(t, "Outra Cantina")

	seed := []model.Customer{
		{RestaurantID: f.restaurant.ID, Phone: "5511900000001", Neighborhood: "São José"},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000002", Neighborhood: "SÃO JOSÉ DOS CAMPOS"},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000003", Neighborhood: "Jardim são josé"},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000004", Neighborhood: "Sao Jose"},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000005", Neighborhood: "São José", DeliveryFeeDefault: ptrDecimal("9.00")},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000006", Neighborhood: "Vila 100% Nova"},
		{RestaurantID: f.restaurant.ID, Phone: "5511900000007", Neighborhood: "Vila 1000 Nova"},
		{RestaurantID: other.ID, Phone: "5511900000001", Neighborhood: "São José"},
	}
	for i := range seed {
		if err := f.db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed customer: %v", err)
		}
	}

	t.Run("accented neighborhood matches any case", func(t *testing.T) {
		n, err := rules.CascadeFee(ctx, f.restaurant.ID, "São José", decimal.RequireFromString("7.50"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 customers updated, got %d", n)
		}
		for _, phone := range []string{"5511900000001", "5511900000002", "5511900000003"} {
			c := loadCustomer(t, f.db, f.restaurant.ID, phone)
			if c.DeliveryFeeDefault == nil || !c.DeliveryFeeDefault.Equal(decimal.RequireFromString("7.50")) || !c.DeliveryAvailable {
				t.Fatalf("customer %s not updated: %+v", phone, c)
			}
		}
		if c := loadCustomer(t, f.db, f.restaurant.ID, "5511900000004"); c.DeliveryFeeDefault != nil {
			t.Fatalf("unaccented neighborhood should not match")
		}
		if c := loadCustomer(t, f.db, f.restaurant.ID, "5511900000005"); !c.DeliveryFeeDefault.Equal(decimal.RequireFromString("9.00")) {
			t.Fatalf("existing fee was overwritten: %s", c.DeliveryFeeDefault)
		}
		if c := loadCustomer(t, f.db, other.ID, "5511900000001"); c.DeliveryFeeDefault != nil {
			t.Fatalf("another restaurant's customer was updated")
		}
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		n, err := rules.CascadeFee(ctx, f.restaurant.ID, "100%", decimal.RequireFromString("5.00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 customer updated, got %d", n)
		}
		if c := loadCustomer(t, f.db, f.restaurant.ID, "5511900000007"); c.DeliveryFeeDefault != nil {
			t.Fatalf("%% must not act as a wildcard")
		}
	})
}

func TestPostgresOrderNumbers(t *testing.T) {
	f := orderFixtureOn(t, fixtureOn(t, testutil.NewPostgres(t)))
	ctx := context.Background()
	soda := f.addProduct(t, "Refrigerante", "6.00")

	t.Run("unique per restaurant", func(t *testing.T) {
		other := f.addRestaurant(t, "Outra Cantina")
		mk := func(rid model.Restaurant) *model.Order {
			return &model.Order{
				RestaurantID:  rid.ID,
				OrderNumber:   900,
				TipoPedido:    constants.TIPO_BALCAO,
				Status:        constants.ORDER_PENDENTE,
				PaymentStatus: constants.PAYMENT_PENDENTE,
				Subtotal:      decimal.Zero,
				Total:         decimal.Zero,
			}
		}
		if err := f.db.Create(mk(f.restaurant)).Error; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.db.Create(mk(other)).Error; err != nil {
			t.Fatalf("same number in another restaurant should be accepted: %v", err)
		}
		if err := f.db.Create(mk(f.restaurant)).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
		}
		f.db.Unscoped().Where("order_number = ?", 900).Delete(&model.Order{})
	})

	t.Run("concurrent creates never share a number", func(t *testing.T) {
		const workers = 8
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			numbers []int
		)
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				order, err := f.svc.Create(ctx, f.restaurant.ID, model.CreateOrderInput{
					TipoPedido: constants.TIPO_BALCAO,
					Items:      []model.OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
				})
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				numbers = append(numbers, order.OrderNumber)
				mu.Unlock()
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("a lost race must surface as ErrConflict, got %v", err)
			}
		}
		if len(numbers) == 0 {
			t.Fatal("expected at least one order to be created")
		}
		sort.Ints(numbers)
		for i, n := range numbers {
			if n != i+1 {
				t.Fatalf("expected contiguous numbers, got %v", numbers)
			}
		}
	})
}

func loadCustomer(t *testing.T, db *gorm.DB, restaurantID uuid.UUID, phone string) model.Customer {
	t.Helper()
	var c model.Customer
	if err := db.Where("restaurant_id = ? AND phone = ?", restaurantID, phone).First(&c).Error; err != nil {
		t.Fatalf("load customer %s: %v", phone, err)
	}
	return c
}

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
