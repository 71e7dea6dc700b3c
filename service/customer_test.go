package service

import (
	"context"
	"errors"
	"testing"

	"restaurant_pos/model"

	"github.com/shopspring/decimal"
)

func TestCustomerCreate(t *testing.T) {
	f := newFixture(t)
	rules := NewDeliveryRuleService(f.db, f.log, f.activity)
	svc := NewCustomerService(f.db, f.log, f.activity, rules)
	ctx := context.Background()

	t.Run("normalizes phone", func(t *testing.T) {
		c, err := svc.Create(ctx, f.restaurant.ID, model.CreateCustomerInput{Name: "Ana Souza", Phone: "(11) 98765-4321"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Phone != "5511987654321" {
			t.Fatalf("expected normalized phone, got %q", c.Phone)
		}
	})

	t.Run("duplicate phone is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, f.restaurant.ID, model.CreateCustomerInput{Name: "Outra Ana", Phone: "5511987654321"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		var n int64
		f.db.Model(&model.Customer{}).Where("restaurant_id = ? AND phone = ?", f.restaurant.ID, "5511987654321").Count(&n)
		if n != 1 {
			t.Fatalf("expected exactly one row, got %d", n)
		}
	})

	t.Run("same phone in another restaurant is fine", func(t *testing.T) {
		other := f.addRestaurant(t, "Outro Lugar")
		if _, err := svc.Create(ctx, other.ID, model.CreateCustomerInput{Name: "Ana", Phone: "11987654321"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty phone is invalid", func(t *testing.T) {
		_, err := svc.Create(ctx, f.restaurant.ID, model.CreateCustomerInput{Name: "Sem Fone", Phone: "--"})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("fee prefilled from delivery rule", func(t *testing.T) {
		if _, err := rules.Create(ctx, f.restaurant.ID, model.DeliveryRuleInput{Neighborhood: "Centro", Fee: decimal.RequireFromString("7.50")}); err != nil {
			t.Fatalf("create rule: %v", err)
		}
		c, err := svc.Create(ctx, f.restaurant.ID, model.CreateCustomerInput{Name: "Bruno", Phone: "11911112222", Neighborhood: "Centro Histórico"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.DeliveryFeeDefault == nil || !c.DeliveryFeeDefault.Equal(decimal.RequireFromString("7.5")) {
			t.Fatalf("expected fee 7.50, got %v", c.DeliveryFeeDefault)
		}
		if !c.DeliveryAvailable {
			t.Fatalf("expected delivery available")
		}
	})
}

func TestCustomerUpdatePhoneUniqueness(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.db, f.log, f.activity, nil)
	ctx := context.Background()

	a := f.addCustomer(t, f.restaurant.ID, "Ana", "5511900000001", "", nil)
	b := f.addCustomer(t, f.restaurant.ID, "Bia", "5511900000002", "", nil)

	taken := "11900000001"
	if _, err := svc.Update(ctx, f.restaurant.ID, b.ID, model.EditCustomerInput{Phone: &taken}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	own := "(11) 90000-0001"
	updated, err := svc.Update(ctx, f.restaurant.ID, a.ID, model.EditCustomerInput{Phone: &own})
	if err != nil {
		t.Fatalf("keeping its own phone must succeed: %v", err)
	}
	if updated.Phone != "5511900000001" {
		t.Fatalf("unexpected phone %q", updated.Phone)
	}
}

func TestCustomerGetByPhone(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.db, f.log, f.activity, nil)
	f.addCustomer(t, f.restaurant.ID, "Carla", "5521988887777", "", nil)

	c, err := svc.GetByPhone(context.Background(), f.restaurant.ID, "+55 (21) 98888-7777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Carla" {
		t.Fatalf("unexpected customer %q", c.Name)
	}

	if _, err := svc.GetByPhone(context.Background(), f.restaurant.ID, "21 3333-4444"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
