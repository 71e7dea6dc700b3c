package service

import (
	"context"
	"errors"
	"testing"

	"restaurant_pos/model"

	"github.com/shopspring/decimal"
)

func TestDeliveryRuleCascade(t *testing.T) {
	f := newFixture(t)
	svc := NewDeliveryRuleService(f.db, f.log, f.activity)
	ctx := context.Background()
	other := f.addRestaurant(t, "Vizinho")

	noFee := f.addCustomer(t, f.restaurant.ID, "Ana", "5511900000001", "Centro", nil)
	zeroFee := f.addCustomer(t, f.restaurant.ID, "Bia", "5511900000002", "CENTRO histórico", dec("0"))
	hasFee := f.addCustomer(t, f.restaurant.ID, "Caio", "5511900000003", "Centro", dec("8"))
	elsewhere := f.addCustomer(t, f.restaurant.ID, "Davi", "5511900000004", "Bela Vista", nil)
	foreign := f.addCustomer(t, other.ID, "Eva", "5511900000005", "Centro", nil)

	res, err := svc.Create(ctx, f.restaurant.ID, model.DeliveryRuleInput{Neighborhood: "  Centro ", Fee: decimal.RequireFromString("12.50")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rule.Neighborhood != "Centro" {
		t.Fatalf("neighborhood not trimmed: %q", res.Rule.Neighborhood)
	}
	if res.CustomersUpdated != 2 {
		t.Fatalf("expected 2 customers updated, got %d", res.CustomersUpdated)
	}

	load := func(id any) model.Customer {
		var c model.Customer
		if err := f.db.First(&c, "id = ?", id).Error; err != nil {
			t.Fatalf("reload customer: %v", err)
		}
		return c
	}
	for _, c := range []model.Customer{noFee, zeroFee} {
		got := load(c.ID)
		if got.DeliveryFeeDefault == nil || !got.DeliveryFeeDefault.Equal(decimal.RequireFromString("12.5")) {
			t.Fatalf("%s: expected fee 12.50, got %v", c.Name, got.DeliveryFeeDefault)
		}
		if !got.DeliveryAvailable {
			t.Fatalf("%s: expected delivery available", c.Name)
		}
	}
	if got := load(hasFee.ID); !got.DeliveryFeeDefault.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("existing fee must be kept, got %v", got.DeliveryFeeDefault)
	}
	if got := load(elsewhere.ID); got.DeliveryFeeDefault != nil {
		t.Fatalf("other neighborhood touched: %v", got.DeliveryFeeDefault)
	}
	if got := load(foreign.ID); got.DeliveryFeeDefault != nil {
		t.Fatalf("other restaurant touched: %v", got.DeliveryFeeDefault)
	}
}

func TestDeliveryRuleValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewDeliveryRuleService(f.db, f.log, f.activity)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.restaurant.ID, model.DeliveryRuleInput{Neighborhood: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank neighborhood, got %v", err)
	}
	if _, err := svc.Create(ctx, f.restaurant.ID, model.DeliveryRuleInput{Neighborhood: "Centro", Fee: decimal.NewFromInt(-1)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative fee, got %v", err)
	}
	if err := svc.Delete(ctx, f.restaurant.ID, f.restaurant.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeliveryRuleSearch(t *testing.T) {
	f := newFixture(t)
	svc := NewDeliveryRuleService(f.db, f.log, f.activity)
	ctx := context.Background()
	for _, n := range []string{"Centro", "Centro Histórico", "Jardim América", "Vila Nova", "São José"} {
		rule := model.DeliveryRule{RestaurantID: f.restaurant.ID, Neighborhood: n, Fee: decimal.NewFromInt(5)}
		if err := f.db.Create(&rule).Error; err != nil {
			t.Fatalf("seed rule: %v", err)
		}
	}

	t.Run("min similarity 1 keeps exact matches only", func(t *testing.T) {
		got, err := svc.Search(ctx, f.restaurant.ID, "CENTRO", 10, 1.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Neighborhood != "Centro" || got[0].Similarity != 1 {
			t.Fatalf("unexpected matches: %+v", got)
		}
	})

	t.Run("accents are folded", func(t *testing.T) {
		got, err := svc.Search(ctx, f.restaurant.ID, "sao jose", 10, 1.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Neighborhood != "São José" {
			t.Fatalf("unexpected matches: %+v", got)
		}
	})

	t.Run("min similarity 0 sorts and limits", func(t *testing.T) {
		got, err := svc.Search(ctx, f.restaurant.ID, "centro", 3, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 results, got %d", len(got))
		}
		if got[0].Neighborhood != "Centro" || got[1].Neighborhood != "Centro Histórico" {
			t.Fatalf("unexpected order: %+v", got)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Similarity > got[i-1].Similarity {
				t.Fatalf("results not sorted: %+v", got)
			}
		}
	})

	t.Run("search is read only", func(t *testing.T) {
		var n int64
		f.db.Model(&model.DeliveryRule{}).Count(&n)
		if n != 5 {
			t.Fatalf("rules changed: %d", n)
		}
	})

	t.Run("blank query", func(t *testing.T) {
		if _, err := svc.Search(ctx, f.restaurant.ID, " ", 10, 0); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}
