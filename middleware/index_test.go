package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubParser struct{ restaurantID uuid.UUID }

func (p stubParser) ParseToken(token string) (model.TokenClaim, error) {
	if token != "good" {
		return model.TokenClaim{}, errors.New("bad token")
	}
	return model.TokenClaim{RestaurantID: p.restaurantID}, nil
}

type memoryRecorder struct{ entries []model.ApiLog }

func (m *memoryRecorder) Record(_ context.Context, entry model.ApiLog) {
	m.entries = append(m.entries, entry)
}

func status(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestProtected(t *testing.T) {
	rid := uuid.New()
	app := fiber.New()
	app.Get("/", Protected(stubParser{restaurantID: rid}), func(c *fiber.Ctx) error {
		return c.SendString(RestaurantID(c).String())
	})

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		path   string
		expect int
	}{
		{"no token", func(*http.Request) {}, "/", fiber.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, "/", fiber.StatusOK},
		{"bad bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, "/", fiber.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "good"}) }, "/", fiber.StatusOK},
		{"query", func(*http.Request) {}, "/?token=good", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			tc.setup(req)
			if got := status(t, app, req); got != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, got)
			}
		})
	}
}

func TestStaticKey(t *testing.T) {
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

	app := fiber.New()
	app.Post("/ai", APIKey("k1"), ok)
	app.Post("/closed", AdminToken(""), ok)

	req := httptest.NewRequest(http.MethodPost, "/ai", nil)
	if got := status(t, app, req); got != fiber.StatusUnauthorized {
		t.Fatalf("missing key: expected 401, got %d", got)
	}
	req = httptest.NewRequest(http.MethodPost, "/ai", nil)
	req.Header.Set("X-Api-Key", "k2")
	if got := status(t, app, req); got != fiber.StatusForbidden {
		t.Fatalf("wrong key: expected 403, got %d", got)
	}
	req = httptest.NewRequest(http.MethodPost, "/ai", nil)
	req.Header.Set("X-Api-Key", "k1")
	if got := status(t, app, req); got != fiber.StatusNoContent {
		t.Fatalf("right key: expected 204, got %d", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/closed", nil)
	req.Header.Set("X-Admin-Token", "anything")
	if got := status(t, app, req); got != fiber.StatusUnauthorized {
		t.Fatalf("unset admin token must close the route, got %d", got)
	}
}

func TestQZOrigin(t *testing.T) {
	app := fiber.New()
	app.Get("/qz", QZOrigin([]string{"https://app.example/", "http://localhost:5173"}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for origin, expect := range map[string]int{
		"":                      fiber.StatusForbidden,
		"https://evil.example":  fiber.StatusForbidden,
		"https://app.example":   fiber.StatusOK,
		"http://localhost:5173": fiber.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/qz", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		if got := status(t, app, req); got != expect {
			t.Fatalf("origin %q: expected %d, got %d", origin, expect, got)
		}
	}
}

func TestAPILogger(t *testing.T) {
	rec := &memoryRecorder{}
	rid := uuid.New()
	app := fiber.New()
	app.Post("/ai/orders/cancel", Protected(stubParser{restaurantID: rid}), APILogger(rec), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "x"})
	})

	req := httptest.NewRequest(http.MethodPost, "/ai/orders/cancel?token=good", nil)
	if got := status(t, app, req); got != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", got)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Method != http.MethodPost || e.Path != "/ai/orders/cancel" || e.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.RestaurantID == nil || *e.RestaurantID != rid {
		t.Fatalf("restaurant not recorded: %+v", e.RestaurantID)
	}
}
