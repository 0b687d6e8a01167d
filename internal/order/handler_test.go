package order

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			tok := &jwt.Token{Claims: claims}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestOrderRoutes(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), newCatalogStub())
	app := makeAppWithOrderHandler(NewHandler(svc))

	// unauthorized access should be blocked
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// no orders yet
	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "u-1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var orders []Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %+v", orders)
	}

	checkout, err := svc.Checkout("u-1", []Item{{ProductID: "p-1", Quantity: 2}})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// listing shows the new order
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "u-1")
	res, _ = app.Test(req)
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != checkout.OrderID {
		t.Fatalf("unexpected orders %+v", orders)
	}

	// summary recap
	req = httptest.NewRequest("GET", "/api/v1/orders/summary/"+checkout.OrderID, nil)
	req.Header.Set("X-User-ID", "u-1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for summary, got %d", res.StatusCode)
	}
	var sum Summary
	if err := json.NewDecoder(res.Body).Decode(&sum); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if sum.TotalAmount != 17000 || sum.Currency != "COP" || len(sum.Items) != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	// another user's summary is a 404
	req = httptest.NewRequest("GET", "/api/v1/orders/summary/"+checkout.OrderID, nil)
	req.Header.Set("X-User-ID", "u-2")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", res.StatusCode)
	}

	// unknown order is a 404
	req = httptest.NewRequest("GET", "/api/v1/orders/summary/missing", nil)
	req.Header.Set("X-User-ID", "u-1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", res.StatusCode)
	}
}
