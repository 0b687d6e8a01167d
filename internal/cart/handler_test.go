package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
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

func TestCartRoutes_Basic(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), seedProducts())
	app := makeAppWithCartHandler(NewHandler(svc))

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET lazily creates an empty cart
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "u-42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"total":0`) {
		t.Fatalf("expected empty priced cart, got %s", string(b2))
	}

	// add a product with quantity 2
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":"p-1","quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "u-42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"total":17000`) {
		t.Fatalf("expected total 17000 after add, got %s", string(b3))
	}

	// unknown product is a 404
	req4 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":"missing"}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "u-42")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res4.StatusCode)
	}

	// update quantity
	req5 := httptest.NewRequest("PUT", "/api/v1/cart/items/p-1", strings.NewReader(`{"quantity":1}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "u-42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", res5.StatusCode)
	}
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"total":8500`) {
		t.Fatalf("expected total 8500 after update, got %s", string(b5))
	}

	// updating an absent line is a 404
	req6 := httptest.NewRequest("PUT", "/api/v1/cart/items/p-2", strings.NewReader(`{"quantity":1}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "u-42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for absent line, got %d", res6.StatusCode)
	}

	// remove the line
	req7 := httptest.NewRequest("DELETE", "/api/v1/cart/items/p-1", nil)
	req7.Header.Set("X-User-ID", "u-42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res7.StatusCode)
	}
	b7, _ := io.ReadAll(res7.Body)
	if strings.Contains(string(b7), "p-1") {
		t.Fatalf("expected p-1 gone after remove, got %s", string(b7))
	}
}

func TestCartRoutes_PrescriptionFileRoundTrip(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), seedProducts())
	app := makeAppWithCartHandler(NewHandler(svc))

	body := `{"product_id":"p-2","quantity":1,"prescription_file":"uploads/rx-123.pdf"}`
	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u-7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "rx-123.pdf") {
		t.Fatalf("expected prescription file echoed back, got %s", string(b))
	}
	if !strings.Contains(string(b), `"requires_prescription":true`) {
		t.Fatalf("expected prescription flag from catalog, got %s", string(b))
	}
}
