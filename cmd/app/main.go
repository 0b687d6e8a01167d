package main

import (
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/farmaciavital/pharmacy-backend/internal/cart"
	"github.com/farmaciavital/pharmacy-backend/internal/config"
	"github.com/farmaciavital/pharmacy-backend/internal/order"
	"github.com/farmaciavital/pharmacy-backend/internal/payment"
	"github.com/farmaciavital/pharmacy-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(log))

	db := mustOpenDB(cfg.DatabaseURL, log)
	defer db.Close()

	if err := bootstrapSchema(db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	// catalog
	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	// cart
	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	// orders
	orderService := order.NewService(order.NewPostgresRepository(db), productService)
	orderHandler := order.NewHandler(orderService)

	// payments
	policy := payment.NewThresholdPolicy(cfg.PaymentApprovalRate)
	paymentService := payment.NewService(payment.NewPostgresRepository(db), cartService, policy, log)
	paymentHandler := payment.NewHandler(paymentService, orderService)

	// public surface
	productHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// keep the public endpoints exempt even if registration order changes
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			if c.Method() == fiber.MethodGet && strings.HasPrefix(p, "/api/v1/products") {
				return true
			}
			return p == "/api/v1/payments/validate-card"
		},
	}))

	// protected surface
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return err
	}
}

func mustOpenDB(url string, log zerolog.Logger) *sql.DB {
	if url == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open database")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("could not reach database")
	}
	return db
}

// bootstrapSchema creates the tables this service owns. Idempotent, runs on
// every start.
func bootstrapSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id VARCHAR(36) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            category VARCHAR(50) NOT NULL DEFAULT '',
            stock INT NOT NULL DEFAULT 0,
            image_url TEXT,
            requires_prescription BOOLEAN NOT NULL DEFAULT FALSE,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id VARCHAR(36) PRIMARY KEY,
            user_id VARCHAR(36) NOT NULL UNIQUE,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id VARCHAR(36) PRIMARY KEY,
            cart_id VARCHAR(36) NOT NULL REFERENCES carts(id),
            product_id VARCHAR(36) NOT NULL,
            quantity INT NOT NULL DEFAULT 1,
            prescription_file TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id VARCHAR(36) PRIMARY KEY,
            user_id VARCHAR(36) NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            status VARCHAR(50) NOT NULL DEFAULT 'pending',
            payment_session_id VARCHAR(255),
            created_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id VARCHAR(36) PRIMARY KEY,
            order_id VARCHAR(36) NOT NULL REFERENCES orders(id),
            product_id VARCHAR(36) NOT NULL,
            quantity INT NOT NULL,
            prescription_file TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS payment_transactions (
            id VARCHAR(36) PRIMARY KEY,
            transaction_id VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL,
            user_id VARCHAR(36),
            amount DOUBLE PRECISION NOT NULL,
            currency VARCHAR(10) NOT NULL DEFAULT 'COP',
            card_last_four VARCHAR(4),
            card_type VARCHAR(50),
            status VARCHAR(50) NOT NULL DEFAULT 'pending',
            order_id VARCHAR(36),
            created_at TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
