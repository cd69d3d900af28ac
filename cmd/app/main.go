package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/awwalu253-ctrl/captain-signature/internal/cart"
	"github.com/awwalu253-ctrl/captain-signature/internal/config"
	"github.com/awwalu253-ctrl/captain-signature/internal/notify"
	"github.com/awwalu253-ctrl/captain-signature/internal/order"
	"github.com/awwalu253-ctrl/captain-signature/internal/product"
	"github.com/awwalu253-ctrl/captain-signature/internal/settings"
	"github.com/awwalu253-ctrl/captain-signature/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	settingsService := settings.NewService(settings.NewPostgresRepository(db))
	settingsHandler := settings.NewHandler(settingsService)

	cartService := cart.NewService(cart.NewPostgresStore(db))
	cartHandler := cart.NewHandler(cartService, productService, settingsService)

	orderService := order.NewService(order.NewPostgresRepository(db), notify.NewLogNotifier())
	orderHandler := order.NewHandler(orderService, cartService, settingsService, userService)

	// public routes are registered before the JWT middleware so guests can
	// browse, build a cart and track orders without a token
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	settingsHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	productHandler.RegisterProtectedRoutes(app)
	settingsHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterAdminRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables on first start. The settings row itself is
// seeded lazily by the settings repository's get-or-create path.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userId" SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			"isAdmin" BOOLEAN NOT NULL DEFAULT FALSE,
			phone TEXT,
			address TEXT,
			city TEXT,
			state TEXT,
			"createdAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			"productId" SERIAL PRIMARY KEY,
			"productName" TEXT NOT NULL,
			"productDesc" TEXT,
			"productPrice" DOUBLE PRECISION NOT NULL DEFAULT 0,
			category TEXT,
			"productImg" TEXT,
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			"createdAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id SERIAL PRIMARY KEY,
			"deliveryFee" DOUBLE PRECISION NOT NULL DEFAULT 1500,
			"freeDeliveryThreshold" DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '₦',
			"siteName" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			"sessionId" TEXT PRIMARY KEY,
			items JSONB NOT NULL DEFAULT '[]',
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			"orderID" SERIAL PRIMARY KEY,
			"orderNumber" TEXT UNIQUE NOT NULL,
			"userID" INT NOT NULL,
			"orderDate" TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			"deliveryFee" DOUBLE PRECISION NOT NULL DEFAULT 0,
			"totalAmount" DOUBLE PRECISION NOT NULL DEFAULT 0,
			"shippingName" TEXT,
			"shippingAddress" TEXT,
			"shippingCity" TEXT,
			"shippingState" TEXT,
			"shippingPhone" TEXT,
			"shippingEmail" TEXT,
			"paymentMethod" TEXT,
			"paymentStatus" TEXT,
			"customerNotes" TEXT,
			"adminNotes" TEXT,
			"trackingNumber" TEXT,
			carrier TEXT,
			"deliveredDate" TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			"orderID" INT NOT NULL REFERENCES orders("orderID"),
			"productID" INT NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			"productName" TEXT,
			"productImage" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_tracking (
			id SERIAL PRIMARY KEY,
			"orderID" INT NOT NULL REFERENCES orders("orderID"),
			status TEXT NOT NULL,
			description TEXT,
			"updatedBy" TEXT,
			"timestamp" TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
