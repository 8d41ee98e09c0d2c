package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/auth"
	"github.com/franciscosanchezn/pizzeria-console/internal/config"
	"github.com/franciscosanchezn/pizzeria-console/internal/controllers"
	"github.com/franciscosanchezn/pizzeria-console/internal/database"
	"github.com/franciscosanchezn/pizzeria-console/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/franciscosanchezn/pizzeria-console/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config
	issuer        *auth.Issuer

	pizzaService    services.PizzaService
	orderService    services.OrderService
	userService     services.UserService
	customerService services.CustomerService

	authController     controllers.AuthController
	pizzaController    controllers.PizzaController
	orderController    controllers.OrderController
	userController     controllers.UserController
	customerController controllers.CustomerController
)

func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Token issuer backed by the persisted token store
	issuer = auth.NewIssuer(configuration.JWTSecret, time.Duration(configuration.TokenTTLHours)*time.Hour, db)

	// Initialize services and controllers
	pizzaService = services.NewPizzaService(db)
	orderService = services.NewOrderService(db)
	userService = services.NewUserService(db)
	customerService = services.NewCustomerService(db)

	authController = controllers.NewAuthController(userService, issuer)
	pizzaController = controllers.NewPizzaController(pizzaService)
	orderController = controllers.NewOrderController(orderService)
	userController = controllers.NewUserController(userService)
	customerController = controllers.NewCustomerController(customerService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds initial data when the store is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))

	seedDatabase(conf)
	return db
}

// seedDatabase creates the bootstrap users and a starter catalog, but only
// when the respective tables are empty
func seedDatabase(conf *config.Config) {
	users := services.NewUserService(db)

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		log.Info("No users found, creating bootstrap users")
		seedUsers := []struct {
			username string
			password string
			role     string
		}{
			{"admin", conf.SeedAdminPassword, models.RoleAdmin},
			{"asistente", conf.SeedAdminPassword, models.RoleAssistant},
			{"pizzero", conf.SeedAdminPassword, models.RoleKitchen},
		}
		for _, u := range seedUsers {
			if _, err := users.CreateUser(u.username, u.password, "", u.role); err != nil {
				log.WithError(err).Warnf("Failed to seed user %s", u.username)
			}
		}
	}

	var pizzaCount int64
	db.Model(&models.Pizza{}).Count(&pizzaCount)
	if pizzaCount == 0 {
		log.Info("Catalog is empty, seeding initial pizzas")
		pizzas := []models.Pizza{
			{Name: "Margherita", Price: decimal.RequireFromString("10.99"), Ingredients: "Tomato Sauce, Mozzarella, Basil", Available: true},
			{Name: "Pepperoni", Price: decimal.RequireFromString("12.99"), Ingredients: "Tomato Sauce, Mozzarella, Pepperoni", Available: true},
			{Name: "Vegetarian", Price: decimal.RequireFromString("11.99"), Ingredients: "Tomato Sauce, Mozzarella, Bell Peppers, Olives", Available: true},
		}
		for _, pizza := range pizzas {
			db.Create(&pizza)
		}
		log.Info("Catalog seeded successfully")
	}
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Authentication routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", middleware.JWTAuth(issuer), authController.Logout)
		// validate answers valid=false instead of 401, so no middleware here
		authRoutes.GET("/validate", authController.Validate)
	}

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	assistantOnly := middleware.RequireRole(models.RoleAssistant)

	// Catalog: reads for every authenticated role, writes for admin
	pizza := router.Group("/pizza", middleware.JWTAuth(issuer))
	{
		pizza.GET("", pizzaController.GetAllPizzas)
		pizza.GET("/disponibles", pizzaController.GetAvailablePizzas)
		pizza.GET("/:id", pizzaController.GetPizzaByID)
		pizza.POST("", adminOnly, pizzaController.CreatePizza)
		pizza.PUT("/:id", adminOnly, pizzaController.UpdatePizza)
		pizza.DELETE("/:id", adminOnly, pizzaController.DeletePizza)
	}

	// Orders: reads for every authenticated role, lifecycle for the assistant
	pedido := router.Group("/pedido", middleware.JWTAuth(issuer))
	{
		pedido.GET("", orderController.GetAllOrders)
		pedido.GET("/pendientes", orderController.GetPendingOrders)
		pedido.GET("/estado/:estado", orderController.GetOrdersByStatus)
		pedido.GET("/:id", orderController.GetOrderByID)
		pedido.POST("", assistantOnly, orderController.CreateOrder)
		pedido.PUT("/:id/estado", assistantOnly, orderController.UpdateOrderStatus)
		pedido.DELETE("/:id", assistantOnly, orderController.DeleteOrder)
	}

	// Customers: admin and assistant
	cliente := router.Group("/cliente", middleware.JWTAuth(issuer), middleware.RequireRole(models.RoleAdmin, models.RoleAssistant))
	{
		cliente.GET("", customerController.GetAllCustomers)
		cliente.GET("/:id", customerController.GetCustomerByID)
		cliente.POST("", customerController.CreateCustomer)
		cliente.PUT("/:id", customerController.UpdateCustomer)
		cliente.DELETE("/:id", customerController.DeleteCustomer)
	}

	// Users: admin only
	usuario := router.Group("/usuario", middleware.JWTAuth(issuer), adminOnly)
	{
		usuario.GET("", userController.GetAllUsers)
		usuario.GET("/:id", userController.GetUserByID)
		usuario.POST("", userController.CreateUser)
		usuario.PUT("/:id", userController.UpdateUser)
		usuario.DELETE("/:id", userController.DeleteUser)
	}
}

// healthCheckHandler handles the health check endpoint
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-console-api",
	})
}
