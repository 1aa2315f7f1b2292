package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/controllers"
	"github.com/yeremiapane/business-manager/metrics"
	"github.com/yeremiapane/business-manager/middlewares"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/realtime"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

// Dependencies are built once in main and shared by every handler.
type Dependencies struct {
	DB                 *gorm.DB
	Tokens             *utils.TokenManager
	Orders             *services.OrderService
	Hub                *realtime.Hub
	Metrics            *metrics.Metrics
	CORSOrigins        []string
	LoginRatePerMinute int
	// RequestsPerSecond caps each client IP across all routes; 0 disables it.
	RequestsPerSecond int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics(deps.Metrics))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigins))
	if deps.RequestsPerSecond > 0 {
		r.Use(middlewares.NewRateLimiter(deps.RequestsPerSecond, time.Second).RateLimit())
	}

	authCtrl := controllers.NewAuthController(deps.DB, deps.Tokens)
	userCtrl := controllers.NewUserController(deps.DB)
	companyCtrl := controllers.NewCompanyController(deps.DB)
	customerCtrl := controllers.NewCustomerController(deps.DB)
	callCtrl := controllers.NewCallController(deps.DB)
	optionCtrl := controllers.NewOptionController(deps.DB)
	productCtrl := controllers.NewProductController(deps.DB)
	orderCtrl := controllers.NewOrderController(deps.Orders)
	dashboardCtrl := controllers.NewDashboardController(deps.DB)
	realtimeCtrl := controllers.NewRealtimeController(deps.Hub, deps.CORSOrigins)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	loginRate := deps.LoginRatePerMinute
	if loginRate <= 0 {
		loginRate = 5
	}
	public := r.Group("/auth")
	public.Use(middlewares.NewLoginRateLimiter(loginRate).Middleware())
	{
		public.POST("/login", authCtrl.Login)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(deps.Tokens))
	{
		ws.GET("/orders", realtimeCtrl.OrdersSocket)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(deps.Tokens))

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	managers := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager)
	staff := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleUser)

	api.POST("/account/change-password", authCtrl.ChangePassword)
	api.GET("/dashboard", managers, dashboardCtrl.GetDashboardStats)

	// USERS
	api.GET("/users", adminOnly, userCtrl.GetAllUsers)
	api.POST("/users", adminOnly, userCtrl.CreateUser)
	api.PUT("/users/:id", adminOnly, userCtrl.UpdateUser)
	api.DELETE("/users/:id", adminOnly, userCtrl.DeleteUser)

	// COMPANIES
	api.GET("/companies", companyCtrl.GetAllCompanies)
	api.GET("/companies/:id", companyCtrl.GetCompanyByID)
	api.POST("/companies", managers, companyCtrl.CreateCompany)
	api.PUT("/companies/:id", managers, companyCtrl.UpdateCompany)
	api.DELETE("/companies/:id", managers, companyCtrl.DeleteCompany)

	// CUSTOMERS
	api.GET("/customers", customerCtrl.GetAllCustomers)
	api.GET("/customers/:id", customerCtrl.GetCustomerByID)
	api.GET("/customers/:id/calls", callCtrl.GetCustomerCalls)
	api.POST("/customers", staff, customerCtrl.CreateCustomer)
	api.PUT("/customers/:id", staff, customerCtrl.UpdateCustomer)
	api.DELETE("/customers/:id", managers, customerCtrl.DeleteCustomer)

	// CALLS
	api.GET("/calls", callCtrl.GetAllCalls)
	api.GET("/calls/:id", callCtrl.GetCallByID)
	api.POST("/calls", staff, callCtrl.CreateCall)
	api.PUT("/calls/:id", staff, callCtrl.UpdateCall)
	api.DELETE("/calls/:id", managers, callCtrl.DeleteCall)

	// OPTIONS
	api.GET("/options", optionCtrl.GetAllOptions)
	api.GET("/options/:id", optionCtrl.GetOptionByID)
	api.POST("/options", managers, optionCtrl.CreateOption)
	api.PUT("/options/:id", managers, optionCtrl.UpdateOption)
	api.DELETE("/options/:id", managers, optionCtrl.DeleteOption)

	// PRODUCTS
	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/:id", productCtrl.GetProductByID)
	api.POST("/products", managers, productCtrl.CreateProduct)
	api.PUT("/products/:id", managers, productCtrl.UpdateProduct)
	api.DELETE("/products/:id", managers, productCtrl.DeleteProduct)

	// ORDERS
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.GET("/orders/:id", orderCtrl.GetOrderByID)
	api.GET("/orders/:id/history", staff, orderCtrl.GetOrderHistory)
	api.POST("/orders", staff, orderCtrl.CreateOrder)
	api.PUT("/orders/:id", staff, orderCtrl.UpdateOrder)
	api.DELETE("/orders/:id", managers, orderCtrl.DeleteOrder)

	return r
}
