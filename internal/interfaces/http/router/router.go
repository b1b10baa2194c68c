package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/potterypos/backend/internal/infrastructure/auth"
	"github.com/potterypos/backend/internal/infrastructure/config"
	"github.com/potterypos/backend/internal/interfaces/http/handler"
	"github.com/potterypos/backend/internal/interfaces/http/middleware"
)

// Handlers aggregates the HTTP handlers wired into the router
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	Invoice  *handler.InvoiceHandler
	Expense  *handler.ExpenseHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// Setup builds the gin engine with middleware and all API routes.
// Auth endpoints and health checks are public; everything else sits
// behind JWT authentication under /api/v1.
func Setup(cfg *config.Config, jwtService *auth.JWTService, h Handlers, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	public := api.Group("/auth")
	{
		public.POST("/sign-up", h.Auth.SignUp)
		public.POST("/sign-in", h.Auth.SignIn)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(jwtService, log))
	{
		protected.GET("/auth/me", h.Auth.Me)

		products := protected.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/low-stock", h.Product.ListLowStock)
			products.GET("/:id", h.Product.GetByID)
			products.PUT("/:id", h.Product.Update)
			products.PUT("/:id/price", h.Product.SetPrice)
			products.PUT("/:id/cost", h.Product.SetCostPrice)
			products.POST("/:id/stock-adjustments", h.Product.AdjustStock)
			products.POST("/:id/archive", h.Product.Archive)
			products.POST("/:id/activate", h.Product.Activate)
		}

		customers := protected.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.GetByID)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
			customers.GET("/:id/orders", h.Customer.ListOrders)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("/checkout", h.Order.Checkout)
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.GetByID)
			orders.GET("/number/:number", h.Order.GetByNumber)
			orders.POST("/:id/cancel", h.Order.Cancel)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.GET("/:id", h.Invoice.GetByID)
			invoices.GET("/number/:number", h.Invoice.GetByNumber)
			invoices.GET("/order/:id", h.Invoice.GetByOrder)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.POST("", h.Expense.Create)
			expenses.GET("", h.Expense.List)
			expenses.GET("/:id", h.Expense.GetByID)
			expenses.PUT("/:id", h.Expense.Update)
			expenses.DELETE("/:id", h.Expense.Delete)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/dashboard", h.Report.Dashboard)
			reports.GET("/sales-by-day", h.Report.SalesByDay)
			reports.GET("/inventory", h.Report.InventoryByCategory)
			reports.GET("/top-customers", h.Report.TopCustomers)
			reports.GET("/expenses-by-category", h.Report.ExpensesByCategory)
			reports.GET("/profit-loss", h.Report.ProfitAndLoss)
		}

		protected.GET("/system/info", h.System.Info)
	}

	return engine
}
