package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/campus_bites/pkg/db"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
	middleware "github.com/Skotchmaster/campus_bites/pkg/middleware/auth"
)

type Deps struct {
	MenuHandler    *MenuHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	KitchenHandler *KitchenHTTP
	JWTSecret      []byte
	DB             *gorm.DB

	// CSRF guards the /api/v1 routes when set.
	CSRF echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api/v1")
	if d.CSRF != nil {
		api.Use(d.CSRF)
	}

	api.GET("/menu", d.MenuHandler.GetMenu)
	api.GET("/menu/categories", d.MenuHandler.GetCategories)
	api.GET("/menu/search", d.MenuHandler.Search)
	api.GET("/menu/:id", d.MenuHandler.GetItem)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart", d.CartHandler.AddToCart)
	api.DELETE("/cart", d.CartHandler.ClearCart)
	api.PATCH("/cart/:id", d.CartHandler.UpdateQuantity)
	api.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)

	api.POST("/checkout", d.OrderHandler.Checkout)
	api.GET("/orders/:id", d.OrderHandler.GetOrder)

	authMW := middleware.NewStaffMiddleware(d.JWTSecret)

	api.POST("/kitchen/login", d.KitchenHandler.Login)
	api.POST("/kitchen/logout", d.KitchenHandler.Logout, authMW.RequireAuth)

	kitchen := api.Group("/kitchen", authMW.RequireStaff)
	kitchen.GET("/orders", d.KitchenHandler.ListOrders)
	kitchen.GET("/stream", d.KitchenHandler.Stream)
	kitchen.POST("/orders/:id/advance", d.KitchenHandler.Advance)
	kitchen.PATCH("/orders/:id", d.KitchenHandler.SetStatus)
}
