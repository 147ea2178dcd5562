package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/internal/service"
	"github.com/Skotchmaster/campus_bites/internal/transport"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, sessionID(c), req.PaymentMethod)
	if err != nil {
		return fail(l, "checkout", err, "cannot place order")
	}

	l.Info("order_placed", "order_id", order.ID, "token", order.TokenNumber, "total", order.Total.StringFixed(2))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_order", err, "cannot load order")
	}
	return c.JSON(http.StatusOK, order)
}
