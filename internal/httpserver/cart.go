package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/internal/service"
	"github.com/Skotchmaster/campus_bites/internal/transport"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

const (
	SessionCookie = "cart_session"
	sessionTTL    = 30 * 24 * time.Hour
)

type CartHTTP struct {
	Svc *service.CartService
}

// sessionID returns the caller's cart session, issuing a new cookie when
// the request carries none or an unreadable one.
func sessionID(c echo.Context) uuid.UUID {
	if ck, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id
		}
	}

	id := uuid.New()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id.String(),
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items, err := h.Svc.Get(ctx, sessionID(c))
	if err != nil {
		return fail(l, "get_cart", err, "cannot load cart")
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.MenuItemID == "" {
		l.Warn("add_to_cart_error", "status", 400)
		return echo.NewHTTPError(http.StatusBadRequest, "menu_item_id required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	items, err := h.Svc.Add(ctx, sessionID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart", err, "cannot update cart")
	}

	l.Info("cart_item_added", "menu_item_id", req.MenuItemID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.UpdateQuantity(ctx, sessionID(c), c.Param("id"), req.Delta)
	if err != nil {
		return fail(l, "update_quantity", err, "cannot update cart")
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	items, err := h.Svc.Remove(ctx, sessionID(c), c.Param("id"))
	if err != nil {
		return fail(l, "remove_from_cart", err, "cannot update cart")
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.Clear(ctx, sessionID(c)); err != nil {
		return fail(l, "clear_cart", err, "cannot clear cart")
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, transport.NewCartResponse(nil))
}
