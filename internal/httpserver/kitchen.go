package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/repo"
	"github.com/Skotchmaster/campus_bites/internal/service"
	"github.com/Skotchmaster/campus_bites/internal/transport"
	"github.com/Skotchmaster/campus_bites/internal/util"
	"github.com/Skotchmaster/campus_bites/pkg/hash"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
	"github.com/Skotchmaster/campus_bites/pkg/tokens"
)

const staffSubject = "kitchen"

type KitchenHTTP struct {
	Svc          *service.KitchenService
	JWTSecret    []byte
	PasscodeHash string
	TokenTTL     time.Duration
}

func (h *KitchenHTTP) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "kitchen.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("kitchen_login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if !hash.CheckPassword(h.PasscodeHash, req.Passcode) {
		l.Warn("kitchen_login_error", "status", 401, "reason", "wrong passcode")
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong passcode")
	}

	exp := time.Now().Add(h.TokenTTL)
	token, err := tokens.SignAccessToken(staffSubject, tokens.RoleStaff, exp, h.JWTSecret)
	if err != nil {
		l.Error("kitchen_login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue token")
	}

	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, token, "/", exp, c.IsTLS()))
	l.Info("kitchen_login_success")
	return c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token, ExpiresAt: exp.UTC()})
}

func (h *KitchenHTTP) Logout(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", c.IsTLS()))
	return c.NoContent(http.StatusNoContent)
}

// ListOrders serves the board. status is empty for unfinished orders,
// "all" for every order, or a comma-separated list of statuses.
func (h *KitchenHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "kitchen.list")

	f, err := boardFilter(c.QueryParam("status"))
	if err != nil {
		l.Warn("kitchen_list_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.MaxPageSize)
	offset, limit := util.Calculate(page, size)
	f.Offset, f.Limit = offset, limit

	orders, total, err := h.Svc.List(ctx, f)
	if err != nil {
		return fail(l, "kitchen_list", err, "cannot load orders")
	}
	counts, err := h.Svc.Counts(ctx)
	if err != nil {
		return fail(l, "kitchen_list", err, "cannot load orders")
	}

	return c.JSON(http.StatusOK, transport.BoardResponse{
		Data:   board(orders),
		Counts: counts,
		Meta:   util.Meta(page, offset, limit, total),
	})
}

func boardFilter(raw string) (repo.OrderFilter, error) {
	switch raw = strings.TrimSpace(raw); raw {
	case "":
		return repo.OrderFilter{ExcludeCompleted: true}, nil
	case "all":
		return repo.OrderFilter{}, nil
	}

	var f repo.OrderFilter
	for _, part := range strings.Split(raw, ",") {
		st, err := models.ParseOrderStatus(strings.TrimSpace(part))
		if err != nil {
			return repo.OrderFilter{}, err
		}
		f.Statuses = append(f.Statuses, st)
	}
	return f, nil
}

func (h *KitchenHTTP) Advance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "kitchen.advance")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("kitchen_advance_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Advance(ctx, id)
	if err != nil {
		return fail(l, "kitchen_advance", err, "cannot update order")
	}

	l.Info("order_advanced", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, transport.KitchenOrder{Order: *order, Action: service.ActionLabel(order.Status)})
}

func (h *KitchenHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "kitchen.set_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("kitchen_set_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("kitchen_set_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	target, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		l.Warn("kitchen_set_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.Svc.SetStatus(ctx, id, target)
	if err != nil {
		return fail(l, "kitchen_set_status", err, "cannot update order")
	}

	l.Info("order_status_set", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, transport.KitchenOrder{Order: *order, Action: service.ActionLabel(order.Status)})
}

// Stream pushes the unfinished orders and status counts as server-sent events until the client
// goes away.
func (h *KitchenHTTP) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "kitchen.stream")

	w := c.Response()
	// Streams outlive the server's write timeout.
	_ = http.NewResponseController(w.Writer).SetWriteDeadline(time.Time{})

	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	err := h.Svc.Stream(ctx, func(orders []models.Order) error {
		counts, err := h.Svc.Counts(ctx)
		if err != nil {
			l.Warn("kitchen_stream_counts_error", "error", err)
		}
		payload, err := json.Marshal(transport.BoardResponse{Data: board(orders), Counts: counts})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: orders\ndata: %s\n\n", payload); err != nil {
			return err
		}
		w.Flush()
		return nil
	})
	if err != nil {
		l.Warn("kitchen_stream_closed", "error", err)
	}
	return nil
}

func board(orders []models.Order) []transport.KitchenOrder {
	out := make([]transport.KitchenOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, transport.KitchenOrder{Order: o, Action: service.ActionLabel(o.Status)})
	}
	return out
}
