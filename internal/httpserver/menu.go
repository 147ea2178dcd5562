package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/internal/menu"
	"github.com/Skotchmaster/campus_bites/internal/util"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

type MenuHTTP struct {
	Catalog  *menu.Catalog
	Searcher menu.Searcher
}

func (h *MenuHTTP) GetMenu(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "menu.list")

	items, err := h.Catalog.ByCategory(c.QueryParam("category"))
	if err != nil {
		if errors.Is(err, menu.ErrUnknownCategory) {
			l.Warn("get_menu_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
		}
		l.Error("get_menu_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load menu")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Categories())
}

func (h *MenuHTTP) GetItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "menu.get")

	item, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		l.Warn("get_menu_item_error", "status", 404, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Searcher.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		l.Error("search_menu_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}
