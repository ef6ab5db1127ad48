package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/presentation"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{
		lister: lister,
	}
}

// HandleList handles GET /posts requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	offset, err := parseIntQueryParam(c, "offset", 0)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	limit, err := parseIntQueryParam(c, "limit", defaultPageLimit)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	posts, err := h.lister.SearchPosts(c.Request().Context(),
		c.QueryParam("q"), c.QueryParam("sort"), offset, limit)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, posts)
}

// parseIntQueryParam parses a non-negative integer query parameter,
// falling back to def when absent.
func parseIntQueryParam(c echo.Context, paramName string, def int64) (int64, error) {
	s := c.QueryParam(paramName)
	if s == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid '%s' parameter", paramName)
	}

	return v, nil
}
