package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase"
	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{
		deleter: deleter,
	}
}

// HandleDelete handles DELETE /posts/:id requests.
func (h *DeleteHandler) HandleDelete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.deleter.DeletePost(c.Request().Context(), id, user.ID); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		if usecase.ErrUnauthorized.Has(err) {
			return c.NoContent(http.StatusForbidden)
		}

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
