package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/domain/model"
	"modarc/internal/presentation"
)

const maxCommentLength = 4096

type ReactHandler struct {
	reactor abstraction.Reactor
}

func NewReactHandler(reactor abstraction.Reactor) *ReactHandler {
	return &ReactHandler{
		reactor: reactor,
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID int64 `json:"id"`
}

// HandleLike handles POST /posts/:id/like requests.
func (h *ReactHandler) HandleLike(c echo.Context) error {
	return h.setLike(c, true)
}

// HandleUnlike handles DELETE /posts/:id/like requests.
func (h *ReactHandler) HandleUnlike(c echo.Context) error {
	return h.setLike(c, false)
}

func (h *ReactHandler) setLike(c echo.Context, liked bool) error {
	user, ok := currentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.reactor.Like(c.Request().Context(), id, user.ID, liked); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}

// HandleComment handles POST /posts/:id/comments requests.
func (h *ReactHandler) HandleComment(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	var req commentRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "malformed body")

		return c.NoContent(http.StatusBadRequest)
	}

	if req.Text == "" || len(req.Text) > maxCommentLength {
		c.Response().Header().Set(presentation.ReasonTag, "invalid comment text")

		return c.NoContent(http.StatusBadRequest)
	}

	commentID, err := h.reactor.Comment(c.Request().Context(), id, user.ID, req.Text)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, commentResponse{ID: commentID})
}

// HandleRemoveComment handles DELETE /comments/:id requests.
func (h *ReactHandler) HandleRemoveComment(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.reactor.RemoveComment(c.Request().Context(), id, user.ID); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusForbidden)
	}

	return c.NoContent(http.StatusOK)
}

func currentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(presentation.UserKey).(*model.User)

	return user, ok
}
