package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/domain/model"
	"modarc/internal/presentation"
)

type GetHandler struct {
	getter  abstraction.Getter
	reactor abstraction.Reactor
}

func NewGetHandler(getter abstraction.Getter, reactor abstraction.Reactor) *GetHandler {
	return &GetHandler{
		getter:  getter,
		reactor: reactor,
	}
}

type postResponse struct {
	*model.Post
	Songs []model.SongDocument `json:"songs"`
}

// HandleGet handles GET /posts/:id requests.
func (h *GetHandler) HandleGet(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	post, err := h.getter.GetPost(c.Request().Context(), id)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusNotFound)
	}

	songs, err := h.getter.GetPostSongs(c.Request().Context(), id)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, postResponse{Post: post, Songs: songs})
}

// HandleDownload handles GET /posts/:id/download requests. It bumps the
// download counter and redirects to the post's primary file.
func (h *GetHandler) HandleDownload(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	url, err := h.reactor.Download(c.Request().Context(), id)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusNotFound)
	}

	return c.Redirect(http.StatusFound, url)
}

var errInvalidID = errors.New("invalid 'id' parameter")

func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param(presentation.IDParam), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}

	return id, nil
}
