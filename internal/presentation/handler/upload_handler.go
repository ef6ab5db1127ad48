package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/stage"
	sess "modarc/internal/presentation/session"
	"modarc/pkg/logger"
)

// UploadHandler accepts the persistent upload connection and pumps frames
// between it and the session state machine. The protocol's only failure
// signal is the connection closing: no error frame is ever written.
type UploadHandler struct {
	authorizer abstraction.Authorizer
	images     abstraction.ImageVerifier
	retriever  database.Retriever
	stager     stage.Stager
	uploader   abstraction.Uploader
}

func NewUploadHandler(authorizer abstraction.Authorizer, images abstraction.ImageVerifier,
	retriever database.Retriever, stager stage.Stager, uploader abstraction.Uploader,
) *UploadHandler {
	return &UploadHandler{
		authorizer: authorizer,
		images:     images,
		retriever:  retriever,
		stager:     stager,
		uploader:   uploader,
	}
}

func (h *UploadHandler) Handle(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusInternalError, "")

	// Chunk size is the client's choice; the default read limit would reject
	// anything over 32 KiB.
	conn.SetReadLimit(-1)

	ctx := c.Request().Context()
	s := sess.New(h.authorizer, h.images, h.retriever, h.stager)

	for s.State() != sess.StateComplete {
		frame, err := readFrame(ctx, conn)
		if err != nil {
			logger.Info("upload connection ended", "err", err)

			return nil
		}

		replies, err := s.Step(ctx, frame)
		if err != nil {
			// Silent abort: the client learns nothing beyond the close.
			logger.Warn("upload session aborted", "err", err)

			return nil
		}

		for _, reply := range replies {
			if err := conn.Write(ctx, websocket.MessageText, []byte(reply)); err != nil {
				return nil
			}
		}
	}

	postID, err := h.uploader.Upload(ctx, s.Identity(), s.Manifest(), s.Staged())
	if err != nil {
		logger.Error("upload pipeline failed", "err", err)

		return nil
	}

	if err := conn.Write(ctx, websocket.MessageText, fmt.Appendf(nil, "/post/%d", postID)); err != nil {
		return nil
	}

	return conn.Close(websocket.StatusNormalClosure, "")
}

func readFrame(ctx context.Context, conn *websocket.Conn) (sess.Frame, error) {
	typ, data, err := conn.Read(ctx)
	if err != nil {
		var closeErr websocket.CloseError
		if errors.As(err, &closeErr) {
			return sess.Frame{Type: sess.FrameClose}, nil
		}

		return sess.Frame{}, err
	}

	frameType := sess.FrameText
	if typ == websocket.MessageBinary {
		frameType = sess.FrameBinary
	}

	return sess.Frame{Type: frameType, Data: data}, nil
}
