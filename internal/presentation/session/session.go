// Package session implements the per-connection upload protocol as an
// explicit state machine, independent of the transport that carries the
// frames.
package session

import (
	"context"
	"encoding/json"

	"github.com/zeebo/errs"

	"modarc/internal/application/usecase"
	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/domain/dto"
	"modarc/internal/domain/entity"
	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/stage"
)

// ErrProtocol marks malformed or out-of-order frames. Every session error,
// protocol or otherwise, aborts the connection silently; the class only
// matters for logs.
var ErrProtocol = errs.Class("protocol violation")

type FrameType int

const (
	FrameText FrameType = iota
	FrameBinary
	FrameClose
)

type Frame struct {
	Type FrameType
	Data []byte
}

// Ready is the flow-control acknowledgement: sent before each file and after
// each accepted chunk. Clients must not send the next frame before it.
const Ready = "Ready"

type State int

const (
	// StateToken waits for the identity token frame.
	StateToken State = iota
	// StateManifest waits for the JSON upload manifest.
	StateManifest
	// StateReceiving appends binary chunks to the current stage file.
	StateReceiving
	// StateComplete: all declared files are staged; the driver runs the
	// publish/commit pipeline.
	StateComplete
	// StateAborted is terminal; no further frames are legal.
	StateAborted
)

// Session is one upload session. Step consumes one inbound frame and returns
// the acknowledgements to send; the transport handler pumps frames in and
// replies out until the session completes or errors.
type Session struct {
	authorizer abstraction.Authorizer
	images     abstraction.ImageVerifier
	retriever  database.Retriever
	stager     stage.Stager

	state    State
	identity *model.User
	manifest dto.UploadManifest

	fileIdx int
	current stage.File
	staged  []entity.StagedFile
}

func New(authorizer abstraction.Authorizer, images abstraction.ImageVerifier,
	retriever database.Retriever, stager stage.Stager,
) *Session {
	return &Session{
		authorizer: authorizer,
		images:     images,
		retriever:  retriever,
		stager:     stager,
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) Identity() *model.User { return s.identity }

func (s *Session) Manifest() *dto.UploadManifest { return &s.manifest }

func (s *Session) Staged() []entity.StagedFile { return s.staged }

// Step runs one transition. A non-nil error means the session is aborted;
// partial stage files are discarded and no state was committed anywhere.
func (s *Session) Step(ctx context.Context, frame Frame) ([]string, error) {
	if frame.Type == FrameClose {
		s.abort()

		return nil, ErrProtocol.New("client closed mid-session")
	}

	var (
		replies []string
		err     error
	)

	switch s.state {
	case StateToken:
		replies, err = s.onToken(ctx, frame)
	case StateManifest:
		replies, err = s.onManifest(ctx, frame)
	case StateReceiving:
		replies, err = s.onChunk(frame)
	default:
		err = ErrProtocol.New("frame received in terminal state")
	}

	if err != nil {
		s.abort()

		return nil, err
	}

	return replies, nil
}

func (s *Session) onToken(ctx context.Context, frame Frame) ([]string, error) {
	if frame.Type != FrameText {
		return nil, ErrProtocol.New("expected identity token, got binary frame")
	}

	identity, err := s.authorizer.Resolve(ctx, string(frame.Data))
	if err != nil {
		return nil, err
	}

	s.identity = identity
	s.state = StateManifest

	// The protocol stays silent on a valid token.
	return nil, nil
}

func (s *Session) onManifest(ctx context.Context, frame Frame) ([]string, error) {
	if frame.Type != FrameText {
		return nil, ErrProtocol.New("expected manifest, got binary frame")
	}

	if err := json.Unmarshal(frame.Data, &s.manifest); err != nil {
		return nil, ErrProtocol.New("malformed manifest: %v", err)
	}

	if err := s.validateManifest(ctx); err != nil {
		return nil, err
	}

	if err := s.openNext(); err != nil {
		return nil, err
	}
	s.state = StateReceiving

	return []string{Ready}, nil
}

func (s *Session) validateManifest(ctx context.Context) error {
	if s.manifest.Name == "" || len(s.manifest.Filenames) == 0 || s.manifest.Image == "" {
		return usecase.ErrValidation.New("manifest missing name, filenames or image")
	}

	if s.manifest.ID != nil {
		ok, err := s.retriever.IsAuthor(ctx, *s.manifest.ID, s.identity.ID)
		if err != nil {
			return err
		}
		if !ok {
			return usecase.ErrUnauthorized.New("user %d does not own post %d",
				s.identity.ID, *s.manifest.ID)
		}
	}

	for _, img := range s.manifest.Images() {
		if err := s.images.Verify(ctx, img); err != nil {
			return usecase.ErrValidation.Wrap(err)
		}
	}

	return nil
}

// onChunk appends binary frames to the open stage file; any text frame ends
// the current file and advances to the next declared name.
func (s *Session) onChunk(frame Frame) ([]string, error) {
	if frame.Type == FrameBinary {
		if _, err := s.current.Write(frame.Data); err != nil {
			return nil, err
		}

		return []string{Ready}, nil
	}

	staged, err := s.current.Finalize()
	if err != nil {
		return nil, err
	}
	s.current = nil
	s.staged = append(s.staged, staged)
	s.fileIdx++

	if s.fileIdx == len(s.manifest.Filenames) {
		s.state = StateComplete

		return nil, nil
	}

	if err := s.openNext(); err != nil {
		return nil, err
	}

	return []string{Ready}, nil
}

func (s *Session) openNext() error {
	f, err := s.stager.Open(s.identity.ID, s.manifest.Filenames[s.fileIdx])
	if err != nil {
		return err
	}
	s.current = f

	return nil
}

func (s *Session) abort() {
	if s.current != nil {
		_ = s.current.Discard()
		s.current = nil
	}
	s.state = StateAborted
}
