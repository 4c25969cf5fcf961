// Package service holds the thread service: boundary validation, observer
// notification, and store/gateway orchestration.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"commentbox/internal/errs"
	"commentbox/internal/gateway"
	"commentbox/internal/model"
	"commentbox/internal/store"
)

// Content length bounds, applied after trimming whitespace. The store itself
// accepts any string; this boundary is the only validation point.
const (
	MinContentLen = 3
	MaxContentLen = 1000
)

// Observer receives one event per completed mutation.
type Observer interface {
	// Notify is called synchronously after a mutation lands in the store.
	Notify(ev model.Event)
}

// ThreadService defines every user-facing operation over one comment thread.
type ThreadService interface {
	// Post creates a top-level comment authored by the session user.
	Post(ctx context.Context, content string) (*model.Comment, error)
	// Reply creates a reply under the top-level comment parentID, answering
	// the author named by replyingTo.
	Reply(ctx context.Context, parentID int64, content, replyingTo string) (*model.Comment, error)
	// Edit replaces the content of an existing comment or reply.
	Edit(ctx context.Context, id int64, content string) error
	// Vote moves a comment's score and returns the new score.
	Vote(ctx context.Context, id int64, dir store.Direction) (int64, error)
	// Delete removes a comment or reply; deleting a top-level comment
	// discards its replies.
	Delete(ctx context.Context, id int64) error
	// Thread returns the presentation view: top-level comments by descending
	// score, replies in insertion order.
	Thread() []*model.Comment
	// SaveNow persists the current snapshot immediately.
	SaveNow(ctx context.Context) error
}

// ThreadServiceImpl wires the store to the persistence gateway. Each
// successful mutation notifies observers and then persists a snapshot; a
// failed save is logged and the in-memory store stays authoritative.
type ThreadServiceImpl struct {
	store     *store.Store
	gw        *gateway.Gateway
	logger    *zap.Logger
	observers []Observer
}

// NewThreadService constructs the service. The session user travels with the
// store; there is no ambient current-user state.
func NewThreadService(st *store.Store, gw *gateway.Gateway, logger *zap.Logger) *ThreadServiceImpl {
	return &ThreadServiceImpl{store: st, gw: gw, logger: logger}
}

// Subscribe registers an observer for mutation events.
func (s *ThreadServiceImpl) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Post validates content and appends a top-level comment.
func (s *ThreadServiceImpl) Post(ctx context.Context, content string) (*model.Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	c := s.store.AddComment(content, s.store.User())
	s.emit(model.NewEvent(model.EventCommentCreated, c.ID))
	s.persist(ctx)
	return c, nil
}

// Reply validates content and the reply target, then appends a reply.
func (s *ThreadServiceImpl) Reply(ctx context.Context, parentID int64, content, replyingTo string) (*model.Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	if !s.store.HasAuthor(replyingTo) {
		return nil, fmt.Errorf("validation: replying to unknown user %q", replyingTo)
	}
	r, err := s.store.AddReply(parentID, content, s.store.User(), replyingTo)
	if err != nil {
		return nil, err
	}
	ev := model.NewEvent(model.EventReplyCreated, r.ID)
	ev.ParentID = parentID
	s.emit(ev)
	s.persist(ctx)
	return r, nil
}

// Edit validates content and updates it in place.
func (s *ThreadServiceImpl) Edit(ctx context.Context, id int64, content string) error {
	content, err := validContent(content)
	if err != nil {
		return err
	}
	if err := s.store.UpdateContent(id, content); err != nil {
		return err
	}
	s.emit(model.NewEvent(model.EventCommentUpdated, id))
	s.persist(ctx)
	return nil
}

// Vote delegates to the store and reports the new score.
func (s *ThreadServiceImpl) Vote(ctx context.Context, id int64, dir store.Direction) (int64, error) {
	score, err := s.store.Vote(id, dir)
	if err != nil {
		return 0, err
	}
	ev := model.NewEvent(model.EventVoteChanged, id)
	ev.Score = score
	s.emit(ev)
	s.persist(ctx)
	return score, nil
}

// Delete removes a comment or reply.
func (s *ThreadServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Remove(id); err != nil {
		return err
	}
	s.emit(model.NewEvent(model.EventCommentDeleted, id))
	s.persist(ctx)
	return nil
}

// Thread returns the derived presentation order.
func (s *ThreadServiceImpl) Thread() []*model.Comment {
	return s.store.SortedByScore()
}

// SaveNow persists the current snapshot and reports the outcome.
func (s *ThreadServiceImpl) SaveNow(ctx context.Context) error {
	return s.gw.Save(ctx, s.store.Snapshot())
}

func (s *ThreadServiceImpl) emit(ev model.Event) {
	for _, o := range s.observers {
		o.Notify(ev)
	}
}

// persist writes the post-mutation snapshot. Failure is reported once and
// never rolls back the mutation.
func (s *ThreadServiceImpl) persist(ctx context.Context) {
	if err := s.gw.Save(ctx, s.store.Snapshot()); err != nil {
		s.logger.Warn("snapshot save failed, in-memory state kept", zap.Error(err))
	}
}

// validContent trims and checks the content length bounds.
func validContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if n := len([]rune(trimmed)); n < MinContentLen || n > MaxContentLen {
		return "", fmt.Errorf("%w: length %d outside [%d,%d]", errs.ErrInvalidContent, n, MinContentLen, MaxContentLen)
	}
	return trimmed, nil
}
