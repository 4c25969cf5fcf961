package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"commentbox/internal/blob"
	"commentbox/internal/errs"
	"commentbox/internal/gateway"
	"commentbox/internal/model"
	"commentbox/internal/store"
)

type recordingObserver struct {
	events []model.Event
}

func (r *recordingObserver) Notify(ev model.Event) { r.events = append(r.events, ev) }

func newService(t *testing.T) (*ThreadServiceImpl, *store.Store, *blob.Memory) {
	t.Helper()
	st := store.New(model.User{Username: "juliusomo"}, nil)
	blobs := blob.NewMemory()
	gw := gateway.New(blobs, zap.NewNop())
	return NewThreadService(st, gw, zap.NewNop()), st, blobs
}

func TestThreadService_Post_ValidatesContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newService(t)

	for _, content := range []string{"", "  ", "ab", " a ", strings.Repeat("x", 1001)} {
		if _, err := s.Post(ctx, content); !errors.Is(err, errs.ErrInvalidContent) {
			t.Fatalf("content %q: want ErrInvalidContent, got %v", content, err)
		}
	}

	c, err := s.Post(ctx, "  trimmed to fit  ")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if c.Content != "trimmed to fit" {
		t.Fatalf("content must be stored trimmed: %q", c.Content)
	}
	if c.Author.Username != "juliusomo" {
		t.Fatalf("author must be the session user: %+v", c.Author)
	}
}

func TestThreadService_Reply_ChecksTargetAuthor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newService(t)

	c, err := s.Post(ctx, "Hello world")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	if _, err := s.Reply(ctx, c.ID, "Hi there", "nobody"); err == nil {
		t.Fatalf("want error replying to unknown user")
	}

	r, err := s.Reply(ctx, c.ID, "Hi juliusomo", "juliusomo")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if r.ReplyingTo == nil || *r.ReplyingTo != "juliusomo" {
		t.Fatalf("replying_to not set: %+v", r)
	}

	if _, err := s.Reply(ctx, 999, "Hi again", "juliusomo"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for absent parent, got %v", err)
	}
}

func TestThreadService_MutationsPersistSnapshots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, blobs := newService(t)

	c, err := s.Post(ctx, "Hello world")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	raw, err := blobs.Get(ctx, gateway.SnapshotKey)
	if err != nil {
		t.Fatalf("post must persist a snapshot: %v", err)
	}
	if !strings.Contains(string(raw), "Hello world") {
		t.Fatalf("persisted snapshot missing content: %s", raw)
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	raw, err = blobs.Get(ctx, gateway.SnapshotKey)
	if err != nil {
		t.Fatalf("delete must persist a snapshot: %v", err)
	}
	if strings.Contains(string(raw), "Hello world") {
		t.Fatalf("persisted snapshot must reflect the delete: %s", raw)
	}
}

func TestThreadService_ObserversSeeEveryMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newService(t)
	obs := &recordingObserver{}
	s.Subscribe(obs)

	c, err := s.Post(ctx, "Hello world")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	r, err := s.Reply(ctx, c.ID, "Hi juliusomo", "juliusomo")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if err := s.Edit(ctx, c.ID, "Hello edited"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if _, err := s.Vote(ctx, r.ID, store.Up); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	kinds := []model.EventKind{
		model.EventCommentCreated,
		model.EventReplyCreated,
		model.EventCommentUpdated,
		model.EventVoteChanged,
		model.EventCommentDeleted,
	}
	if len(obs.events) != len(kinds) {
		t.Fatalf("want %d events, got %d", len(kinds), len(obs.events))
	}
	for i, k := range kinds {
		if obs.events[i].Kind != k {
			t.Fatalf("event %d: want %s got %s", i, k, obs.events[i].Kind)
		}
	}

	reply := obs.events[1]
	if reply.ParentID != c.ID || reply.CommentID != r.ID {
		t.Fatalf("reply event payload: %+v", reply)
	}
	vote := obs.events[3]
	if vote.Score != 1 {
		t.Fatalf("vote event must carry the new score: %+v", vote)
	}

	seen := map[string]bool{}
	for _, ev := range obs.events {
		if seen[ev.ID.String()] {
			t.Fatalf("event ids must be unique")
		}
		seen[ev.ID.String()] = true
	}
}

func TestThreadService_FailedValidationEmitsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, blobs := newService(t)
	obs := &recordingObserver{}
	s.Subscribe(obs)

	if _, err := s.Post(ctx, "x"); err == nil {
		t.Fatalf("want validation error")
	}
	if len(obs.events) != 0 {
		t.Fatalf("failed op must not notify observers")
	}
	if _, err := blobs.Get(ctx, gateway.SnapshotKey); !errors.Is(err, errs.ErrBlobNotFound) {
		t.Fatalf("failed op must not persist")
	}
}

func TestThreadService_SaveFailureKeepsStoreAuthoritative(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.New(model.User{Username: "juliusomo"}, nil)
	gw := gateway.New(failingBlob{}, zap.NewNop())
	s := NewThreadService(st, gw, zap.NewNop())

	c, err := s.Post(ctx, "still here")
	if err != nil {
		t.Fatalf("Post must succeed despite save failure: %v", err)
	}
	if got, err := st.FindByID(c.ID); err != nil || got.Content != "still here" {
		t.Fatalf("store must keep the mutation: got=%+v err=%v", got, err)
	}

	if err := s.SaveNow(ctx); !errors.Is(err, errs.ErrSaveFailed) {
		t.Fatalf("SaveNow must surface the write error, got %v", err)
	}
}

func TestThreadService_ThreadIsSortedView(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newService(t)

	low, _ := s.Post(ctx, "low score")
	high, err := s.Post(ctx, "high score")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := s.Vote(ctx, high.ID, store.Up); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	view := s.Thread()
	if view[0].ID != high.ID || view[1].ID != low.ID {
		t.Fatalf("view must order by descending score")
	}
}

type failingBlob struct{}

func (failingBlob) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}
func (failingBlob) Set(context.Context, string, []byte) error {
	return errors.New("backend down")
}
