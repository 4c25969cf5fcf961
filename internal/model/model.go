// Package model defines domain entities used by the store, service and gateway.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User identifies the author of a comment. Avatars maps a variant name
// (e.g. "png", "webp") to a URI.
type User struct {
	Username string            `json:"username"`
	Avatars  map[string]string `json:"avatars,omitempty"`
}

// Comment is a single node of the two-level comment tree. Top-level comments
// may own Replies; replies carry ReplyingTo and never own replies of their
// own. All comments and replies share one id space.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Score     int64     `json:"score"` // never negative
	Author    User      `json:"author"`

	// ReplyingTo names the username being answered. Set only on replies.
	ReplyingTo *string `json:"replying_to,omitempty"`

	// Replies is the ordered reply list. Set only on top-level comments.
	Replies []*Comment `json:"replies,omitempty"`
}

// IsReply reports whether the comment is a reply rather than a top-level comment.
func (c *Comment) IsReply() bool { return c.ReplyingTo != nil }

// Clone returns a deep copy of the comment, including its reply list.
func (c *Comment) Clone() *Comment {
	cp := *c
	if c.ReplyingTo != nil {
		to := *c.ReplyingTo
		cp.ReplyingTo = &to
	}
	if c.Author.Avatars != nil {
		cp.Author.Avatars = make(map[string]string, len(c.Author.Avatars))
		for k, v := range c.Author.Avatars {
			cp.Author.Avatars[k] = v
		}
	}
	if c.Replies != nil {
		cp.Replies = make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			cp.Replies = append(cp.Replies, r.Clone())
		}
	}
	return &cp
}

// Snapshot is the whole persisted unit: the session user plus the full tree.
// There is no partial persistence of individual comments.
type Snapshot struct {
	User     User       `json:"user"`
	Comments []*Comment `json:"comments"`
}

// EventKind enumerates mutations reported to observers.
type EventKind string

const (
	EventCommentCreated EventKind = "comment-created"
	EventReplyCreated   EventKind = "reply-created"
	EventCommentUpdated EventKind = "comment-updated"
	EventCommentDeleted EventKind = "comment-deleted"
	EventVoteChanged    EventKind = "vote-changed"
)

// Event describes a single completed mutation. ParentID is set only for
// EventReplyCreated; Score only for EventVoteChanged.
type Event struct {
	ID        uuid.UUID
	Kind      EventKind
	CommentID int64
	ParentID  int64
	Score     int64
}

// NewEvent builds an event with a fresh id.
func NewEvent(kind EventKind, commentID int64) Event {
	return Event{
		ID:        uuid.Must(uuid.NewV4()),
		Kind:      kind,
		CommentID: commentID,
	}
}
