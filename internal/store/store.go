// Package store implements the in-memory two-level comment tree.
package store

import (
	"fmt"
	"sort"
	"time"

	"commentbox/internal/errs"
	"commentbox/internal/model"
)

// Direction selects the way a vote moves a comment's score.
type Direction int

const (
	// Up increments the score by one.
	Up Direction = iota + 1
	// Down decrements the score by one, clamped at zero.
	Down
)

// Store owns the comment tree and the session user, and provides synchronous
// mutation and query operations over it. It is not safe for concurrent use:
// the caller is expected to serialize operations (one event at a time, as the
// surrounding single-threaded event loop does).
//
// The store does not validate content; boundary validation is the service
// layer's job.
type Store struct {
	user     model.User
	comments []*model.Comment
	nextID   int64
}

// New constructs a store over the given session user and initial tree.
// Fresh ids continue past the largest id already present.
func New(user model.User, comments []*model.Comment) *Store {
	return &Store{
		user:     user,
		comments: comments,
		nextID:   maxID(comments) + 1,
	}
}

// User returns the session user the store was constructed with.
func (s *Store) User() model.User { return s.user }

// Len returns the total number of comments and replies in the tree.
func (s *Store) Len() int {
	n := len(s.comments)
	for _, c := range s.comments {
		n += len(c.Replies)
	}
	return n
}

// FindByID returns the comment or reply with the given id. Top-level comments
// are scanned first, then each reply list in order.
func (s *Store) FindByID(id int64) (*model.Comment, error) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, nil
		}
		for _, r := range c.Replies {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return nil, fmt.Errorf("comment %d: %w", id, errs.ErrNotFound)
}

// HasAuthor reports whether any comment or reply in the tree was authored by
// username. Used when creating a reply: replying-to must name an author
// present at creation time (it may dangle later).
func (s *Store) HasAuthor(username string) bool {
	for _, c := range s.comments {
		if c.Author.Username == username {
			return true
		}
		for _, r := range c.Replies {
			if r.Author.Username == username {
				return true
			}
		}
	}
	return false
}

// AddComment appends a new top-level comment authored by author. The id is
// fresh across the whole tree; score starts at zero. Never fails.
func (s *Store) AddComment(content string, author model.User) *model.Comment {
	c := &model.Comment{
		ID:        s.allocID(),
		Content:   content,
		CreatedAt: time.Now(),
		Author:    author,
	}
	s.comments = append(s.comments, c)
	return c
}

// AddReply appends a reply to the top-level comment identified by parentID,
// preserving insertion order. replyingTo names the author being answered
// (the immediate target, which may itself be a reply's author). parentID must
// resolve to a top-level comment; callers always pass the top-level id.
func (s *Store) AddReply(parentID int64, content string, author model.User, replyingTo string) (*model.Comment, error) {
	parent := s.topLevel(parentID)
	if parent == nil {
		return nil, fmt.Errorf("parent comment %d: %w", parentID, errs.ErrNotFound)
	}
	r := &model.Comment{
		ID:         s.allocID(),
		Content:    content,
		CreatedAt:  time.Now(),
		Author:     author,
		ReplyingTo: &replyingTo,
	}
	parent.Replies = append(parent.Replies, r)
	return r, nil
}

// UpdateContent replaces the content of the comment with the given id.
// CreatedAt, score and replying-to are untouched.
func (s *Store) UpdateContent(id int64, content string) error {
	c, err := s.FindByID(id)
	if err != nil {
		return err
	}
	c.Content = content
	return nil
}

// Vote moves the score of the comment with the given id and returns the new
// score. Down is clamped at zero: voting down a zero-score comment is a no-op
// that still returns zero. Repeated votes are not de-duplicated.
func (s *Store) Vote(id int64, dir Direction) (int64, error) {
	c, err := s.FindByID(id)
	if err != nil {
		return 0, err
	}
	switch dir {
	case Up:
		c.Score++
	case Down:
		if c.Score > 0 {
			c.Score--
		}
	default:
		return 0, fmt.Errorf("unknown vote direction %d", dir)
	}
	return c.Score, nil
}

// Remove deletes the comment with the given id from whichever sequence holds
// it. Removing a top-level comment discards its whole reply list; dangling
// replying-to references in other replies are tolerated.
func (s *Store) Remove(id int64) error {
	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
		for j, r := range c.Replies {
			if r.ID == id {
				c.Replies = append(c.Replies[:j], c.Replies[j+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("comment %d: %w", id, errs.ErrNotFound)
}

// Snapshot returns a deep copy of the whole state. Later mutations of the
// store do not show through the returned value.
func (s *Store) Snapshot() model.Snapshot {
	out := model.Snapshot{User: s.user, Comments: make([]*model.Comment, 0, len(s.comments))}
	for _, c := range s.comments {
		out.Comments = append(out.Comments, c.Clone())
	}
	return out
}

// Restore replaces the in-memory state with the given snapshot after
// re-validating its shape. On failure the prior state is untouched.
func (s *Store) Restore(snap model.Snapshot) error {
	if snap.User.Username == "" {
		return fmt.Errorf("missing username: %w", errs.ErrInvalidSnapshot)
	}
	comments := make([]*model.Comment, 0, len(snap.Comments))
	for _, c := range snap.Comments {
		comments = append(comments, c.Clone())
	}
	s.user = snap.User
	s.comments = comments
	s.nextID = maxID(comments) + 1
	return nil
}

// SortedByScore returns the top-level comments ordered by descending score.
// The order is derived at call time and never persisted: the underlying
// sequence keeps insertion order, and reply lists are not re-sorted.
func (s *Store) SortedByScore() []*model.Comment {
	out := make([]*model.Comment, len(s.comments))
	copy(out, s.comments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) topLevel(id int64) *model.Comment {
	for _, c := range s.comments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func maxID(comments []*model.Comment) int64 {
	var max int64
	for _, c := range comments {
		if c.ID > max {
			max = c.ID
		}
		for _, r := range c.Replies {
			if r.ID > max {
				max = r.ID
			}
		}
	}
	return max
}
