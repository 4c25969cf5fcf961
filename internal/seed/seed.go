// Package seed provides the bundled seed snapshot and the hardcoded default
// the gateway falls back to when no persisted state exists.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"

	"commentbox/internal/model"
)

//go:embed data/seed.json
var dataFS embed.FS

// document mirrors the bundled seed file: same shape as a snapshot except
// that createdAt arrives as a relative-time phrase.
type document struct {
	CurrentUser model.User `json:"currentUser"`
	Comments    []comment  `json:"comments"`
}

type comment struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	CreatedAt  string     `json:"createdAt"`
	Score      int64      `json:"score"`
	Author     model.User `json:"author"`
	ReplyingTo *string    `json:"replyingTo,omitempty"`
	Replies    []comment  `json:"replies,omitempty"`
}

// Load parses the bundled seed document into a snapshot, resolving
// relative-time phrases against now.
func Load(now time.Time) (model.Snapshot, error) {
	raw, err := dataFS.ReadFile("data/seed.json")
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read seed: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode seed: %w", err)
	}

	comments := make([]*model.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		mc, err := c.toModel(now)
		if err != nil {
			return model.Snapshot{}, err
		}
		comments = append(comments, mc)
	}
	return model.Snapshot{User: doc.CurrentUser, Comments: comments}, nil
}

func (c comment) toModel(now time.Time) (*model.Comment, error) {
	created, err := ParseRelativeTime(c.CreatedAt, now)
	if err != nil {
		return nil, fmt.Errorf("comment %d: %w", c.ID, err)
	}
	out := &model.Comment{
		ID:         c.ID,
		Content:    c.Content,
		CreatedAt:  created,
		Score:      c.Score,
		Author:     c.Author,
		ReplyingTo: c.ReplyingTo,
	}
	if len(c.Replies) > 0 {
		out.Replies = make([]*model.Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			mr, err := r.toModel(now)
			if err != nil {
				return nil, err
			}
			out.Replies = append(out.Replies, mr)
		}
	}
	return out, nil
}

// Usernames returns every author username present in the snapshot, top-level
// authors first.
func Usernames(snap model.Snapshot) []string {
	tops := lo.Map(snap.Comments, func(c *model.Comment, _ int) string { return c.Author.Username })
	for _, c := range snap.Comments {
		tops = append(tops, lo.Map(c.Replies, func(r *model.Comment, _ int) string { return r.Author.Username })...)
	}
	return lo.Uniq(tops)
}

// Default returns the hardcoded last-resort snapshot: one user, two seeded
// comments, one nested reply chain.
func Default() model.Snapshot {
	now := time.Now()
	me := model.User{Username: "juliusomo", Avatars: map[string]string{
		"png":  "./images/avatars/image-juliusomo.png",
		"webp": "./images/avatars/image-juliusomo.webp",
	}}
	amy := model.User{Username: "amyrobson", Avatars: map[string]string{
		"png":  "./images/avatars/image-amyrobson.png",
		"webp": "./images/avatars/image-amyrobson.webp",
	}}
	max := model.User{Username: "maxblagun", Avatars: map[string]string{
		"png":  "./images/avatars/image-maxblagun.png",
		"webp": "./images/avatars/image-maxblagun.webp",
	}}
	replyTo := "maxblagun"

	return model.Snapshot{
		User: me,
		Comments: []*model.Comment{
			{
				ID:        1,
				Content:   "Impressive! Though it seems the drag feature could be improved.",
				CreatedAt: now.Add(-30 * 24 * time.Hour),
				Score:     12,
				Author:    amy,
			},
			{
				ID:        2,
				Content:   "Woah, your project looks awesome! How long have you been coding for?",
				CreatedAt: now.Add(-14 * 24 * time.Hour),
				Score:     5,
				Author:    max,
				Replies: []*model.Comment{
					{
						ID:         3,
						Content:    "Lay a solid foundation first, then dive into frameworks.",
						CreatedAt:  now.Add(-7 * 24 * time.Hour),
						Score:      4,
						Author:     me,
						ReplyingTo: &replyTo,
					},
				},
			},
		},
	}
}
