package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPostTitleLength bounds Post.Title in runes.
const MaxPostTitleLength = 200

// Post is an entry of the news feed.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPost creates a Post authored by authorID.
func NewPost(authorID uuid.UUID, title, body string, now time.Time) (*Post, error) {
	p := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyID
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyOwner
	}
	if err := validText(p.Title, MaxPostTitleLength); err != nil {
		return err
	}
	if strings.TrimSpace(p.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

// Edit replaces the title and body and bumps UpdatedAt.
func (p *Post) Edit(title, body string, now time.Time) error {
	p.Title = title
	p.Body = body
	p.UpdatedAt = now.UTC()
	return p.Validate()
}
