package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	FolderId  string
	Color     string
	IsPinned  bool
	Tags      []string
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch carries a field-level partial update. Nil fields are left
// untouched; the updated timestamp is bumped regardless, even when every
// field is nil.
type NotePatch struct {
	Title    *string
	Content  *string
	FolderId *string
	Color    *string
	IsPinned *bool
	Tags     *[]string
	Summary  *string
}

// ApplyTo mutates the note in place with the set fields of the patch.
func (p *NotePatch) ApplyTo(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderId != nil {
		n.FolderId = *p.FolderId
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.Tags != nil {
		n.Tags = *p.Tags
	}
	if p.Summary != nil {
		n.Summary = *p.Summary
	}
}
