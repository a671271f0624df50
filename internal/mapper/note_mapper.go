package mapper

import (
	"encoding/json"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var tags []string
	if len(n.Tags) > 0 {
		// A corrupt tags column degrades to an empty set rather than failing
		// the whole read.
		_ = json.Unmarshal(n.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		FolderId:  n.FolderId,
		Color:     n.Color,
		IsPinned:  n.IsPinned,
		Tags:      tags,
		Summary:   n.Summary,
		CreatedAt: time.UnixMilli(n.CreatedAt),
		UpdatedAt: time.UnixMilli(n.UpdatedAt),
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJson, _ := json.Marshal(tags)

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		FolderId:  n.FolderId,
		Color:     n.Color,
		IsPinned:  n.IsPinned,
		Tags:      datatypes.JSON(tagsJson),
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt.UnixMilli(),
		UpdatedAt: n.UpdatedAt.UnixMilli(),
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
