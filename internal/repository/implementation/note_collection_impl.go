package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/mapper"
	"notesync-be/internal/model"
	"notesync-be/internal/repository/contract"
	"notesync-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteCollectionImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteCollection(db *gorm.DB) contract.NoteCollection {
	return &NoteCollectionImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteCollectionImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteCollectionImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteCollectionImpl) Patch(ctx context.Context, id uuid.UUID, patch *entity.NotePatch, updatedAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"updated_at": updatedAt.UnixMilli(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.FolderId != nil {
		updates["folder_id"] = *patch.FolderId
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.IsPinned != nil {
		updates["is_pinned"] = *patch.IsPinned
	}
	if patch.Tags != nil {
		tagsJson, err := json.Marshal(*patch.Tags)
		if err != nil {
			return false, err
		}
		updates["tags"] = tagsJson
	}
	if patch.Summary != nil {
		updates["summary"] = *patch.Summary
	}

	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specification.ByID{ID: id})
	result := query.Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NoteCollectionImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NoteCollectionImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteCollectionImpl) FindAll(ctx context.Context) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(
		r.db.WithContext(ctx),
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteCollectionImpl) Live() bool {
	return true
}
