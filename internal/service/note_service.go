package service

import (
	"context"
	"strings"

	"notesync-be/internal/constant"
	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/store"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	List(ctx context.Context, folder, search string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Folders() []*dto.FolderResponse
}

type noteService struct {
	adapter *store.Adapter
}

func NewNoteService(adapter *store.Adapter) INoteService {
	return &noteService{adapter: adapter}
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	note := entity.Note{
		Title:    req.Title,
		Content:  req.Content,
		FolderId: req.FolderId,
		Color:    req.Color,
		IsPinned: req.IsPinned,
		Tags:     req.Tags,
	}

	id, err := s.adapter.AddNote(ctx, &note)
	if err != nil {
		return nil, err
	}

	return &dto.CreateNoteResponse{Id: id.String()}, nil
}

// List filters the current snapshot. "all" and "pinned" are view filters,
// any other folder value matches the record's folder assignment; the
// search term matches title, content or any tag, case-insensitive.
func (s *noteService) List(ctx context.Context, folder, search string) ([]*dto.NoteResponse, error) {
	notes, err := s.adapter.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(notes))
	q := strings.ToLower(search)
	for _, n := range notes {
		switch folder {
		case "", constant.FolderFilterAll:
		case constant.FolderFilterPinned:
			if !n.IsPinned {
				continue
			}
		default:
			if n.FolderId != folder {
				continue
			}
		}

		if q != "" && !matchesSearch(n, q) {
			continue
		}

		result = append(result, ToNoteResponse(n))
	}
	return result, nil
}

func matchesSearch(n *entity.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.adapter.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil // Not found
	}
	return ToNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) error {
	patch := entity.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		FolderId: req.FolderId,
		Color:    req.Color,
		IsPinned: req.IsPinned,
		Tags:     req.Tags,
		Summary:  req.Summary,
	}
	return s.adapter.UpdateNote(ctx, id, &patch)
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.adapter.DeleteNote(ctx, id)
}

func (s *noteService) Folders() []*dto.FolderResponse {
	folders := s.adapter.GetFolders()
	result := make([]*dto.FolderResponse, len(folders))
	for i, f := range folders {
		result[i] = &dto.FolderResponse{Id: f.Id, Name: f.Name, Color: f.Color, Icon: f.Icon}
	}
	return result
}

// ToNoteResponse maps an entity to its wire shape with millisecond
// timestamps.
func ToNoteResponse(n *entity.Note) *dto.NoteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		Id:        n.Id.String(),
		Title:     n.Title,
		Content:   n.Content,
		FolderId:  n.FolderId,
		Color:     n.Color,
		IsPinned:  n.IsPinned,
		Tags:      tags,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt.UnixMilli(),
		UpdatedAt: n.UpdatedAt.UnixMilli(),
	}
}
