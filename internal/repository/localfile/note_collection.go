package localfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/repository/contract"

	"github.com/google/uuid"
)

// jsonNote is the serialized shape of the fallback blob. Timestamps are
// millisecond epochs so the blob mirrors the remote wire format.
type jsonNote struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderId  string    `json:"folderId"`
	Color     string    `json:"color"`
	IsPinned  bool      `json:"isPinned"`
	Tags      []string  `json:"tags"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

// NoteCollection keeps the full note list in a single JSON file. Every
// write loads the list, mutates it in memory and rewrites the whole blob.
type NoteCollection struct {
	path string
	mu   sync.Mutex
}

func NewNoteCollection(path string) contract.NoteCollection {
	return &NoteCollection{path: path}
}

func (r *NoteCollection) load() ([]jsonNote, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []jsonNote{}, nil
		}
		return nil, err
	}
	var notes []jsonNote
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteCollection) save(notes []jsonNote) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

// Create front-inserts so the blob stays most-recently-added-first.
func (r *NoteCollection) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return err
	}
	notes = append([]jsonNote{toJson(note)}, notes...)
	return r.save(notes)
}

// Patch silently no-ops on a missing id.
func (r *NoteCollection) Patch(ctx context.Context, id uuid.UUID, patch *entity.NotePatch, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return false, err
	}
	found := false
	for i := range notes {
		if notes[i].Id != id {
			continue
		}
		n := toEntity(&notes[i])
		patch.ApplyTo(n)
		n.UpdatedAt = updatedAt
		notes[i] = toJson(n)
		found = true
		break
	}
	if !found {
		return false, nil
	}
	return true, r.save(notes)
}

func (r *NoteCollection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return false, err
	}
	kept := notes[:0]
	for _, n := range notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return false, nil
	}
	return true, r.save(kept)
}

func (r *NoteCollection) FindOne(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].Id == id {
			return toEntity(&notes[i]), nil
		}
	}
	return nil, nil
}

// FindAll returns the stored order: front-inserted, most recent first.
func (r *NoteCollection) FindAll(ctx context.Context) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Note, len(notes))
	for i := range notes {
		entities[i] = toEntity(&notes[i])
	}
	return entities, nil
}

func (r *NoteCollection) Live() bool {
	return false
}

func toJson(n *entity.Note) jsonNote {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return jsonNote{
		Id:        n.Id,
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

func toEntity(n *jsonNote) *entity.Note {
	tags := n.Tags
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
