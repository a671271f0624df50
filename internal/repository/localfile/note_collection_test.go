package localfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"notesync-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	ctx := context.Background()

	first := NewNoteCollection(path)
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     "persisted",
		Content:   "body",
		FolderId:  "work",
		Tags:      []string{"x"},
		Summary:   "short",
		CreatedAt: time.UnixMilli(1700000000000),
		UpdatedAt: time.UnixMilli(1700000000000),
	}
	require.NoError(t, first.Create(ctx, note))

	// A fresh instance over the same file sees the same data.
	second := NewNoteCollection(path)
	got, err := second.FindOne(ctx, note.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, note.Tags, got.Tags)
	assert.Equal(t, note.Summary, got.Summary)
	assert.Equal(t, int64(1700000000000), got.CreatedAt.UnixMilli())
}

func TestFindAllKeepsInsertionOrderNewestFirst(t *testing.T) {
	col := NewNoteCollection(filepath.Join(t.TempDir(), "notes.json"))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, col.Create(ctx, &entity.Note{Id: uuid.New(), Title: title}))
	}

	notes, err := col.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Title)
	assert.Equal(t, "second", notes[1].Title)
	assert.Equal(t, "first", notes[2].Title)
}

func TestPatchMissingIdReportsNotFound(t *testing.T) {
	col := NewNoteCollection(filepath.Join(t.TempDir(), "notes.json"))

	title := "x"
	found, err := col.Patch(context.Background(), uuid.New(), &entity.NotePatch{Title: &title}, time.Now())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteMissingIdIsSilent(t *testing.T) {
	col := NewNoteCollection(filepath.Join(t.TempDir(), "notes.json"))
	ctx := context.Background()

	keeper := &entity.Note{Id: uuid.New(), Title: "keeper"}
	require.NoError(t, col.Create(ctx, keeper))

	removed, err := col.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, removed)

	notes, err := col.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	removed, err = col.Delete(ctx, keeper.Id)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestNilTagsNormalizeToEmptySet(t *testing.T) {
	col := NewNoteCollection(filepath.Join(t.TempDir(), "notes.json"))
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, col.Create(ctx, &entity.Note{Id: id, Title: "no tags"}))

	got, err := col.FindOne(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}
