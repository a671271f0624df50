package service

import (
	"context"
	"testing"

	"notesync-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotes(t *testing.T, svc INoteService) {
	t.Helper()
	ctx := context.Background()
	fixtures := []*dto.CreateNoteRequest{
		{Title: "Groceries", Content: "milk and eggs", FolderId: "personal", Tags: []string{"shopping"}},
		{Title: "Roadmap", Content: "Q4 milestones", FolderId: "work", IsPinned: true, Tags: []string{"planning"}},
		{Title: "Gift ideas", Content: "birthday", FolderId: "personal", IsPinned: true},
	}
	for _, f := range fixtures {
		_, err := svc.Create(ctx, f)
		require.NoError(t, err)
	}
}

func TestListFolderFilters(t *testing.T) {
	svc := NewNoteService(newTestStore(t))
	seedNotes(t, svc)
	ctx := context.Background()

	tests := []struct {
		name   string
		folder string
		want   int
	}{
		{"all is a view filter, not a folder", "all", 3},
		{"empty folder means everything", "", 3},
		{"pinned only", "pinned", 2},
		{"by folder id", "personal", 2},
		{"unknown folder matches nothing", "archive", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			notes, err := svc.List(ctx, tc.folder, "")
			require.NoError(t, err)
			assert.Len(t, notes, tc.want)
		})
	}
}

func TestListSearchMatchesTitleContentAndTags(t *testing.T) {
	svc := NewNoteService(newTestStore(t))
	seedNotes(t, svc)
	ctx := context.Background()

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"title, case-insensitive", "ROADMAP", 1},
		{"content substring", "milk", 1},
		{"tag substring", "plan", 1},
		{"no match", "vacation", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			notes, err := svc.List(ctx, "all", tc.search)
			require.NoError(t, err)
			assert.Len(t, notes, tc.want)
		})
	}
}

func TestShowUnknownIdReturnsNil(t *testing.T) {
	svc := NewNoteService(newTestStore(t))

	resp, err := svc.Show(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestCreateDefaultsFolderAndTags(t *testing.T) {
	svc := NewNoteService(newTestStore(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "bare"})
	require.NoError(t, err)

	id, err := uuid.Parse(created.Id)
	require.NoError(t, err)

	resp, err := svc.Show(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "work", resp.FolderId)
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)
	assert.Positive(t, resp.CreatedAt)
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
}

func TestFoldersCatalog(t *testing.T) {
	svc := NewNoteService(newTestStore(t))

	folders := svc.Folders()
	require.Len(t, folders, 3)
	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.Id
	}
	assert.ElementsMatch(t, []string{"work", "personal", "ideas"}, ids)
}
