package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"notesync-be/internal/entity"
	"notesync-be/internal/repository/localfile"
	"notesync-be/internal/store"
	"notesync-be/pkg/annotator"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnnotator struct {
	result annotator.Result
	calls  atomic.Int32
}

func (s *stubAnnotator) SuggestTagsAndSummary(ctx context.Context, content string) annotator.Result {
	s.calls.Add(1)
	return s.result
}

func newTestStore(t *testing.T) *store.Adapter {
	t.Helper()
	dir := t.TempDir()
	feed := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	local := localfile.NewNoteCollection(filepath.Join(dir, "notes.json"))
	return store.NewAdapter(local, nil, filepath.Join(dir, "creds.json"), feed, nil, testLogger{})
}

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

func TestAnnotateMergesTagsWithoutDuplicates(t *testing.T) {
	adapter := newTestStore(t)
	ctx := context.Background()

	id, err := adapter.AddNote(ctx, &entity.Note{
		Title:   "meeting",
		Content: "quarterly planning notes",
		Tags:    []string{"a", "b"},
	})
	require.NoError(t, err)

	stub := &stubAnnotator{result: annotator.Result{
		Summary: "Planning notes for the quarter.",
		Tags:    []string{"b", "c"},
	}}
	svc := NewAnnotationService(adapter, stub)

	resp, err := svc.Annotate(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, []string{"a", "b", "c"}, resp.Tags)
	assert.Equal(t, "Planning notes for the quarter.", resp.Summary)

	// The merge is persisted, not just returned.
	note, err := adapter.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, note.Tags)
	assert.Equal(t, "Planning notes for the quarter.", note.Summary)
}

func TestAnnotateEmptyResultKeepsExistingTags(t *testing.T) {
	adapter := newTestStore(t)
	ctx := context.Background()

	id, err := adapter.AddNote(ctx, &entity.Note{
		Content: "whatever",
		Tags:    []string{"keep"},
	})
	require.NoError(t, err)

	stub := &stubAnnotator{result: annotator.Result{Summary: "", Tags: []string{}}}
	svc := NewAnnotationService(adapter, stub)

	resp, err := svc.Annotate(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, []string{"keep"}, resp.Tags)
	assert.Empty(t, resp.Summary)

	note, err := adapter.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, note.Tags)
	assert.Empty(t, note.Summary)
}

func TestAnnotateCachesByContent(t *testing.T) {
	adapter := newTestStore(t)
	ctx := context.Background()

	id1, err := adapter.AddNote(ctx, &entity.Note{Content: "same body"})
	require.NoError(t, err)
	id2, err := adapter.AddNote(ctx, &entity.Note{Content: "same body"})
	require.NoError(t, err)

	stub := &stubAnnotator{result: annotator.Result{Summary: "S", Tags: []string{"t"}}}
	svc := NewAnnotationService(adapter, stub)

	_, err = svc.Annotate(ctx, id1)
	require.NoError(t, err)
	_, err = svc.Annotate(ctx, id2)
	require.NoError(t, err)

	assert.Equal(t, int32(1), stub.calls.Load(), "identical content should hit the cache")
}

func TestAnnotateDoesNotCacheEmptyResults(t *testing.T) {
	adapter := newTestStore(t)
	ctx := context.Background()

	id, err := adapter.AddNote(ctx, &entity.Note{Content: "flaky"})
	require.NoError(t, err)

	stub := &stubAnnotator{result: annotator.Result{Summary: "", Tags: []string{}}}
	svc := NewAnnotationService(adapter, stub)

	_, err = svc.Annotate(ctx, id)
	require.NoError(t, err)
	_, err = svc.Annotate(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, int32(2), stub.calls.Load(), "empty results must be retried")
}

func TestAnnotateUnknownNoteReturnsNil(t *testing.T) {
	adapter := newTestStore(t)
	svc := NewAnnotationService(adapter, &stubAnnotator{})

	resp, err := svc.Annotate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, resp)
}
