package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/store"
	"notesync-be/pkg/annotator"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IAnnotationService interface {
	Annotate(ctx context.Context, id uuid.UUID) (*dto.AnnotateNoteResponse, error)
}

type annotationService struct {
	adapter   *store.Adapter
	annotator annotator.Annotator
	results   *cache.Cache
}

func NewAnnotationService(adapter *store.Adapter, ann annotator.Annotator) IAnnotationService {
	// Annotation results are content-addressed: re-annotating unchanged
	// content skips the external call for an hour.
	return &annotationService{
		adapter:   adapter,
		annotator: ann,
		results:   cache.New(1*time.Hour, 10*time.Minute),
	}
}

// Annotate runs the external annotation once, unions the returned tags
// with the note's current set and persists tags plus summary. An empty
// annotation result is a valid, silent outcome: the note keeps its
// existing tags and the call still succeeds.
func (s *annotationService) Annotate(ctx context.Context, id uuid.UUID) (*dto.AnnotateNoteResponse, error) {
	note, err := s.adapter.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil // Not found
	}

	result := s.suggest(ctx, note.Content)

	merged := unionTags(note.Tags, result.Tags)
	patch := entity.NotePatch{Tags: &merged}
	if result.Summary != "" {
		patch.Summary = &result.Summary
	}
	if err := s.adapter.UpdateNote(ctx, id, &patch); err != nil {
		return nil, err
	}

	return &dto.AnnotateNoteResponse{
		Id:      id.String(),
		Summary: result.Summary,
		Tags:    merged,
	}, nil
}

func (s *annotationService) suggest(ctx context.Context, content string) annotator.Result {
	key := contentKey(content)
	if cached, found := s.results.Get(key); found {
		return cached.(annotator.Result)
	}

	result := s.annotator.SuggestTagsAndSummary(ctx, content)
	if result.Summary != "" || len(result.Tags) > 0 {
		// Empty results are not cached: they are the failure fallback, not
		// an answer worth remembering.
		s.results.Set(key, result, cache.DefaultExpiration)
	}
	return result
}

func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// unionTags merges two tag sets, dedupes and sorts for a stable response.
func unionTags(existing, suggested []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(suggested))
	merged := make([]string, 0, len(existing)+len(suggested))
	for _, t := range existing {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	for _, t := range suggested {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	sort.Strings(merged)
	return merged
}
