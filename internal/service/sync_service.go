package service

import (
	"sync"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/store"
)

// SnapshotSink receives the latest full note snapshot already mapped to
// the wire shape. The websocket hub implements it.
type SnapshotSink interface {
	BroadcastSnapshot(notes []*dto.NoteResponse)
}

// ISyncService owns the process's one standing notes subscription and
// forwards every delivered snapshot to the sink. It guarantees the
// subscribe/cancel pairing: Resubscribe always cancels the previous
// subscription before establishing the next one, so reconnects never leak
// listeners.
type ISyncService interface {
	Start() error
	Resubscribe() error
	Stop()
}

type syncService struct {
	adapter *store.Adapter
	sink    SnapshotSink
	logger  logger.ILogger

	mu     sync.Mutex
	cancel func()
}

func NewSyncService(adapter *store.Adapter, sink SnapshotSink, log logger.ILogger) ISyncService {
	return &syncService{adapter: adapter, sink: sink, logger: log}
}

func (s *syncService) Start() error {
	return s.Resubscribe()
}

func (s *syncService) Resubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	cancel, err := s.adapter.SubscribeNotes(s.deliver)
	if err != nil {
		return err
	}
	s.cancel = cancel
	s.logger.Info("Sync", "Notes subscription established", map[string]interface{}{
		"remote": s.adapter.IsConnected(),
	})
	return nil
}

func (s *syncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *syncService) deliver(notes []*entity.Note) {
	mapped := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		mapped[i] = ToNoteResponse(n)
	}
	s.sink.BroadcastSnapshot(mapped)
}
