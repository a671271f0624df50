package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"notesync-be/internal/constant"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/repository/contract"
	"notesync-be/pkg/credentials"
	pktNats "notesync-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// TopicNotesChanged is the in-process change feed topic. Every successful
// write in remote mode publishes here; subscribers re-query and deliver a
// fresh snapshot.
const TopicNotesChanged = "notes.changed"

// RemoteDialer opens a connection to the remote note collection. Injected
// so tests can substitute a fake store for the real GORM-backed one.
type RemoteDialer func(creds *credentials.Credentials) (contract.NoteCollection, error)

// SnapshotFunc receives the full note collection, most recently touched
// first.
type SnapshotFunc func(notes []*entity.Note)

// Adapter is the single mutation gateway for note records. It starts
// against the local fallback collection and flips to the remote one on a
// successful Initialize; there is no way back to local for the process
// lifetime.
type Adapter struct {
	mu        sync.RWMutex
	backend   contract.NoteCollection
	connected bool

	credFile string
	dialer   RemoteDialer
	feed     *gochannel.GoChannel
	mirror   *pktNats.Publisher
	logger   logger.ILogger
}

func NewAdapter(
	local contract.NoteCollection,
	dialer RemoteDialer,
	credFile string,
	feed *gochannel.GoChannel,
	mirror *pktNats.Publisher,
	log logger.ILogger,
) *Adapter {
	return &Adapter{
		backend:  local,
		credFile: credFile,
		dialer:   dialer,
		feed:     feed,
		mirror:   mirror,
		logger:   log,
	}
}

// Restore applies previously persisted credentials, if any. A missing,
// unreadable or undialable credential file leaves the adapter in local
// mode; start-up never fails because of it.
func (a *Adapter) Restore(ctx context.Context) {
	data, err := os.ReadFile(a.credFile)
	if err != nil {
		if !os.IsNotExist(err) {
			a.logger.Warn("Store", "Unable to read saved credentials", map[string]interface{}{"error": err.Error()})
		}
		return
	}

	var creds credentials.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		a.logger.Warn("Store", "Saved credentials are corrupt, staying local", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := a.Initialize(ctx, &creds); err != nil {
		a.logger.Warn("Store", "Saved credentials did not connect, staying local", map[string]interface{}{"error": err.Error()})
	}
}

// Initialize activates remote mode with the given credentials and persists
// them for the next start. Calling it while already connected skips the
// dial (never a second concurrent connection) but still overwrites the
// stored credential file.
func (a *Adapter) Initialize(ctx context.Context, creds *credentials.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.connected {
		backend, err := a.dialer(creds)
		if err != nil {
			return err
		}
		a.backend = backend
		a.connected = true
	}

	if err := a.persistCredentials(creds); err != nil {
		a.logger.Warn("Store", "Connected but failed to persist credentials", map[string]interface{}{"error": err.Error()})
	}
	a.logger.Info("Store", "Remote mode active", map[string]interface{}{"project_id": creds.ProjectID})
	return nil
}

func (a *Adapter) persistCredentials(creds *credentials.Credentials) error {
	if dir := filepath.Dir(a.credFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(a.credFile, data, 0o600)
}

// IsConnected reports whether remote mode is active. Pure query.
func (a *Adapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *Adapter) current() (contract.NoteCollection, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.backend, a.connected
}

// Snapshot returns the current contents of whichever collection is
// active, most recently touched first.
func (a *Adapter) Snapshot(ctx context.Context) ([]*entity.Note, error) {
	backend, _ := a.current()
	return backend.FindAll(ctx)
}

// GetNote fetches one record; (nil, nil) when the id is unknown.
func (a *Adapter) GetNote(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	backend, _ := a.current()
	return backend.FindOne(ctx, id)
}

// SubscribeNotes registers a continuous observer of the collection. The
// callback fires once immediately with the current snapshot; while the
// backend is live it fires again on every change event until the returned
// cancel func is invoked. Callers own the pairing: one cancel per
// subscription, before or instead of establishing the next one.
func (a *Adapter) SubscribeNotes(cb SnapshotFunc) (func(), error) {
	backend, _ := a.current()

	snapshot, err := backend.FindAll(context.Background())
	if err != nil {
		return nil, err
	}
	cb(snapshot)

	if !backend.Live() {
		// Nothing to observe: the fallback blob has no change source.
		return func() {}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := a.feed.Subscribe(ctx, TopicNotesChanged)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for msg := range messages {
			msg.Ack()
			// Collapse a burst into one delivery: only the latest snapshot
			// matters, intermediate ones are discarded.
			for drained := true; drained; {
				select {
				case extra, ok := <-messages:
					if !ok {
						drained = false
					} else {
						extra.Ack()
					}
				default:
					drained = false
				}
			}

			fresh, err := backend.FindAll(ctx)
			if err != nil {
				a.logger.Error("Store", "Snapshot re-query failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			cb(fresh)
		}
	}()

	return cancel, nil
}

// AddNote assigns a fresh identifier, stamps both timestamps and persists
// the record. Ordering for subsequent reads comes from the collection
// contract, not from insertion position.
func (a *Adapter) AddNote(ctx context.Context, note *entity.Note) (uuid.UUID, error) {
	backend, _ := a.current()

	now := time.Now()
	note.Id = uuid.New()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.FolderId == "" {
		note.FolderId = constant.FallbackFolderId
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := backend.Create(ctx, note); err != nil {
		return uuid.Nil, err
	}

	a.publishChange(ctx, "NOTE_CREATED", note.Id)
	return note.Id, nil
}

// UpdateNote applies a partial update and always refreshes the updated
// timestamp, empty patch included. A missing id is a silent no-op in both
// modes.
func (a *Adapter) UpdateNote(ctx context.Context, id uuid.UUID, patch *entity.NotePatch) error {
	backend, _ := a.current()

	found, err := backend.Patch(ctx, id, patch, time.Now())
	if err != nil {
		return err
	}
	if found {
		a.publishChange(ctx, "NOTE_UPDATED", id)
	}
	return nil
}

// DeleteNote removes the record; missing ids are tolerated in both modes
// and, like UpdateNote, publish nothing when no row was touched.
func (a *Adapter) DeleteNote(ctx context.Context, id uuid.UUID) error {
	backend, _ := a.current()

	found, err := backend.Delete(ctx, id)
	if err != nil {
		return err
	}
	if found {
		a.publishChange(ctx, "NOTE_DELETED", id)
	}
	return nil
}

// GetFolders returns the static folder catalog. Synchronous, no failure
// mode.
func (a *Adapter) GetFolders() []entity.Folder {
	return constant.SeedFolders()
}

type changePayload struct {
	Kind   string    `json:"kind"`
	NoteId uuid.UUID `json:"note_id"`
}

func (a *Adapter) publishChange(ctx context.Context, kind string, id uuid.UUID) {
	if !a.IsConnected() {
		// Local mode has no observers to notify.
		return
	}

	payload, _ := json.Marshal(changePayload{Kind: kind, NoteId: id})
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := a.feed.Publish(TopicNotesChanged, msg); err != nil {
		a.logger.Warn("Store", "Change feed publish failed", map[string]interface{}{"error": err.Error()})
	}

	// Mirror to NATS so other instances re-query too. Best effort: a dead
	// broker never fails the write.
	if a.mirror != nil {
		if err := a.mirror.PublishNoteChange(ctx, kind, id.String()); err != nil {
			a.logger.Warn("Store", "NATS mirror publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// HandleRemoteChange feeds a change event received from another instance
// into the local feed so standing subscriptions re-query.
func (a *Adapter) HandleRemoteChange(kind string, noteId string) {
	if !a.IsConnected() {
		return
	}
	id, _ := uuid.Parse(noteId)
	payload, _ := json.Marshal(changePayload{Kind: kind, NoteId: id})
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := a.feed.Publish(TopicNotesChanged, msg); err != nil {
		a.logger.Warn("Store", "Relaying remote change failed", map[string]interface{}{"error": err.Error()})
	}
}
