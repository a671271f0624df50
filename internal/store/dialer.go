package store

import (
	"fmt"

	"notesync-be/internal/model"
	"notesync-be/internal/repository/contract"
	"notesync-be/internal/repository/implementation"
	"notesync-be/pkg/credentials"
	"notesync-be/pkg/database"
)

// NewGormDialer returns the production RemoteDialer: it opens the managed
// Postgres collection and makes sure the notes table exists. The pasted
// credential object may carry its own databaseUrl; otherwise the
// deployment-level connection string is used with the credential's
// project id only identifying the tenant.
func NewGormDialer(fallbackDSN string) RemoteDialer {
	return func(creds *credentials.Credentials) (contract.NoteCollection, error) {
		dsn := creds.DatabaseURL
		if dsn == "" {
			dsn = fallbackDSN
		}
		if dsn == "" {
			return nil, fmt.Errorf("no connection string available for project %s", creds.ProjectID)
		}

		db, err := database.NewGormDBFromDSN(dsn)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&model.Note{}); err != nil {
			return nil, err
		}
		return implementation.NewNoteCollection(db), nil
	}
}
