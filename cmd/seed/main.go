package main

import (
	"context"
	"time"

	"notesync-be/internal/config"
	"notesync-be/internal/constant"
	"notesync-be/internal/entity"
	"notesync-be/internal/model"
	"notesync-be/internal/repository/implementation"
	"notesync-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds a handful of starter notes into the remote collection so a fresh
// deployment does not greet the user with an empty board.
func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set, nothing to seed")
		return
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect: %v", err)
		return
	}
	if err := db.AutoMigrate(&model.Note{}); err != nil {
		color.Red("Failed to migrate notes table: %v", err)
		return
	}

	notes := implementation.NewNoteCollection(db)
	ctx := context.Background()

	samples := []entity.Note{
		{
			Title:    "Welcome to NoteSync",
			Content:  "Pin important notes, drag them into folders, and connect a remote store from the settings dialog to sync across devices.",
			FolderId: constant.FallbackFolderId,
			Color:    "bg-green-50",
			IsPinned: true,
			Tags:     []string{"welcome"},
		},
		{
			Title:    "Weekly planning",
			Content:  "Monday: review backlog. Wednesday: sync with the team. Friday: ship.",
			FolderId: "work",
			Color:    "bg-white",
			Tags:     []string{"planning"},
		},
		{
			Title:    "Reading list",
			Content:  "The Pragmatic Programmer, Designing Data-Intensive Applications.",
			FolderId: "personal",
			Color:    "bg-yellow-50",
			Tags:     []string{"books"},
		},
	}

	now := time.Now()
	seeded := 0
	for i := range samples {
		n := samples[i]
		n.Id = uuid.New()
		n.CreatedAt = now
		n.UpdatedAt = now
		if n.Tags == nil {
			n.Tags = []string{}
		}
		if err := notes.Create(ctx, &n); err != nil {
			color.Red("Failed to seed %q: %v", n.Title, err)
			continue
		}
		color.Green("Seeded note %q (%s)", n.Title, n.Id)
		seeded++
	}

	color.Cyan("Done: %d/%d notes seeded", seeded, len(samples))
}
