package constant

import "notesync-be/internal/entity"

// FallbackFolderId is where notes land when no folder was picked.
const FallbackFolderId = "work"

// Pseudo-folder ids understood by the list filter. They are view filters,
// never persisted records.
const (
	FolderFilterAll    = "all"
	FolderFilterPinned = "pinned"
)

// seedFolders is the static folder catalog. The catalog is read-only for
// the lifetime of the process; no create/edit/delete operation is wired.
var seedFolders = []entity.Folder{
	{Id: "work", Name: "Work", Color: "#10b981", Icon: "Briefcase"},
	{Id: "personal", Name: "Personal", Color: "#84cc16", Icon: "User"},
	{Id: "ideas", Name: "Ideas", Color: "#06b6d4", Icon: "Lightbulb"},
}

// SeedFolders returns a copy so callers cannot mutate the catalog.
func SeedFolders() []entity.Folder {
	folders := make([]entity.Folder, len(seedFolders))
	copy(folders, seedFolders)
	return folders
}
