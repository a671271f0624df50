package dto

type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderId string   `json:"folderId"`
	Color    string   `json:"color"`
	IsPinned bool     `json:"isPinned"`
	Tags     []string `json:"tags"`
}

type CreateNoteResponse struct {
	Id string `json:"id"`
}

// UpdateNoteRequest is a field-level partial update. Absent fields stay
// untouched; an entirely empty body still refreshes the updated timestamp.
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	FolderId *string   `json:"folderId"`
	Color    *string   `json:"color"`
	IsPinned *bool     `json:"isPinned"`
	Tags     *[]string `json:"tags"`
	Summary  *string   `json:"summary"`
}

type NoteResponse struct {
	Id        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	FolderId  string   `json:"folderId"`
	Color     string   `json:"color"`
	IsPinned  bool     `json:"isPinned"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}
