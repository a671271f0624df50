package dto

type AnnotateNoteResponse struct {
	Id      string   `json:"id"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}
