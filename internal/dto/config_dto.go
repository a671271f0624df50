package dto

// ConnectRemoteRequest carries the raw pasted credential blob, possibly
// still wrapped in the `const xxx = { ... };` declaration users copy from
// their provider console.
type ConnectRemoteRequest struct {
	ConfigText string `json:"configText" validate:"required"`
}

type RemoteStatusResponse struct {
	Connected bool `json:"connected"`
}
