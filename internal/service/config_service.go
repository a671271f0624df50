package service

import (
	"context"

	"notesync-be/internal/dto"
	"notesync-be/internal/store"
	"notesync-be/pkg/credentials"
)

type IConfigService interface {
	Connect(ctx context.Context, req *dto.ConnectRemoteRequest) error
	Status() *dto.RemoteStatusResponse
}

type configService struct {
	adapter *store.Adapter
	sync    ISyncService
}

func NewConfigService(adapter *store.Adapter, sync ISyncService) IConfigService {
	return &configService{adapter: adapter, sync: sync}
}

// Connect parses the pasted blob and flips the adapter to remote mode.
// Parse and validation failures surface as credential validation errors;
// on success the standing snapshot subscription is re-established so it
// starts reading from the remote path.
func (s *configService) Connect(ctx context.Context, req *dto.ConnectRemoteRequest) error {
	creds, err := credentials.ParseBlob(req.ConfigText)
	if err != nil {
		return err
	}

	if err := s.adapter.Initialize(ctx, creds); err != nil {
		return err
	}

	if s.sync != nil {
		return s.sync.Resubscribe()
	}
	return nil
}

func (s *configService) Status() *dto.RemoteStatusResponse {
	return &dto.RemoteStatusResponse{Connected: s.adapter.IsConnected()}
}
