package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"rfpcred/internal/domain"
	"rfpcred/internal/pkg/ids"
)

type Service struct {
	store RequestStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewService(store RequestStore, log zerolog.Logger) *Service {
	return &Service{store: store, now: time.Now, log: log}
}

// Submit validates the target and payload and queues the upload.
func (s *Service) Submit(ctx context.Context, ac *domain.AuthContext, target domain.ImportTarget, payload []byte) (*domain.ImportRequest, error) {
	if ac == nil || ac.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := target.Normalize(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyPayload
	}
	if !json.Valid(payload) {
		return nil, ErrInvalidPayload
	}

	now := s.now().UTC()
	req := &domain.ImportRequest{
		ID:           ids.New(now),
		UserID:       ac.UserID,
		RFPID:        target.RFPID,
		Type:         target.Type,
		Mode:         target.Mode,
		SupplierID:   target.SupplierID,
		SupplierName: target.SupplierName,
		VersionID:    target.VersionID,
		Source:       string(ac.Source),
		Payload:      payload,
		SizeBytes:    int64(len(payload)),
		Status:       domain.ImportQueued,
		CreatedAt:    now,
	}
	if err := s.store.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("queue import: %w", err)
	}

	s.log.Info().
		Str("import_id", req.ID).
		Str("user_id", req.UserID).
		Str("rfp_id", req.RFPID).
		Str("type", string(req.Type)).
		Str("source", req.Source).
		Int64("size_bytes", req.SizeBytes).
		Msg("import queued")
	return req, nil
}
