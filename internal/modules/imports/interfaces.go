package imports

import (
	"context"

	"rfpcred/internal/domain"
)

// RequestStore persists accepted uploads for the processing pipeline.
type RequestStore interface {
	Create(ctx context.Context, req *domain.ImportRequest) error
}
