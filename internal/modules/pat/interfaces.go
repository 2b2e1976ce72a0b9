package pat

import (
	"context"
	"time"

	"rfpcred/internal/domain"
	"rfpcred/internal/pkg/opaquetoken"
)

// TokenRepository is the storage the service needs for personal access tokens.
type TokenRepository interface {
	Create(ctx context.Context, t *domain.PersonalAccessToken) error
	FindByHash(ctx context.Context, hash string) (*domain.PersonalAccessToken, error)
	ListActive(ctx context.Context, userID, organizationID string) ([]domain.PersonalAccessToken, error)
	RevokeOwned(ctx context.Context, id, userID string, at time.Time) (bool, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

// MembershipReader resolves which organizations a user currently belongs to.
type MembershipReader interface {
	OrganizationIDs(ctx context.Context, userID string) ([]string, error)
	IsMember(ctx context.Context, userID, organizationID string) (bool, error)
}

// Notifier receives token lifecycle events. Implementations must not block.
type Notifier interface {
	Publish(userID, eventType string, payload any)
}

type tokenGenerator interface {
	Generate() (opaquetoken.Token, error)
}
