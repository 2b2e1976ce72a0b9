package pat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rfpcred/internal/domain"
	"rfpcred/internal/pkg/metrics"
	"rfpcred/internal/pkg/opaquetoken"
	"rfpcred/internal/repository"
)

const (
	maxNameLength    = 100
	maxExpiresInDays = 3650
	issueAttempts    = 3

	defaultUsageBuffer = 256
)

// Event types published to the Notifier.
const (
	EventTokenCreated = "token.created"
	EventTokenRevoked = "token.revoked"
)

// Service manages the lifecycle of personal access tokens.
type Service struct {
	tokens    TokenRepository
	members   MembershipReader
	generator tokenGenerator
	notifier  Notifier
	metrics   *metrics.Metrics
	log       zerolog.Logger
	now       func() time.Time
	scope     ScopePolicy

	usageBuffer int
	usage       *usageRecorder
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithScope(p ScopePolicy) Option {
	return func(s *Service) { s.scope = p }
}

func WithUsageBuffer(n int) Option {
	return func(s *Service) { s.usageBuffer = n }
}

func withGenerator(g tokenGenerator) Option {
	return func(s *Service) { s.generator = g }
}

// NewService starts the background last_used_at recorder; call Close on shutdown.
func NewService(tokens TokenRepository, members MembershipReader, opts ...Option) *Service {
	s := &Service{
		tokens:      tokens,
		members:     members,
		generator:   opaquetoken.NewGenerator(),
		log:         zerolog.Nop(),
		now:         time.Now,
		scope:       ScopeAllMemberships,
		usageBuffer: defaultUsageBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.usage = newUsageRecorder(tokens, s.log, s.metrics, s.usageBuffer)
	return s
}

func (s *Service) Close() {
	s.usage.close()
}

type IssueInput struct {
	UserID         string
	OrganizationID string
	Name           string
	ExpiresInDays  *int
}

// IssueResult carries the only copy of the raw token that will ever exist
// outside the caller's hands.
type IssueResult struct {
	Token domain.TokenSummary `json:"token"`
	Raw   string              `json:"raw"`
}

func (s *Service) Issue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.OrganizationID) == "" {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrInvalidName
	}

	now := s.now().UTC()
	var expiresAt *time.Time
	if in.ExpiresInDays != nil {
		days := *in.ExpiresInDays
		if days < 0 || days > maxExpiresInDays {
			return nil, ErrInvalidExpiry
		}
		t := now.AddDate(0, 0, days)
		expiresAt = &t
	}

	for attempt := 1; ; attempt++ {
		tok, err := s.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}

		record := &domain.PersonalAccessToken{
			ID:             uuid.NewString(),
			UserID:         in.UserID,
			OrganizationID: in.OrganizationID,
			Name:           name,
			TokenHash:      tok.Hash,
			TokenPrefix:    tok.Prefix,
			ExpiresAt:      expiresAt,
			CreatedAt:      now,
		}

		err = s.tokens.Create(ctx, record)
		if errors.Is(err, repository.ErrDuplicate) && attempt < issueAttempts {
			s.log.Warn().Int("attempt", attempt).Msg("token hash collision, regenerating")
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Str("user_id", in.UserID).Msg("persist personal access token failed")
			return nil, fmt.Errorf("issue token: %w", err)
		}

		summary := record.Summary()
		s.metrics.PATIssued()
		s.publish(in.UserID, EventTokenCreated, summary)
		s.log.Info().
			Str("token_id", record.ID).
			Str("token_prefix", record.TokenPrefix).
			Str("user_id", in.UserID).
			Str("organization_id", in.OrganizationID).
			Msg("personal access token issued")

		return &IssueResult{Token: summary, Raw: tok.Raw}, nil
	}
}

// List returns the user's non-revoked tokens in one organization, newest first.
func (s *Service) List(ctx context.Context, userID, organizationID string) ([]domain.TokenSummary, error) {
	tokens, err := s.tokens.ListActive(ctx, userID, organizationID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("list personal access tokens failed")
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	out := make([]domain.TokenSummary, 0, len(tokens))
	for i := range tokens {
		out = append(out, tokens[i].Summary())
	}
	return out, nil
}

// Revoke reports ErrNotFound both for unknown ids and for tokens owned by
// someone else, so callers cannot probe other users' token ids.
func (s *Service) Revoke(ctx context.Context, tokenID, userID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return ErrNotFound
	}

	ok, err := s.tokens.RevokeOwned(ctx, tokenID, userID, s.now().UTC())
	if err != nil {
		s.log.Error().Err(err).Str("token_id", tokenID).Msg("revoke personal access token failed")
		return fmt.Errorf("revoke token: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	s.metrics.PATRevoked()
	s.publish(userID, EventTokenRevoked, map[string]string{"id": tokenID})
	s.log.Info().Str("token_id", tokenID).Str("user_id", userID).Msg("personal access token revoked")
	return nil
}

// Validate resolves a raw token to an AuthContext. Every failure, including
// storage errors, is reported as ErrInvalidToken.
func (s *Service) Validate(ctx context.Context, raw string) (*domain.AuthContext, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	t, err := s.tokens.FindByHash(ctx, opaquetoken.Hash(raw))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Msg("token lookup failed")
		}
		return nil, ErrInvalidToken
	}

	now := s.now().UTC()
	if !t.IsUsable(now) {
		return nil, ErrInvalidToken
	}

	orgs, err := s.resolveOrganizations(ctx, t)
	if err != nil {
		s.log.Error().Err(err).Str("token_id", t.ID).Msg("membership lookup failed")
		return nil, ErrInvalidToken
	}

	s.usage.record(t.ID, now)

	return &domain.AuthContext{
		UserID:          t.UserID,
		OrganizationIDs: orgs,
		Source:          domain.SourcePAT,
		RawToken:        raw,
	}, nil
}

// IsMember guards issuance and listing for the session-authenticated API.
func (s *Service) IsMember(ctx context.Context, userID, organizationID string) (bool, error) {
	ok, err := s.members.IsMember(ctx, userID, organizationID)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return ok, nil
}

func (s *Service) publish(userID, eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(userID, eventType, payload)
}
