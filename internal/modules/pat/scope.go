package pat

import (
	"context"
	"fmt"

	"rfpcred/internal/config"
	"rfpcred/internal/domain"
)

// ScopePolicy selects the organizations a validated token may act in.
type ScopePolicy int

const (
	// ScopeAllMemberships grants every organization the owner belongs to at
	// validation time, which may be wider than the one the token was minted in.
	ScopeAllMemberships ScopePolicy = iota
	// ScopeMintedOrganization grants only the mint-time organization, and
	// only while the owner is still a member of it.
	ScopeMintedOrganization
)

func ParseScope(s string) (ScopePolicy, error) {
	switch s {
	case config.ScopeMemberships, "":
		return ScopeAllMemberships, nil
	case config.ScopeMinted:
		return ScopeMintedOrganization, nil
	}
	return 0, fmt.Errorf("unknown token scope %q", s)
}

func (p ScopePolicy) String() string {
	if p == ScopeMintedOrganization {
		return config.ScopeMinted
	}
	return config.ScopeMemberships
}

// resolveOrganizations is the single place that decides token breadth.
func (s *Service) resolveOrganizations(ctx context.Context, t *domain.PersonalAccessToken) ([]string, error) {
	ids, err := s.members.OrganizationIDs(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if s.scope == ScopeAllMemberships {
		return ids, nil
	}

	for _, id := range ids {
		if id == t.OrganizationID {
			return []string{id}, nil
		}
	}
	return []string{}, nil
}
