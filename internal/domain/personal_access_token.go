package domain

import "time"

// PersonalAccessToken is a long-lived bearer credential owned by a user.
//
// Security notes:
// - We never store the raw token in DB, only its SHA-256 hash (TokenHash).
// - TokenPrefix is for display only and cannot authenticate.
// - Revocation is permanent; RevokedAt is never cleared.
type PersonalAccessToken struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	UserID         string `json:"user_id" gorm:"size:64;not null;index:idx_pat_owner_scope,priority:1"`
	OrganizationID string `json:"organization_id" gorm:"size:64;not null;index:idx_pat_owner_scope,priority:2"`
	Name           string `json:"name" gorm:"size:100;not null"`

	TokenHash   string `json:"-" gorm:"size:64;uniqueIndex;not null"`
	TokenPrefix string `json:"token_prefix" gorm:"size:16;not null"`

	ExpiresAt  *time.Time `json:"expires_at" gorm:"index"`
	RevokedAt  *time.Time `json:"revoked_at" gorm:"index"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" gorm:"not null"`
}

func (PersonalAccessToken) TableName() string { return "personal_access_tokens" }

func (t *PersonalAccessToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token has an expiry at or before now.
func (t *PersonalAccessToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

// IsUsable is true iff the token is neither revoked nor expired.
func (t *PersonalAccessToken) IsUsable(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// Summary drops the digest so the record can leave the service.
func (t *PersonalAccessToken) Summary() TokenSummary {
	return TokenSummary{
		ID:             t.ID,
		UserID:         t.UserID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		TokenPrefix:    t.TokenPrefix,
		ExpiresAt:      t.ExpiresAt,
		RevokedAt:      t.RevokedAt,
		LastUsedAt:     t.LastUsedAt,
		CreatedAt:      t.CreatedAt,
	}
}

// TokenSummary is the externally visible view of a personal access token.
type TokenSummary struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	TokenPrefix    string     `json:"token_prefix"`
	ExpiresAt      *time.Time `json:"expires_at"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt     *time.Time `json:"last_used_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
