package domain

type CredentialSource string

const (
	SourcePAT    CredentialSource = "pat"
	SourceImport CredentialSource = "import"
)

// AuthContext is the identity resolved from a bearer credential for one request.
type AuthContext struct {
	UserID          string           `json:"user_id"`
	OrganizationIDs []string         `json:"organization_ids"`
	Source          CredentialSource `json:"source"`

	// RawToken is set only for personal access tokens, so follow-on import
	// tokens can be minted from the same request.
	RawToken string `json:"-"`
}

func (a *AuthContext) HasOrganization(orgID string) bool {
	for _, id := range a.OrganizationIDs {
		if id == orgID {
			return true
		}
	}
	return false
}
