package importtoken

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"rfpcred/internal/domain"
)

const importPath = "/api/v1/imports/file"

var ErrPATRequired = errors.New("import tokens can only be minted from a personal access token")

// Command is a ready-to-run upload instruction for a CLI or agent.
type Command struct {
	EndpointURL    string    `json:"endpoint_url"`
	CurlCommand    string    `json:"curl_command"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	Note           string    `json:"note"`
}

type CommandBuilder struct {
	codec   *Codec
	baseURL string
}

func NewCommandBuilder(codec *Codec, baseURL string) *CommandBuilder {
	return &CommandBuilder{codec: codec, baseURL: strings.TrimRight(baseURL, "/")}
}

// Build mints an import token for the caller and embeds it in a curl
// command that posts filePath to the import endpoint.
func (b *CommandBuilder) Build(ac *domain.AuthContext, target domain.ImportTarget, filePath string) (*Command, error) {
	if ac == nil || ac.Source != domain.SourcePAT {
		return nil, ErrPATRequired
	}
	if err := target.Normalize(); err != nil {
		return nil, err
	}

	token, expiresAt, err := b.codec.Issue(ac.UserID, ac.OrganizationIDs)
	if err != nil {
		return nil, err
	}

	endpoint := b.EndpointURL(target)
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		filePath = "import.json"
	}

	curl := strings.Join([]string{
		"curl -sS -X POST " + shellQuote(endpoint),
		"-H " + shellQuote("Authorization: Bearer "+token),
		"-H " + shellQuote("Content-Type: application/json"),
		"--data-binary " + shellQuote("@"+filePath),
	}, " \\\n  ")

	return &Command{
		EndpointURL:    endpoint,
		CurlCommand:    curl,
		TokenExpiresAt: expiresAt,
		Note: fmt.Sprintf("The embedded import token expires at %s (%s from now). Run the command before then.",
			expiresAt.Format(time.RFC3339), b.codec.ttl),
	}, nil
}

func (b *CommandBuilder) EndpointURL(target domain.ImportTarget) string {
	q := url.Values{}
	q.Set("rfp_id", target.RFPID)
	q.Set("type", string(target.Type))
	q.Set("mode", string(target.Mode))
	if target.SupplierID != "" {
		q.Set("supplier_id", target.SupplierID)
	}
	if target.SupplierName != "" {
		q.Set("supplier_name", target.SupplierName)
	}
	if target.VersionID != "" {
		q.Set("version_id", target.VersionID)
	}
	return b.baseURL + importPath + "?" + q.Encode()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
