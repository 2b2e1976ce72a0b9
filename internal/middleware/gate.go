package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rfpcred/internal/domain"
	"rfpcred/internal/pkg/metrics"
	"rfpcred/internal/pkg/opaquetoken"
	"rfpcred/internal/pkg/response"
)

// TokenValidator turns a raw bearer credential into an identity.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (*domain.AuthContext, error)
}

// Gate is the single entry point for bearer credentials: personal access
// tokens go to the token service, anything else to the import token codec.
type Gate struct {
	pats    TokenValidator
	imports TokenValidator
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewGate accepts a nil imports validator, in which case only personal
// access tokens authenticate.
func NewGate(pats, imports TokenValidator, m *metrics.Metrics, log zerolog.Logger) *Gate {
	return &Gate{pats: pats, imports: imports, metrics: m, log: log}
}

// Authenticate never returns an error: callers get an AuthContext or nil.
func (g *Gate) Authenticate(r *http.Request) *domain.AuthContext {
	raw := ExtractToken(r)
	if raw == "" {
		g.metrics.ObserveValidation("none", metrics.OutcomeMissing)
		return nil
	}

	validator, source := g.pats, domain.SourcePAT
	if !opaquetoken.HasFamilyPrefix(raw) {
		validator, source = g.imports, domain.SourceImport
	}
	if validator == nil {
		g.metrics.ObserveValidation(string(source), metrics.OutcomeInvalid)
		return nil
	}

	ac, err := validator.Validate(r.Context(), raw)
	if err != nil || ac == nil {
		g.metrics.ObserveValidation(string(source), metrics.OutcomeInvalid)
		g.log.Debug().Str("source", string(source)).Str("path", r.URL.Path).Msg("bearer credential rejected")
		return nil
	}

	g.metrics.ObserveValidation(string(source), metrics.OutcomeValid)
	return ac
}

// ExtractToken reads "Authorization: Bearer <token>" and falls back to the
// token query parameter for clients that cannot set headers.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); tok != "" {
			return tok
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// RequireCredential aborts with 401 unless the gate resolves an identity.
func RequireCredential(g *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac := g.Authenticate(c.Request)
		if ac == nil {
			c.Header("WWW-Authenticate", `Bearer realm="rfpcred"`)
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing access token")
			return
		}

		c.Set(ContextAuth, ac)
		c.Set(ContextUserID, ac.UserID)
		c.Next()
	}
}
