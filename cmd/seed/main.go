package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rfpcred/internal/config"
	"rfpcred/internal/database"
	"rfpcred/internal/domain"
	"rfpcred/internal/modules/pat"
	jwtsvc "rfpcred/internal/pkg/jwt"
	"rfpcred/internal/pkg/logger"
	"rfpcred/internal/repository"
)

const (
	demoUserID    = "00000000-0000-4000-8000-000000000001"
	demoEmail     = "demo@rfp.local"
	demoTokenDays = 30
)

var demoOrganizations = []struct {
	id   string
	role domain.OrganizationRole
}{
	{"org-acme", domain.OrgRoleAdmin},
	{"org-globex", domain.OrgRoleEvaluator},
}

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	if cfg.IsProd() {
		boot.Fatal().Msg("refusing to seed a production database")
	}

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		boot.Fatal().Err(err).Msg("init logger")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	res, err := seed(context.Background(), db, cfg.SessionJWTSecret, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	fmt.Println("Seed completed")
	fmt.Printf("  user id:          %s\n", demoUserID)
	fmt.Printf("  organization:     %s (X-Organization-ID)\n", demoOrganizations[0].id)
	fmt.Printf("  session JWT:      %s\n", res.session)
	fmt.Printf("  access token:     %s\n", res.token.Raw)
	fmt.Printf("  token expires at: %s\n", res.token.Token.ExpiresAt.Format(time.RFC3339))
	fmt.Println("The access token is shown once. Store it now.")
}

type seedResult struct {
	session string
	token   *pat.IssueResult
}

func seed(ctx context.Context, db *gorm.DB, sessionSecret string, log zerolog.Logger) (*seedResult, error) {
	members := repository.NewMembershipRepository(db)

	log.Info().Msg("Creating memberships...")
	for i, org := range demoOrganizations {
		if err := members.Add(ctx, &domain.UserOrganization{
			UserID:         demoUserID,
			OrganizationID: org.id,
			Role:           org.role,
			JoinedAt:       time.Now().UTC().Add(time.Duration(i) * time.Second),
		}); err != nil {
			return nil, fmt.Errorf("add membership %s: %w", org.id, err)
		}
	}

	session, err := jwtsvc.New(sessionSecret, 24*time.Hour).GenerateToken(demoUserID, demoEmail)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	svc := pat.NewService(repository.NewPersonalAccessTokenRepository(db), members, pat.WithLogger(log))
	defer svc.Close()

	days := demoTokenDays
	issued, err := svc.Issue(ctx, pat.IssueInput{
		UserID:         demoUserID,
		OrganizationID: demoOrganizations[0].id,
		Name:           "seed",
		ExpiresInDays:  &days,
	})
	if err != nil {
		return nil, fmt.Errorf("issue personal access token: %w", err)
	}

	return &seedResult{session: session, token: issued}, nil
}
