package domain

import "time"

type OrganizationRole string

const (
	OrgRoleAdmin     OrganizationRole = "admin"
	OrgRoleEvaluator OrganizationRole = "evaluator"
	OrgRoleViewer    OrganizationRole = "viewer"
)

// UserOrganization links a user to an organization they belong to.
type UserOrganization struct {
	UserID         string           `json:"user_id" gorm:"primaryKey;size:64"`
	OrganizationID string           `json:"organization_id" gorm:"primaryKey;size:64;index"`
	Role           OrganizationRole `json:"role" gorm:"size:20;not null;default:viewer"`
	JoinedAt       time.Time        `json:"joined_at" gorm:"not null"`
}

func (UserOrganization) TableName() string { return "user_organizations" }
