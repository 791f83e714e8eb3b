package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleSuper     AdminRole = "SUPER_ADMIN"
	AdminRoleModerator AdminRole = "MODERATOR"
)

type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         AdminRole `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusDismissed ReportStatus = "DISMISSED"
	ReportStatusActioned  ReportStatus = "ACTIONED"
)

type Report struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	ReporterID     uuid.UUID    `json:"reporter_id" db:"reporter_id"`
	ReportedUserID uuid.UUID    `json:"reported_user_id" db:"reported_user_id"`
	Reason         string       `json:"reason" db:"reason"`
	Details        *string      `json:"details,omitempty" db:"details"`
	Status         ReportStatus `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID   `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}
