package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads.

type PackageSnapshot struct {
	ID              uuid.UUID
	Name            string
	GrantedServings int
	GrantedImages   *int // nil = unlimited
	PriceCents      int64
	Active          bool
}

type ClientSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type AssignmentSnapshot struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	PackageTemplateID    *uuid.UUID
	GrantedServings      *int
	ConsumedAtAssignment int
	RemainingServings    int
	PaymentStatus        string
	ExpiresAt            *time.Time
	Notes                string
	SupersededAt         *time.Time
	CreatedAt            time.Time
}

type CreditStateSnapshot struct {
	ClientID          uuid.UUID
	RemainingServings int
	RemainingImages   *int
	ConsumedImages    int
	ReservedImages    int
	LockNo            int64
}

type SubmissionSnapshot struct {
	ID                 uuid.UUID
	ClientID           uuid.UUID
	Title              string
	ImageCount         int
	Status             string
	ReceivedAt         time.Time
	InProgressAt       *time.Time
	ReadyForReviewAt   *time.Time
	ChangesRequestedAt *time.Time
	CompletedAt        *time.Time
	EditCount          int
	CreditOverride     bool
	CanceledAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type IdempotencyRecord struct {
	Key                uuid.UUID
	UserID             uuid.UUID
	Status             string
	RequestHash        string
	ResultSubmissionID *uuid.UUID
	ExpiresAt          time.Time
}
