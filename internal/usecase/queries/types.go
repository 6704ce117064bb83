package queries

import (
	"time"

	"github.com/google/uuid"
)

// PackageView represents read-optimized package template data
type PackageView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	GrantedServings int32     `json:"granted_servings"`
	GrantedImages   *int32    `json:"granted_images,omitempty"`
	PriceCents      int64     `json:"price_cents"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClientView represents read-optimized client data
type ClientView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentView represents one row of a client's assignment history
type AssignmentView struct {
	ID                   uuid.UUID  `json:"id"`
	ClientID             uuid.UUID  `json:"client_id"`
	PackageTemplateID    *uuid.UUID `json:"package_template_id,omitempty"`
	PackageName          *string    `json:"package_name,omitempty"`
	GrantedServings      *int32     `json:"granted_servings,omitempty"`
	ConsumedAtAssignment int32      `json:"consumed_at_assignment"`
	RemainingServings    int32      `json:"remaining_servings"`
	PaymentStatus        string     `json:"payment_status"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
	Notes                string     `json:"notes"`
	SupersededAt         *time.Time `json:"superseded_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CreditStateView is the live credit balance of a client
type CreditStateView struct {
	ClientID          uuid.UUID `json:"client_id"`
	RemainingServings int32     `json:"remaining_servings"`
	RemainingImages   *int32    `json:"remaining_images,omitempty"`
	ConsumedImages    int32     `json:"consumed_images"`
	ReservedImages    int32     `json:"reserved_images"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SubmissionView represents read-optimized submission data with the
// first-entry timestamp of every pipeline state it has reached
type SubmissionView struct {
	ID                 uuid.UUID  `json:"id"`
	ClientID           uuid.UUID  `json:"client_id"`
	ClientName         string     `json:"client_name"`
	Title              string     `json:"title"`
	ImageCount         int32      `json:"image_count"`
	Status             string     `json:"status"`
	ReceivedAt         time.Time  `json:"received_at"`
	InProgressAt       *time.Time `json:"in_progress_at,omitempty"`
	ReadyForReviewAt   *time.Time `json:"ready_for_review_at,omitempty"`
	ChangesRequestedAt *time.Time `json:"changes_requested_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	EditCount          int32      `json:"edit_count"`
	CreditOverride     bool       `json:"credit_override"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type SubmissionListItem struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	ImageCount int32      `json:"image_count"`
	Status     string     `json:"status"`
	ReceivedAt time.Time  `json:"received_at"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IdempotencyKeyView represents read-optimized idempotency key data
type IdempotencyKeyView struct {
	Key                uuid.UUID  `json:"key"`
	UserID             uuid.UUID  `json:"user_id"`
	Endpoint           string     `json:"endpoint"`
	RequestHash        string     `json:"request_hash"`
	ResponseBodyHash   *string    `json:"response_body_hash,omitempty"`
	Status             string     `json:"status"`
	ResultSubmissionID *uuid.UUID `json:"result_submission_id,omitempty"`
	ExpiresAt          time.Time  `json:"expires_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
