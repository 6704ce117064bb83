package credit

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds a client to a package grant and its consumption-to-date.
// A reassignment supersedes the active row instead of deleting it, so the
// table doubles as the audit history.
type Assignment struct {
	id                uuid.UUID
	clientID          uuid.UUID
	packageTemplateID *uuid.UUID
	triple            Triple
	paymentStatus     PaymentStatus
	expiresAt         *time.Time
	notes             string
	supersededAt      *time.Time
	createdAt         time.Time
}

func NewAssignment(
	clientID uuid.UUID,
	packageTemplateID *uuid.UUID,
	triple Triple,
	paymentStatus PaymentStatus,
	expiresAt *time.Time,
	notes string,
) (*Assignment, error) {
	if err := triple.Validate(); err != nil {
		return nil, err
	}
	if !paymentStatus.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}
	return &Assignment{
		id:                uuid.New(),
		clientID:          clientID,
		packageTemplateID: packageTemplateID,
		triple:            triple,
		paymentStatus:     paymentStatus,
		expiresAt:         expiresAt,
		notes:             notes,
	}, nil
}

func ReconstructAssignment(
	id, clientID uuid.UUID,
	packageTemplateID *uuid.UUID,
	triple Triple,
	paymentStatus PaymentStatus,
	expiresAt *time.Time,
	notes string,
	supersededAt *time.Time,
	createdAt time.Time,
) *Assignment {
	return &Assignment{
		id:                id,
		clientID:          clientID,
		packageTemplateID: packageTemplateID,
		triple:            triple,
		paymentStatus:     paymentStatus,
		expiresAt:         expiresAt,
		notes:             notes,
		supersededAt:      supersededAt,
		createdAt:         createdAt,
	}
}

func (a *Assignment) IsActive() bool {
	return a.supersededAt == nil
}

// Prior converts the assignment into the input the ledger needs for the
// next reconciliation.
func (a *Assignment) Prior() *Prior {
	return &Prior{
		PackageID:      a.packageTemplateID,
		Remaining:      a.triple.Remaining,
		RemainingKnown: true,
	}
}

func (a *Assignment) ID() uuid.UUID                 { return a.id }
func (a *Assignment) ClientID() uuid.UUID           { return a.clientID }
func (a *Assignment) PackageTemplateID() *uuid.UUID { return a.packageTemplateID }
func (a *Assignment) Triple() Triple                { return a.triple }
func (a *Assignment) PaymentStatus() PaymentStatus  { return a.paymentStatus }
func (a *Assignment) ExpiresAt() *time.Time         { return a.expiresAt }
func (a *Assignment) Notes() string                 { return a.notes }
func (a *Assignment) SupersededAt() *time.Time      { return a.supersededAt }
func (a *Assignment) CreatedAt() time.Time          { return a.createdAt }
