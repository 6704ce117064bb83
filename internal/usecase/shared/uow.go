package shared

import (
	"context"
	"time"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/domain/submission"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Assignments() AssignmentRepository
	CreditStates() CreditStateRepository
	Submissions() SubmissionRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	PackageByID(ctx context.Context, id uuid.UUID) (*PackageSnapshot, error)
	ClientByID(ctx context.Context, id uuid.UUID) (*ClientSnapshot, error)
	// ActiveAssignmentByClient returns (nil, nil) when the client has no
	// active assignment; that is a normal state, not an error.
	ActiveAssignmentByClient(ctx context.Context, clientID uuid.UUID) (*AssignmentSnapshot, error)
	// CreditStateByClient returns (nil, nil) when no state row exists yet.
	CreditStateByClient(ctx context.Context, clientID uuid.UUID) (*CreditStateSnapshot, error)
	SubmissionByID(ctx context.Context, id uuid.UUID) (*SubmissionSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type AssignmentRepository interface {
	// Supersede stamps the client's active assignment; it is never deleted.
	Supersede(ctx context.Context, clientID uuid.UUID, at time.Time) error
	Create(ctx context.Context, a *credit.Assignment) (uuid.UUID, error)
}

type CreditStateRepository interface {
	Create(ctx context.Context, s *credit.State) error
	// Update commits against the lock_no the state was read with; a stale
	// write surfaces as a conflict-kind repository error.
	Update(ctx context.Context, s *credit.State) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, s *submission.Submission) (uuid.UUID, error)
	Update(ctx context.Context, s *submission.Submission) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultHash string, submissionID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
