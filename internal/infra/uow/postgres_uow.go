package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"studio-ops/internal/infra"
	"studio-ops/internal/infra/db"
	"studio-ops/internal/infra/readstore"
	"studio-ops/internal/infra/repository"
	"studio-ops/internal/pkg/errs"
	"studio-ops/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	maxRetries int
}

func NewPostgresUoW(pool *pgxpool.Pool, maxRetries int) shared.UnitOfWork {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &PostgresUoW{
		pool:       pool,
		maxRetries: maxRetries,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) || attempt == u.maxRetries {
			if attempt == u.maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- safe conversion after masking
	return int64(uval) % n
}

// Serialization failures, deadlocks, and stale optimistic-lock writes all
// resolve by re-running the whole transaction against fresh reads.
func isRetryableError(err error) bool {
	if infra.IsKind(err, infra.KindConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	assignmentRepo   shared.AssignmentRepository
	creditStateRepo  shared.CreditStateRepository
	submissionRepo   shared.SubmissionRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) Assignments() shared.AssignmentRepository {
	if t.assignmentRepo == nil {
		t.assignmentRepo = repository.NewAssignmentRepository(t.dbtx)
	}
	return t.assignmentRepo
}

func (t *pgTx) CreditStates() shared.CreditStateRepository {
	if t.creditStateRepo == nil {
		t.creditStateRepo = repository.NewCreditStateRepository(t.dbtx)
	}
	return t.creditStateRepo
}

func (t *pgTx) Submissions() shared.SubmissionRepository {
	if t.submissionRepo == nil {
		t.submissionRepo = repository.NewSubmissionRepository(t.dbtx)
	}
	return t.submissionRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	packageStore     *readstore.PackageReadStore
	clientStore      *readstore.ClientReadStore
	assignmentStore  *readstore.AssignmentReadStore
	creditStateStore *readstore.CreditStateReadStore
	submissionStore  *readstore.SubmissionReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) PackageByID(ctx context.Context, id uuid.UUID) (*shared.PackageSnapshot, error) {
	if r.packageStore == nil {
		r.packageStore = readstore.NewPackageReadStore(r.dbtx)
	}

	pkg, err := r.packageStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.PackageSnapshot{
		ID:              pkg.ID,
		Name:            pkg.Name,
		GrantedServings: int(pkg.GrantedServings),
		PriceCents:      pkg.PriceCents,
		Active:          pkg.Active,
	}
	if pkg.GrantedImages != nil {
		images := int(*pkg.GrantedImages)
		snapshot.GrantedImages = &images
	}
	return snapshot, nil
}

func (r *commandReads) ClientByID(ctx context.Context, id uuid.UUID) (*shared.ClientSnapshot, error) {
	if r.clientStore == nil {
		r.clientStore = readstore.NewClientReadStore(r.dbtx)
	}

	client, err := r.clientStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.ClientSnapshot{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
	}, nil
}

func (r *commandReads) ActiveAssignmentByClient(ctx context.Context, clientID uuid.UUID) (*shared.AssignmentSnapshot, error) {
	if r.assignmentStore == nil {
		r.assignmentStore = readstore.NewAssignmentReadStore(r.dbtx)
	}

	view, err := r.assignmentStore.FindActiveByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, nil
	}

	snapshot := &shared.AssignmentSnapshot{
		ID:                   view.ID,
		ClientID:             view.ClientID,
		PackageTemplateID:    view.PackageTemplateID,
		ConsumedAtAssignment: int(view.ConsumedAtAssignment),
		RemainingServings:    int(view.RemainingServings),
		PaymentStatus:        view.PaymentStatus,
		ExpiresAt:            view.ExpiresAt,
		Notes:                view.Notes,
		SupersededAt:         view.SupersededAt,
		CreatedAt:            view.CreatedAt,
	}
	if view.GrantedServings != nil {
		granted := int(*view.GrantedServings)
		snapshot.GrantedServings = &granted
	}
	return snapshot, nil
}

func (r *commandReads) CreditStateByClient(ctx context.Context, clientID uuid.UUID) (*shared.CreditStateSnapshot, error) {
	if r.creditStateStore == nil {
		r.creditStateStore = readstore.NewCreditStateReadStore(r.dbtx)
	}

	view, lockNo, err := r.creditStateStore.FindByClientWithLock(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, nil
	}

	snapshot := &shared.CreditStateSnapshot{
		ClientID:          view.ClientID,
		RemainingServings: int(view.RemainingServings),
		ConsumedImages:    int(view.ConsumedImages),
		ReservedImages:    int(view.ReservedImages),
		LockNo:            lockNo,
	}
	if view.RemainingImages != nil {
		images := int(*view.RemainingImages)
		snapshot.RemainingImages = &images
	}
	return snapshot, nil
}

func (r *commandReads) SubmissionByID(ctx context.Context, id uuid.UUID) (*shared.SubmissionSnapshot, error) {
	if r.submissionStore == nil {
		r.submissionStore = readstore.NewSubmissionReadStore(r.dbtx)
	}

	view, err := r.submissionStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.SubmissionSnapshot{
		ID:                 view.ID,
		ClientID:           view.ClientID,
		Title:              view.Title,
		ImageCount:         int(view.ImageCount),
		Status:             view.Status,
		ReceivedAt:         view.ReceivedAt,
		InProgressAt:       view.InProgressAt,
		ReadyForReviewAt:   view.ReadyForReviewAt,
		ChangesRequestedAt: view.ChangesRequestedAt,
		CompletedAt:        view.CompletedAt,
		EditCount:          int(view.EditCount),
		CreditOverride:     view.CreditOverride,
		CanceledAt:         view.CanceledAt,
		CreatedAt:          view.CreatedAt,
		UpdatedAt:          view.UpdatedAt,
	}, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.dbtx)
	}

	record, err := r.idempotencyStore.Get(ctx, key, userID)
	if err != nil {
		return nil, err
	}

	return &shared.IdempotencyRecord{
		Key:                record.Key,
		UserID:             record.UserID,
		Status:             record.Status,
		RequestHash:        record.RequestHash,
		ResultSubmissionID: record.ResultSubmissionID,
		ExpiresAt:          record.ExpiresAt,
	}, nil
}
