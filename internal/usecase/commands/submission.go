package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"studio-ops/internal/domain/credit"
	domsub "studio-ops/internal/domain/submission"
	"studio-ops/internal/infra"
	"studio-ops/internal/pkg/clock"
	"studio-ops/internal/pkg/config"
	"studio-ops/internal/pkg/errs"
	"studio-ops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSubmissionNotFound      = errs.New("submission not found")
	ErrInsufficientCredit      = errs.New("insufficient image credit")
	ErrNoCreditState           = errs.New("client has no credit state")
	ErrInvalidStatus           = errs.New("invalid submission status")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrDuplicateSubmission     = errs.New("duplicate submission request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrSubmissionConflict      = errs.New("submission credit conflict")
	ErrSubmissionNotCancelable = errs.New("submission cannot be cancelled")
)

type CreateSubmissionRequest struct {
	ClientID   uuid.UUID
	Title      string
	ImageCount int
	// ForceOverride spends past an insufficient image pool; the override is
	// recorded on the submission.
	ForceOverride bool
}

type CreateSubmissionResult struct {
	SubmissionID uuid.UUID
	IsReplayed   bool
}

type SubmissionCommands interface {
	CreateSubmission(ctx context.Context, req CreateSubmissionRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateSubmissionResult, error)
	UpdateStatus(ctx context.Context, submissionID uuid.UUID, status string) error
	RecordEdit(ctx context.Context, submissionID uuid.UUID) error
	CancelSubmission(ctx context.Context, submissionID uuid.UUID) error
}

type submissionUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.LedgerConfig
	clock clock.Clock
}

func NewSubmissionUseCase(uow shared.UnitOfWork, cfg config.LedgerConfig, clk clock.Clock) SubmissionCommands {
	return &submissionUseCaseImpl{uow: uow, cfg: cfg, clock: clk}
}

// CreateSubmission reserves image credit and creates the submission in one
// transaction. The insufficient-credit check and the decrement are a single
// step committed against the state's lock number, so two concurrent
// submissions cannot double-spend the same remaining balance.
func (uc *submissionUseCaseImpl) CreateSubmission(
	ctx context.Context,
	req CreateSubmissionRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateSubmissionResult, error) {
	requestHash, err := calculateRequestHash(req)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	expiresAt := uc.clock.Now().Add(uc.cfg.IdempotencyTTL)

	var result CreateSubmissionResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimErr := tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, "POST /submissions", requestHash, expiresAt)
		if claimErr != nil {
			if !infra.IsKind(claimErr, infra.KindDuplicateKey) {
				return errs.Mark(claimErr, ErrIdempotencyCheckFailed)
			}
			replayed, rerr := resolveExistingKey(ctx, tx, idempotencyKey, userID, requestHash)
			if rerr != nil {
				return rerr
			}
			result = CreateSubmissionResult{SubmissionID: replayed, IsReplayed: true}
			return nil
		}

		if _, derr := tx.Reads().ClientByID(ctx, req.ClientID); derr != nil {
			return markNotFound(derr, ErrClientNotFound)
		}

		sub, derr := domsub.NewSubmission(req.ClientID, req.Title, req.ImageCount, req.ForceOverride, uc.clock.Now())
		if derr != nil {
			return derr
		}

		if derr = uc.reserveImages(ctx, tx, req.ClientID, req.ImageCount, req.ForceOverride); derr != nil {
			return derr
		}

		id, derr := tx.Submissions().Create(ctx, sub)
		if derr != nil {
			return derr
		}

		if derr = tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, userID, requestHash, id); derr != nil {
			return derr
		}

		result = CreateSubmissionResult{SubmissionID: id}
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrSubmissionConflict)
		}
		return nil, err
	}
	return &result, nil
}

func resolveExistingKey(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, requestHash string) (uuid.UUID, error) {
	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return uuid.Nil, ErrDuplicateSubmission
		}
		if existing.ResultSubmissionID == nil {
			return uuid.Nil, errs.New("completed request missing result submission ID")
		}
		return *existing.ResultSubmissionID, nil

	case "processing":
		if existing.RequestHash != requestHash {
			return uuid.Nil, ErrDuplicateSubmission
		}
		return uuid.Nil, ErrIdempotencyInProgress

	default:
		return uuid.Nil, errs.New("invalid idempotency key status")
	}
}

func (uc *submissionUseCaseImpl) reserveImages(ctx context.Context, tx shared.Tx, clientID uuid.UUID, n int, force bool) error {
	state, err := loadCreditState(ctx, tx, clientID)
	if err != nil {
		return err
	}
	if err := state.ReserveImages(n, force); err != nil {
		if errors.Is(err, credit.ErrInsufficientCredit) {
			return errs.Mark(err, ErrInsufficientCredit)
		}
		return err
	}
	return tx.CreditStates().Update(ctx, state)
}

// UpdateStatus drives the pipeline. Entering Completed consumes the images
// reserved at creation; remaining is untouched, it was already decremented.
func (uc *submissionUseCaseImpl) UpdateStatus(ctx context.Context, submissionID uuid.UUID, status string) error {
	next, err := domsub.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidStatus)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, derr := loadSubmission(ctx, tx, submissionID)
		if derr != nil {
			return derr
		}

		if derr = sub.TransitionTo(next, uc.clock.Now()); derr != nil {
			return derr
		}

		if next == domsub.StatusCompleted {
			state, serr := loadCreditState(ctx, tx, sub.ClientID())
			if serr != nil {
				return serr
			}
			if serr = state.ConsumeImages(sub.ImageCount()); serr != nil {
				return serr
			}
			if serr = tx.CreditStates().Update(ctx, state); serr != nil {
				return serr
			}
		}

		return tx.Submissions().Update(ctx, sub)
	})
	if err != nil && infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, ErrSubmissionConflict)
	}
	return err
}

// RecordEdit bumps the edit counter. Not a status transition, so it is
// accepted even on completed submissions.
func (uc *submissionUseCaseImpl) RecordEdit(ctx context.Context, submissionID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, derr := loadSubmission(ctx, tx, submissionID)
		if derr != nil {
			return derr
		}
		sub.IncrementEditCount()
		return tx.Submissions().Update(ctx, sub)
	})
}

// CancelSubmission releases the reserved images back to the pool in full.
func (uc *submissionUseCaseImpl) CancelSubmission(ctx context.Context, submissionID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, derr := loadSubmission(ctx, tx, submissionID)
		if derr != nil {
			return derr
		}

		if derr = sub.Cancel(uc.clock.Now()); derr != nil {
			return errs.Mark(derr, ErrSubmissionNotCancelable)
		}

		state, derr := loadCreditState(ctx, tx, sub.ClientID())
		if derr != nil {
			return derr
		}
		if derr = state.ReleaseImages(sub.ImageCount()); derr != nil {
			return derr
		}
		if derr = tx.CreditStates().Update(ctx, state); derr != nil {
			return derr
		}

		return tx.Submissions().Update(ctx, sub)
	})
	if err != nil && infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, ErrSubmissionConflict)
	}
	return err
}

func loadSubmission(ctx context.Context, tx shared.Tx, id uuid.UUID) (*domsub.Submission, error) {
	snap, err := tx.Reads().SubmissionByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, ErrSubmissionNotFound)
	}
	return submissionFromSnapshot(snap)
}

func submissionFromSnapshot(snap *shared.SubmissionSnapshot) (*domsub.Submission, error) {
	status, err := domsub.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	firstEntry := map[domsub.Status]time.Time{
		domsub.StatusReceived: snap.ReceivedAt,
	}
	setEntry := func(st domsub.Status, ts *time.Time) {
		if ts != nil {
			firstEntry[st] = *ts
		}
	}
	setEntry(domsub.StatusInProgress, snap.InProgressAt)
	setEntry(domsub.StatusReadyForReview, snap.ReadyForReviewAt)
	setEntry(domsub.StatusChangesRequested, snap.ChangesRequestedAt)
	setEntry(domsub.StatusCompleted, snap.CompletedAt)

	return domsub.ReconstructSubmission(
		snap.ID, snap.ClientID, snap.Title, snap.ImageCount,
		status, firstEntry, snap.EditCount, snap.CreditOverride,
		snap.CanceledAt, snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func loadCreditState(ctx context.Context, tx shared.Tx, clientID uuid.UUID) (*credit.State, error) {
	snap, err := tx.Reads().CreditStateByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNoCreditState
	}
	return credit.ReconstructState(
		snap.ClientID, snap.RemainingServings, snap.RemainingImages,
		snap.ConsumedImages, snap.ReservedImages, snap.LockNo,
	), nil
}

func calculateRequestHash(req CreateSubmissionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
