package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/infra"
	"studio-ops/internal/pkg/clock"
	"studio-ops/internal/pkg/errs"
	"studio-ops/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound       = errs.New("client not found")
	ErrPackageNotFound      = errs.New("package not found")
	ErrPackageInactive      = errs.New("package is not active")
	ErrInvalidPaymentStatus = errs.New("invalid payment status")
	ErrAssignmentValidation = errs.New("assignment validation failed")
	ErrCreditStateConflict  = errs.New("credit state conflict")
)

// AssignPackageRequest carries the assignment screen's inputs. A nil
// PackageTemplateID clears the selection; overrides are optional operator
// corrections.
type AssignPackageRequest struct {
	PackageTemplateID *uuid.UUID
	GrantedOverride   *int
	ConsumedOverride  *int
	PaymentStatus     string
	ExpiresAt         *time.Time
	Notes             string
}

// AssignmentPreview is the proposed ledger triple plus field-scoped
// validation messages. FieldErrors is empty when the triple is committable.
type AssignmentPreview struct {
	Granted              *int
	ConsumedAtAssignment int
	Remaining            int
	FieldErrors          map[string]string
}

type AssignPackageResult struct {
	AssignmentID uuid.UUID
}

type AssignmentCommands interface {
	// PreviewAssignment reconciles without committing; illegal inputs come
	// back as field errors, not as an error return.
	PreviewAssignment(ctx context.Context, clientID uuid.UUID, req AssignPackageRequest) (*AssignmentPreview, error)
	AssignPackage(ctx context.Context, clientID uuid.UUID, req AssignPackageRequest) (*AssignPackageResult, error)
}

type assignmentUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAssignmentUseCase(uow shared.UnitOfWork, clk clock.Clock) AssignmentCommands {
	return &assignmentUseCaseImpl{uow: uow, clock: clk}
}

func (uc *assignmentUseCaseImpl) PreviewAssignment(ctx context.Context, clientID uuid.UUID, req AssignPackageRequest) (*AssignmentPreview, error) {
	reads := uc.uow.CommandReads()

	if _, err := reads.ClientByID(ctx, clientID); err != nil {
		return nil, markNotFound(err, ErrClientNotFound)
	}

	grant, err := resolvePackageGrant(ctx, reads, req.PackageTemplateID)
	if err != nil {
		return nil, err
	}

	prior, err := priorFromActive(ctx, reads, clientID)
	if err != nil {
		return nil, err
	}

	ov := credit.Overrides{Granted: req.GrantedOverride, ConsumedAtAssignment: req.ConsumedOverride}
	triple, err := credit.Reconcile(grant, prior, ov)
	if err != nil {
		if credit.IsValidationError(err) {
			return &AssignmentPreview{FieldErrors: fieldErrorsFor(err, req)}, nil
		}
		return nil, err
	}

	return &AssignmentPreview{
		Granted:              triple.Granted,
		ConsumedAtAssignment: triple.ConsumedAtAssignment,
		Remaining:            triple.Remaining,
		FieldErrors:          map[string]string{},
	}, nil
}

func (uc *assignmentUseCaseImpl) AssignPackage(ctx context.Context, clientID uuid.UUID, req AssignPackageRequest) (*AssignPackageResult, error) {
	paymentStatus, err := credit.NewPaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPaymentStatus)
	}

	var assignmentID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if _, derr := reads.ClientByID(ctx, clientID); derr != nil {
			return markNotFound(derr, ErrClientNotFound)
		}

		grant, derr := resolvePackageGrant(ctx, reads, req.PackageTemplateID)
		if derr != nil {
			return derr
		}

		prior, derr := priorFromActive(ctx, reads, clientID)
		if derr != nil {
			return derr
		}

		ov := credit.Overrides{Granted: req.GrantedOverride, ConsumedAtAssignment: req.ConsumedOverride}
		triple, derr := credit.Reconcile(grant, prior, ov)
		if derr != nil {
			if credit.IsValidationError(derr) {
				return errs.Mark(derr, ErrAssignmentValidation)
			}
			return derr
		}

		now := uc.clock.Now()

		if derr = tx.Assignments().Supersede(ctx, clientID, now); derr != nil {
			return derr
		}

		assignment, derr := credit.NewAssignment(clientID, req.PackageTemplateID, triple, paymentStatus, req.ExpiresAt, req.Notes)
		if derr != nil {
			return derr
		}
		if assignmentID, derr = tx.Assignments().Create(ctx, assignment); derr != nil {
			return derr
		}

		if derr = uc.applyToState(ctx, tx, clientID, prior, grant, triple); derr != nil {
			return derr
		}

		return enqueueAssignmentNotification(ctx, tx, clientID, assignmentID, triple, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrCreditStateConflict)
		}
		return nil, err
	}

	return &AssignPackageResult{AssignmentID: assignmentID}, nil
}

// applyToState folds the reconciled triple into the client's live balance.
// The image pool refreshes only on a package switch; a same-package
// reselection keeps the pool as-is.
func (uc *assignmentUseCaseImpl) applyToState(
	ctx context.Context,
	tx shared.Tx,
	clientID uuid.UUID,
	prior *credit.Prior,
	grant *credit.PackageGrant,
	triple credit.Triple,
) error {
	snap, err := tx.Reads().CreditStateByClient(ctx, clientID)
	if err != nil {
		return err
	}

	var state *credit.State
	if snap == nil {
		state = credit.NewState(clientID)
	} else {
		state = credit.ReconstructState(
			snap.ClientID, snap.RemainingServings, snap.RemainingImages,
			snap.ConsumedImages, snap.ReservedImages, snap.LockNo,
		)
	}

	// Clearing the selection empties the image pool rather than leaving it
	// unmetered; nil images means unlimited.
	zero := 0
	images := &zero
	if grant != nil {
		images = grant.Images
	}
	state.ApplyAssignment(triple, packageSwitched(prior, grant), images)

	if snap == nil {
		return tx.CreditStates().Create(ctx, state)
	}
	return tx.CreditStates().Update(ctx, state)
}

func packageSwitched(prior *credit.Prior, grant *credit.PackageGrant) bool {
	switch {
	case grant == nil:
		return prior != nil && prior.PackageID != nil
	case prior == nil || prior.PackageID == nil:
		return true
	default:
		return *prior.PackageID != grant.ID
	}
}

func resolvePackageGrant(ctx context.Context, reads shared.CommandReads, packageID *uuid.UUID) (*credit.PackageGrant, error) {
	if packageID == nil {
		return nil, nil
	}
	pkg, err := reads.PackageByID(ctx, *packageID)
	if err != nil {
		return nil, markNotFound(err, ErrPackageNotFound)
	}
	if !pkg.Active {
		return nil, ErrPackageInactive
	}
	return &credit.PackageGrant{
		ID:       pkg.ID,
		Servings: pkg.GrantedServings,
		Images:   pkg.GrantedImages,
	}, nil
}

func priorFromActive(ctx context.Context, reads shared.CommandReads, clientID uuid.UUID) (*credit.Prior, error) {
	active, err := reads.ActiveAssignmentByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}
	return &credit.Prior{
		PackageID:      active.PackageTemplateID,
		Remaining:      active.RemainingServings,
		RemainingKnown: true,
	}, nil
}

func fieldErrorsFor(err error, req AssignPackageRequest) map[string]string {
	switch {
	case errors.Is(err, credit.ErrNoPackageSelected):
		return map[string]string{"package_template_id": "select a package"}
	case errors.Is(err, credit.ErrNegativeCredit):
		fields := map[string]string{}
		if req.GrantedOverride != nil && *req.GrantedOverride < 0 {
			fields["granted"] = "negative value"
		}
		if req.ConsumedOverride != nil && *req.ConsumedOverride < 0 {
			fields["consumed_at_assignment"] = "negative value"
		}
		if len(fields) == 0 {
			fields["granted"] = "negative value"
		}
		return fields
	case errors.Is(err, credit.ErrConsumedExceedsGranted):
		return map[string]string{"consumed_at_assignment": "consumed exceeds granted"}
	case errors.Is(err, credit.ErrLedgerMismatch):
		return map[string]string{"remaining": "ledger mismatch"}
	default:
		return map[string]string{}
	}
}

func enqueueAssignmentNotification(ctx context.Context, tx shared.Tx, clientID, assignmentID uuid.UUID, triple credit.Triple, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"client_id":     clientID,
		"assignment_id": assignmentID,
		"remaining":     triple.Remaining,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", "credit.assignment.updated", payload, now)
}

func markNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}
