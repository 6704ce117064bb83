package credit

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoPackageSelected     = errors.New("select a package")
	ErrNegativeCredit        = errors.New("negative credit")
	ErrConsumedExceedsGranted = errors.New("consumed exceeds granted")
	ErrLedgerMismatch        = errors.New("ledger mismatch")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
)

// PackageGrant is the slice of a catalogue template the ledger cares about.
type PackageGrant struct {
	ID       uuid.UUID
	Servings int
	// Images is the image allowance; nil means unlimited.
	Images *int
}

// Prior carries the client's currently active assignment into Reconcile.
// RemainingKnown is false when the prior record predates serving tracking.
type Prior struct {
	PackageID      *uuid.UUID
	Remaining      int
	RemainingKnown bool
}

// Overrides are operator-supplied corrections applied after the base rules.
type Overrides struct {
	Granted              *int
	ConsumedAtAssignment *int
}

// Triple is the reconciled ledger state. Granted is nil when no package
// is selected. Remaining is always derived, never set by callers.
type Triple struct {
	Granted              *int
	ConsumedAtAssignment int
	Remaining            int
}

// Reconcile computes the ledger triple for a (re)assignment. Pure; performs
// no I/O. The prior assignment is a parameter so the same-package rule is
// directly testable.
//
// Rules:
//   - no package: granted undefined, consumed 0, remaining carried from prior
//   - same package as currently active with known remaining: remaining is
//     preserved, consumed recomputed from it
//   - different package: fresh grant, no carry-over
//   - any override forces remaining = max(0, granted - consumed)
func Reconcile(selected *PackageGrant, prior *Prior, ov Overrides) (Triple, error) {
	var t Triple

	switch {
	case selected == nil:
		t.ConsumedAtAssignment = 0
		if prior != nil && prior.RemainingKnown {
			t.Remaining = prior.Remaining
		}

	case sameActivePackage(selected, prior):
		g := selected.Servings
		t.Granted = &g
		t.Remaining = prior.Remaining
		consumed := g - prior.Remaining
		if consumed < 0 {
			consumed = 0
		}
		t.ConsumedAtAssignment = consumed

	default:
		g := selected.Servings
		t.Granted = &g
		t.ConsumedAtAssignment = 0
		t.Remaining = g
	}

	t = t.withOverrides(ov)

	if err := t.Validate(); err != nil {
		return Triple{}, err
	}
	return t, nil
}

func sameActivePackage(selected *PackageGrant, prior *Prior) bool {
	return prior != nil &&
		prior.PackageID != nil &&
		*prior.PackageID == selected.ID &&
		prior.RemainingKnown
}

// withOverrides merges operator overrides and recomputes the derived field.
// Remaining is produced last and is never independently settable.
func (t Triple) withOverrides(ov Overrides) Triple {
	if ov.Granted == nil && ov.ConsumedAtAssignment == nil {
		return t
	}
	if ov.Granted != nil {
		g := *ov.Granted
		t.Granted = &g
	}
	if ov.ConsumedAtAssignment != nil {
		t.ConsumedAtAssignment = *ov.ConsumedAtAssignment
	}
	granted := 0
	if t.Granted != nil {
		granted = *t.Granted
	}
	remaining := granted - t.ConsumedAtAssignment
	if remaining < 0 {
		remaining = 0
	}
	t.Remaining = remaining
	return t
}

// Validate enforces the ledger invariants. A failure here must block any
// persistence of the triple.
func (t Triple) Validate() error {
	if t.Granted == nil {
		if t.ConsumedAtAssignment != 0 {
			return ErrNoPackageSelected
		}
		if t.Remaining < 0 {
			return ErrNegativeCredit
		}
		return nil
	}

	if *t.Granted < 0 || t.ConsumedAtAssignment < 0 || t.Remaining < 0 {
		return ErrNegativeCredit
	}
	if t.ConsumedAtAssignment > *t.Granted {
		return ErrConsumedExceedsGranted
	}
	if *t.Granted-t.ConsumedAtAssignment != t.Remaining {
		return ErrLedgerMismatch
	}
	return nil
}

// IsValidationError reports whether err belongs to the caller-correctable
// validation set surfaced to the assignment screen.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoPackageSelected) ||
		errors.Is(err, ErrNegativeCredit) ||
		errors.Is(err, ErrConsumedExceedsGranted) ||
		errors.Is(err, ErrLedgerMismatch)
}
