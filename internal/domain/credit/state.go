package credit

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCredit  = errors.New("insufficient credit")
	ErrNegativeReservation = errors.New("reservation count must be positive")
	ErrReleaseExceedsPool  = errors.New("release exceeds reserved pool")
)

// State is the authoritative per-client credit record. Servings are governed
// by package assignments; images are reserved, consumed and released by the
// submission lifecycle. Mutated only through the reconciler/coordinator.
type State struct {
	clientID          uuid.UUID
	remainingServings int
	// remainingImages nil means the image pool is unlimited.
	remainingImages *int
	consumedImages  int
	reservedImages  int
	lockNo          int64
}

func NewState(clientID uuid.UUID) *State {
	return &State{clientID: clientID}
}

func ReconstructState(
	clientID uuid.UUID,
	remainingServings int,
	remainingImages *int,
	consumedImages, reservedImages int,
	lockNo int64,
) *State {
	return &State{
		clientID:          clientID,
		remainingServings: remainingServings,
		remainingImages:   remainingImages,
		consumedImages:    consumedImages,
		reservedImages:    reservedImages,
		lockNo:            lockNo,
	}
}

// ReserveImages sets n images aside for a submission. Without force the
// check and the decrement are a single step; the caller commits the result
// against the lockNo it read, so two concurrent reservations cannot spend
// the same remaining balance. With force the pool clamps at zero and the
// override is recorded by the caller.
func (s *State) ReserveImages(n int, force bool) error {
	if n <= 0 {
		return ErrNegativeReservation
	}
	if s.remainingImages == nil {
		s.reservedImages += n
		return nil
	}
	remaining := *s.remainingImages
	if remaining < n {
		if !force {
			return ErrInsufficientCredit
		}
		remaining = 0
	} else {
		remaining -= n
	}
	s.remainingImages = &remaining
	s.reservedImages += n
	return nil
}

// ConsumeImages moves n images from reserved to consumed on completion.
// Remaining is untouched; it was already decremented at reservation.
func (s *State) ConsumeImages(n int) error {
	if n <= 0 {
		return ErrNegativeReservation
	}
	if s.reservedImages < n {
		return ErrReleaseExceedsPool
	}
	s.reservedImages -= n
	s.consumedImages += n
	return nil
}

// ReleaseImages returns n reserved images to the pool when a submission is
// cancelled before completion.
func (s *State) ReleaseImages(n int) error {
	if n <= 0 {
		return ErrNegativeReservation
	}
	if s.reservedImages < n {
		return ErrReleaseExceedsPool
	}
	s.reservedImages -= n
	if s.remainingImages != nil {
		remaining := *s.remainingImages + n
		s.remainingImages = &remaining
	}
	return nil
}

// ApplyAssignment folds a reconciled assignment into the state. The serving
// pool always follows the triple. The image pool is refreshed only on a
// package switch (fresh grant, no carry-over); a same-package reselection
// leaves it alone.
func (s *State) ApplyAssignment(triple Triple, packageSwitched bool, images *int) {
	s.remainingServings = triple.Remaining
	if packageSwitched {
		s.remainingImages = images
	}
}

func (s *State) ClientID() uuid.UUID    { return s.clientID }
func (s *State) RemainingServings() int { return s.remainingServings }
func (s *State) RemainingImages() *int  { return s.remainingImages }
func (s *State) ConsumedImages() int    { return s.consumedImages }
func (s *State) ReservedImages() int    { return s.reservedImages }
func (s *State) LockNo() int64          { return s.lockNo }
