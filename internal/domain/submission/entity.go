package submission

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidImageCount = errors.New("image count must be positive")
	ErrAlreadyCompleted  = errors.New("submission is already completed")
	ErrAlreadyCanceled   = errors.New("submission is already canceled")
)

// Submission travels the fixed 5-state pipeline. Each state keeps the
// timestamp of the first time it was ever reached; loop-backs never
// overwrite it.
type Submission struct {
	id             uuid.UUID
	clientID       uuid.UUID
	title          string
	imageCount     int
	status         Status
	firstEntry     map[Status]time.Time
	editCount      int
	creditOverride bool
	canceledAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSubmission(clientID uuid.UUID, title string, imageCount int, creditOverride bool, now time.Time) (*Submission, error) {
	if imageCount <= 0 {
		return nil, ErrInvalidImageCount
	}
	return &Submission{
		id:             uuid.New(),
		clientID:       clientID,
		title:          title,
		imageCount:     imageCount,
		status:         StatusReceived,
		firstEntry:     map[Status]time.Time{StatusReceived: now},
		creditOverride: creditOverride,
	}, nil
}

func ReconstructSubmission(
	id, clientID uuid.UUID,
	title string,
	imageCount int,
	status Status,
	firstEntry map[Status]time.Time,
	editCount int,
	creditOverride bool,
	canceledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Submission {
	entries := make(map[Status]time.Time, len(firstEntry))
	for st, ts := range firstEntry {
		entries[st] = ts
	}
	return &Submission{
		id:             id,
		clientID:       clientID,
		title:          title,
		imageCount:     imageCount,
		status:         status,
		firstEntry:     entries,
		editCount:      editCount,
		creditOverride: creditOverride,
		canceledAt:     canceledAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// TransitionTo advances the pipeline. On an illegal edge nothing is mutated
// and the offending edge is reported back.
func (s *Submission) TransitionTo(next Status, now time.Time) error {
	if s.canceledAt != nil {
		return ErrAlreadyCanceled
	}
	if s.status == StatusCompleted {
		return &IllegalTransitionError{From: StatusCompleted, To: next}
	}
	if !CanTransition(s.status, next) {
		return &IllegalTransitionError{From: s.status, To: next}
	}
	s.status = next
	if _, seen := s.firstEntry[next]; !seen {
		s.firstEntry[next] = now
	}
	return nil
}

// Cancel releases the submission before completion. Completed submissions
// cannot be cancelled; the credit was already consumed.
func (s *Submission) Cancel(now time.Time) error {
	if s.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.canceledAt != nil {
		return ErrAlreadyCanceled
	}
	s.canceledAt = &now
	return nil
}

// IncrementEditCount is allowed even after completion; it is not a status
// transition.
func (s *Submission) IncrementEditCount() {
	s.editCount++
}

// FirstEnteredAt returns the first-entry timestamp for st, or nil if the
// submission never reached it.
func (s *Submission) FirstEnteredAt(st Status) *time.Time {
	if ts, ok := s.firstEntry[st]; ok {
		t := ts
		return &t
	}
	return nil
}

func (s *Submission) IsCompleted() bool {
	return s.status == StatusCompleted
}

func (s *Submission) IsCanceled() bool {
	return s.canceledAt != nil
}

func (s *Submission) ID() uuid.UUID         { return s.id }
func (s *Submission) ClientID() uuid.UUID   { return s.clientID }
func (s *Submission) Title() string         { return s.title }
func (s *Submission) ImageCount() int       { return s.imageCount }
func (s *Submission) Status() Status        { return s.status }
func (s *Submission) EditCount() int        { return s.editCount }
func (s *Submission) CreditOverride() bool  { return s.creditOverride }
func (s *Submission) CanceledAt() *time.Time { return s.canceledAt }
func (s *Submission) CreatedAt() time.Time  { return s.createdAt }
func (s *Submission) UpdatedAt() time.Time  { return s.updatedAt }
