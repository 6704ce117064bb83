//go:build unit

package commands_test

import (
	"context"
	"time"

	"studio-ops/internal/domain/credit"
	"studio-ops/internal/domain/submission"
	"studio-ops/internal/infra"
	"studio-ops/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW is an in-memory shared.UnitOfWork. Writes mutate its maps
// directly; rollback-on-error is approximated by copying the store before
// each attempt and restoring it when fn fails. conflictsLeft injects
// optimistic-lock conflicts to exercise the retry path.
type fakeUoW struct {
	store         *fakeStore
	conflictsLeft int
	attempts      int
	maxRetries    int
}

type fakeStore struct {
	packages     map[uuid.UUID]*shared.PackageSnapshot
	clients      map[uuid.UUID]*shared.ClientSnapshot
	assignments  map[uuid.UUID]*credit.Assignment // active, keyed by client
	superseded   int
	states       map[uuid.UUID]*credit.State
	submissions  map[uuid.UUID]*submission.Submission
	idempotency  map[string]*shared.IdempotencyRecord
	notification int
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		store: &fakeStore{
			packages:    map[uuid.UUID]*shared.PackageSnapshot{},
			clients:     map[uuid.UUID]*shared.ClientSnapshot{},
			assignments: map[uuid.UUID]*credit.Assignment{},
			states:      map[uuid.UUID]*credit.State{},
			submissions: map[uuid.UUID]*submission.Submission{},
			idempotency: map[string]*shared.IdempotencyRecord{},
		},
		maxRetries: 3,
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		u.attempts++
		backup := u.store.clone()
		err = fn(ctx, &fakeTx{uow: u})
		if err == nil {
			return nil
		}
		u.store = backup
		if !infra.IsKind(err, infra.KindConflict) {
			return err
		}
	}
	return err
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{uow: u}
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		packages:     map[uuid.UUID]*shared.PackageSnapshot{},
		clients:      map[uuid.UUID]*shared.ClientSnapshot{},
		assignments:  map[uuid.UUID]*credit.Assignment{},
		superseded:   s.superseded,
		states:       map[uuid.UUID]*credit.State{},
		submissions:  map[uuid.UUID]*submission.Submission{},
		idempotency:  map[string]*shared.IdempotencyRecord{},
		notification: s.notification,
	}
	for k, v := range s.packages {
		c.packages[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	for k, v := range s.states {
		copied := *v
		c.states[k] = &copied
	}
	for k, v := range s.submissions {
		c.submissions[k] = v
	}
	for k, v := range s.idempotency {
		copied := *v
		c.idempotency[k] = &copied
	}
	return c
}

type fakeTx struct {
	uow *fakeUoW
}

func (t *fakeTx) Assignments() shared.AssignmentRepository   { return &fakeAssignmentRepo{t.uow} }
func (t *fakeTx) CreditStates() shared.CreditStateRepository { return &fakeCreditStateRepo{t.uow} }
func (t *fakeTx) Submissions() shared.SubmissionRepository   { return &fakeSubmissionRepo{t.uow} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository  { return &fakeIdempotencyRepo{t.uow} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{t.uow}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{uow: t.uow} }

type fakeAssignmentRepo struct{ uow *fakeUoW }

func (r *fakeAssignmentRepo) Supersede(_ context.Context, clientID uuid.UUID, _ time.Time) error {
	if _, ok := r.uow.store.assignments[clientID]; ok {
		delete(r.uow.store.assignments, clientID)
		r.uow.store.superseded++
	}
	return nil
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *credit.Assignment) (uuid.UUID, error) {
	r.uow.store.assignments[a.ClientID()] = a
	return a.ID(), nil
}

type fakeCreditStateRepo struct{ uow *fakeUoW }

func (r *fakeCreditStateRepo) Create(_ context.Context, s *credit.State) error {
	r.uow.store.states[s.ClientID()] = s
	return nil
}

func (r *fakeCreditStateRepo) Update(_ context.Context, s *credit.State) error {
	if r.uow.conflictsLeft > 0 {
		r.uow.conflictsLeft--
		return infra.WrapRepoErr("stale credit state write", nil, infra.KindConflict)
	}
	r.uow.store.states[s.ClientID()] = s
	return nil
}

type fakeSubmissionRepo struct{ uow *fakeUoW }

func (r *fakeSubmissionRepo) Create(_ context.Context, s *submission.Submission) (uuid.UUID, error) {
	r.uow.store.submissions[s.ID()] = s
	return s.ID(), nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, s *submission.Submission) error {
	r.uow.store.submissions[s.ID()] = s
	return nil
}

type fakeIdempotencyRepo struct{ uow *fakeUoW }

func idemKey(key, userID uuid.UUID) string {
	return key.String() + "/" + userID.String()
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, _, requestHash string, expiresAt time.Time) error {
	k := idemKey(key, userID)
	if _, ok := r.uow.store.idempotency[k]; ok {
		return infra.WrapRepoErr("idempotency key already claimed", nil, infra.KindDuplicateKey)
	}
	r.uow.store.idempotency[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r *fakeIdempotencyRepo) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, _ string, submissionID uuid.UUID) error {
	k := idemKey(key, userID)
	record, ok := r.uow.store.idempotency[k]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	record.Status = "completed"
	id := submissionID
	record.ResultSubmissionID = &id
	return nil
}

type fakeNotificationRepo struct{ uow *fakeUoW }

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _, _ string, _ []byte, _ time.Time) error {
	r.uow.store.notification++
	return nil
}

type fakeReads struct {
	uow *fakeUoW
}

func (r *fakeReads) PackageByID(_ context.Context, id uuid.UUID) (*shared.PackageSnapshot, error) {
	pkg, ok := r.uow.store.packages[id]
	if !ok {
		return nil, infra.WrapRepoErr("package not found", nil, infra.KindNotFound)
	}
	return pkg, nil
}

func (r *fakeReads) ClientByID(_ context.Context, id uuid.UUID) (*shared.ClientSnapshot, error) {
	client, ok := r.uow.store.clients[id]
	if !ok {
		return nil, infra.WrapRepoErr("client not found", nil, infra.KindNotFound)
	}
	return client, nil
}

func (r *fakeReads) ActiveAssignmentByClient(_ context.Context, clientID uuid.UUID) (*shared.AssignmentSnapshot, error) {
	a, ok := r.uow.store.assignments[clientID]
	if !ok {
		return nil, nil
	}
	triple := a.Triple()
	snap := &shared.AssignmentSnapshot{
		ID:                   a.ID(),
		ClientID:             a.ClientID(),
		PackageTemplateID:    a.PackageTemplateID(),
		GrantedServings:      triple.Granted,
		ConsumedAtAssignment: triple.ConsumedAtAssignment,
		RemainingServings:    triple.Remaining,
		PaymentStatus:        a.PaymentStatus().String(),
		ExpiresAt:            a.ExpiresAt(),
		Notes:                a.Notes(),
		CreatedAt:            a.CreatedAt(),
	}
	return snap, nil
}

func (r *fakeReads) CreditStateByClient(_ context.Context, clientID uuid.UUID) (*shared.CreditStateSnapshot, error) {
	s, ok := r.uow.store.states[clientID]
	if !ok {
		return nil, nil
	}
	return &shared.CreditStateSnapshot{
		ClientID:          s.ClientID(),
		RemainingServings: s.RemainingServings(),
		RemainingImages:   s.RemainingImages(),
		ConsumedImages:    s.ConsumedImages(),
		ReservedImages:    s.ReservedImages(),
		LockNo:            s.LockNo(),
	}, nil
}

func (r *fakeReads) SubmissionByID(_ context.Context, id uuid.UUID) (*shared.SubmissionSnapshot, error) {
	s, ok := r.uow.store.submissions[id]
	if !ok {
		return nil, infra.WrapRepoErr("submission not found", nil, infra.KindNotFound)
	}
	snap := &shared.SubmissionSnapshot{
		ID:             s.ID(),
		ClientID:       s.ClientID(),
		Title:          s.Title(),
		ImageCount:     s.ImageCount(),
		Status:         s.Status().String(),
		EditCount:      s.EditCount(),
		CreditOverride: s.CreditOverride(),
		CanceledAt:     s.CanceledAt(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
	if ts := s.FirstEnteredAt(submission.StatusReceived); ts != nil {
		snap.ReceivedAt = *ts
	}
	snap.InProgressAt = s.FirstEnteredAt(submission.StatusInProgress)
	snap.ReadyForReviewAt = s.FirstEnteredAt(submission.StatusReadyForReview)
	snap.ChangesRequestedAt = s.FirstEnteredAt(submission.StatusChangesRequested)
	snap.CompletedAt = s.FirstEnteredAt(submission.StatusCompleted)
	return snap, nil
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	record, ok := r.uow.store.idempotency[idemKey(key, userID)]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return record, nil
}
