package queries

import (
	"context"

	"github.com/google/uuid"
)

// ClientCreditView combines the live balance with the active assignment so
// the balance screen renders from a single response.
type ClientCreditView struct {
	Client           *ClientView      `json:"client"`
	State            *CreditStateView `json:"state,omitempty"`
	ActiveAssignment *AssignmentView  `json:"active_assignment,omitempty"`
}

type CreditQueries interface {
	GetClientCredit(ctx context.Context, clientID uuid.UUID) (*ClientCreditView, error)
	ListAssignments(ctx context.Context, clientID uuid.UUID) ([]*AssignmentView, error)
}

type ClientViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClientView, error)
}

type AssignmentViewRepo interface {
	// FindActiveByClient returns (nil, nil) when the client has no active
	// assignment.
	FindActiveByClient(ctx context.Context, clientID uuid.UUID) (*AssignmentView, error)
	FindHistoryByClient(ctx context.Context, clientID uuid.UUID) ([]*AssignmentView, error)
}

type CreditStateViewRepo interface {
	// FindByClient returns (nil, nil) when no state row exists yet.
	FindByClient(ctx context.Context, clientID uuid.UUID) (*CreditStateView, error)
}

type creditQueriesImpl struct {
	clients     ClientViewRepo
	assignments AssignmentViewRepo
	states      CreditStateViewRepo
}

func NewCreditQueries(clients ClientViewRepo, assignments AssignmentViewRepo, states CreditStateViewRepo) CreditQueries {
	return &creditQueriesImpl{
		clients:     clients,
		assignments: assignments,
		states:      states,
	}
}

func (q *creditQueriesImpl) GetClientCredit(ctx context.Context, clientID uuid.UUID) (*ClientCreditView, error) {
	client, err := q.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	state, err := q.states.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	active, err := q.assignments.FindActiveByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &ClientCreditView{
		Client:           client,
		State:            state,
		ActiveAssignment: active,
	}, nil
}

func (q *creditQueriesImpl) ListAssignments(ctx context.Context, clientID uuid.UUID) ([]*AssignmentView, error) {
	if _, err := q.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return q.assignments.FindHistoryByClient(ctx, clientID)
}
