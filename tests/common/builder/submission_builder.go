//go:build unit || e2e

package builder

import (
	"time"

	reqdto "studio-ops/internal/handler/dto/request"
	"studio-ops/internal/usecase/queries"

	"github.com/google/uuid"
)

type SubmissionBuilder struct {
	ClientID   uuid.UUID
	ClientName string
	Title      string
	ImageCount int32
	Status     string
}

func NewSubmissionBuilder() *SubmissionBuilder {
	return &SubmissionBuilder{
		ClientID:   uuid.New(),
		ClientName: "Umami Kitchen",
		Title:      "June menu shoot",
		ImageCount: 5,
		Status:     "received",
	}
}

func (b *SubmissionBuilder) WithClientID(id uuid.UUID) *SubmissionBuilder {
	b.ClientID = id
	return b
}

func (b *SubmissionBuilder) WithStatus(status string) *SubmissionBuilder {
	b.Status = status
	return b
}

func (b *SubmissionBuilder) BuildDTO() reqdto.CreateSubmissionRequest {
	return reqdto.CreateSubmissionRequest{
		ClientID:   b.ClientID,
		Title:      b.Title,
		ImageCount: int(b.ImageCount),
	}
}

func (b *SubmissionBuilder) BuildView() *queries.SubmissionView {
	now := time.Now()
	return &queries.SubmissionView{
		ID:         uuid.New(),
		ClientID:   b.ClientID,
		ClientName: b.ClientName,
		Title:      b.Title,
		ImageCount: b.ImageCount,
		Status:     b.Status,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *SubmissionBuilder) BuildListItem() *queries.SubmissionListItem {
	now := time.Now()
	return &queries.SubmissionListItem{
		ID:         uuid.New(),
		Title:      b.Title,
		ImageCount: b.ImageCount,
		Status:     b.Status,
		ReceivedAt: now,
		CreatedAt:  now,
	}
}
